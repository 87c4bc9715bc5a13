package reservation

import (
	"net/http"
	"resalab/config"
	"resalab/infras/otel"
	"resalab/internal/domains/reservation/model"
	"resalab/internal/domains/reservation/model/dto"
	"resalab/internal/domains/reservation/service"
	"resalab/shared"
	"resalab/shared/constant"
	gDto "resalab/shared/dto"
	"resalab/shared/failure"
	"resalab/shared/validator"
	"resalab/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const resourcePath = "reservations"

type Handler struct {
	service service.Reservation
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Reservation, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/"+resourcePath, func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Put("/", handler.UpdateReservation)
		routerGroup.Get("/", handler.GetAllReservations)
		routerGroup.Get("/{id}", handler.GetReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
	})
}

// CreateReservation handles the creation of a new reservation.
// @Summary Create a new reservation
// @Description Create a reservation. The body must not carry an id.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param reservation body dto.ReservationRequest true "Reservation"
// @Success 201 {object} dto.ReservationResponse
// @Header 201 {string} Location "Path of the created reservation"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations [post]
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	log.Debug().Msg("REST request to save Reservation")

	var req dto.ReservationRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to create reservation")

		return
	}

	handler.created(writer, res)
}

// UpdateReservation replaces an existing reservation, or creates it when the body has no id.
// @Summary Update a reservation
// @Description Replace every field of a reservation. Without an id the reservation is created.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param reservation body dto.ReservationRequest true "Reservation"
// @Success 200 {object} dto.ReservationResponse
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 "Not found"
// @Failure 500 {object} response.Error
// @Router /api/reservations [put]
func (handler *Handler) UpdateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	log.Debug().Msg("REST request to update Reservation")

	var req dto.ReservationRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to update reservation")

		return
	}

	if req.ID == nil {
		handler.created(writer, res)

		return
	}

	scope.AddEvent("Reservation updated successfully")

	response.WithEntity(writer, http.StatusOK, response.EntityUpdated(model.EntityName, res.ID), res)
}

// GetAllReservations returns one page of reservations.
// @Summary Get a page of reservations
// @Description Page through reservations. The total is sent in X-Total-Count and the navigation in Link.
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {array} dto.ReservationResponse
// @Header 200 {integer} X-Total-Count "Number of reservations"
// @Header 200 {string} Link "Pagination links"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations [get]
func (handler *Handler) GetAllReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllReservations")
	defer scope.End()

	log.Debug().Msg("REST request to get a page of Reservations")

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, handler.cfg.App.Pagination.DefaultSize, handler.cfg.App.Pagination.MaxSize)

	page, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to get reservations")

		return
	}

	response.WithPage(writer, request, page)
}

// GetReservation returns a reservation by id.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path integer true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 "Not found"
// @Failure 500 {object} response.Error
// @Router /api/reservations/{id} [get]
func (handler *Handler) GetReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservation")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	log.Debug().Int64("id", id).Msg("REST request to get Reservation")

	found, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to get reservation")

		return
	}

	res, ok := found.Get()
	if !ok {
		response.WithNotFound(writer)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteReservation deletes a reservation by id.
// @Summary Delete a reservation by ID
// @Tags Reservation
// @Param id path integer true "Reservation ID"
// @Success 200 "Deleted"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/reservations/{id} [delete]
func (handler *Handler) DeleteReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	log.Debug().Int64("id", id).Msg("REST request to delete Reservation")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to delete reservation")

		return
	}

	scope.AddEvent("Reservation deleted successfully")

	response.WithAlert(writer, http.StatusOK, response.EntityDeleted(model.EntityName, id))
}

func (handler *Handler) created(writer http.ResponseWriter, res dto.ReservationResponse) {
	location, err := shared.BuildLocation(handler.cfg.App.APIPrefix, resourcePath, res.ID)
	if err != nil {
		log.Error().Err(err).Int64("id", res.ID).Msg("failed to build reservation location")
		response.WithError(writer, err)

		return
	}

	response.WithCreated(writer, location, response.EntityCreated(model.EntityName, res.ID), res)
}

func (handler *Handler) failed(writer http.ResponseWriter, err error, msg string) {
	if failure.IsIDExists(err) {
		response.WithFailureAlert(writer, response.Failure(model.EntityName, constant.AlertKeyIDExists))

		return
	}

	log.Error().Err(err).Msg(msg)

	response.WithError(writer, err)
}
