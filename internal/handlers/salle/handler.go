package salle

import (
	"net/http"
	"resalab/config"
	"resalab/infras/otel"
	"resalab/internal/domains/salle/model"
	"resalab/internal/domains/salle/model/dto"
	"resalab/internal/domains/salle/service"
	"resalab/shared"
	"resalab/shared/constant"
	"resalab/shared/failure"
	"resalab/shared/validator"
	"resalab/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const resourcePath = "salles"

type Handler struct {
	service service.Salle
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Salle, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/"+resourcePath, func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSalle)
		routerGroup.Put("/", handler.UpdateSalle)
		routerGroup.Get("/", handler.GetAllSalles)
		routerGroup.Get("/{id}", handler.GetSalle)
		routerGroup.Delete("/{id}", handler.DeleteSalle)
	})
}

// CreateSalle handles the creation of a new salle.
// @Summary Create a new salle
// @Description Create a salle with its equipments. The body must not carry an id.
// @Tags Salle
// @Accept json
// @Produce json
// @Param salle body dto.SalleRequest true "Salle"
// @Success 201 {object} dto.SalleResponse
// @Header 201 {string} Location "Path of the created salle"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/salles [post]
func (handler *Handler) CreateSalle(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSalle")
	defer scope.End()

	log.Debug().Msg("REST request to save Salle")

	var req dto.SalleRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to create salle")

		return
	}

	handler.created(writer, res)
}

// UpdateSalle replaces an existing salle, or creates it when the body has no id.
// @Summary Update a salle
// @Description Replace every field of a salle and its equipment set. Without an id the salle is created.
// @Tags Salle
// @Accept json
// @Produce json
// @Param salle body dto.SalleRequest true "Salle"
// @Success 200 {object} dto.SalleResponse
// @Success 201 {object} dto.SalleResponse
// @Failure 400 {object} response.Error
// @Failure 404 "Not found"
// @Failure 500 {object} response.Error
// @Router /api/salles [put]
func (handler *Handler) UpdateSalle(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSalle")
	defer scope.End()

	log.Debug().Msg("REST request to update Salle")

	var req dto.SalleRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to update salle")

		return
	}

	if req.ID == nil {
		handler.created(writer, res)

		return
	}

	scope.AddEvent("Salle updated successfully")

	response.WithEntity(writer, http.StatusOK, response.EntityUpdated(model.EntityName, res.ID), res)
}

// GetAllSalles returns every salle with its equipments.
// @Summary Get all salles
// @Description List every salle ordered by id, each with its equipments.
// @Tags Salle
// @Produce json
// @Success 200 {array} dto.SalleResponse
// @Failure 500 {object} response.Error
// @Router /api/salles [get]
func (handler *Handler) GetAllSalles(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllSalles")
	defer scope.End()

	log.Debug().Msg("REST request to get all Salles")

	salles, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to get salles")

		return
	}

	response.WithJSON(writer, http.StatusOK, salles)
}

// GetSalle returns a salle by id.
// @Summary Get a salle by ID
// @Tags Salle
// @Produce json
// @Param id path integer true "Salle ID"
// @Success 200 {object} dto.SalleResponse
// @Failure 400 {object} response.Error
// @Failure 404 "Not found"
// @Failure 500 {object} response.Error
// @Router /api/salles/{id} [get]
func (handler *Handler) GetSalle(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSalle")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	log.Debug().Int64("id", id).Msg("REST request to get Salle")

	found, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to get salle")

		return
	}

	res, ok := found.Get()
	if !ok {
		response.WithNotFound(writer)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteSalle deletes a salle by id.
// @Summary Delete a salle by ID
// @Tags Salle
// @Param id path integer true "Salle ID"
// @Success 200 "Deleted"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/salles/{id} [delete]
func (handler *Handler) DeleteSalle(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSalle")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	log.Debug().Int64("id", id).Msg("REST request to delete Salle")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		handler.failed(writer, err, "failed to delete salle")

		return
	}

	scope.AddEvent("Salle deleted successfully")

	response.WithAlert(writer, http.StatusOK, response.EntityDeleted(model.EntityName, id))
}

func (handler *Handler) created(writer http.ResponseWriter, res dto.SalleResponse) {
	location, err := shared.BuildLocation(handler.cfg.App.APIPrefix, resourcePath, res.ID)
	if err != nil {
		log.Error().Err(err).Int64("id", res.ID).Msg("failed to build salle location")
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
