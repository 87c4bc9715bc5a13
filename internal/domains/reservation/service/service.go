package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resalab/config"
	"resalab/infras/otel"
	"resalab/internal/domains/reservation/model"
	"resalab/internal/domains/reservation/model/dto"
	"resalab/internal/domains/reservation/repository"
	"resalab/shared"
	"resalab/shared/cache"
	"resalab/shared/constant"
	gDto "resalab/shared/dto"
	"resalab/shared/event"
	"resalab/shared/failure"
	"resalab/shared/optional"
	"resalab/shared/timezone"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyGet   = model.EntityName + ":get"
	cacheKeyGets  = model.EntityName + ":gets"
	cacheKeyCount = model.EntityName + ":count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.ReservationRequest) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.ReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (gDto.Page[dto.ReservationResponse], error)
	Get(ctx context.Context, id int64) (optional.Optional[dto.ReservationResponse], error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo      repository.Reservation
	cfg       *config.Config
	cache     cache.RedisCache
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Reservation, cfg *config.Config, cache cache.RedisCache, publisher event.Publisher, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		publisher: publisher,
		otel:      otel,
	}
}

// Create persists a new reservation. A request that already carries an id is rejected.
func (s *serviceImpl) Create(ctx context.Context, req dto.ReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID != nil {
		return res, failure.IDExists(model.EntityName) //nolint:wrapcheck
	}

	reservation := req.ToModel(timezone.Now())

	reservation.ID, err = s.repo.InsertReturning(ctx, reservation)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.invalidateLists(ctx)
	s.publisher.Publish(ctx, event.NewEntity(model.EntityName, event.ActionCreated, reservation.ID))

	res.FromModel(reservation)

	return res, nil
}

// Update replaces every column of an existing reservation. Without an id it creates one instead.
func (s *serviceImpl) Update(ctx context.Context, req dto.ReservationRequest) (res dto.ReservationResponse, err error) {
	if req.ID == nil {
		return s.Create(ctx, req)
	}

	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(*req.ID, model.FieldID, model.TableName)

	saved, err := s.repo.ReplaceReturning(ctx, req.ToModel(timezone.Now()), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	reservation, ok := saved.Get()
	if !ok {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	s.evict(ctx, *req.ID)
	s.publisher.Publish(ctx, event.NewEntity(model.EntityName, event.ActionUpdated, reservation.ID))

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res gDto.Page[dto.ReservationResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	countKey := shared.BuildCacheKeyWithQuery(cacheKeyCount, params)

	var total int
	if !shared.ReadCache(ctx, s.cache, countKey, &total) {
		total, err = s.repo.Count(ctx, gDto.FilterGroup{})
		if err != nil {
			log.Error().Err(err).Msg("failed to count reservations")

			return res, fmt.Errorf("failed to count reservations: %w", err)
		}

		shared.WriteCache(ctx, s.cache, countKey, total, s.cfg.Cache.TTL)
	}

	pageKey := shared.BuildCacheKeyWithQuery(cacheKeyGets, params)

	var reservations []model.Reservation
	if !shared.ReadCache(ctx, s.cache, pageKey, &reservations) {
		reservations, err = s.repo.GetAll(ctx, params, gDto.FilterGroup{})
		if err != nil {
			log.Error().Err(err).Msg("failed to get reservations")

			return res, fmt.Errorf("failed to get reservations: %w", err)
		}

		shared.WriteCache(ctx, s.cache, pageKey, reservations, s.cfg.Cache.TTL)
	}

	return gDto.NewPage(dto.FromModels(reservations), params, total), nil
}

// Get returns Absent when no reservation has the given id.
func (s *serviceImpl) Get(ctx context.Context, id int64) (res optional.Optional[dto.ReservationResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(cacheKeyGet, strconv.FormatInt(id, 10))

	var cached model.Reservation
	if shared.ReadCache(ctx, s.cache, key, &cached) {
		return optional.Found(dto.NewReservationResponse(cached)), nil
	}

	found, err := s.repo.Find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return optional.Absent[dto.ReservationResponse](), fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation, ok := found.Get(); ok {
		shared.WriteCache(ctx, s.cache, key, reservation, s.cfg.Cache.TTL)
	}

	return optional.Map(found, dto.NewReservationResponse), nil
}

// Delete removes the reservation. Deleting an unknown id is not an error.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.evict(ctx, id)
	s.publisher.Publish(ctx, event.NewEntity(model.EntityName, event.ActionDeleted, id))

	return nil
}

func (s *serviceImpl) evict(ctx context.Context, id int64) {
	shared.EvictCache(ctx, s.cache, shared.BuildCacheKey(cacheKeyGet, strconv.FormatInt(id, 10)))
	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheKeyGets)
	shared.InvalidateCaches(ctx, s.cache, cacheKeyCount)
}
