package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resalab/config"
	"resalab/infras/otel"
	reservationModel "resalab/internal/domains/reservation/model"
	"resalab/internal/domains/salle/model"
	"resalab/internal/domains/salle/model/dto"
	"resalab/internal/domains/salle/repository"
	"resalab/shared"
	"resalab/shared/cache"
	"resalab/shared/constant"
	"resalab/shared/event"
	"resalab/shared/failure"
	"resalab/shared/optional"
	"resalab/shared/timezone"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyGet  = model.EntityName + ":get"
	cacheKeyGets = model.EntityName + ":gets"
)

type Salle interface {
	Create(ctx context.Context, req dto.SalleRequest) (dto.SalleResponse, error)
	Update(ctx context.Context, req dto.SalleRequest) (dto.SalleResponse, error)
	GetAll(ctx context.Context) ([]dto.SalleResponse, error)
	Get(ctx context.Context, id int64) (optional.Optional[dto.SalleResponse], error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo      repository.Salle
	cfg       *config.Config
	cache     cache.RedisCache
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Salle, cfg *config.Config, cache cache.RedisCache, publisher event.Publisher, otel otel.Otel) Salle {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.SalleRequest) (res dto.SalleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Salle.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID != nil {
		return res, failure.IDExists(model.EntityName) //nolint:wrapcheck
	}

	salle, err := s.repo.InsertWithEquipments(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create salle")

		return res, fmt.Errorf("failed to create salle: %w", err)
	}

	shared.EvictCache(ctx, s.cache, cacheKeyGets)
	s.publisher.Publish(ctx, event.NewEntity(model.EntityName, event.ActionCreated, salle.ID))

	return dto.NewSalleResponse(salle), nil
}

// Update replaces the salle and its equipment set. Without an id it creates one instead.
func (s *serviceImpl) Update(ctx context.Context, req dto.SalleRequest) (res dto.SalleResponse, err error) {
	if req.ID == nil {
		return s.Create(ctx, req)
	}

	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Salle.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	saved, err := s.repo.ReplaceWithEquipments(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to update salle")

		return res, fmt.Errorf("failed to update salle: %w", err)
	}

	salle, ok := saved.Get()
	if !ok {
		return res, failure.NotFound("salle not found") //nolint:wrapcheck
	}

	s.evict(ctx, *req.ID)
	s.publisher.Publish(ctx, event.NewEntity(model.EntityName, event.ActionUpdated, *req.ID))

	return dto.NewSalleResponse(salle), nil
}

// GetAll returns every salle ordered by id, each with its equipments.
func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.SalleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Salle.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var salles []model.Salle
	if !shared.ReadCache(ctx, s.cache, cacheKeyGets, &salles) {
		salles, err = s.repo.GetAllWithEagerRelationships(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to get salles")

			return nil, fmt.Errorf("failed to get salles: %w", err)
		}

		shared.WriteCache(ctx, s.cache, cacheKeyGets, salles, s.cfg.Cache.TTL)
	}

	return dto.FromModels(salles), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res optional.Optional[dto.SalleResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Salle.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(cacheKeyGet, strconv.FormatInt(id, 10))

	var cached model.Salle
	if shared.ReadCache(ctx, s.cache, key, &cached) {
		return optional.Found(dto.NewSalleResponse(cached)), nil
	}

	found, err := s.repo.FindWithEagerRelationships(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get salle")

		return optional.Absent[dto.SalleResponse](), fmt.Errorf("failed to get salle: %w", err)
	}

	if salle, ok := found.Get(); ok {
		shared.WriteCache(ctx, s.cache, key, salle, s.cfg.Cache.TTL)
	}

	return optional.Map(found, dto.NewSalleResponse), nil
}

// Delete removes the salle. Its links cascade and reservations pointing at it lose the reference.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Salle.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete salle")

		return fmt.Errorf("failed to delete salle: %w", err)
	}

	s.evict(ctx, id)
	shared.InvalidateCaches(ctx, s.cache, reservationModel.EntityName)
	s.publisher.Publish(ctx, event.NewEntity(model.EntityName, event.ActionDeleted, id))

	return nil
}

func (s *serviceImpl) evict(ctx context.Context, id int64) {
	shared.EvictCache(ctx, s.cache, shared.BuildCacheKey(cacheKeyGet, strconv.FormatInt(id, 10)))
	shared.EvictCache(ctx, s.cache, cacheKeyGets)
}
