//go:build wireinject
// +build wireinject

package di

import (
	"resalab/config"
	"resalab/infras/otel"
	"resalab/infras/postgres"
	"resalab/infras/redis"
	"resalab/shared/cache"
	"resalab/shared/event"
	"resalab/transport/http"
	"resalab/transport/http/lifecycle"
	"resalab/transport/http/middleware"
	"resalab/transport/http/router"

	reservationRepository "resalab/internal/domains/reservation/repository"
	reservationService "resalab/internal/domains/reservation/service"
	salleRepository "resalab/internal/domains/salle/repository"
	salleService "resalab/internal/domains/salle/service"

	healthHandler "resalab/internal/handlers/health"
	reservationHandler "resalab/internal/handlers/reservation"
	salleHandler "resalab/internal/handlers/salle"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
	lifecycle.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var salleDomain = wire.NewSet(
	salleRepository.New,
	salleService.New,
)

var domains = wire.NewSet(
	reservationDomain,
	salleDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	reservationHandler.New,
	salleHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
