package router

import (
	"resalab/config"
	"resalab/internal/handlers/health"
	"resalab/internal/handlers/reservation"
	"resalab/internal/handlers/salle"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "resalab/docs"
)

type DomainHandlers struct {
	Reservation reservation.Handler
	Salle       salle.Handler
	Health      health.Handler
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route(r.Config.App.APIPrefix, func(routerGroup chi.Router) {
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Salle.Router(routerGroup)
	})
}

func New(cfg *config.Config, domainHandlers DomainHandlers) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
	}
}
