package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"resalab/config"
	"resalab/shared/constant"
	"resalab/transport/http/lifecycle"
	"resalab/transport/http/middleware"
	"resalab/transport/http/response"
	"resalab/transport/http/router"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

const readHeaderTimeout = 10 * time.Second

// Cleanup releases a resource once the server stops taking traffic.
type Cleanup func(ctx context.Context) error

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	State      *lifecycle.State

	mux      *chi.Mux
	server   *http.Server
	cleanups []Cleanup
	once     sync.Once
	stopped  chan struct{}
}

func New(cfg *config.Config, r router.Router, m middleware.AppMiddleware, state *lifecycle.State) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: m,
		State:      state,
		stopped:    make(chan struct{}),
	}
}

// OnShutdown registers fn to run during the cleanup period, in registration order.
func (h *HTTP) OnShutdown(fn Cleanup) {
	h.cleanups = append(h.cleanups, fn)
}

func (h *HTTP) Serve() {
	h.setup()
	h.setupGracefulShutdown()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-h.stopped
}

// Handler returns the routed handler without listening, for serverless entry points.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.mux
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		response.SetApplicationName(h.Config.App.Name)

		h.mux = chi.NewRouter()
		h.setupMiddlewares()
		h.Router.SetupRoutes(h.mux)
		h.State.Set(lifecycle.ServerStateReady)
	})
}

func (h *HTTP) setupMiddlewares() {
	h.mux.Use(h.Middleware.AccessLog()...)
	h.mux.Use(chiMiddleware.Recoverer)

	if h.Config.App.CORS.Enable {
		h.mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   h.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
			AllowCredentials: h.Config.App.CORS.AllowCredentials,
			MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
			ExposedHeaders: []string{
				constant.ResponseHeaderLocation,
				constant.ResponseHeaderLink,
				constant.ResponseHeaderTotalCount,
				response.HeaderName(constant.ResponseHeaderAlert),
				response.HeaderName(constant.ResponseHeaderError),
				response.HeaderName(constant.ResponseHeaderParams),
			},
		}))
	}

	h.mux.Use(h.Middleware.Tracing)
	h.mux.Use(h.Middleware.RateLimit())
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		h.shutdown(context.Background())

		return
	}

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State.Set(lifecycle.ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State.Set(lifecycle.ServerStateInCleanupPeriod)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	h.shutdown(ctx)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) shutdown(ctx context.Context) {
	defer close(h.stopped)

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to drain HTTP server")
	}

	for _, cleanup := range h.cleanups {
		if err := cleanup(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to release resource during shutdown")
		}
	}
}
