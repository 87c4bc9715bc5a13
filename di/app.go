package di

import (
	"context"
	"resalab/config"
	"resalab/helper"
	"resalab/infras/otel"
	"resalab/infras/postgres"
	"resalab/shared/event"
	"resalab/shared/logger"
	"resalab/shared/timezone"
	"resalab/transport/http"

	"github.com/rs/zerolog/log"
)

// App is the assembled service along with the resources it must release on shutdown.
type App struct {
	Config    *config.Config
	HTTP      *http.HTTP
	DB        *postgres.Connection
	Publisher event.Publisher
	Otel      otel.Otel
}

// Bootstrap sets up the process-wide logger and time zone before anything else logs or stamps times.
func Bootstrap(cfg *config.Config) {
	logger.InitLogger(cfg.Server.Env)

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)
}

func (a *App) Run() {
	if a.Config.DB.Postgres.AutoMigrate {
		if err := helper.Up(a.Config); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	a.HTTP.OnShutdown(func(_ context.Context) error {
		return a.Publisher.Close()
	})
	a.HTTP.OnShutdown(func(_ context.Context) error {
		return a.DB.Close()
	})
	a.HTTP.OnShutdown(a.Otel.Shutdown)

	a.HTTP.Serve()
}
