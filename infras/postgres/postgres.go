package postgres

//nolint:revive
import (
	"errors"
	"net"
	"net/url"
	"resalab/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName                = "postgres"
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

const (
	poolRead  = "read"
	poolWrite = "write"
)

// Connection splits reads from writes so that reads can be served by a replica.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one postgres server as configured for the read or the write pool.
type Endpoint struct {
	Username string
	Password string
	Host     string
	Port     string
	Name     string
	Timezone string
	SSLMode  string
}

// DSN renders the endpoint as a lib/pq connection URL. Timezone is sent as a session parameter.
func (e Endpoint) DSN() string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func New(config *config.Config) *Connection {
	read, write := Endpoints(config)

	return &Connection{
		Read:  Connect(poolRead, read, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write: Connect(poolWrite, write, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
	}
}

// Endpoints returns the read and write endpoints with the database prefix applied.
func Endpoints(config *config.Config) (read, write Endpoint) {
	pg := config.DB.Postgres

	read = Endpoint{
		Username: pg.Read.Username,
		Password: pg.Read.Password,
		Host:     pg.Read.Host,
		Port:     pg.Read.Port,
		Name:     pg.Prefix + pg.Read.Name,
		Timezone: pg.Read.Timezone,
		SSLMode:  pg.Read.SSLMode,
	}

	write = Endpoint{
		Username: pg.Write.Username,
		Password: pg.Write.Password,
		Host:     pg.Write.Host,
		Port:     pg.Write.Port,
		Name:     pg.Prefix + pg.Write.Name,
		Timezone: pg.Write.Timezone,
		SSLMode:  pg.Write.SSLMode,
	}

	return read, write
}

// Close closes both pools.
func (c *Connection) Close() error {
	var errs []error

	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Connect opens a pool with retries and exits the process when every attempt fails.
func Connect(pool string, endpoint Endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	var err error

	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		var db *sqlx.DB

		db, err = sqlx.Connect(driverName, endpoint.DSN())
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxLifetime(postgresConnMaxLifetime)

			log.Info().
				Str("pool", pool).
				Str("host", endpoint.Host).
				Str("database", endpoint.Name).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("pool", pool).
			Str("host", endpoint.Host).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	log.Fatal().Err(err).Str("pool", pool).Msg("Giving up connecting to database")

	return nil
}
