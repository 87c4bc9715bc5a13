package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"resalab/config"
	otelMocks "resalab/infras/otel/mocks"
	"resalab/shared/cache"
	cacheMocks "resalab/shared/cache/mocks"
	"resalab/transport/http/middleware"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 5
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name      string
		enable    bool
		forwarded string
		mock      func(c *cacheMocks.MockRedisCache)
		code      int
		remaining string
	}{
		{
			name:   "disabled",
			enable: false,
			mock:   func(_ *cacheMocks.MockRedisCache) {},
			code:   http.StatusOK,
		},
		{
			name:   "first request in window",
			enable: true,
			mock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), "limiter:192.0.2.1:unknown", gomock.Any()).Return(cache.Nil)
				c.EXPECT().Save(gomock.Any(), "limiter:192.0.2.1:unknown", 1, 60).Return(nil)
			},
			code:      http.StatusOK,
			remaining: "4",
		},
		{
			name:      "forwarded client",
			enable:    true,
			forwarded: "10.0.0.1, 10.0.0.2",
			mock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), "limiter:10.0.0.1:unknown", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 2

						return nil
					})
				c.EXPECT().Save(gomock.Any(), "limiter:10.0.0.1:unknown", 3, 60).Return(nil)
			},
			code:      http.StatusOK,
			remaining: "2",
		},
		{
			name:   "limit exceeded",
			enable: true,
			mock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 5

						return nil
					})
			},
			code: http.StatusTooManyRequests,
		},
		{
			name:   "cache unavailable lets the request through",
			enable: true,
			mock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("dial tcp: connection refused"))
			},
			code: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.mock(redisCache)

			m := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(tt.enable), redisCache)

			req := httptest.NewRequest(http.MethodGet, "/api/salles", nil)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			rec := httptest.NewRecorder()
			m.RateLimit()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.remaining, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestTracingAndAccessLog(t *testing.T) {
	m := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(false), nil)

	router := chi.NewRouter()
	router.Use(m.AccessLog()...)
	router.Use(m.Tracing)
	router.Get("/api/reservations/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reservations/1", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
