package config_test

import (
	"testing"

	"resalab/config"

	"github.com/stretchr/testify/assert"
)

func TestGet_Defaults(t *testing.T) {
	cfg := config.Get()

	assert.Equal(t, "/api", cfg.App.APIPrefix)
	assert.Equal(t, "resalabApp", cfg.App.Name)
	assert.Equal(t, 20, cfg.App.Pagination.DefaultSize)
	assert.Equal(t, 2000, cfg.App.Pagination.MaxSize)
	assert.False(t, cfg.Kafka.Enable)
}

func TestGet_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, config.Get(), config.Get())
}
