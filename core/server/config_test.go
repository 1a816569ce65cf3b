package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/raptor/core/server"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates server from config with defaults", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, ":8080", srv.Addr())
	})

	t.Run("allows overriding config values with options", func(t *testing.T) {
		t.Parallel()

		cfg := server.Config{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		}

		srv, err := server.NewFromConfig(cfg, server.WithShutdownTimeout(10*time.Second))
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails without address", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFromConfig(server.Config{ReadTimeout: 10 * time.Second})
		assert.ErrorIs(t, err, server.ErrMissingAddress)
		assert.Nil(t, srv)
	})

	t.Run("fasthttp fails without address", func(t *testing.T) {
		t.Parallel()

		srv, err := server.NewFastHTTPFromConfig(server.Config{})
		assert.ErrorIs(t, err, server.ErrMissingAddress)
		assert.Nil(t, srv)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultConfig()

	assert.Equal(t, server.AdapterHTTP, cfg.Adapter)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, server.DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, server.DefaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, server.DefaultIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, server.DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, server.DefaultMaxHeaderBytes, cfg.MaxHeaderBytes)
}

func TestNewAdapter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		adapter string
		check   func(t *testing.T, a server.Adapter)
		wantErr error
	}{
		{
			name:    "empty_defaults_to_http",
			adapter: "",
			check: func(t *testing.T, a server.Adapter) {
				assert.IsType(t, &server.Server{}, a)
			},
		},
		{
			name:    "http",
			adapter: server.AdapterHTTP,
			check: func(t *testing.T, a server.Adapter) {
				assert.IsType(t, &server.Server{}, a)
			},
		},
		{
			name:    "fasthttp",
			adapter: server.AdapterFastHTTP,
			check: func(t *testing.T, a server.Adapter) {
				assert.IsType(t, &server.FastHTTP{}, a)
			},
		},
		{
			name:    "unknown",
			adapter: "gopher",
			wantErr: server.ErrUnknownAdapter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := server.DefaultConfig()
			cfg.Adapter = tt.adapter

			a, err := server.NewAdapter(cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			tt.check(t, a)
		})
	}
}
