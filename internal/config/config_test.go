package config_test

import (
	"testing"
	"time"

	"github.com/dom/zodiac-catalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.BackendMemory, cfg.StoreBackend)
	assert.True(t, cfg.EnableSeed)
	assert.False(t, cfg.EnableTrace)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_SeedDisabledOutsideDevelopment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.EnableSeed)

	t.Setenv("ENABLE_SEED", "true")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.EnableSeed)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "postgres without url",
			env:     map[string]string{"STORE_BACKEND": "postgres", "DATABASE_URL": ""},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "redis without url",
			env:     map[string]string{"STORE_BACKEND": "redis", "REDIS_URL": ""},
			wantErr: "REDIS_URL",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"STORE_BACKEND": "mongo"},
			wantErr: "unknown STORE_BACKEND",
		},
		{
			name:    "trace without endpoint",
			env:     map[string]string{"STORE_BACKEND": "memory", "ENABLE_TRACE": "true", "TRACE_ENDPOINT": ""},
			wantErr: "TRACE_ENDPOINT",
		},
		{
			name: "redis with url",
			env:  map[string]string{"STORE_BACKEND": "redis", "REDIS_URL": "redis://localhost:6379/0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}
