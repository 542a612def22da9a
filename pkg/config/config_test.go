package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinothek/kinothek/pkg/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := config.GetDefaultCatalogConfig()

	err := config.LoadServiceConfig("kinothek", cfg)
	require.NoError(t, err)

	assert.Equal(t, "kinothek", cfg.Service.Name)
	assert.Equal(t, config.BackendNoop, cfg.Notifier.Backend)
	assert.Equal(t, config.DefaultNotifySubject, cfg.Notifier.Subject)
	assert.Equal(t, config.DefaultPageSize, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, config.DefaultMaxPageSize, cfg.Pagination.MaxPageSize)
	assert.True(t, cfg.Catalog.NotifyOnCreate)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("KINOTHEK_DATABASE_HOST", "db.internal")
	t.Setenv("KINOTHEK_NOTIFIER_BACKEND", "kafka")
	t.Setenv("KINOTHEK_LOGGER_LEVEL", "debug")

	cfg := config.GetDefaultCatalogConfig()

	err := config.LoadServiceConfig("kinothek", cfg)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, config.BackendKafka, cfg.Notifier.Backend)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	t.Setenv("KINOTHEK_NOTIFIER_BACKEND", "carrier-pigeon")

	cfg := config.GetDefaultCatalogConfig()

	err := config.LoadServiceConfig("kinothek", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown notifier backend")
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.BaseConfig)
		wantErr string
	}{
		{
			name:   "defaults with name are valid",
			mutate: func(c *config.BaseConfig) { c.Service.Name = "kinothek" },
		},
		{
			name:    "missing service name",
			mutate:  func(c *config.BaseConfig) {},
			wantErr: "service name is required",
		},
		{
			name: "bad artwork backend",
			mutate: func(c *config.BaseConfig) {
				c.Service.Name = "kinothek"
				c.Artwork.Backend = "ftp"
			},
			wantErr: "unknown artwork backend",
		},
		{
			name: "short cursor key",
			mutate: func(c *config.BaseConfig) {
				c.Service.Name = "kinothek"
				c.Pagination.CursorEncryptionKey = "too-short"
			},
			wantErr: "cursor encryption key",
		},
		{
			name: "full length cursor key accepted",
			mutate: func(c *config.BaseConfig) {
				c.Service.Name = "kinothek"
				c.Pagination.CursorEncryptionKey = strings.Repeat("k", config.CursorKeyLength)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCatalogConfigValidate(t *testing.T) {
	cfg := config.GetDefaultCatalogConfig()
	cfg.Catalog.SearchLimit = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search limit")
}
