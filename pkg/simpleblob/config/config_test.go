package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, "memory", cfg.StorageType)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", "fs")
	t.Setenv("STORAGE_BASE_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "fs", cfg.StorageType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *ServerConfig) {},
		},
		{
			name:    "empty port",
			mutate:  func(c *ServerConfig) { c.Port = "" },
			wantErr: "port is required",
		},
		{
			name:    "bad database type",
			mutate:  func(c *ServerConfig) { c.DatabaseType = "sqlite" },
			wantErr: "database_type",
		},
		{
			name:    "postgres without url",
			mutate:  func(c *ServerConfig) { c.DatabaseType = "postgres" },
			wantErr: "database_url is required",
		},
		{
			name:    "bad storage type",
			mutate:  func(c *ServerConfig) { c.StorageType = "tape" },
			wantErr: "storage_type",
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *ServerConfig) { c.StorageType = "s3" },
			wantErr: "s3_bucket is required",
		},
		{
			name:    "fs without base dir",
			mutate:  func(c *ServerConfig) { c.StorageType = "fs"; c.StorageBaseDir = "" },
			wantErr: "storage_base_dir is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ServerConfig{
				Port:           "8080",
				Environment:    "development",
				DatabaseType:   "memory",
				StorageType:    "memory",
				StorageBaseDir: "./data/storage",
			}
			tt.mutate(&cfg)

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

func TestBuildRegistryMemory(t *testing.T) {
	cfg := ServerConfig{
		Port:         "8080",
		DatabaseType: "memory",
		StorageType:  "memory",
	}

	reg, err := cfg.BuildRegistry(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, reg)

	store, err := reg.GetStore("memory")
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestBuildRegistryFS(t *testing.T) {
	cfg := ServerConfig{
		Port:           "8080",
		DatabaseType:   "memory",
		StorageType:    "fs",
		StorageBaseDir: t.TempDir(),
	}

	reg, err := cfg.BuildRegistry(context.Background())
	require.NoError(t, err)

	store, err := reg.GetStore("fs")
	require.NoError(t, err)
	assert.NotNil(t, store)
}
