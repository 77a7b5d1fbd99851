// Package config loads server configuration from the environment and builds
// a wired registry from it.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-blob/pkg/simpleblob"
	memoryrepo "github.com/tendant/simple-blob/pkg/simpleblob/repo/memory"
	pgrepo "github.com/tendant/simple-blob/pkg/simpleblob/repo/postgres"
	fsstorage "github.com/tendant/simple-blob/pkg/simpleblob/storage/fs"
	memorystorage "github.com/tendant/simple-blob/pkg/simpleblob/storage/memory"
	s3storage "github.com/tendant/simple-blob/pkg/simpleblob/storage/s3"
)

// ServerConfig represents server configuration for the simple-blob service
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// Database configuration: "memory" or "postgres"
	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"`
	DatabaseURL  string `env:"DATABASE_URL" env-default:""`

	// Storage configuration: "memory", "fs", or "s3"
	StorageType    string `env:"STORAGE_TYPE" env-default:"memory"`
	StorageBaseDir string `env:"STORAGE_BASE_DIR" env-default:"./data/storage"`

	S3Region          string `env:"S3_REGION" env-default:""`
	S3Bucket          string `env:"S3_BUCKET" env-default:""`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID" env-default:""`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY" env-default:""`
	S3Endpoint        string `env:"S3_ENDPOINT" env-default:""`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3CreateBucket    bool   `env:"S3_CREATE_BUCKET" env-default:"false"`
}

// Load reads configuration from the environment
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}
	switch c.StorageType {
	case "memory":
	case "fs":
		if c.StorageBaseDir == "" {
			return errors.New("storage_base_dir is required when using fs storage")
		}
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("s3_bucket is required when using s3 storage")
		}
	default:
		return errors.New("storage_type must be 'memory', 'fs', or 's3'")
	}
	return nil
}

// BuildRegistry wires a registry from the configuration: a repository for
// file records and a single named blob store for content.
func (c *ServerConfig) BuildRegistry(ctx context.Context) (simpleblob.Registry, error) {
	repo, err := c.buildRepository(ctx)
	if err != nil {
		return nil, err
	}

	store, err := c.buildBlobStore()
	if err != nil {
		return nil, err
	}

	return simpleblob.NewRegistry(
		simpleblob.WithRepository(repo),
		simpleblob.WithBlobStore(c.StorageType, store),
		simpleblob.WithDefaultBlobStore(c.StorageType),
	)
}

func (c *ServerConfig) buildRepository(ctx context.Context) (simpleblob.Repository, error) {
	switch c.DatabaseType {
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return pgrepo.NewWithPool(pool), nil
	default:
		return memoryrepo.New(), nil
	}
}

func (c *ServerConfig) buildBlobStore() (simpleblob.BlobStore, error) {
	switch c.StorageType {
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: c.StorageBaseDir})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3Region,
			Bucket:                 c.S3Bucket,
			AccessKeyID:            c.S3AccessKeyID,
			SecretAccessKey:        c.S3SecretAccessKey,
			Endpoint:               c.S3Endpoint,
			UsePathStyle:           c.S3UsePathStyle,
			CreateBucketIfNotExist: c.S3CreateBucket,
		})
	default:
		return memorystorage.New(), nil
	}
}
