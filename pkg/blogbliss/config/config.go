// Package config loads server configuration from the environment and
// builds the repository and blob store the service runs on.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
	memoryrepo "github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/repo/memory"
	postgresrepo "github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/repo/postgres"
	fsstorage "github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/storage/fs"
	memorystorage "github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/storage/memory"
	s3storage "github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/storage/s3"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ServerConfig represents server configuration for the BlogBliss backend
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// CORSOrigin is the credentialed frontend origin.
	CORSOrigin string `env:"CORS_ORIGIN" env-default:"http://localhost:5173"`

	// JWTSecret signs login tokens. Required.
	JWTSecret string `env:"JWT_SECRET"`

	// DatabaseURL selects the repository: empty for in-memory, a
	// postgres:// URL for PostgreSQL.
	DatabaseURL string `env:"DATABASE_URL" env-default:""`

	// MigrateOnStart creates missing tables at startup.
	MigrateOnStart bool `env:"MIGRATE_ON_START" env-default:"false"`

	// StorageBackend selects the blob store: "memory", "fs" or "s3".
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"memory"`

	// Filesystem backend (legacy local-upload mode)
	UploadsDir       string `env:"UPLOADS_DIR" env-default:"uploads"`
	UploadsURLPrefix string `env:"UPLOADS_URL_PREFIX" env-default:""`

	S3 S3Config
}

// S3Config represents configuration for the S3 blob store
type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Bucket          string `env:"AWS_S3_BUCKET" env-default:""`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
	PublicBaseURL   string `env:"AWS_S3_PUBLIC_BASE_URL" env-default:""`
	CreateBucket    bool   `env:"AWS_S3_CREATE_BUCKET" env-default:"false"`
}

// Load reads configuration from the environment
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StorageBackend {
	case "memory", "fs":
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("AWS_S3_BUCKET is required when using the s3 backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (use memory, fs or s3)", c.StorageBackend)
	}
	return nil
}

// BuildRepository constructs the configured repository. The returned close
// function releases the connection pool and is a no-op for the in-memory
// repository.
func (c *ServerConfig) BuildRepository(ctx context.Context) (blogbliss.Repository, func(), error) {
	if c.DatabaseURL == "" {
		return memoryrepo.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, c.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	repo := postgresrepo.NewWithPool(pool)
	if c.MigrateOnStart {
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	return repo, pool.Close, nil
}

// BuildBlobStore constructs the configured blob store
func (c *ServerConfig) BuildBlobStore() (blogbliss.BlobStore, error) {
	switch c.StorageBackend {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.UploadsDir,
			URLPrefix: c.UploadsURLPrefix,
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Endpoint:               c.S3.Endpoint,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Bucket:                 c.S3.Bucket,
			Region:                 c.S3.Region,
			UsePathStyle:           c.S3.UsePathStyle,
			PublicBaseURL:          c.S3.PublicBaseURL,
			CreateBucketIfNotExist: c.S3.CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}
