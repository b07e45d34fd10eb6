package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// ErrObjectNotFound reports that the object is already gone. Deleting a
// missing key twice is not an error; callers treat this as success.
var ErrObjectNotFound = errors.New("storage: object not found")

// Client abstracts object storage operations for dependency injection and testing.
type Client interface {
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
	PublicBase() string
}

// Config holds the object store settings, validated once at startup and
// injected everywhere that needs them.
type Config struct {
	Bucket      string
	PublicBase  string // base URL serving uploaded objects, no trailing slash
	Credentials string // service account JSON or a path to it; empty uses ADC
}

// LoadConfig reads the storage configuration from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		Bucket:      os.Getenv("STORAGE_BUCKET"),
		PublicBase:  strings.TrimRight(os.Getenv("STORAGE_PUBLIC_BASE"), "/"),
		Credentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}
	if cfg.Bucket == "" {
		return Config{}, fmt.Errorf("STORAGE_BUCKET not set")
	}
	if cfg.PublicBase == "" {
		cfg.PublicBase = fmt.Sprintf("https://storage.googleapis.com/%s", cfg.Bucket)
	}
	return cfg, nil
}

// PublicURL reconstructs the public URL for an object key.
func (c Config) PublicURL(key string) string {
	return c.PublicBase + "/" + key
}
