package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// GCSClient is the real Client backed by a Google Cloud Storage bucket,
// initialized through the Firebase admin SDK.
type GCSClient struct {
	cfg    Config
	bucket *gcs.BucketHandle
}

func NewGCSClient(ctx context.Context, cfg Config) (*GCSClient, error) {
	var opts []option.ClientOption
	if cfg.Credentials != "" {
		if strings.HasPrefix(cfg.Credentials, "{") {
			log.Println("Using storage credentials from environment variable")
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.Credentials)))
		} else {
			// It's a file path
			log.Println("Using storage credentials from file:", cfg.Credentials)
			opts = append(opts, option.WithCredentialsFile(cfg.Credentials))
		}
	} else {
		log.Println("Warning: no storage credentials configured, using default credentials")
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client init failed: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket %s unavailable: %w", cfg.Bucket, err)
	}

	return &GCSClient{cfg: cfg, bucket: bucket}, nil
}

// PresignUpload returns a time-limited URL allowing a single PUT of exactly
// this key and content type, so clients upload directly without proxying
// bytes through this service.
func (c *GCSClient) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	url, err := c.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(expiresIn),
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}
	return url, nil
}

func (c *GCSClient) DeleteObject(ctx context.Context, key string) error {
	err := c.bucket.Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	log.Printf("Deleted object %s from bucket %s", key, c.cfg.Bucket)
	return nil
}

func (c *GCSClient) PublicBase() string {
	return c.cfg.PublicBase
}
