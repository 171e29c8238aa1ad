// Package storage provides object stores for uploaded pictures and audio tracks.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gimhantharuke456/policeappbackend/internal/config"
)

// LocalTracksURL is where a local track store is served
const LocalTracksURL = "/media"

// ErrInvalidKey is returned for empty, absolute or escaping object keys
var ErrInvalidKey = errors.New("invalid object key")

// Object describes one stored object
type Object struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// ObjectStore is the minimal blob API the services depend on.
// Keys are slash-separated and relative to the store root.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	Close() error
}

// CleanKey normalizes key and rejects keys that leave the store root
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(strings.TrimSpace(key), "\\", "/")
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// joinURL appends an object key to a base URL or path
func joinURL(base, key string) string {
	if base == "" {
		return key
	}
	return strings.TrimRight(base, "/") + "/" + key
}

// Open builds the audio object store selected by cfg.Backend
func Open(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3Store(ctx, S3Options{
			Endpoint:        cfg.R2.Endpoint,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			Bucket:          cfg.R2.Bucket,
			PublicURL:       cfg.R2.PublicURL,
		})
	case "gcs":
		return NewGCSStore(ctx, GCSOptions{
			Bucket:          cfg.GCS.Bucket,
			CredentialsFile: cfg.GCS.CredentialsFile,
			PublicURL:       cfg.GCS.PublicURL,
		})
	case "local", "":
		return NewLocalStore(cfg.TracksDir, LocalTracksURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
