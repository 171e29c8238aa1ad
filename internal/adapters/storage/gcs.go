package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSOptions configures a Google Cloud Storage store
type GCSOptions struct {
	Bucket          string
	CredentialsFile string
	PublicURL       string
}

// GCSStore stores objects in a GCS bucket
type GCSStore struct {
	client    *storage.Client
	bucket    *storage.BucketHandle
	publicURL string
}

// NewGCSStore creates a storage client; without a credentials file the
// application default credentials are used
func NewGCSStore(ctx context.Context, opts GCSOptions) (*GCSStore, error) {
	if opts.Bucket == "" {
		return nil, errors.New("gcs storage: bucket not set")
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("gcs storage: failed in creating storage client: %w", err)
	}

	publicURL := opts.PublicURL
	if publicURL == "" {
		publicURL = "https://storage.googleapis.com/" + opts.Bucket
	}

	return &GCSStore{
		client:    client,
		bucket:    client.Bucket(opts.Bucket),
		publicURL: publicURL,
	}, nil
}

// Put streams r into key
func (s *GCSStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	w := s.bucket.Object(cleaned).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs put %q: %w", cleaned, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs put %q: %w", cleaned, err)
	}
	return nil
}

// List returns every object under prefix sorted by key
func (s *GCSStore) List(ctx context.Context, prefix string) ([]Object, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	objects := make([]Object, 0)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gcs list %q: %w", prefix, err)
		}
		objects = append(objects, Object{
			Key:  attrs.Name,
			Name: path.Base(attrs.Name),
			Size: attrs.Size,
			URL:  s.URL(attrs.Name),
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// Exists fetches the attributes of key
func (s *GCSStore) Exists(ctx context.Context, key string) (bool, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return false, err
	}
	_, err = s.bucket.Object(cleaned).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("gcs attrs %q: %w", cleaned, err)
	}
	return true, nil
}

// Delete removes key
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	err = s.bucket.Object(cleaned).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %q: %w", cleaned, err)
	}
	return nil
}

// URL returns the public URL of key
func (s *GCSStore) URL(key string) string {
	return joinURL(s.publicURL, key)
}

// Close closes the GCS client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
