package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"

	"github.com/resumeready/backend/config"
)

// GCSBlobStore keeps resume files in a Google Cloud Storage bucket
type GCSBlobStore struct {
	client     *storage.Client
	bucketName string
}

// NewGCSBlobStore creates a Cloud Storage backed store using application default credentials
func NewGCSBlobStore(ctx context.Context, cfg *config.Config) (*GCSBlobStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &GCSBlobStore{
		client:     client,
		bucketName: cfg.Storage.Bucket,
	}, nil
}

// Close closes the Cloud Storage client
func (g *GCSBlobStore) Close() error {
	return g.client.Close()
}

// Put uploads content and returns its gs:// location
func (g *GCSBlobStore) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	wc := g.client.Bucket(g.bucketName).Object(key).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(content); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", g.bucketName, key), nil
}

// Get downloads an object
func (g *GCSBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	rc, err := g.client.Bucket(g.bucketName).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// Delete removes an object
func (g *GCSBlobStore) Delete(ctx context.Context, key string) error {
	if err := g.client.Bucket(g.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// SignedURL generates a temporary download link for an object
func (g *GCSBlobStore) SignedURL(key string, expiration time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiration),
	}

	url, err := g.client.Bucket(g.bucketName).SignedURL(key, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return url, nil
}
