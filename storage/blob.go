package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/resumeready/backend/config"
)

// BlobStore archives the original resume files uploaded by users
type BlobStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// NewBlobStore returns the store selected by STORAGE_PROVIDER, or nil when archiving is disabled
func NewBlobStore(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.Storage.Provider {
	case "", "none":
		return nil, nil
	case "gcs":
		return NewGCSBlobStore(ctx, cfg)
	case "s3":
		return NewS3BlobStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Storage.Provider)
	}
}

// ResumeObjectKey builds a unique object key for a user's uploaded file:
// resumes/<user>/<unix>-<uuid><ext>
func ResumeObjectKey(userID uuid.UUID, filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("resumes", userID.String(), fmt.Sprintf("%d-%s%s", at.Unix(), uuid.NewString(), ext))
}

// ContentType maps a resume file extension to its MIME type
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
