package storage

import (
	"context"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeready/backend/config"
)

func TestResumeObjectKey(t *testing.T) {
	userID := uuid.MustParse("5f0c7c1e-2a4b-4d8e-9b7e-3c2f1a0b9d8e")
	at := time.Unix(1700000000, 0)
	prefix := `^resumes/5f0c7c1e-2a4b-4d8e-9b7e-3c2f1a0b9d8e/1700000000-[0-9a-f-]{36}`

	assert.Regexp(t, prefix+`\.pdf$`, ResumeObjectKey(userID, "My CV.PDF", at))
	assert.Regexp(t, prefix+`$`, ResumeObjectKey(userID, "resume", at))
	assert.Regexp(t, prefix+`\.txt$`, ResumeObjectKey(userID, "../../etc/cv.txt", at))
}

func TestResumeObjectKeyUniqueWithinSecond(t *testing.T) {
	userID := uuid.New()
	at := time.Unix(1700000000, 0)

	first := ResumeObjectKey(userID, "first.pdf", at)
	second := ResumeObjectKey(userID, "second.pdf", at.Add(300*time.Millisecond))
	assert.NotEqual(t, first, second)
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"cv.pdf":  "application/pdf",
		"cv.DOCX": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"cv.doc":  "application/msword",
		"cv.txt":  "text/plain",
		"cv":      "application/octet-stream",
	}
	for name, want := range tests {
		assert.Equal(t, want, ContentType(name), name)
	}
}

func TestNewBlobStore(t *testing.T) {
	ctx := context.Background()

	for _, provider := range []string{"", "none"} {
		store, err := NewBlobStore(ctx, &config.Config{Storage: config.StorageConfig{Provider: provider}})
		require.NoError(t, err)
		assert.Nil(t, store)
	}

	_, err := NewBlobStore(ctx, &config.Config{Storage: config.StorageConfig{Provider: "ftp"}})
	assert.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer source.Close()

	version, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	up, _, err := source.ReadUp(version)
	require.NoError(t, err)
	defer up.Close()

	down, _, err := source.ReadDown(version)
	require.NoError(t, err)
	defer down.Close()
}
