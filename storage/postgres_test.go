package storage

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeready/backend/models"
)

func newMockClient(t *testing.T) (*PostgresClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return &PostgresClient{db: db}, mock
}

func sqlPattern(query string) string {
	return regexp.QuoteMeta(query)
}

func TestCreateUser(t *testing.T) {
	client, mock := newMockClient(t)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	user := &models.User{Name: "Jane", Email: "jane@example.com", PasswordHash: "hash"}
	mock.ExpectQuery(sqlPattern(`INSERT INTO users (id, name, email, password_hash, provider, google_id)`)).
		WithArgs(sqlmock.AnyArg(), "Jane", "jane@example.com", "hash", models.ProviderEmail, "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	require.NoError(t, client.CreateUser(context.Background(), user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, models.ProviderEmail, user.Provider)
	assert.Equal(t, created, user.CreatedAt)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(sqlPattern(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"})

	err := client.CreateUser(context.Background(), &models.User{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreateUserOtherFailure(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(sqlPattern(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23502", Message: "null value in column"})

	err := client.CreateUser(context.Background(), &models.User{Email: "jane@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUserByEmail(t *testing.T) {
	client, mock := newMockClient(t)
	id := uuid.New()
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	expires := created.Add(time.Hour)

	mock.ExpectQuery(sqlPattern(`SELECT `+userColumns+` FROM users WHERE email = $1`)).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "provider", "google_id", "reset_token", "reset_token_expires", "created_at"}).
			AddRow(id.String(), "Jane", "jane@example.com", "hash", "email", nil, "tok", expires, created))

	user, err := client.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Empty(t, user.GoogleID)
	assert.Equal(t, "tok", user.ResetToken)
	require.NotNil(t, user.ResetTokenExpires)
	assert.Equal(t, expires, *user.ResetTokenExpires)
}

func TestGetUserByIDNotFound(t *testing.T) {
	client, mock := newMockClient(t)
	id := uuid.New()

	mock.ExpectQuery(sqlPattern(`FROM users WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := client.GetUserByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetResetTokenUnknownEmail(t *testing.T) {
	client, mock := newMockClient(t)
	expires := time.Now().Add(time.Hour)

	mock.ExpectExec(sqlPattern(`UPDATE users SET reset_token = $1, reset_token_expires = $2 WHERE email = $3`)).
		WithArgs("tok", expires, "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := client.SetResetToken(context.Background(), "ghost@example.com", "tok", expires)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	resetQuery := sqlPattern(`UPDATE users SET password_hash = $1, reset_token = NULL, reset_token_expires = NULL ` +
		`WHERE reset_token = $2 AND reset_token_expires > NOW()`)

	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "valid token", rows: 1},
		{name: "unknown or expired token", rows: 0, wantErr: ErrInvalidResetToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := newMockClient(t)
			mock.ExpectExec(resetQuery).
				WithArgs("new-hash", "tok").
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			err := client.ResetPassword(context.Background(), "tok", "new-hash")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAttachJobMatchTargetsLatestResume(t *testing.T) {
	latestQuery := sqlPattern(`UPDATE resumes SET job_description = $1, match_score = $2 ` +
		`WHERE id = ( SELECT id FROM resumes WHERE user_id = $3 ORDER BY created_at DESC LIMIT 1 )`)
	userID := uuid.New()

	t.Run("updates one row", func(t *testing.T) {
		client, mock := newMockClient(t)
		mock.ExpectExec(latestQuery).
			WithArgs("Go engineer", 72, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, client.AttachJobMatch(context.Background(), userID, "Go engineer", 72))
	})

	t.Run("no resume yet", func(t *testing.T) {
		client, mock := newMockClient(t)
		mock.ExpectExec(latestQuery).
			WithArgs("Go engineer", 72, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, client.AttachJobMatch(context.Background(), userID, "Go engineer", 72), ErrNotFound)
	})
}

func TestGetResume(t *testing.T) {
	client, mock := newMockClient(t)
	userID, id := uuid.New(), uuid.New()
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(sqlPattern(`FROM resumes WHERE id = $1 AND user_id = $2`)).
		WithArgs(id, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "resume_text", "readiness_score", "feedback", "job_description", "match_score", "source_file", "created_at"}).
			AddRow(id.String(), userID.String(), "resume", 81, "{}", nil, 64, "resumes/a.pdf", created))

	resume, err := client.GetResume(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, 81, resume.ReadinessScore)
	assert.Nil(t, resume.JobDescription)
	require.NotNil(t, resume.MatchScore)
	assert.Equal(t, 64, *resume.MatchScore)
	require.NotNil(t, resume.SourceFile)
	assert.Equal(t, "resumes/a.pdf", *resume.SourceFile)
}

func TestGetResumeOtherOwner(t *testing.T) {
	client, mock := newMockClient(t)
	stranger, id := uuid.New(), uuid.New()

	mock.ExpectQuery(sqlPattern(`FROM resumes WHERE id = $1 AND user_id = $2`)).
		WithArgs(id, stranger).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := client.GetResume(context.Background(), stranger, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOwnerScopedDeletes(t *testing.T) {
	stranger, id := uuid.New(), uuid.New()

	tests := []struct {
		name  string
		query string
		call  func(*PostgresClient) error
	}{
		{
			name:  "resume",
			query: `DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
			call: func(c *PostgresClient) error {
				return c.DeleteResume(context.Background(), stranger, id)
			},
		},
		{
			name:  "skill",
			query: `DELETE FROM skills WHERE id = $1 AND user_id = $2`,
			call: func(c *PostgresClient) error {
				return c.DeleteSkill(context.Background(), stranger, id)
			},
		},
		{
			name:  "certification",
			query: `DELETE FROM certifications WHERE id = $1 AND user_id = $2`,
			call: func(c *PostgresClient) error {
				return c.DeleteCertification(context.Background(), stranger, id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := newMockClient(t)
			mock.ExpectExec(sqlPattern(tt.query)).
				WithArgs(id, stranger).
				WillReturnResult(sqlmock.NewResult(0, 0))

			assert.ErrorIs(t, tt.call(client), ErrNotFound)
		})
	}
}

func TestListResumeSummariesEmpty(t *testing.T) {
	client, mock := newMockClient(t)
	userID := uuid.New()

	mock.ExpectQuery(sqlPattern(`FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "readiness_score", "feedback", "created_at"}))

	items, err := client.ListResumeSummaries(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
