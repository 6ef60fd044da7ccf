package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resumeready/backend/models"
)

const userColumns = `id, name, email, password_hash, provider, google_id, reset_token, reset_token_expires, created_at`

// CreateUser inserts a new user; the id and creation time are filled in
func (p *PostgresClient) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Provider == "" {
		user.Provider = models.ProviderEmail
	}

	err := p.db.QueryRowContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, provider, google_id)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		 RETURNING created_at`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Provider, user.GoogleID,
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (p *PostgresClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetUserByID retrieves a user by id
func (p *PostgresClient) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpdateUserName changes the display name of a user
func (p *PostgresClient) UpdateUserName(ctx context.Context, id uuid.UUID, name string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectOneRow(res)
}

// LinkGoogleAccount records the Google subject of an existing account
func (p *PostgresClient) LinkGoogleAccount(ctx context.Context, id uuid.UUID, googleID string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE users SET google_id = $1 WHERE id = $2`, googleID, id)
	if err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	return expectOneRow(res)
}

// SetResetToken stores a password reset token for the account with the email
func (p *PostgresClient) SetResetToken(ctx context.Context, email, token string, expires time.Time) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE users SET reset_token = $1, reset_token_expires = $2 WHERE email = $3`,
		token, expires, email,
	)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return expectOneRow(res)
}

// ResetPassword swaps the password hash for an unexpired token and clears the token
func (p *PostgresClient) ResetPassword(ctx context.Context, token, passwordHash string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE users
		 SET password_hash = $1, reset_token = NULL, reset_token_expires = NULL
		 WHERE reset_token = $2 AND reset_token_expires > NOW()`,
		passwordHash, token,
	)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		user       models.User
		googleID   sql.NullString
		resetToken sql.NullString
		expires    sql.NullTime
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Provider,
		&googleID, &resetToken, &expires, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.GoogleID = googleID.String
	user.ResetToken = resetToken.String
	if expires.Valid {
		t := expires.Time
		user.ResetTokenExpires = &t
	}
	return &user, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
