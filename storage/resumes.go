package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/resumeready/backend/models"
)

// CreateResume stores an analyzed resume; the id and creation time are filled in
func (p *PostgresClient) CreateResume(ctx context.Context, resume *models.Resume) error {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}

	err := p.db.QueryRowContext(ctx,
		`INSERT INTO resumes (id, user_id, resume_text, readiness_score, feedback, source_file)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		resume.ID, resume.UserID, resume.ResumeText, resume.ReadinessScore, resume.Feedback, nullString(resume.SourceFile),
	).Scan(&resume.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// ListResumeSummaries returns a user's resumes, newest first
func (p *PostgresClient) ListResumeSummaries(ctx context.Context, userID uuid.UUID) ([]models.ResumeSummary, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, readiness_score, feedback, created_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query resumes: %w", err)
	}
	defer rows.Close()

	items := []models.ResumeSummary{}
	for rows.Next() {
		var item models.ResumeSummary
		if err := rows.Scan(&item.ID, &item.ReadinessScore, &item.Feedback, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return items, nil
}

// GetResume returns one of the user's resumes
func (p *PostgresClient) GetResume(ctx context.Context, userID, id uuid.UUID) (*models.Resume, error) {
	var (
		resume     models.Resume
		jobDesc    sql.NullString
		matchScore sql.NullInt64
		sourceFile sql.NullString
	)

	err := p.db.QueryRowContext(ctx,
		`SELECT id, user_id, resume_text, readiness_score, feedback, job_description, match_score, source_file, created_at
		 FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&resume.ID, &resume.UserID, &resume.ResumeText, &resume.ReadinessScore, &resume.Feedback,
		&jobDesc, &matchScore, &sourceFile, &resume.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	resume.JobDescription = stringPtr(jobDesc)
	resume.SourceFile = stringPtr(sourceFile)
	if matchScore.Valid {
		score := int(matchScore.Int64)
		resume.MatchScore = &score
	}
	return &resume, nil
}

// DeleteResume removes one of the user's resumes
func (p *PostgresClient) DeleteResume(ctx context.Context, userID, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return expectOneRow(res)
}

// AttachJobMatch records a job description and match score on the user's most recent resume.
// It returns ErrNotFound when the user has no resume yet.
func (p *PostgresClient) AttachJobMatch(ctx context.Context, userID uuid.UUID, jobDescription string, matchScore int) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE resumes
		 SET job_description = $1, match_score = $2
		 WHERE id = (
		     SELECT id FROM resumes
		     WHERE user_id = $3
		     ORDER BY created_at DESC
		     LIMIT 1
		 )`,
		jobDescription, matchScore, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to attach job match: %w", err)
	}
	return expectOneRow(res)
}
