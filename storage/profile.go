package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/resumeready/backend/models"
)

// ListSkills returns a user's skills, most recently added first
func (p *PostgresClient) ListSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, user_id, skill_name, proficiency, added_at
		 FROM skills WHERE user_id = $1
		 ORDER BY added_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.SkillName, &s.Proficiency, &s.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// AddSkill stores a skill on a user's profile
func (p *PostgresClient) AddSkill(ctx context.Context, skill *models.Skill) error {
	if skill.ID == uuid.Nil {
		skill.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO skills (id, user_id, skill_name, proficiency)
		 VALUES ($1, $2, $3, $4)
		 RETURNING added_at`,
		skill.ID, skill.UserID, skill.SkillName, skill.Proficiency,
	).Scan(&skill.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to add skill: %w", err)
	}
	return nil
}

// DeleteSkill removes one of the user's skills
func (p *PostgresClient) DeleteSkill(ctx context.Context, userID, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	return expectOneRow(res)
}

// ListCertifications returns a user's certifications, most recently added first
func (p *PostgresClient) ListCertifications(ctx context.Context, userID uuid.UUID) ([]models.Certification, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, user_id, cert_name, provider, date_earned, credential_link, added_at
		 FROM certifications WHERE user_id = $1
		 ORDER BY added_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query certifications: %w", err)
	}
	defer rows.Close()

	certs := []models.Certification{}
	for rows.Next() {
		var (
			c      models.Certification
			earned sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.CertName, &c.Provider, &earned, &c.CredentialLink, &c.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}
		if earned.Valid {
			t := earned.Time
			c.DateEarned = &t
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

// AddCertification stores a certification on a user's profile
func (p *PostgresClient) AddCertification(ctx context.Context, cert *models.Certification) error {
	if cert.ID == uuid.Nil {
		cert.ID = uuid.New()
	}
	var earned sql.NullTime
	if cert.DateEarned != nil {
		earned = sql.NullTime{Time: *cert.DateEarned, Valid: true}
	}
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO certifications (id, user_id, cert_name, provider, date_earned, credential_link)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING added_at`,
		cert.ID, cert.UserID, cert.CertName, cert.Provider, earned, cert.CredentialLink,
	).Scan(&cert.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to add certification: %w", err)
	}
	return nil
}

// DeleteCertification removes one of the user's certifications
func (p *PostgresClient) DeleteCertification(ctx context.Context, userID, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM certifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete certification: %w", err)
	}
	return expectOneRow(res)
}
