package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resumeready/backend/analysis"
	"github.com/resumeready/backend/models"
)

// UserStore persists accounts
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUserName(ctx context.Context, id uuid.UUID, name string) error
	LinkGoogleAccount(ctx context.Context, id uuid.UUID, googleID string) error
	SetResetToken(ctx context.Context, email, token string, expires time.Time) error
	ResetPassword(ctx context.Context, token, passwordHash string) error
}

// ResumeStore persists analyzed resumes
type ResumeStore interface {
	CreateResume(ctx context.Context, resume *models.Resume) error
	ListResumeSummaries(ctx context.Context, userID uuid.UUID) ([]models.ResumeSummary, error)
	GetResume(ctx context.Context, userID, id uuid.UUID) (*models.Resume, error)
	DeleteResume(ctx context.Context, userID, id uuid.UUID) error
	AttachJobMatch(ctx context.Context, userID uuid.UUID, jobDescription string, matchScore int) error
}

// ProfileStore persists profile skills and certifications
type ProfileStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUserName(ctx context.Context, id uuid.UUID, name string) error
	ListSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error)
	AddSkill(ctx context.Context, skill *models.Skill) error
	DeleteSkill(ctx context.Context, userID, id uuid.UUID) error
	ListCertifications(ctx context.Context, userID uuid.UUID) ([]models.Certification, error)
	AddCertification(ctx context.Context, cert *models.Certification) error
	DeleteCertification(ctx context.Context, userID, id uuid.UUID) error
}

// ResumeAnalyzer runs the LLM prompts
type ResumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, resumeText string) (*analysis.ResumeResult, error)
	MatchResume(ctx context.Context, resumeText, jobDescription string) (*models.MatchResult, error)
}

// JobPageFetcher downloads the text of a job posting
type JobPageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*models.JobPage, error)
}

// Pinger reports dependency health
type Pinger interface {
	Ping(ctx context.Context) error
}
