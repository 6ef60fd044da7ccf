package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is an analyzed resume submission
// @Description Stored resume analysis
type Resume struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	ResumeText     string    `json:"resume_text"`
	ReadinessScore int       `json:"readiness_score" example:"72"`
	Feedback       string    `json:"feedback"`
	JobDescription *string   `json:"job_description"`
	MatchScore     *int      `json:"match_score"`
	SourceFile     *string   `json:"source_file,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResumeSummary is the history view of a resume
// @Description Resume history entry
type ResumeSummary struct {
	ID             uuid.UUID `json:"id"`
	ReadinessScore int       `json:"readiness_score" example:"72"`
	Feedback       string    `json:"feedback"`
	CreatedAt      time.Time `json:"created_at"`
}
