package models

import (
	"time"

	"github.com/google/uuid"
)

// Auth providers
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User represents a row of the users table
// @Description User account information
type User struct {
	ID                uuid.UUID  `json:"id" example:"5f0c7c1e-2a4b-4d8e-9b7e-3c2f1a0b9d8e"`
	Name              string     `json:"name" example:"Jane Doe"`
	Email             string     `json:"email" example:"jane@example.com"`
	PasswordHash      string     `json:"-"`
	Provider          string     `json:"-"`
	GoogleID          string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Skill is a skill listed on a user's profile
// @Description Profile skill
type Skill struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	SkillName   string    `json:"skill_name" example:"Go"`
	Proficiency string    `json:"proficiency" example:"advanced"`
	AddedAt     time.Time `json:"added_at"`
}

// Certification is a certification listed on a user's profile
// @Description Profile certification
type Certification struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"-"`
	CertName       string     `json:"cert_name" example:"AWS Certified Developer"`
	Provider       string     `json:"provider" example:"Amazon Web Services"`
	DateEarned     *time.Time `json:"date_earned"`
	CredentialLink string     `json:"credential_link" example:"https://www.credly.com/badges/abc"`
	AddedAt        time.Time  `json:"added_at"`
}
