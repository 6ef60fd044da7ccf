package models

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"email is required"`
}

// MessageResponse is a plain acknowledgement
// @Description Message response
type MessageResponse struct {
	Message string `json:"message" example:"Password reset successfully"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Version   string            `json:"version" example:"1.0.0"`
	Timestamp string            `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// SignupRequest represents registration request
// @Description User registration request
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=120" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"password123"`
}

// LoginRequest represents login request
// @Description User login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse carries the session token
// @Description Login response with JWT token
type LoginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    *User  `json:"user,omitempty"`
}

// ForgotPasswordRequest starts a password reset
// @Description Forgot password request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"jane@example.com"`
}

// ResetPasswordRequest completes a password reset
// @Description Reset password request
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72" example:"newpassword123"`
}

// GoogleAuthRequest represents Google SSO authentication request
// @Description Google SSO authentication request
type GoogleAuthRequest struct {
	IDToken string `json:"idToken" binding:"required" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// UploadResumeRequest submits pasted resume text for analysis
// @Description Resume analysis request
type UploadResumeRequest struct {
	ResumeText string `json:"resumeText" binding:"resumetext" example:"Jane Doe\nSoftware Engineer with 5 years of experience..."`
}

// UploadResumeResponse returns the stored analysis
// @Description Resume analysis response
type UploadResumeResponse struct {
	Message  string          `json:"message" example:"Resume analyzed successfully!"`
	Score    int             `json:"score" example:"72"`
	Feedback string          `json:"feedback"`
	Resume   *Resume         `json:"resume"`
	Analysis *ResumeAnalysis `json:"analysis,omitempty"`
}

// MatchRequest compares a resume with a job description
// @Description Resume-job match request
type MatchRequest struct {
	ResumeText     string `json:"resumeText" example:"Jane Doe\nSoftware Engineer..."`
	JobDescription string `json:"jobDescription" example:"We are hiring a backend engineer..."`
	JobURL         string `json:"jobUrl,omitempty" binding:"omitempty,url" example:"https://example.com/jobs/42"`
}

// MatchResponse wraps a match result
// @Description Resume-job match response
type MatchResponse struct {
	Message string       `json:"message" example:"Resume-job match completed"`
	Data    *MatchResult `json:"data"`
}

// ParseResumeRequest asks for a local keyword scan
// @Description Resume keyword scan request
type ParseResumeRequest struct {
	ResumeText string `json:"resumeText" binding:"required" example:"Built React and Node services on AWS"`
}

// ProfileResponse is the profile view of the authenticated user
// @Description User profile with skills and certifications
type ProfileResponse struct {
	User           *User           `json:"user"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
}

// UpdateProfileRequest represents profile update request
// @Description Profile update request
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,max=120" example:"Jane Smith"`
}

// AddSkillRequest adds a skill to the profile
// @Description Add skill request
type AddSkillRequest struct {
	SkillName   string `json:"skill_name" binding:"required,max=100" example:"Go"`
	Proficiency string `json:"proficiency" binding:"omitempty,oneof=beginner intermediate advanced expert" example:"advanced"`
}

// AddCertificationRequest adds a certification to the profile
// @Description Add certification request
type AddCertificationRequest struct {
	CertName       string `json:"cert_name" binding:"required,max=200" example:"AWS Certified Developer"`
	Provider       string `json:"provider" binding:"max=200" example:"Amazon Web Services"`
	DateEarned     string `json:"date_earned" binding:"omitempty,datetime=2006-01-02" example:"2024-05-01"`
	CredentialLink string `json:"credential_link" binding:"omitempty,url" example:"https://www.credly.com/badges/abc"`
}
