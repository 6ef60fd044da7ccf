package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/resumeready/backend/auth"
	"github.com/resumeready/backend/models"
	"github.com/resumeready/backend/storage"
	"github.com/resumeready/backend/utils"
)

const dateLayout = "2006-01-02"

// ProfileHandler serves the authenticated user's profile
type ProfileHandler struct {
	store  ProfileStore
	logger *logrus.Entry
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(store ProfileStore) *ProfileHandler {
	return &ProfileHandler{
		store:  store,
		logger: utils.Component("profile"),
	}
}

// GetProfile returns the user together with skills and certifications
// @Summary Get user profile
// @Description Get the authenticated user's profile, skills and certifications
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileResponse "User profile"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /profile/me [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "User not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		h.serverError(c, err, "Failed to load user")
		return
	}

	skills, err := h.store.ListSkills(ctx, userID)
	if err != nil {
		h.serverError(c, err, "Failed to load skills")
		return
	}

	certs, err := h.store.ListCertifications(ctx, userID)
	if err != nil {
		h.serverError(c, err, "Failed to load certifications")
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		User:           user,
		Skills:         nonNil(skills),
		Certifications: nonNil(certs),
	})
}

// UpdateProfile changes the user's display name
// @Summary Update user profile
// @Description Update the authenticated user's name
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Profile update"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.UpdateUserName(ctx, userID, strings.TrimSpace(req.Name)); err != nil {
		h.notFoundOr500(c, err, "User not found")
		return
	}

	user, err := h.store.GetUserByID(ctx, userID)
	if err != nil {
		h.notFoundOr500(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// AddSkill adds a skill to the profile
// @Summary Add skill
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddSkillRequest true "Skill"
// @Success 201 {object} models.Skill "Skill added"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /profile/skills [post]
func (h *ProfileHandler) AddSkill(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.AddSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill := &models.Skill{
		UserID:      userID,
		SkillName:   strings.TrimSpace(req.SkillName),
		Proficiency: req.Proficiency,
	}
	if err := h.store.AddSkill(c.Request.Context(), skill); err != nil {
		h.serverError(c, err, "Failed to add skill")
		return
	}

	c.JSON(http.StatusCreated, skill)
}

// DeleteSkill removes a skill from the profile
// @Summary Delete skill
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "Skill ID"
// @Success 200 {object} models.MessageResponse "Skill deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Skill not found"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /profile/skills/{id} [delete]
func (h *ProfileHandler) DeleteSkill(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c, "Skill not found")
		return
	}

	if err := h.store.DeleteSkill(c.Request.Context(), userID, id); err != nil {
		h.notFoundOr500(c, err, "Skill not found")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Skill deleted"})
}

// AddCertification adds a certification to the profile
// @Summary Add certification
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddCertificationRequest true "Certification"
// @Success 201 {object} models.Certification "Certification added"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /profile/certifications [post]
func (h *ProfileHandler) AddCertification(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.AddCertificationRequest
	if !bindJSON(c, &req) {
		return
	}

	cert := &models.Certification{
		UserID:         userID,
		CertName:       strings.TrimSpace(req.CertName),
		Provider:       strings.TrimSpace(req.Provider),
		CredentialLink: req.CredentialLink,
	}
	if req.DateEarned != "" {
		earned, err := time.Parse(dateLayout, req.DateEarned)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Code:    http.StatusBadRequest,
				Details: "date_earned must be YYYY-MM-DD",
			})
			return
		}
		cert.DateEarned = &earned
	}

	if err := h.store.AddCertification(c.Request.Context(), cert); err != nil {
		h.serverError(c, err, "Failed to add certification")
		return
	}

	c.JSON(http.StatusCreated, cert)
}

// DeleteCertification removes a certification from the profile
// @Summary Delete certification
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "Certification ID"
// @Success 200 {object} models.MessageResponse "Certification deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Certification not found"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /profile/certifications/{id} [delete]
func (h *ProfileHandler) DeleteCertification(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c, "Certification not found")
		return
	}

	if err := h.store.DeleteCertification(c.Request.Context(), userID, id); err != nil {
		h.notFoundOr500(c, err, "Certification not found")
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Certification deleted"})
}

func (h *ProfileHandler) notFoundOr500(c *gin.Context, err error, message string) {
	if errors.Is(err, storage.ErrNotFound) {
		notFound(c, message)
		return
	}
	h.serverError(c, err, "Profile update failed")
}

func (h *ProfileHandler) serverError(c *gin.Context, err error, msg string) {
	requestLog(c, h.logger).WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: "Server error",
		Code:  http.StatusInternalServerError,
	})
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return false
	}
	return true
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: message,
		Code:  http.StatusNotFound,
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
