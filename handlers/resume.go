package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/resumeready/backend/analysis"
	"github.com/resumeready/backend/auth"
	"github.com/resumeready/backend/models"
	"github.com/resumeready/backend/storage"
	"github.com/resumeready/backend/tools"
	"github.com/resumeready/backend/utils"
)

const resumeFileField = "resume_file"

// ResumeHandler handles resume analysis requests
type ResumeHandler struct {
	resumes   ResumeStore
	analyzer  ResumeAnalyzer
	pages     JobPageFetcher
	blobs     storage.BlobStore
	extractor *utils.DocumentExtractor
	maxUpload int64
	logger    *logrus.Entry
}

// NewResumeHandler creates a new resume handler. blobs may be nil when file archiving is disabled.
func NewResumeHandler(
	resumes ResumeStore,
	analyzer ResumeAnalyzer,
	pages JobPageFetcher,
	blobs storage.BlobStore,
	maxUploadMB int,
) *ResumeHandler {
	return &ResumeHandler{
		resumes:   resumes,
		analyzer:  analyzer,
		pages:     pages,
		blobs:     blobs,
		extractor: utils.NewDocumentExtractor(),
		maxUpload: int64(maxUploadMB) << 20,
		logger:    utils.Component("resume"),
	}
}

// History lists the caller's analyzed resumes
// @Summary Resume history
// @Description List the authenticated user's resumes, newest first
// @Tags Resume
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ResumeSummary "Resume history"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /resume/history [get]
func (h *ResumeHandler) History(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	items, err := h.resumes.ListResumeSummaries(c.Request.Context(), userID)
	if err != nil {
		requestLog(c, h.logger).WithError(err).Error("Failed to load resume history")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load resume history",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Upload analyzes pasted resume text
// @Summary Analyze resume text
// @Description Scores pasted resume text with the configured LLM and stores the result
// @Tags Resume
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UploadResumeRequest true "Resume text"
// @Success 200 {object} models.UploadResumeResponse "Resume analyzed"
// @Failure 400 {object} models.ErrorResponse "Resume text missing or too short"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Analysis failed"
// @Router /resume/upload [post]
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.UploadResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidResumeText(c)
		return
	}

	h.analyzeAndStore(c, userID, req.ResumeText, nil)
}

// UploadFile analyzes an uploaded resume document
// @Summary Analyze resume file
// @Description Extracts text from a PDF, DOCX or TXT resume, analyzes it, then archives the file when storage is configured
// @Tags Resume
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume_file formData file true "Resume file (PDF, DOCX, TXT)"
// @Success 200 {object} models.UploadResumeResponse "Resume analyzed"
// @Failure 400 {object} models.ErrorResponse "Invalid file"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 413 {object} models.ErrorResponse "File too large"
// @Failure 500 {object} models.ErrorResponse "Analysis failed"
// @Router /resume/upload-file [post]
func (h *ResumeHandler) UploadFile(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	// Leave room for the multipart framing around the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+(1<<20))

	file, header, err := c.Request.FormFile(resumeFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fileTooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Resume file is required",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	if header.Size > h.maxUpload {
		fileTooLarge(c)
		return
	}

	if !h.extractor.IsSupportedFormat(header.Filename) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Unsupported file type. Please upload a PDF, DOCX or TXT file.",
			Code:  http.StatusBadRequest,
		})
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		requestLog(c, h.logger).WithError(err).Error("Failed to read uploaded file")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Failed to read file",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}
	if int64(len(content)) > h.maxUpload {
		fileTooLarge(c)
		return
	}

	text, err := h.extractor.ExtractText(header.Filename, content)
	if err != nil {
		requestLog(c, h.logger).WithError(err).WithField("filename", header.Filename).Warn("Failed to extract resume text")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Could not read text from the file",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	if len(strings.TrimSpace(text)) < tools.MinResumeChars {
		invalidResumeText(c)
		return
	}

	h.analyzeAndStore(c, userID, text, func() *string {
		return h.archive(c, userID, header.Filename, content)
	})
}

// Match compares a resume against a job description
// @Summary Match resume to job
// @Description Scores how well a resume fits a job description; jobUrl may supply the description
// @Tags Resume
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MatchRequest true "Resume and job"
// @Success 200 {object} models.MatchResponse "Match completed"
// @Failure 400 {object} models.ErrorResponse "Resume text or job description missing"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Match failed"
// @Router /resume/match [post]
func (h *ResumeHandler) Match(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingMatchInput(c)
		return
	}

	ctx := c.Request.Context()
	jobDescription := strings.TrimSpace(req.JobDescription)
	if jobDescription == "" && req.JobURL != "" && h.pages != nil {
		page, err := h.pages.Fetch(ctx, req.JobURL)
		if err != nil {
			requestLog(c, h.logger).WithError(err).WithField("job_url", req.JobURL).Warn("Failed to fetch job page")
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Could not read the job posting at jobUrl",
				Code:    http.StatusBadRequest,
				Details: err.Error(),
			})
			return
		}
		jobDescription = page.Text
	}

	if strings.TrimSpace(req.ResumeText) == "" || jobDescription == "" {
		missingMatchInput(c)
		return
	}

	result, err := h.analyzer.MatchResume(ctx, req.ResumeText, jobDescription)
	if err != nil {
		requestLog(c, h.logger).WithError(err).Error("Resume-job match failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to analyze resume-job match",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if err := h.resumes.AttachJobMatch(ctx, userID, jobDescription, int(result.MatchScore)); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			requestLog(c, h.logger).WithError(err).Error("Failed to store match result")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to analyze resume-job match",
				Code:  http.StatusInternalServerError,
			})
			return
		}
		requestLog(c, h.logger).WithField("user_id", userID).Debug("No resume to attach match to")
	}

	c.JSON(http.StatusOK, models.MatchResponse{
		Message: "Resume-job match completed",
		Data:    result,
	})
}

// Get returns one of the caller's resumes
// @Summary Get resume
// @Description Returns a stored resume owned by the authenticated user
// @Tags Resume
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Success 200 {object} models.Resume "Resume"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Resume not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /resume/{id} [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resumeNotFound(c)
		return
	}

	resume, err := h.resumes.GetResume(c.Request.Context(), userID, id)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, resume)
}

// Delete removes one of the caller's resumes and its archived file
// @Summary Delete resume
// @Description Deletes a stored resume owned by the authenticated user
// @Tags Resume
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Success 200 {object} models.MessageResponse "Resume deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Resume not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /resume/{id} [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resumeNotFound(c)
		return
	}

	ctx := c.Request.Context()
	resume, err := h.resumes.GetResume(ctx, userID, id)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}

	if err := h.resumes.DeleteResume(ctx, userID, id); err != nil {
		h.lookupFailed(c, err)
		return
	}

	if resume.SourceFile != nil && h.blobs != nil {
		if err := h.blobs.Delete(ctx, *resume.SourceFile); err != nil {
			requestLog(c, h.logger).WithError(err).WithField("key", *resume.SourceFile).Warn("Failed to delete archived resume file")
		}
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Resume deleted"})
}

// Parse runs the keyword skill scan without calling the LLM
// @Summary Scan resume keywords
// @Description Detects common technology keywords and returns the first lines of the resume
// @Tags Resume
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ParseResumeRequest true "Resume text"
// @Success 200 {object} models.SkillScan "Keyword scan"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Router /resume/parse [post]
func (h *ResumeHandler) Parse(c *gin.Context) {
	var req models.ParseResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, analysis.ExtractSkills(req.ResumeText))
}

// analyzeAndStore scores text and saves the resume. archive, when set, runs only
// after a successful analysis so a failed request leaves no stored file behind.
func (h *ResumeHandler) analyzeAndStore(c *gin.Context, userID uuid.UUID, text string, archive func() *string) {
	ctx := c.Request.Context()
	result, err := h.analyzer.AnalyzeResume(ctx, text)
	if err != nil {
		requestLog(c, h.logger).WithError(err).Error("Resume analysis failed")
		analysisFailed(c)
		return
	}

	var sourceFile *string
	if archive != nil {
		sourceFile = archive()
	}

	resume := &models.Resume{
		UserID:         userID,
		ResumeText:     text,
		ReadinessScore: result.Score,
		Feedback:       result.Feedback,
		SourceFile:     sourceFile,
	}
	if err := h.resumes.CreateResume(ctx, resume); err != nil {
		requestLog(c, h.logger).WithError(err).Error("Failed to save resume")
		h.discardArchive(c, sourceFile)
		analysisFailed(c)
		return
	}

	requestLog(c, h.logger).WithFields(logrus.Fields{
		"user_id":   userID,
		"resume_id": resume.ID,
		"score":     result.Score,
	}).Info("Resume analyzed")

	c.JSON(http.StatusOK, models.UploadResumeResponse{
		Message:  "Resume analyzed successfully!",
		Score:    result.Score,
		Feedback: result.Feedback,
		Resume:   resume,
		Analysis: result.Analysis,
	})
}

// archive stores the original upload and returns its object key, or nil when archiving is off or fails
func (h *ResumeHandler) archive(c *gin.Context, userID uuid.UUID, filename string, content []byte) *string {
	if h.blobs == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	key := storage.ResumeObjectKey(userID, filename, time.Now())
	if _, err := h.blobs.Put(ctx, key, content, storage.ContentType(filename)); err != nil {
		requestLog(c, h.logger).WithError(err).WithField("key", key).Warn("Failed to archive resume file")
		return nil
	}
	return &key
}

func (h *ResumeHandler) discardArchive(c *gin.Context, key *string) {
	if key == nil || h.blobs == nil {
		return
	}
	if err := h.blobs.Delete(c.Request.Context(), *key); err != nil {
		requestLog(c, h.logger).WithError(err).WithField("key", *key).Warn("Failed to delete archived resume file")
	}
}

func (h *ResumeHandler) lookupFailed(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		resumeNotFound(c)
		return
	}
	requestLog(c, h.logger).WithError(err).Error("Resume lookup failed")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: "Server error",
		Code:  http.StatusInternalServerError,
	})
}

func invalidResumeText(c *gin.Context) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: "Please paste a valid resume text.",
		Code:  http.StatusBadRequest,
	})
}

func missingMatchInput(c *gin.Context) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: "Please provide both resume text and job description.",
		Code:  http.StatusBadRequest,
	})
}

func analysisFailed(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: "Failed to analyze resume",
		Code:  http.StatusInternalServerError,
	})
}

func resumeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: "Resume not found",
		Code:  http.StatusNotFound,
	})
}

func fileTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
		Error: "File too large",
		Code:  http.StatusRequestEntityTooLarge,
	})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error: "Unauthorized",
		Code:  http.StatusUnauthorized,
	})
}
