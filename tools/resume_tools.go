package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/resumeready/backend/analysis"
	"github.com/resumeready/backend/models"
)

// MinResumeChars is the shortest trimmed resume text accepted for analysis
const MinResumeChars = 30

// AnalyzeResumeTool scores a resume with the configured LLM
type AnalyzeResumeTool struct {
	analyzer ResumeAnalyzer
}

// NewAnalyzeResumeTool creates the analyze_resume tool
func NewAnalyzeResumeTool(analyzer ResumeAnalyzer) *AnalyzeResumeTool {
	return &AnalyzeResumeTool{analyzer: analyzer}
}

func (t *AnalyzeResumeTool) Name() string {
	return "analyze_resume"
}

func (t *AnalyzeResumeTool) Description() string {
	return `Analyze a plain text resume. Returns a readiness score from 0 to 100,
a structured breakdown when available, and the raw feedback text.`
}

func (t *AnalyzeResumeTool) InputSchema() Schema {
	return objectSchema(map[string]string{
		"resume_text": "The full resume as plain text",
	}, "resume_text")
}

// ResumeInput is the input of the resume tools
type ResumeInput struct {
	ResumeText string `json:"resume_text"`
}

// AnalyzeResumeOutput is the result of analyze_resume
type AnalyzeResumeOutput struct {
	Score    int                    `json:"score"`
	Feedback string                 `json:"feedback"`
	Analysis *models.ResumeAnalysis `json:"analysis,omitempty"`
}

func (t *AnalyzeResumeTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in ResumeInput
	if err := decodeInput(input, &in); err != nil {
		return Failure("invalid input: %v", err)
	}
	if len(strings.TrimSpace(in.ResumeText)) < MinResumeChars {
		return Failure("resume_text must be at least %d characters", MinResumeChars)
	}

	res, err := t.analyzer.AnalyzeResume(ctx, in.ResumeText)
	if err != nil {
		return Failure("analysis failed: %v", err)
	}

	return Success(AnalyzeResumeOutput{
		Score:    res.Score,
		Feedback: res.Feedback,
		Analysis: res.Analysis,
	})
}

// MatchResumeTool compares a resume with a job description or job URL
type MatchResumeTool struct {
	analyzer ResumeAnalyzer
	pages    *FetchJobPageTool
}

// NewMatchResumeTool creates the match_resume tool. pages may be nil to disable job_url.
func NewMatchResumeTool(analyzer ResumeAnalyzer, pages *FetchJobPageTool) *MatchResumeTool {
	return &MatchResumeTool{analyzer: analyzer, pages: pages}
}

func (t *MatchResumeTool) Name() string {
	return "match_resume"
}

func (t *MatchResumeTool) Description() string {
	return `Compare a resume with a job description. Returns a match score from 0 to 100,
matching and missing keywords, a summary and suggested courses.
Provide job_description, or job_url to fetch the posting.`
}

func (t *MatchResumeTool) InputSchema() Schema {
	return objectSchema(map[string]string{
		"resume_text":     "The full resume as plain text",
		"job_description": "The job description text",
		"job_url":         "URL of the job posting, used when job_description is empty",
	}, "resume_text")
}

// MatchInput is the input of match_resume
type MatchInput struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	JobURL         string `json:"job_url"`
}

func (t *MatchResumeTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in MatchInput
	if err := decodeInput(input, &in); err != nil {
		return Failure("invalid input: %v", err)
	}

	jobDescription := strings.TrimSpace(in.JobDescription)
	if jobDescription == "" && in.JobURL != "" && t.pages != nil {
		page, err := t.pages.Fetch(ctx, in.JobURL)
		if err != nil {
			return Failure("fetch failed: %v", err)
		}
		jobDescription = page.Text
	}

	if strings.TrimSpace(in.ResumeText) == "" || jobDescription == "" {
		return Failure("resume_text and job_description (or job_url) are required")
	}

	result, err := t.analyzer.MatchResume(ctx, in.ResumeText, jobDescription)
	if err != nil {
		return Failure("match failed: %v", err)
	}
	return Success(result)
}

// ExtractSkillsTool runs the local keyword scan without calling an LLM
type ExtractSkillsTool struct{}

// NewExtractSkillsTool creates the extract_skills tool
func NewExtractSkillsTool() *ExtractSkillsTool {
	return &ExtractSkillsTool{}
}

func (t *ExtractSkillsTool) Name() string {
	return "extract_skills"
}

func (t *ExtractSkillsTool) Description() string {
	return `Scan a resume for well known technology keywords and return the first lines of the text.
Fast and deterministic; does not call a language model.`
}

func (t *ExtractSkillsTool) InputSchema() Schema {
	return objectSchema(map[string]string{
		"resume_text": "The resume as plain text",
	}, "resume_text")
}

func (t *ExtractSkillsTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in ResumeInput
	if err := decodeInput(input, &in); err != nil {
		return Failure("invalid input: %v", err)
	}
	if strings.TrimSpace(in.ResumeText) == "" {
		return Failure("resume_text is required")
	}
	return Success(analysis.ExtractSkills(in.ResumeText))
}

// NewDefaultRegistry registers every resume tool
func NewDefaultRegistry(analyzer ResumeAnalyzer, pages *FetchJobPageTool) *ToolRegistry {
	registry := NewToolRegistry()
	registry.Register(NewAnalyzeResumeTool(analyzer))
	registry.Register(NewMatchResumeTool(analyzer, pages))
	registry.Register(NewExtractSkillsTool())
	if pages != nil {
		registry.Register(pages)
	}
	return registry
}
