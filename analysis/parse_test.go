package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"surrounding text kept", "Here you go:\n```json\n{}\n```", "Here you go:\n\n{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.in))
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-5))
	assert.Equal(t, 0, ClampScore(0))
	assert.Equal(t, 73, ClampScore(73))
	assert.Equal(t, 100, ClampScore(100))
	assert.Equal(t, 100, ClampScore(250))
}

func TestParseResumeAnalysisStructured(t *testing.T) {
	raw := "```json\n" + `{
  "parsed_resume": {
    "name": "Jane Doe",
    "skills": ["Go", "PostgreSQL"],
    "education": [{"degree": "BSc", "institution": "MIT", "year_of_graduation": 2020, "gpa_or_percentage": 3.8}],
    "experience": [{"role": "Engineer", "organization": "Acme", "duration": "2y", "achievements": ["Cut latency 40%"]}]
  },
  "analysis": {"overall_summary": "Solid", "strengths": "Backend depth"},
  "score_breakdown": {"structure": 12, "skills": 18, "experience": 15, "education": 12, "language": 13, "impact": 8},
  "total_score": 78
}` + "\n```"

	score, parsed := ParseResumeAnalysis(raw)
	assert.Equal(t, 78, score)
	require.NotNil(t, parsed)
	require.NotNil(t, parsed.ParsedResume)
	assert.Equal(t, "Jane Doe", parsed.ParsedResume.Name)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, []string(parsed.ParsedResume.Skills))
	assert.Equal(t, "2020", string(parsed.ParsedResume.Education[0].YearOfGraduation))
	assert.Equal(t, []string{"Backend depth"}, []string(parsed.Analysis.Strengths))
	assert.EqualValues(t, 18, parsed.ScoreBreakdown.Skills)
}

func TestParseResumeAnalysisScoreShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"capped", `{"total_score": 140}`, 100},
		{"float truncated", `{"total_score": 81.9}`, 81},
		{"numeric string", `{"total_score": "66"}`, 66},
		{"string with suffix", `{"total_score": "72/100"}`, 72},
		{"negative floored", `{"total_score": -3}`, 0},
		{"missing", `{"analysis": {}}`, 0},
		{"garbage string", `{"total_score": "n/a"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := ParseResumeAnalysis(tt.raw)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestParseResumeAnalysisSchemaMismatchKeepsScore(t *testing.T) {
	score, parsed := ParseResumeAnalysis(`{"analysis": "free text", "total_score": 55}`)
	assert.Equal(t, 55, score)
	assert.Nil(t, parsed)
}

func TestParseResumeAnalysisRegexFallback(t *testing.T) {
	raw := `Sure! {"parsed_resume": {...}, "total_score": 64 } hope that helps`

	score, parsed := ParseResumeAnalysis(raw)
	assert.Equal(t, 64, score)
	assert.Nil(t, parsed)
}

func TestParseResumeAnalysisRegexFallbackCapped(t *testing.T) {
	score, _ := ParseResumeAnalysis(`not json "total_score": 250`)
	assert.Equal(t, 100, score)
}

func TestParseResumeAnalysisNoScore(t *testing.T) {
	score, parsed := ParseResumeAnalysis("I could not read this resume.")
	assert.Equal(t, 0, score)
	assert.Nil(t, parsed)
}

func TestParseMatchResult(t *testing.T) {
	raw := "```json\n" + `{
  "match_score": 64,
  "matching_keywords": ["go", "sql"],
  "missing_keywords": "kubernetes",
  "summary": "Good backend fit",
  "suggested_courses": [{"name": "CKA", "reason": "k8s gap", "link": "https://example.com/cka"}]
}` + "\n```"

	result := ParseMatchResult(raw)
	assert.EqualValues(t, 64, result.MatchScore)
	assert.Equal(t, []string{"go", "sql"}, []string(result.MatchingKeywords))
	assert.Equal(t, []string{"kubernetes"}, []string(result.MissingKeywords))
	assert.Equal(t, "Good backend fit", result.Summary)
	require.Len(t, result.SuggestedCourses, 1)
	assert.Equal(t, "CKA", result.SuggestedCourses[0].Name)
}

func TestParseMatchResultKeepsFieldsAroundTypeMismatch(t *testing.T) {
	raw := `{
  "match_score": 70,
  "matching_keywords": ["go", "sql"],
  "missing_keywords": ["kubernetes"],
  "summary": "Solid backend fit",
  "suggested_courses": ["Kubernetes for Developers", "Intro to Terraform"]
}`

	result := ParseMatchResult(raw)
	assert.EqualValues(t, 70, result.MatchScore)
	assert.Equal(t, []string{"go", "sql"}, []string(result.MatchingKeywords))
	assert.Equal(t, []string{"kubernetes"}, []string(result.MissingKeywords))
	assert.Equal(t, "Solid backend fit", result.Summary)
	require.Len(t, result.SuggestedCourses, 2)
	assert.Equal(t, "Kubernetes for Developers", result.SuggestedCourses[0].Name)
}

func TestParseMatchResultSkipsUndecodableField(t *testing.T) {
	raw := `{"match_score": 55, "matching_keywords": ["react"], "summary": {"text": "nested"}, "suggested_courses": 3}`

	result := ParseMatchResult(raw)
	assert.EqualValues(t, 55, result.MatchScore)
	assert.Equal(t, []string{"react"}, []string(result.MatchingKeywords))
	assert.Empty(t, result.Summary)
	assert.Empty(t, result.SuggestedCourses)
	assert.NotNil(t, result.MissingKeywords)
}

func TestParseMatchResultFallback(t *testing.T) {
	result := ParseMatchResult(`The "match_score": 42 seems right`)

	assert.EqualValues(t, 42, result.MatchScore)
	assert.Empty(t, result.MatchingKeywords)
	assert.NotNil(t, result.MatchingKeywords)
	assert.NotNil(t, result.MissingKeywords)
	assert.Empty(t, result.Summary)
}

func TestParseMatchResultClamps(t *testing.T) {
	assert.EqualValues(t, 100, ParseMatchResult(`{"match_score": 120}`).MatchScore)
	assert.EqualValues(t, 0, ParseMatchResult(`nothing useful`).MatchScore)
}
