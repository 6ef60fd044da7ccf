package analysis

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/resumeready/backend/models"
)

var (
	codeFence       = regexp.MustCompile("(?i)```json|```")
	totalScoreField = regexp.MustCompile(`"total_score"\s*:\s*(\d+)`)
	matchScoreField = regexp.MustCompile(`"match_score"\s*:\s*(\d+)`)
)

// CleanJSON removes markdown code fences around a model answer
func CleanJSON(text string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
}

// ClampScore bounds a score to 0..100
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ParseResumeAnalysis extracts the readiness score from a raw completion.
// The structured analysis is returned when the answer is well formed JSON;
// otherwise the score comes from a "total_score" pattern in the raw text, or 0.
func ParseResumeAnalysis(raw string) (int, *models.ResumeAnalysis) {
	cleaned := CleanJSON(raw)

	var full models.ResumeAnalysis
	if err := json.Unmarshal([]byte(cleaned), &full); err == nil {
		return ClampScore(int(full.TotalScore)), &full
	}

	// Valid JSON whose nested sections do not fit the schema still carries a usable score
	var probe struct {
		TotalScore models.Score `json:"total_score"`
	}
	if err := json.Unmarshal([]byte(cleaned), &probe); err == nil {
		return ClampScore(int(probe.TotalScore)), nil
	}

	return ClampScore(scoreFromPattern(totalScoreField, raw)), nil
}

// ParseMatchResult decodes a match completion. Each field of a JSON answer is
// decoded on its own so one malformed field does not discard the rest. When the
// answer is not JSON the score comes from a "match_score" pattern and the
// keyword lists stay empty.
func ParseMatchResult(raw string) *models.MatchResult {
	cleaned := CleanJSON(raw)

	var result models.MatchResult
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		result.MatchScore = models.Score(scoreFromPattern(matchScoreField, raw))
	} else {
		decodeField(fields, "match_score", &result.MatchScore)
		decodeField(fields, "matching_keywords", &result.MatchingKeywords)
		decodeField(fields, "missing_keywords", &result.MissingKeywords)
		decodeField(fields, "summary", &result.Summary)
		decodeField(fields, "suggested_courses", &result.SuggestedCourses)
	}

	result.MatchScore = models.Score(ClampScore(int(result.MatchScore)))
	if result.MatchingKeywords == nil {
		result.MatchingKeywords = models.FlexibleStringList{}
	}
	if result.MissingKeywords == nil {
		result.MissingKeywords = models.FlexibleStringList{}
	}
	return &result
}

// decodeField unmarshals fields[name] into dst, leaving dst untouched when the
// field is missing or has an unexpected type
func decodeField(fields map[string]json.RawMessage, name string, dst any) {
	data, ok := fields[name]
	if !ok {
		return
	}
	_ = json.Unmarshal(data, dst)
}

func scoreFromPattern(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// more digits than an int holds
		return 100
	}
	return n
}
