package models

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// ParsedResume is the structured extraction requested from the model
type ParsedResume struct {
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
	LinkedIn        string             `json:"linkedin"`
	GitHub          string             `json:"github"`
	Education       []EducationEntry   `json:"education"`
	Skills          FlexibleStringList `json:"skills"`
	Projects        []ProjectEntry     `json:"projects"`
	Experience      []ExperienceEntry  `json:"experience"`
	Certifications  FlexibleStringList `json:"certifications"`
	Achievements    FlexibleStringList `json:"achievements"`
	CareerObjective string             `json:"career_objective"`
}

// EducationEntry is one education record of a parsed resume
type EducationEntry struct {
	Degree           string         `json:"degree"`
	Institution      string         `json:"institution"`
	YearOfGraduation FlexibleString `json:"year_of_graduation"`
	GPAOrPercentage  FlexibleString `json:"gpa_or_percentage"`
}

// ProjectEntry is one project of a parsed resume
type ProjectEntry struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	TechnologiesUsed FlexibleStringList `json:"technologies_used"`
}

// ExperienceEntry is one work experience of a parsed resume
type ExperienceEntry struct {
	Role         string             `json:"role"`
	Organization string             `json:"organization"`
	Duration     FlexibleString     `json:"duration"`
	Achievements FlexibleStringList `json:"achievements"`
}

// CareerAnalysis is the narrative part of a resume analysis
type CareerAnalysis struct {
	OverallSummary            string             `json:"overall_summary"`
	SkillsEvaluation          string             `json:"skills_evaluation"`
	EducationAnalysis         string             `json:"education_analysis"`
	ProjectsExperience        string             `json:"projects_experience"`
	CareerObjectiveAssessment string             `json:"career_objective_assessment"`
	Strengths                 FlexibleStringList `json:"strengths"`
	ImprovementAreas          FlexibleStringList `json:"improvement_areas"`
	RecommendedRoles          FlexibleStringList `json:"recommended_roles"`
	FinalVerdict              string             `json:"final_verdict"`
}

// ScoreBreakdown holds the weighted category scores
type ScoreBreakdown struct {
	Structure  Score `json:"structure"`
	Skills     Score `json:"skills"`
	Experience Score `json:"experience"`
	Education  Score `json:"education"`
	Language   Score `json:"language"`
	Impact     Score `json:"impact"`
}

// ResumeAnalysis is the full structured answer for a resume analysis
// @Description AI resume analysis
type ResumeAnalysis struct {
	ParsedResume   *ParsedResume   `json:"parsed_resume,omitempty"`
	Analysis       *CareerAnalysis `json:"analysis,omitempty"`
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"`
	TotalScore     Score           `json:"total_score"`
}

// CourseSuggestion is a course recommended to close a skill gap
type CourseSuggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Link   string `json:"link"`
}

// UnmarshalJSON also accepts a bare course name
func (c *CourseSuggestion) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = CourseSuggestion{Name: name}
		return nil
	}

	type plain CourseSuggestion
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = CourseSuggestion(v)
	return nil
}

// MatchResult is the structured answer for a resume/job comparison
// @Description AI resume-job match
type MatchResult struct {
	MatchScore       Score              `json:"match_score" swaggertype:"integer" example:"64"`
	MatchingKeywords FlexibleStringList `json:"matching_keywords"`
	MissingKeywords  FlexibleStringList `json:"missing_keywords"`
	Summary          string             `json:"summary"`
	SuggestedCourses []CourseSuggestion `json:"suggested_courses,omitempty"`
}

// SkillScan is the local keyword scan of a resume
// @Description Keyword based resume scan
type SkillScan struct {
	Skills      []string `json:"skills"`
	SampleLines []string `json:"sampleLines"`
}

// FlexibleStringList can unmarshal from either a string or []string
type FlexibleStringList []string

func (f *FlexibleStringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "" {
			*f = []string{str}
		} else {
			*f = []string{}
		}
		return nil
	}

	// Lists of objects or numbers are flattened to their JSON text
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				out = append(out, s)
				continue
			}
			out = append(out, string(item))
		}
		*f = out
		return nil
	}

	*f = []string{}
	return nil
}

// FlexibleString accepts a JSON string, number or boolean and keeps its text
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexibleString(str)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = FlexibleString(data)
	return nil
}

var leadingInt = regexp.MustCompile(`^\s*(-?\d+)`)

// Score is an integer score that tolerates the shapes models emit:
// numbers are truncated, strings use their leading integer ("85/100" is 85),
// anything else is 0. Values are bounded to 0..100.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = boundedScore(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = 0
		if m := leadingInt.FindStringSubmatch(str); m != nil {
			if n, err := strconv.ParseFloat(m[1], 64); err == nil {
				*s = boundedScore(n)
			}
		}
		return nil
	}

	*s = 0
	return nil
}

// boundedScore truncates num into 0..100 before converting so huge values cannot overflow int
func boundedScore(num float64) Score {
	switch {
	case math.IsNaN(num) || num <= 0:
		return 0
	case num >= 100:
		return 100
	}
	return Score(int(num))
}

// JobPage is the readable text of a fetched job posting
// @Description Job posting page text
type JobPage struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}
