package analysis

import (
	"strings"

	"github.com/resumeready/backend/models"
)

// sampleLineLimit is the number of non-empty lines returned by ExtractSkills
const sampleLineLimit = 40

// SkillCandidates are the keywords recognised by the local resume scan
var SkillCandidates = []string{"react", "node", "express", "postgresql", "javascript", "typescript", "aws", "docker"}

// ExtractSkills performs a case-insensitive substring scan for known skills and
// returns the first non-empty trimmed lines of the resume
func ExtractSkills(text string) models.SkillScan {
	lower := strings.ToLower(text)

	skills := []string{}
	for _, s := range SkillCandidates {
		if strings.Contains(lower, s) {
			skills = append(skills, s)
		}
	}

	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == sampleLineLimit {
			break
		}
	}

	return models.SkillScan{Skills: skills, SampleLines: lines}
}
