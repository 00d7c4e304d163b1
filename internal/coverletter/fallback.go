package coverletter

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-assistant/internal/types"
)

// Placeholders recognised in cover-letter templates.
const (
	PlaceholderCompanyName         = "{company_name}"
	PlaceholderPositionTitle       = "{position_title}"
	PlaceholderRelevantSkills      = "{relevant_skills}"
	PlaceholderCompanyReasons      = "{company_reasons}"
	PlaceholderPersonalizedContent = "{personalized_content}"
)

// Placeholders lists every token FallbackLetter substitutes.
var Placeholders = []string{
	PlaceholderCompanyName,
	PlaceholderPositionTitle,
	PlaceholderRelevantSkills,
	PlaceholderCompanyReasons,
	PlaceholderPersonalizedContent,
}

const (
	defaultCompanyName    = "Company"
	defaultPositionTitle  = "Position"
	defaultSkills         = "professional experience, strong communication skills"
	defaultCompanyReasons = "your commitment to excellence and innovation"
	maxSkills             = 3
)

// FallbackLetter fills the template placeholders from info without a model.
// Empty or missing fields fall back to literal defaults, so the result never
// contains any of Placeholders. A nil info is treated as empty.
func FallbackLetter(template string, info *types.JobInfo) string {
	if info == nil {
		info = &types.JobInfo{}
	}

	skills := relevantSkills(info.KeyRequirements)
	content := fmt.Sprintf("My experience aligns well with your requirements for %s. "+
		"I am excited about the opportunity to contribute to your team and help achieve your organizational goals.", skills)

	replacer := strings.NewReplacer(
		PlaceholderCompanyName, orDefault(info.CompanyName, defaultCompanyName),
		PlaceholderPositionTitle, orDefault(info.PositionTitle, defaultPositionTitle),
		PlaceholderRelevantSkills, skills,
		PlaceholderCompanyReasons, orDefault(info.CompanyDescription, defaultCompanyReasons),
		PlaceholderPersonalizedContent, content,
	)
	return replacer.Replace(template)
}

func relevantSkills(requirements []string) string {
	picked := make([]string, 0, maxSkills)
	for _, req := range requirements {
		if req = strings.TrimSpace(req); req != "" {
			picked = append(picked, req)
		}
		if len(picked) == maxSkills {
			break
		}
	}
	if len(picked) == 0 {
		return defaultSkills
	}
	return strings.Join(picked, ", ")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
