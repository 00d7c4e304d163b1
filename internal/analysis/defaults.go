package analysis

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-assistant/internal/types"
)

// Placeholder values used when the model gives nothing usable.
const (
	DefaultCompanyName   = "Company"
	DefaultPositionTitle = "Position"
	notSpecified         = "Not specified"
)

var (
	companyLine  = regexp.MustCompile(`(?i)(?:company|employer|organization):\s*([^\n\r]+)`)
	positionLine = regexp.MustCompile(`(?i)(?:title|position|job):\s*([^\n\r]+)`)
)

// DefaultJobInfo builds the deterministic record used when analysis fails.
// Company and position come from "label: value" lines in jobText when
// present; every other field gets a fixed non-empty placeholder.
func DefaultJobInfo(jobText, _ string) *types.JobInfo {
	return &types.JobInfo{
		CompanyName:         captureOr(companyLine, jobText, DefaultCompanyName),
		PositionTitle:       captureOr(positionLine, jobText, DefaultPositionTitle),
		Department:          notSpecified,
		Location:            notSpecified,
		JobType:             notSpecified,
		SalaryRange:         notSpecified,
		KeyRequirements:     types.StringList{"Professional experience", "Strong communication skills", "Team collaboration"},
		PreferredSkills:     types.StringList{"Industry knowledge", "Problem-solving", "Adaptability"},
		CompanyDescription:  "A growing company focused on innovation and excellence",
		RoleDescription:     "An exciting opportunity to contribute to our team",
		Benefits:            types.StringList{"Competitive salary", "Professional development", "Team environment"},
		CompanyCulture:      "Collaborative and inclusive work environment",
		GrowthOpportunities: "Opportunities for career advancement",
		RemoteWork:          "Please inquire about remote work options",
	}
}

func captureOr(re *regexp.Regexp, text, fallback string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		if value := strings.TrimSpace(m[1]); value != "" {
			return value
		}
	}
	return fallback
}
