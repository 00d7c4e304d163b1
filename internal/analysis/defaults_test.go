package analysis

import (
	"testing"

	"github.com/jonathan/job-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDefaultJobInfo_Regex(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantCompany  string
		wantPosition string
	}{
		{"no labels", "A plain description of the work.", "Company", "Position"},
		{"company label", "Company: Globex Corporation\nmore", "Globex Corporation", "Position"},
		{"employer label case", "EMPLOYER:   Hooli  \n", "Hooli", "Position"},
		{"organization label", "organization: Umbrella", "Umbrella", "Position"},
		{"position label", "Position: Data Scientist\r\nMore", "Company", "Data Scientist"},
		{"job label", "job: Barista", "Company", "Barista"},
		{"title label", "Title: Staff Engineer", "Company", "Staff Engineer"},
		{"empty value", "Company:\n\n", "Company", "Position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := DefaultJobInfo(tt.text, "https://example.com")
			assert.Equal(t, tt.wantCompany, info.CompanyName)
			assert.Equal(t, tt.wantPosition, info.PositionTitle)
		})
	}
}

func TestDefaultJobInfo_AllFieldsNonEmpty(t *testing.T) {
	info := DefaultJobInfo("", "")

	strs := []string{
		info.CompanyName, info.PositionTitle, info.Department, info.Location,
		info.JobType, info.SalaryRange, info.CompanyDescription, info.RoleDescription,
		info.CompanyCulture, info.GrowthOpportunities, info.RemoteWork,
	}
	for i, s := range strs {
		assert.NotEmpty(t, s, "string field %d", i)
	}
	assert.Len(t, info.KeyRequirements, 3)
	assert.Len(t, info.PreferredSkills, 3)
	assert.Len(t, info.Benefits, 3)
	assert.Equal(t, "Professional experience", info.KeyRequirements[0])
}

func TestDefaultJobInfo_Deterministic(t *testing.T) {
	text := "Company: Acme\nTitle: Engineer"
	assert.Equal(t, DefaultJobInfo(text, "u"), DefaultJobInfo(text, "u"))
}

func TestJobInfoSchema_MatchesJobInfoFields(t *testing.T) {
	assert.Equal(t, types.JobInfoFields, JobInfoSchema().FieldNames())
}
