package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JobInfo is the fixed-schema record extracted from a job posting.
type JobInfo struct {
	CompanyName         string     `json:"company_name"`
	PositionTitle       string     `json:"position_title"`
	Department          string     `json:"department"`
	Location            string     `json:"location"`
	JobType             string     `json:"job_type"`
	SalaryRange         string     `json:"salary_range"`
	KeyRequirements     StringList `json:"key_requirements"`
	PreferredSkills     StringList `json:"preferred_skills"`
	CompanyDescription  string     `json:"company_description"`
	RoleDescription     string     `json:"role_description"`
	Benefits            StringList `json:"benefits"`
	CompanyCulture      string     `json:"company_culture"`
	GrowthOpportunities string     `json:"growth_opportunities"`
	RemoteWork          string     `json:"remote_work"`
}

// JobInfoFields lists the JSON keys of JobInfo in schema order.
var JobInfoFields = []string{
	"company_name",
	"position_title",
	"department",
	"location",
	"job_type",
	"salary_range",
	"key_requirements",
	"preferred_skills",
	"company_description",
	"role_description",
	"benefits",
	"company_culture",
	"growth_opportunities",
	"remote_work",
}

// Normalize replaces nil lists with empty ones so every field serializes as a value.
func (j *JobInfo) Normalize() {
	if j.KeyRequirements == nil {
		j.KeyRequirements = StringList{}
	}
	if j.PreferredSkills == nil {
		j.PreferredSkills = StringList{}
	}
	if j.Benefits == nil {
		j.Benefits = StringList{}
	}
}

// UnmarshalJSON decodes any JSON object. Each known key is coerced to its
// field type: numbers, bools and nested values become their JSON text, so one
// mistyped value never discards the rest of the record. Unknown keys are ignored.
func (j *JobInfo) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*j = JobInfo{}
	for key, value := range raw {
		switch dst := j.field(key).(type) {
		case *string:
			*dst = looseText(value)
		case *StringList:
			if err := dst.UnmarshalJSON(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return nil
}

func (j *JobInfo) field(key string) any {
	switch key {
	case "company_name":
		return &j.CompanyName
	case "position_title":
		return &j.PositionTitle
	case "department":
		return &j.Department
	case "location":
		return &j.Location
	case "job_type":
		return &j.JobType
	case "salary_range":
		return &j.SalaryRange
	case "key_requirements":
		return &j.KeyRequirements
	case "preferred_skills":
		return &j.PreferredSkills
	case "company_description":
		return &j.CompanyDescription
	case "role_description":
		return &j.RoleDescription
	case "benefits":
		return &j.Benefits
	case "company_culture":
		return &j.CompanyCulture
	case "growth_opportunities":
		return &j.GrowthOpportunities
	case "remote_work":
		return &j.RemoteWork
	}
	return nil
}

// looseText returns a JSON string's value, "" for null, and the compact JSON
// text of anything else (150000, true, {"min":1}).
func looseText(value json.RawMessage) string {
	trimmed := bytes.TrimSpace(value)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return ""
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}

// StringList is a list of strings that also accepts a bare value or null
// when decoding, since model output is not reliable about arrays. Non-string
// elements are kept as their JSON text.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if trimmed[0] != '[' {
		single := looseText(trimmed)
		if strings.TrimSpace(single) == "" {
			*l = StringList{}
			return nil
		}
		*l = StringList{single}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return fmt.Errorf("expected string or array: %w", err)
	}
	list := make(StringList, 0, len(items))
	for _, item := range items {
		list = append(list, looseText(item))
	}
	*l = list
	return nil
}
