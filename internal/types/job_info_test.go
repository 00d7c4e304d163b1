package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{name: "array", input: `["Go", "SQL"]`, want: StringList{"Go", "SQL"}},
		{name: "empty array", input: `[]`, want: StringList{}},
		{name: "single string", input: `"Python"`, want: StringList{"Python"}},
		{name: "blank string", input: `"  "`, want: StringList{}},
		{name: "null", input: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringList_UnmarshalJSON_NonStringValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{name: "objects in array", input: `[{"skill": "Go"}, "SQL"]`, want: StringList{`{"skill":"Go"}`, "SQL"}},
		{name: "numbers and bools", input: `[3, true, null]`, want: StringList{"3", "true", ""}},
		{name: "bare object", input: `{"a": 1}`, want: StringList{`{"a":1}`}},
		{name: "bare number", input: `5`, want: StringList{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJobInfo_DecodeMistypedScalars(t *testing.T) {
	payload := `{
		"company_name": "Acme",
		"position_title": "SRE",
		"salary_range": 150000,
		"remote_work": true,
		"location": {"city": "Berlin"},
		"department": null,
		"key_requirements": [{"skill": "Go"}]
	}`

	var info JobInfo
	require.NoError(t, json.Unmarshal([]byte(payload), &info))

	assert.Equal(t, "Acme", info.CompanyName)
	assert.Equal(t, "SRE", info.PositionTitle)
	assert.Equal(t, "150000", info.SalaryRange)
	assert.Equal(t, "true", info.RemoteWork)
	assert.Equal(t, `{"city":"Berlin"}`, info.Location)
	assert.Empty(t, info.Department)
	assert.Equal(t, StringList{`{"skill":"Go"}`}, info.KeyRequirements)
}

func TestJobInfo_DecodeRejectsNonObject(t *testing.T) {
	var info JobInfo
	assert.Error(t, json.Unmarshal([]byte(`["not", "an", "object"]`), &info))
}

func TestJobInfo_DecodeTolerant(t *testing.T) {
	payload := `{
		"company_name": "TechCorp",
		"position_title": "Engineer",
		"key_requirements": "5+ years of Go",
		"benefits": null,
		"unexpected_key": "ignored"
	}`

	var info JobInfo
	require.NoError(t, json.Unmarshal([]byte(payload), &info))

	assert.Equal(t, "TechCorp", info.CompanyName)
	assert.Equal(t, StringList{"5+ years of Go"}, info.KeyRequirements)
	assert.Nil(t, info.Benefits)
	assert.Empty(t, info.Location)
}

func TestJobInfo_Normalize(t *testing.T) {
	info := JobInfo{CompanyName: "TechCorp"}
	info.Normalize()

	data, err := json.Marshal(info)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, field := range JobInfoFields {
		value, ok := decoded[field]
		assert.True(t, ok, "field %s should be present", field)
		assert.NotNil(t, value, "field %s should not be null", field)
	}
	assert.Len(t, decoded, len(JobInfoFields))
}
