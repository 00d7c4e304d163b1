package db

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jonathan/job-assistant/internal/schemas"
	"github.com/jonathan/job-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaSQL_DefinesTables(t *testing.T) {
	for _, table := range []string{"templates", "sessions", "jobs"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schemaSQL, "CHECK (type IN ('resume', 'cover_letter'))")
}

func TestDefaultCoverLetterTemplate_HasPlaceholders(t *testing.T) {
	for _, placeholder := range []string{
		"{company_name}", "{position_title}", "{personalized_content}",
		"{company_reasons}", "{relevant_skills}",
	} {
		assert.Contains(t, DefaultCoverLetterTemplate, placeholder)
	}
}

func TestDefaultResumeTemplate_IsValidResume(t *testing.T) {
	resume, err := schemas.ParseResume([]byte(DefaultResumeTemplate))
	require.NoError(t, err)
	assert.Equal(t, "John Doe", resume.Name)
	assert.Contains(t, resume.Skills, "Python")
}

func TestDecodeExtractedInfo(t *testing.T) {
	info := decodeExtractedInfo([]byte(`{"company_name": "Acme", "benefits": ["Dental"]}`))
	assert.Equal(t, "Acme", info.CompanyName)
	assert.Equal(t, types.StringList{"Dental"}, info.Benefits)
	assert.NotNil(t, info.KeyRequirements)

	for _, raw := range [][]byte{nil, []byte(`not json`), []byte(`["Acme"]`)} {
		info := decodeExtractedInfo(raw)
		require.NotNil(t, info)
		assert.Empty(t, info.CompanyName)
		assert.NotNil(t, info.Benefits)
	}
}

func TestJobApplication_JSON(t *testing.T) {
	job := JobApplication{
		URL:           "https://example.com/jobs/1",
		CompanyName:   "Acme",
		ExtractedInfo: &types.JobInfo{CompanyName: "Acme"},
	}

	data, err := json.Marshal(job)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"extracted_info":{"company_name":"Acme"`))
	assert.NotContains(t, string(data), "session_id")
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	require.NotNil(t, nullable("x"))
	assert.Equal(t, "x", *nullable("x"))
	assert.Equal(t, "", deref(nil))
}
