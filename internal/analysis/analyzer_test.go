package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func respond(text string, err error) *MockLLMClient {
	return &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return text, err
		},
	}
}

const fullResponse = `{
  "company_name": "TechCorp",
  "position_title": "Software Engineer",
  "department": "Platform",
  "location": "Remote",
  "job_type": "Full-time",
  "salary_range": "$150k-$180k",
  "key_requirements": ["Go", "Kubernetes"],
  "preferred_skills": ["Python"],
  "company_description": "Cloud tooling",
  "role_description": "Build services",
  "benefits": ["Health"],
  "company_culture": "Open",
  "growth_opportunities": "Staff track",
  "remote_work": "Fully remote"
}`

func assertAllFieldsPresent(t *testing.T, info *types.JobInfo) {
	t.Helper()
	raw, err := json.Marshal(info)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range types.JobInfoFields {
		value, ok := fields[key]
		require.True(t, ok, "missing %s", key)
		assert.NotNil(t, value, "nil %s", key)
	}
}

func TestAnalyze_Success(t *testing.T) {
	var gotPrompt string
	var gotTier llm.ModelTier
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			gotPrompt, gotTier = prompt, tier
			return fullResponse, nil
		},
	}

	info := NewAnalyzer(client).Analyze(context.Background(), "We are hiring a Go engineer", "https://jobs.example.com/1")

	assert.Equal(t, "TechCorp", info.CompanyName)
	assert.Equal(t, "Software Engineer", info.PositionTitle)
	assert.Equal(t, types.StringList{"Go", "Kubernetes"}, info.KeyRequirements)
	assert.Equal(t, "Fully remote", info.RemoteWork)
	assert.Equal(t, llm.TierStandard, gotTier)
	assert.Contains(t, gotPrompt, "We are hiring a Go engineer")
	assert.Contains(t, gotPrompt, "Job URL: https://jobs.example.com/1")
	for _, key := range types.JobInfoFields {
		assert.Contains(t, gotPrompt, `"`+key+`"`)
	}
}

func TestAnalyze_FencedJSONWithPreamble(t *testing.T) {
	client := respond("Here is the analysis you asked for:\n```json\n"+fullResponse+"\n```\nLet me know!", nil)

	info := NewAnalyzer(client).Analyze(context.Background(), "text", "https://example.com")
	assert.Equal(t, "TechCorp", info.CompanyName)
	assert.Equal(t, "Platform", info.Department)
}

func TestAnalyze_PartialResponseIsReturnedAsIs(t *testing.T) {
	client := respond(`{"company_name": "Acme", "extra_field": true, "benefits": "Dental"}`, nil)

	info := NewAnalyzer(client).Analyze(context.Background(), "company: Other", "https://example.com")

	assert.Equal(t, "Acme", info.CompanyName)
	assert.Empty(t, info.PositionTitle)
	assert.Equal(t, types.StringList{"Dental"}, info.Benefits)
	assert.NotNil(t, info.KeyRequirements)
	assert.Empty(t, info.KeyRequirements)
	assertAllFieldsPresent(t, info)
}

func TestAnalyze_MistypedFieldsKeepModelRecord(t *testing.T) {
	client := respond(`{"company_name": "Acme", "position_title": "SRE", "salary_range": 150000, "key_requirements": [{"skill": "Go"}]}`, nil)

	info := NewAnalyzer(client).Analyze(context.Background(), "company: Other", "https://example.com")

	assert.Equal(t, "Acme", info.CompanyName)
	assert.Equal(t, "SRE", info.PositionTitle)
	assert.Equal(t, "150000", info.SalaryRange)
	assert.Equal(t, types.StringList{`{"skill":"Go"}`}, info.KeyRequirements)
	assertAllFieldsPresent(t, info)
}

func TestAnalyze_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
	}{
		{"call error", respond("", errors.New("quota exceeded"))},
		{"malformed JSON", respond(`{"company_name": "Acme",`, nil)},
		{"no JSON", respond("I cannot help with that.", nil)},
		{"two objects", respond(`{"company_name": "A"} then {"company_name": "B"}`, nil)},
		{"nil client", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewAnalyzer(tt.client).Analyze(context.Background(), "We need a great engineer.", "https://example.com")
			assert.Equal(t, DefaultJobInfo("We need a great engineer.", "https://example.com"), info)
			assert.Equal(t, "Company", info.CompanyName)
			assert.Equal(t, "Position", info.PositionTitle)
		})
	}
}

func TestAnalyze_CallErrorUsesRegexFields(t *testing.T) {
	text := "Company: Initech\nTitle: TPS Report Engineer\nLots of details"
	info := NewAnalyzer(respond("", errors.New("timeout"))).Analyze(context.Background(), text, "https://example.com")

	assert.Equal(t, "Initech", info.CompanyName)
	assert.Equal(t, "TPS Report Engineer", info.PositionTitle)
}

func TestAnalyze_ReturnedErrorTypes(t *testing.T) {
	a := NewAnalyzer(respond("", errors.New("boom")))
	_, err := a.analyze(context.Background(), "text", "url")
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "boom")

	a = NewAnalyzer(respond("not json", nil))
	_, err = a.analyze(context.Background(), "text", "url")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "not json", parseErr.Raw)

	_, err = NewAnalyzer(nil).analyze(context.Background(), "text", "url")
	require.ErrorIs(t, err, ErrNoClient)
}

func TestAnalyze_WithTier(t *testing.T) {
	var gotTier llm.ModelTier
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			gotTier = tier
			return "{}", nil
		},
	}

	NewAnalyzer(client, WithTier(llm.TierLite), WithVerbose(true)).Analyze(context.Background(), "t", "u")
	assert.Equal(t, llm.TierLite, gotTier)
}
