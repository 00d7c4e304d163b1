package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("analysis.json", "analyze-job-posting")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Analyze the following job posting")
	assert.Contains(t, prompt, "{{.Structure}}")
	assert.Contains(t, prompt, "{{.URL}}")
	assert.Contains(t, prompt, "{{.Content}}")
}

func TestGet_CoverLetterPrompt(t *testing.T) {
	prompt, err := Get("cover_letter.json", "personalize-cover-letter")
	require.NoError(t, err)
	assert.Contains(t, prompt, "professional career consultant")
	assert.Contains(t, prompt, "7. Ensure the letter is 3-4 paragraphs")
	assert.Contains(t, prompt, "Return only the personalized cover letter text")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("analysis.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	template := "URL: {{.URL}}\nContent: {{.Content}}"
	data := map[string]string{
		"URL":     "https://example.com",
		"Content": "posting mentions {{.URL}} literally",
	}

	assert.Equal(t, "URL: https://example.com\nContent: posting mentions {{.URL}} literally", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestCaching(t *testing.T) {
	prompt1, err := Get("analysis.json", "analyze-job-posting")
	require.NoError(t, err)
	prompt2, err := Get("analysis.json", "analyze-job-posting")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)

	mu.RLock()
	_, cached := catalogs["analysis.json"]
	mu.RUnlock()
	assert.True(t, cached)
}
