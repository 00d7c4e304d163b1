// Package prompts holds the LLM prompt templates used by analysis and
// cover-letter personalization. Each JSON file maps a prompt key to its text
// and is embedded at build time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

// catalog is the parsed form of one prompt file.
type catalog map[string]string

var (
	mu       sync.RWMutex
	catalogs = map[string]catalog{}
)

// Get returns the prompt stored under key in the named file, e.g.
// Get("analysis.json", "analyze-job-posting").
func Get(filename, key string) (string, error) {
	c, err := open(filename)
	if err != nil {
		return "", err
	}
	text, ok := c[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return text, nil
}

// MustGet is Get for prompts the binary cannot run without.
func MustGet(filename, key string) string {
	text, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}

// Format substitutes {{.Key}} placeholders with data in a single pass, so
// placeholder text appearing inside a value is left alone.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func open(filename string) (catalog, error) {
	mu.RLock()
	c, ok := catalogs[filename]
	mu.RUnlock()
	if ok {
		return c, nil
	}

	raw, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	mu.Lock()
	catalogs[filename] = c
	mu.Unlock()
	return c, nil
}
