package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON object a model is asked to produce.
type ExtractionSchema struct {
	Name   string
	Fields []SchemaField
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string" or "[]string"
	Description string // Description for the LLM
}

// FieldNames returns the JSON names of every field in order.
func (s ExtractionSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, field := range s.Fields {
		names[i] = field.Name
	}
	return names
}

// RenderStructure renders the schema as a JSON-shaped example for a prompt:
//
//	{
//	    "company_name": "Company name",
//	    "key_requirements": ["requirement 1", "requirement 2"]
//	}
func (s ExtractionSchema) RenderStructure() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, field := range s.Fields {
		var value string
		if field.Type == "[]string" {
			value = fmt.Sprintf("[%q, %q]", field.Description+" 1", field.Description+" 2")
		} else {
			value = fmt.Sprintf("%q", field.Description)
		}
		sb.WriteString(fmt.Sprintf("    %q: %s", field.Name, value))
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}
