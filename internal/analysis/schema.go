package analysis

import "github.com/jonathan/job-assistant/internal/llm"

// JobInfoSchema describes the fourteen JobInfo fields to the model, in output order.
func JobInfoSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name: "JobInfo",
		Fields: []llm.SchemaField{
			{Name: "company_name", Type: "string", Description: "Company name"},
			{Name: "position_title", Type: "string", Description: "Job title"},
			{Name: "department", Type: "string", Description: "Department if mentioned"},
			{Name: "location", Type: "string", Description: "Job location"},
			{Name: "job_type", Type: "string", Description: "Full-time/Part-time/Contract/etc"},
			{Name: "salary_range", Type: "string", Description: "Salary information if available"},
			{Name: "key_requirements", Type: "[]string", Description: "requirement"},
			{Name: "preferred_skills", Type: "[]string", Description: "skill"},
			{Name: "company_description", Type: "string", Description: "Brief description of the company"},
			{Name: "role_description", Type: "string", Description: "Brief description of the role"},
			{Name: "benefits", Type: "[]string", Description: "benefit"},
			{Name: "company_culture", Type: "string", Description: "Description of company culture if available"},
			{Name: "growth_opportunities", Type: "string", Description: "Career growth opportunities mentioned"},
			{Name: "remote_work", Type: "string", Description: "Remote work policy if mentioned"},
		},
	}
}
