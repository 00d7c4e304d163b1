package ingestion

import (
	"net/url"
	"strings"
)

// Board is a known job board and the selectors that hold its description.
type Board struct {
	Name string
	// HostPatterns are matched as substrings of the lower-cased host.
	HostPatterns []string
	Selectors    []string
}

// KnownBoards is evaluated in order; the first board with a matching host pattern wins.
var KnownBoards = []Board{
	{
		Name:         "linkedin",
		HostPatterns: []string{"linkedin.com"},
		Selectors: []string{
			".description__text",
			".jobs-description-content__text",
			".jobs-box__html-content",
		},
	},
	{
		Name:         "indeed",
		HostPatterns: []string{"indeed.com"},
		Selectors: []string{
			"#jobDescriptionText",
			".jobsearch-jobDescriptionText",
			".jobsearch-JobComponent-description",
		},
	},
	{
		Name:         "glassdoor",
		HostPatterns: []string{"glassdoor.com"},
		Selectors: []string{
			"#JobDescContainer",
			".jobDescriptionContent",
			"[data-test='jobDescription']",
		},
	},
	{
		Name:         "monster",
		HostPatterns: []string{"monster.com"},
		Selectors: []string{
			"#JobDescription",
			".job-description",
		},
	},
	{
		Name:         "ziprecruiter",
		HostPatterns: []string{"ziprecruiter.com"},
		Selectors: []string{
			".job_description",
			"[data-testid='job-description']",
		},
	},
	{
		Name:         "careerbuilder",
		HostPatterns: []string{"careerbuilder.com"},
		Selectors: []string{
			".job-description",
			"#job-summary",
		},
	},
	{
		Name:         "greenhouse",
		HostPatterns: []string{"greenhouse.io"},
		Selectors: []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			".job-post-container",
		},
	},
	{
		Name:         "lever",
		HostPatterns: []string{"lever.co"},
		Selectors: []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
		},
	},
	{
		Name:         "workday",
		HostPatterns: []string{"myworkdayjobs.com", "workday.com"},
		Selectors: []string{
			"[data-automation-id='jobPostingDescription']",
			"[data-automation-id='jobDescription']",
		},
	},
}

// GenericSelectors are tried, in order, when no board selector yields enough text.
var GenericSelectors = []string{
	"[class*='job-description']",
	"[class*='job-detail']",
	"[class*='description']",
	"[id*='job-description']",
	"[id*='description']",
	"main",
	".content",
	"#content",
	"article",
}

// DetectBoard returns the known board for urlStr, or nil when none matches.
func DetectBoard(urlStr string) *Board {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil
	}
	return boardForHost(parsed.Host)
}

func boardForHost(host string) *Board {
	host = strings.ToLower(host)
	if host == "" {
		return nil
	}
	for i := range KnownBoards {
		for _, pattern := range KnownBoards[i].HostPatterns {
			if strings.Contains(host, pattern) {
				return &KnownBoards[i]
			}
		}
	}
	return nil
}
