// Package parser turns the unstructured inner text of a job-detail page
// into a structured record. Extraction is heuristic: every field is a
// labeled-line regex, a miss yields an empty string, and parsing never
// fails - a raw-text snippet is always kept so degraded records stay
// auditable.
package parser

import (
	"regexp"
	"strings"

	"ncs-job-agent/internal/jobs"
)

const (
	descriptionFallbackLimit = 8000
	rawSnippetLimit          = 400
)

var (
	lineEndings = regexp.MustCompile(`\r\n|\r`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)

	jobIDRe    = regexp.MustCompile(`(?i)Job Id\s*[:\-]?\s*([A-Za-z0-9\-\_]+)`)
	titleRe    = regexp.MustCompile(`(?i)Job Title\s*[:\-]?\s*(.+?)\n`)
	companyRe  = regexp.MustCompile(`(?i)Company\s*Name\s*[:\-]?\s*(.+?)\n`)
	postedRe   = regexp.MustCompile(`(?i)Posted On\s*[:\-]?\s*(.+?)\n`)
	lastDateRe = regexp.MustCompile(`(?i)Last date to apply\s*[:\-]?\s*(.+?)\n`)
	salaryRe   = regexp.MustCompile(`(?i)Salary\s*[:\-]?\s*(.+?)\n`)
	locationRe = regexp.MustCompile(`(?i)Job Location\s*[:\-]?\s*(.+?)\n`)
	skillsRe   = regexp.MustCompile(`(?i)Key Skills\s*[:\-]?\s*(.+?)\n`)
	contactRe  = regexp.MustCompile(`(?i)Contact Details\s*[:\-]?\s*(.+?)\n`)

	//description runs from a "Job Description" heading to the next
	//"Label:" style line or end of text
	descriptionRe = regexp.MustCompile(`(?is)Job Description[:\-\s]*\n(.+?)(?:\n[A-Z][a-z]+:|\z)`)
)

// Parse extracts what it can from rawText. Fields whose pattern did not
// match are empty; RawTextSnippet is always populated.
func Parse(rawText, sourceURL string) jobs.Record {
	text := lineEndings.ReplaceAllString(rawText, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	rec := jobs.Record{
		URL:            sourceURL,
		JobID:          extract(jobIDRe, text),
		Title:          extract(titleRe, text),
		Company:        extract(companyRe, text),
		PostedOn:       extract(postedRe, text),
		LastDate:       extract(lastDateRe, text),
		Salary:         extract(salaryRe, text),
		Location:       extract(locationRe, text),
		Skills:         extract(skillsRe, text),
		Contact:        extract(contactRe, text),
		RawTextSnippet: clip(text, rawSnippetLimit),
	}

	if m := descriptionRe.FindStringSubmatch(text); m != nil {
		rec.Description = trim(m[1])
	} else {
		rec.Description = clip(text, descriptionFallbackLimit)
	}

	return rec
}

func extract(re *regexp.Regexp, text string) string {
	// The labeled-line patterns require a trailing newline, so search over
	// text with one appended; values at end-of-text still match.
	m := re.FindStringSubmatch(text + "\n")
	if m == nil {
		return ""
	}
	return trim(m[1])
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
