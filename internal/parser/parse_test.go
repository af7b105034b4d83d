package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabeledFields(t *testing.T) {
	raw := "Job Title: Backend Engineer\nCompany Name: Acme Corp\nJob Description:\nBuild things.\n"
	rec := Parse(raw, "https://example.org/job/1")

	assert.Equal(t, "https://example.org/job/1", rec.URL)
	assert.Equal(t, "Backend Engineer", rec.Title)
	assert.Equal(t, "Acme Corp", rec.Company)
	assert.Equal(t, "Build things.", rec.Description)
	assert.NotEmpty(t, rec.RawTextSnippet)
}

func TestParseFullListing(t *testing.T) {
	raw := strings.Join([]string{
		"Job Id: NCS-2024-00123",
		"Job Title - Data Entry Operator",
		"Company Name: Bharat Services",
		"Posted On: 12 Jan 2024",
		"Last date to apply: 30 Jan 2024",
		"Salary: 15000-20000",
		"Job Location: Karnataka",
		"Key Skills: typing, ms office",
		"Contact Details: hr@bharat.example",
		"Job Description:",
		"Enter data accurately.",
		"Work with the operations team.",
		"",
		"Disclaimer: listing provided as-is.",
	}, "\n")

	rec := Parse(raw, "")
	assert.Equal(t, "NCS-2024-00123", rec.JobID)
	assert.Equal(t, "Data Entry Operator", rec.Title)
	assert.Equal(t, "Bharat Services", rec.Company)
	assert.Equal(t, "12 Jan 2024", rec.PostedOn)
	assert.Equal(t, "30 Jan 2024", rec.LastDate)
	assert.Equal(t, "15000-20000", rec.Salary)
	assert.Equal(t, "Karnataka", rec.Location)
	assert.Equal(t, "typing, ms office", rec.Skills)
	assert.Equal(t, "hr@bharat.example", rec.Contact)
	assert.Contains(t, rec.Description, "Enter data accurately.")
	assert.NotContains(t, rec.Description, "Disclaimer:")
}

func TestParseMissingFieldsAreEmpty(t *testing.T) {
	rec := Parse("nothing recognizable here", "")
	assert.Empty(t, rec.Title)
	assert.Empty(t, rec.Company)
	assert.Empty(t, rec.JobID)
	//description falls back to the normalized text itself
	assert.Equal(t, "nothing recognizable here", rec.Description)
	assert.Equal(t, "nothing recognizable here", rec.RawTextSnippet)
}

func TestParseExtractionFailureText(t *testing.T) {
	//the extractor degrades to a synthetic description instead of erroring
	rec := Parse("Error extracting job detail: click: timeout 5000ms exceeded", "")
	assert.True(t, strings.HasPrefix(rec.Description, "Error extracting job detail:"))
	assert.Empty(t, rec.Title)
}

func TestParseNormalizesWhitespace(t *testing.T) {
	raw := "Job Title: X\r\n\r\n\r\n\r\nCompany Name: Y\r\n"
	rec := Parse(raw, "")
	assert.Equal(t, "X", rec.Title)
	assert.Equal(t, "Y", rec.Company)
	assert.NotContains(t, rec.RawTextSnippet, "\r")
	assert.NotContains(t, rec.RawTextSnippet, "\n\n\n")
}

func TestParseSnippetBounded(t *testing.T) {
	rec := Parse(strings.Repeat("a", 10000), "")
	assert.LessOrEqual(t, len([]rune(rec.RawTextSnippet)), 400)
	assert.LessOrEqual(t, len([]rune(rec.Description)), 8000)
}

func TestParseNeverPanicsOnHostileInput(t *testing.T) {
	inputs := []string{
		"",
		"\r\r\r\n\n\n",
		"Job Title:",
		"Job Title: \n",
		strings.Repeat("Job Description:\n", 100),
		"\x00\x01 binary junk \xff",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Parse(in, "") })
	}
}
