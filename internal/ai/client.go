package ai

import (
	"context"
	"fmt"
)

// Client is the interface for AI providers
type Client interface {
	// DraftCoverLetter takes summaries of the resume and of the job
	// description and returns a generated cover letter.
	DraftCoverLetter(ctx context.Context, resumeSummary, jobSummary string) (string, error)
}

// buildCoverLetterPrompt embeds both summaries verbatim into the fixed
// drafting template.
func buildCoverLetterPrompt(resumeSummary, jobSummary string) string {
	return fmt.Sprintf(`You are a professional assistant that writes concise, targeted cover letters (~180-220 words).
Resume summary:
%s

Job summary:
%s

Write a professional cover letter emphasizing fit and relevant skills.`, resumeSummary, jobSummary)
}
