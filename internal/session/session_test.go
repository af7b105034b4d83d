package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncs-job-agent/internal/config"
	"ncs-job-agent/internal/jobs"
	"ncs-job-agent/internal/match"
)

// scriptedPrompter answers prompts from a canned script so the blocking
// apply gate can be exercised without a terminal.
type scriptedPrompter struct {
	yesNoAnswers []bool
	yesNoCalls   int
	textCalls    int
}

func (p *scriptedPrompter) AskText(prompt string) string {
	p.textCalls++
	return ""
}

func (p *scriptedPrompter) AskSecret(prompt string) string { return "" }

func (p *scriptedPrompter) AskYesNo(prompt string) bool {
	if p.yesNoCalls >= len(p.yesNoAnswers) {
		p.yesNoCalls++
		return false
	}
	ans := p.yesNoAnswers[p.yesNoCalls]
	p.yesNoCalls++
	return ans
}

type stubDrafter struct {
	letter string
	err    error
	calls  int
}

func (d *stubDrafter) DraftCoverLetter(ctx context.Context, resumeSummary, jobSummary string) (string, error) {
	d.calls++
	if d.err != nil {
		return "", d.err
	}
	return d.letter, nil
}

type fakeEncoder struct{}

func (fakeEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func newTestSession(t *testing.T, prompter Prompter, drafter *stubDrafter) *Session {
	t.Helper()
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	store := match.NewStore(fakeEncoder{})
	return New(cfg, store, drafter, prompter, nil, "experienced go developer with backend skills")
}

func TestEvaluateHighMatchApply(t *testing.T) {
	prompter := &scriptedPrompter{yesNoAnswers: []bool{true}}
	drafter := &stubDrafter{letter: "Dear Hiring Manager, I would be delighted to join."}
	s := newTestSession(t, prompter, drafter)

	rec := jobs.Record{
		Title:       "Backend Engineer",
		Company:     "Acme Corp",
		Description: "Build backend services in Go. Work with databases. Ship features.",
		Similarity:  0.82,
	}
	s.evaluate(context.Background(), &rec)

	assert.Equal(t, 1, drafter.calls)
	assert.Equal(t, drafter.letter, rec.CoverLetter)
	assert.Equal(t, jobs.DecisionApply, rec.Decision)
	assert.False(t, rec.Applied, "applying is always a manual follow-up")
	assert.Equal(t, 1, prompter.yesNoCalls)
}

func TestEvaluateHighMatchDecline(t *testing.T) {
	prompter := &scriptedPrompter{yesNoAnswers: []bool{false}}
	drafter := &stubDrafter{letter: "A letter."}
	s := newTestSession(t, prompter, drafter)

	rec := jobs.Record{Title: "Ops Lead", Similarity: 0.9}
	s.evaluate(context.Background(), &rec)

	assert.Equal(t, jobs.DecisionSkip, rec.Decision)
	assert.Equal(t, "A letter.", rec.CoverLetter)
}

func TestEvaluateLowMatchSentinel(t *testing.T) {
	prompter := &scriptedPrompter{}
	drafter := &stubDrafter{letter: "should never be generated"}
	s := newTestSession(t, prompter, drafter)

	rec := jobs.Record{Title: "Sales Rep", Similarity: 0.12}
	s.evaluate(context.Background(), &rec)

	assert.Equal(t, jobs.NotAGoodMatch, rec.CoverLetter)
	assert.Equal(t, jobs.DecisionSkip, rec.Decision)
	assert.Equal(t, 0, drafter.calls, "low matches must not hit the drafter")
	assert.Equal(t, 0, prompter.yesNoCalls, "low matches must not prompt")
}

func TestEvaluateThresholdBoundaryIsHigh(t *testing.T) {
	prompter := &scriptedPrompter{yesNoAnswers: []bool{true}}
	drafter := &stubDrafter{letter: "Boundary letter."}
	s := newTestSession(t, prompter, drafter)

	rec := jobs.Record{Title: "Analyst", Similarity: s.cfg.SimilarityThreshold}
	s.evaluate(context.Background(), &rec)

	assert.Equal(t, 1, drafter.calls)
	assert.Equal(t, jobs.DecisionApply, rec.Decision)
}

func TestEvaluateDrafterFailureKeepsRecord(t *testing.T) {
	prompter := &scriptedPrompter{yesNoAnswers: []bool{true}}
	drafter := &stubDrafter{err: errors.New("api unavailable")}
	s := newTestSession(t, prompter, drafter)

	rec := jobs.Record{Title: "Platform Engineer", Similarity: 0.7}
	s.evaluate(context.Background(), &rec)

	assert.Empty(t, rec.CoverLetter, "failed draft leaves the letter empty")
	assert.Equal(t, jobs.DecisionApply, rec.Decision, "the apply gate still runs after a failed draft")
}

func TestAddRecordKeyUniqueness(t *testing.T) {
	s := newTestSession(t, &scriptedPrompter{}, &stubDrafter{})

	s.addRecord(jobs.Record{Title: "first no-url"}, 0)
	s.addRecord(jobs.Record{Title: "second no-url"}, 1)
	s.addRecord(jobs.Record{URL: "https://ex.test/j/1", Title: "with url"}, 2)

	require.Len(t, s.Records(), 3)
	assert.Equal(t, "first no-url", s.Records()[0].Title)
	assert.Equal(t, "second no-url", s.Records()[1].Title)
}

func TestAddRecordDuplicateURLOverwrites(t *testing.T) {
	s := newTestSession(t, &scriptedPrompter{}, &stubDrafter{})

	s.addRecord(jobs.Record{URL: "https://ex.test/j/1", Title: "old"}, 0)
	s.addRecord(jobs.Record{URL: "https://ex.test/j/1", Title: "new"}, 1)

	require.Len(t, s.Records(), 1)
	assert.Equal(t, "new", s.Records()[0].Title)
}

func TestClipRunesKeepsMultibyteIntact(t *testing.T) {
	long := strings.Repeat("é", previewLimit+50)
	clipped := clipRunes(long, previewLimit)

	assert.True(t, utf8.ValidString(clipped))
	assert.Equal(t, previewLimit, utf8.RuneCountInString(clipped))

	short := "résumé"
	assert.Equal(t, short, clipRunes(short, previewLimit))
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := newTestSession(t, &scriptedPrompter{}, &stubDrafter{})
	b := newTestSession(t, &scriptedPrompter{}, &stubDrafter{})
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, strings.TrimSpace(a.ID) == "")
}
