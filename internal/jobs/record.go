package jobs

import "fmt"

// NotAGoodMatch is written into the cover-letter column whenever a job
// scores below the similarity threshold.
const NotAGoodMatch = "Not a good match"

// Decision is the tri-state outcome of the apply prompt: unset until the
// job has been evaluated, then true/false.
type Decision int

const (
	DecisionUndecided Decision = iota
	DecisionApply
	DecisionSkip
)

func (d Decision) String() string {
	switch d {
	case DecisionApply:
		return "true"
	case DecisionSkip:
		return "false"
	default:
		return ""
	}
}

// Record is the structured result for one processed listing. Every string
// field except RawTextSnippet may be empty when its extraction heuristic
// did not match.
type Record struct {
	URL            string
	JobID          string
	Title          string
	Company        string
	PostedOn       string
	LastDate       string
	Salary         string
	Location       string
	Skills         string
	Contact        string
	Description    string
	RawTextSnippet string

	Similarity  float64
	Decision    Decision
	Applied     bool // never set by the agent; applying stays a manual follow-up
	CoverLetter string
}

// Key returns the identifier a record is stored under for a run: the
// resolved URL, or a synthetic per-index key when no URL could be resolved.
// Index uniqueness guarantees key uniqueness even when several cards yield
// empty URLs.
func Key(url string, idx int) string {
	if url != "" {
		return url
	}
	return fmt.Sprintf("card_%d", idx)
}
