// Package dashboard serves a read-only HTML view over the CSV results
// file: overview stats, a filterable table, top matches and per-company
// counts. It never writes the CSV.
package dashboard

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"ncs-job-agent/internal/jobs"
)

// Row is one CSV record with the similarity already parsed. Unparseable
// similarity values read as 0.0 so a hand-edited file still loads.
type Row struct {
	URL           string
	Title         string
	Company       string
	Similarity    float64
	ApplyDecision string
	Applied       string
	LastDate      string
	Location      string
	Salary        string
	Skills        string
	CoverLetter   string
	Description   string
}

// Stats summarizes decision counts across the whole file.
type Stats struct {
	Total   int
	ToApply int
	Skipped int
	Pending int
}

// Load reads the results CSV. Files written by older runs may lack
// columns; missing ones are injected as empty strings so every Row is
// fully populated.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open results file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rawRows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse results file: %w", err)
	}
	if len(rawRows) == 0 {
		return nil, nil
	}

	//map header names to positions so column order never matters
	pos := make(map[string]int, len(rawRows[0]))
	for i, name := range rawRows[0] {
		pos[strings.TrimSpace(strings.ToLower(name))] = i
	}

	field := func(row []string, col string) string {
		i, ok := pos[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := make([]Row, 0, len(rawRows)-1)
	for _, raw := range rawRows[1:] {
		sim, _ := strconv.ParseFloat(field(raw, "similarity"), 64)
		out = append(out, Row{
			URL:           field(raw, "url"),
			Title:         field(raw, "title"),
			Company:       field(raw, "company"),
			Similarity:    sim,
			ApplyDecision: field(raw, "apply_decision"),
			Applied:       field(raw, "applied"),
			LastDate:      field(raw, "last_date"),
			Location:      field(raw, "location"),
			Salary:        field(raw, "salary"),
			Skills:        field(raw, "skills"),
			CoverLetter:   field(raw, "cover_letter"),
			Description:   field(raw, "description_snippet"),
		})
	}
	return out, nil
}

// Summarize tallies the tri-state apply decision.
func Summarize(rows []Row) Stats {
	st := Stats{Total: len(rows)}
	for _, r := range rows {
		switch strings.ToLower(strings.TrimSpace(r.ApplyDecision)) {
		case "true":
			st.ToApply++
		case "false":
			st.Skipped++
		default:
			st.Pending++
		}
	}
	return st
}

// Filter returns the rows at or above minSim whose decision matches
// decision ("true", "false", or "" for all).
func Filter(rows []Row, minSim float64, decision string) []Row {
	decision = strings.ToLower(strings.TrimSpace(decision))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Similarity < minSim {
			continue
		}
		if decision != "" && strings.ToLower(strings.TrimSpace(r.ApplyDecision)) != decision {
			continue
		}
		out = append(out, r)
	}
	return out
}

// TopMatches returns up to n rows sorted by similarity descending.
func TopMatches(rows []Row, n int) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Similarity > sorted[j].Similarity
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// CompanySimilarity is one bar of the similarity-by-company chart.
type CompanySimilarity struct {
	Company    string
	Similarity float64
}

// Percent scales the similarity to a 0-100 bar width for the template.
func (c CompanySimilarity) Percent() int {
	p := int(c.Similarity * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ByCompany charts the best similarity seen per company, "Unknown" for
// blanks, highest first with ties broken alphabetically.
func ByCompany(rows []Row) []CompanySimilarity {
	best := make(map[string]float64)
	for _, r := range rows {
		name := strings.TrimSpace(r.Company)
		if name == "" {
			name = "Unknown"
		}
		if sim, ok := best[name]; !ok || r.Similarity > sim {
			best[name] = r.Similarity
		}
	}
	out := make([]CompanySimilarity, 0, len(best))
	for name, sim := range best {
		out = append(out, CompanySimilarity{Company: name, Similarity: sim})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Company < out[j].Company
	})
	return out
}

// FindByTitle returns the first row with the given title, for the detail
// view. Cover letter sentinels stay visible so the reader knows why no
// letter exists.
func FindByTitle(rows []Row, title string) (Row, bool) {
	for _, r := range rows {
		if r.Title == title {
			return r, true
		}
	}
	return Row{}, false
}

// HasRealLetter reports whether a row carries a generated cover letter
// rather than the low-match sentinel or nothing.
func HasRealLetter(r Row) bool {
	return r.CoverLetter != "" && r.CoverLetter != jobs.NotAGoodMatch
}
