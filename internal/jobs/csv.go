package jobs

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Columns is the fixed CSV schema, in order. The dashboard and any other
// consumer key off these exact names.
var Columns = []string{
	"url", "title", "company", "similarity", "apply_decision", "applied",
	"last_date", "location", "salary", "skills", "cover_letter",
	"description_snippet",
}

const snippetLimit = 400

// SaveCSV writes all records to path, truncating any prior file. Prose
// columns are clipped to 400 characters with newlines flattened so the
// file stays one record per line.
func SaveCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	for i, r := range records {
		row := []string{
			Key(r.URL, i),
			r.Title,
			r.Company,
			strconv.FormatFloat(r.Similarity, 'f', 4, 64),
			r.Decision.String(),
			strconv.FormatBool(r.Applied),
			r.LastDate,
			r.Location,
			r.Salary,
			r.Skills,
			flatten(r.CoverLetter),
			flatten(r.Description),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("could not write row %d: %w", i, err)
		}
	}

	w.Flush()
	return w.Error()
}

func flatten(s string) string {
	runes := []rune(s)
	if len(runes) > snippetLimit {
		s = string(runes[:snippetLimit])
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
