// Package resume reads the candidate's resume from disk.
package resume

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ReadPDF extracts the plain text of a PDF resume.
func ReadPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open pdf %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("could not extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("could not read pdf text: %w", err)
	}

	if buf.Len() == 0 {
		return "", fmt.Errorf("pdf %s produced no text (scanned image?)", path)
	}
	return buf.String(), nil
}
