// Package company fetches a short summary of a company website for
// cover-letter context. Best effort only: every failure degrades to a
// descriptive string instead of an error.
package company

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const noInfo = "No detailed company info available."

var httpClient = &http.Client{Timeout: 10 * time.Second}

// FetchSummary returns the site's meta description, failing that the first
// "about"-looking paragraph. The bool reports whether real information was
// found; on any failure the string describes what went wrong instead.
func FetchSummary(ctx context.Context, companyURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, "GET", companyURL, nil)
	if err != nil {
		return fmt.Sprintf("Error fetching company summary: %v", err), false
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error fetching company summary: %v", err), false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error fetching company summary: status %d", resp.StatusCode), false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Sprintf("Error fetching company summary: %v", err), false
	}

	if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(meta) != "" {
		return strings.TrimSpace(meta), true
	}

	if about := findAboutText(doc); about != "" {
		return about, true
	}

	return noInfo, false
}

func findAboutText(doc *goquery.Document) string {
	var found string
	doc.Find("p, section, div").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" || len(text) > 600 {
			return true
		}
		if strings.Contains(strings.ToLower(text), "about") {
			found = text
			return false
		}
		return true
	})
	return found
}
