// Package extractor drives the browser to find candidate job cards and
// pull the detail text behind each one. Both halves are ordered fallback
// chains: selector heuristics for discovery, increasingly conservative
// strategies for extraction, so the pipeline always gets some text back.
package extractor

import (
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// cardSelectors is tried in order; the first selectors that yield matches
// contribute candidates until enough are gathered.
var cardSelectors = []string{
	"a:has-text('Read more')",
	"a:has-text('Read More')",
	"a:has-text('Read more...')",
	"a:has-text('Apply')",
	"div.job-card",
	".job-card a",
	".list-group-item a",
	".card a",
}

// Discover collects candidate card elements, capped at wanted*multiplier
// per selector, stopping once wanted candidates exist. When nothing
// matches it falls back to scanning every anchor on the page.
func Discover(page playwright.Page, wanted, multiplier int) []playwright.Locator {
	var cards []playwright.Locator

	for _, sel := range cardSelectors {
		loc := page.Locator(sel)
		cnt, err := loc.Count()
		if err != nil {
			continue
		}
		limit := CandidateLimit(cnt, wanted, multiplier)
		for i := 0; i < limit; i++ {
			cards = append(cards, loc.Nth(i))
		}
		if len(cards) >= wanted {
			break
		}
	}

	if len(cards) > 0 {
		return cards
	}

	//last resort: keep anchors that look job-related
	anchors, err := page.Locator("a").All()
	if err != nil {
		log.Printf("⚠️ Anchor fallback failed: %v", err)
		return nil
	}
	for _, a := range anchors {
		txt, _ := a.InnerText()
		href, _ := a.GetAttribute("href")
		if LooksLikeJobAnchor(txt, href) {
			cards = append(cards, a)
			if len(cards) >= wanted {
				break
			}
		}
	}
	return cards
}

// CandidateLimit bounds how many matches of one selector are taken.
func CandidateLimit(matches, wanted, multiplier int) int {
	limit := wanted * multiplier
	if matches < limit {
		return matches
	}
	return limit
}

// LooksLikeJobAnchor reports whether an anchor's visible text or href
// suggests a job listing.
func LooksLikeJobAnchor(text, href string) bool {
	txt := strings.ToLower(text)
	return strings.Contains(txt, "read") ||
		strings.Contains(txt, "apply") ||
		strings.Contains(txt, "job") ||
		strings.Contains(strings.ToLower(href), "job")
}
