package session

import (
	"log"
	"strings"
	"unicode"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filters is the search criteria collected from the user. Empty values
// mean "any".
type Filters struct {
	Sector        string
	Location      string
	OrgType       string
	Qualification string
	JobNature     string
}

// foldText strips diacritics and lowercases, so user input matches option
// text regardless of accents.
func foldText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// selectOptionJS picks the first <select> option whose visible text
// contains the wanted value (case-insensitive substring).
const selectOptionJS = `(text) => {
	const selects = Array.from(document.querySelectorAll('select'));
	for (const s of selects) {
		for (const o of Array.from(s.options)) {
			if (o.text.toLowerCase().includes(text.toLowerCase())) {
				s.value = o.value;
				s.dispatchEvent(new Event('change'));
				return true;
			}
		}
	}
	return false;
}`

func trySetSelectByText(page playwright.Page, value string) bool {
	res, err := page.Evaluate(selectOptionJS, foldText(value))
	if err != nil {
		return false
	}
	ok, _ := res.(bool)
	return ok
}

// typeLocationFallback types the location into any input whose name or
// placeholder suggests a location field.
func typeLocationFallback(page playwright.Page, location string) bool {
	inputs := page.Locator("input")
	cnt, err := inputs.Count()
	if err != nil {
		return false
	}
	for i := 0; i < cnt; i++ {
		inp := inputs.Nth(i)
		name, _ := inp.GetAttribute("name")
		placeholder, _ := inp.GetAttribute("placeholder")
		nm := foldText(name)
		ph := foldText(placeholder)
		if strings.Contains(nm, "location") || strings.Contains(ph, "location") || strings.Contains(ph, "select location") {
			if err := inp.Fill(location); err != nil {
				return false
			}
			return true
		}
	}
	return false
}

// applyFilters is best-effort throughout: a filter that cannot be applied
// is logged and skipped, never fatal.
func (s *Session) applyFilters(page playwright.Page, f Filters) {
	log.Printf("🔎 Applying filters: Sector=%s | Location=%s | OrgType=%s | Qualification=%s | JobNature=%s",
		f.Sector, f.Location, f.OrgType, f.Qualification, f.JobNature)

	if f.Sector != "" {
		if trySetSelectByText(page, f.Sector) {
			log.Println("✔️ Sector applied (heuristic).")
		} else {
			log.Println("⚠️ Could not automatically apply Sector; you may need to use an advanced search URL.")
		}
	}

	if f.Location != "" {
		if trySetSelectByText(page, f.Location) {
			log.Println("✔️ Location applied (heuristic).")
		} else if typeLocationFallback(page, f.Location) {
			log.Println("✔️ Typed Location into an input field (heuristic).")
		} else {
			log.Println("⚠️ Could not apply Location automatically.")
		}
	}

	for _, opt := range []struct {
		label string
		value string
	}{
		{"Organization type", f.OrgType},
		{"Qualification", f.Qualification},
		{"Job nature", f.JobNature},
	} {
		if opt.value == "" {
			continue
		}
		if trySetSelectByText(page, opt.value) {
			log.Printf("✔️ %s applied (heuristic).", opt.label)
		} else {
			log.Printf("⚠️ Could not apply %s automatically.", opt.label)
		}
	}

	//submit the filter form if a search-looking control exists
	btn := page.Locator("button:has-text('Search'), input[type='submit'][value*='Search'], button:has-text('Apply')")
	if cnt, err := btn.Count(); err == nil && cnt > 0 {
		if err := btn.First().Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)}); err == nil {
			log.Println("🔁 Clicked Search / Apply Filters button.")
			page.WaitForTimeout(1500)
		}
	}
}
