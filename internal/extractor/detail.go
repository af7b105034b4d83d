package extractor

import (
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ExtractDetail obtains the detail text behind one job card. It walks an
// ordered chain of strategies, each cheaper and safer than the previous:
//
//  1. ctrl-click the card; adopt and read a new tab if one opened
//  2. otherwise treat it as an in-place navigation and read the page
//  3. follow the card's href in a fresh page
//  4. read the card element's own visible text, no navigation
//  5. return a synthetic error description
//
// It never returns an error: downstream parsing always gets some text.
// The returned page is where the detail now lives (used for its URL and
// for keeping high matches open for review).
func ExtractDetail(page playwright.Page, card playwright.Locator, baseOrigin string) (string, playwright.Page) {
	text, detail, err := clickAndRead(page, card)
	if err == nil {
		return text, detail
	}
	log.Printf("⚠️ Click extraction failed: %v. Trying href fallback...", err)

	if text, detail, hrefErr := followHref(page, card, baseOrigin); hrefErr == nil {
		return text, detail
	} else {
		log.Printf("⚠️ Href fallback failed: %v. Reading card text in place...", hrefErr)
	}

	if inner, innerErr := card.InnerText(); innerErr == nil {
		return inner, page
	}

	return fmt.Sprintf("Error extracting job detail: %v", err), page
}

func clickAndRead(page playwright.Page, card playwright.Locator) (string, playwright.Page, error) {
	if err := card.ScrollIntoViewIfNeeded(); err != nil {
		return "", nil, fmt.Errorf("scroll into view: %w", err)
	}

	//ctrl-click so listings that support it open in a new tab
	if err := card.Click(playwright.LocatorClickOptions{
		Modifiers: []playwright.KeyboardModifier{*playwright.KeyboardModifierControl},
		Timeout:   playwright.Float(5000),
	}); err != nil {
		return "", nil, fmt.Errorf("click: %w", err)
	}

	pages := page.Context().Pages()
	if len(pages) > 1 {
		detail := pages[len(pages)-1]
		if err := detail.BringToFront(); err != nil {
			return "", nil, fmt.Errorf("bring to front: %w", err)
		}
		if err := detail.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   playwright.LoadStateDomcontentloaded,
			Timeout: playwright.Float(10000),
		}); err != nil {
			return "", nil, fmt.Errorf("new tab load: %w", err)
		}
		text, err := detail.Locator("body").InnerText()
		if err != nil {
			return "", nil, fmt.Errorf("new tab read: %w", err)
		}
		return text, detail, nil
	}

	//no new tab: the click navigated (or did nothing) in place
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: playwright.Float(8000),
	}); err != nil {
		return "", nil, fmt.Errorf("in-place load: %w", err)
	}
	text, err := page.Locator("body").InnerText()
	if err != nil {
		return "", nil, fmt.Errorf("in-place read: %w", err)
	}
	return text, page, nil
}

func followHref(page playwright.Page, card playwright.Locator, baseOrigin string) (string, playwright.Page, error) {
	href, err := card.GetAttribute("href")
	if err != nil {
		return "", nil, fmt.Errorf("read href: %w", err)
	}
	if href == "" {
		return "", nil, fmt.Errorf("card has no href")
	}

	detail, err := page.Context().NewPage()
	if err != nil {
		return "", nil, fmt.Errorf("open page: %w", err)
	}

	if _, err := detail.Goto(ResolveHref(baseOrigin, href), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(8000),
	}); err != nil {
		detail.Close()
		return "", nil, fmt.Errorf("goto href: %w", err)
	}

	text, err := detail.Locator("body").InnerText()
	if err != nil {
		detail.Close()
		return "", nil, fmt.Errorf("href read: %w", err)
	}
	return text, detail, nil
}

// ResolveHref resolves a site-relative href against the base origin.
// Absolute URLs pass through untouched.
func ResolveHref(baseOrigin, href string) string {
	if strings.HasPrefix(href, "/") {
		return strings.TrimSuffix(baseOrigin, "/") + href
	}
	return href
}
