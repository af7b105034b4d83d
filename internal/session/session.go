// Package session holds the top-level control flow of one agent run:
// login, filter application, card collection, the per-card pipeline with
// its human-in-the-loop apply gate, persistence and reporting.
//
// The design philosophy throughout is never to crash the whole run over
// one step: every per-card or per-filter failure is logged and the loop
// moves on with whatever partial data exists. Only the login navigation
// (and the initial resume embedding) are fatal.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"ncs-job-agent/internal/ai"
	"ncs-job-agent/internal/browser"
	"ncs-job-agent/internal/company"
	"ncs-job-agent/internal/config"
	"ncs-job-agent/internal/dedup"
	"ncs-job-agent/internal/extractor"
	"ncs-job-agent/internal/jobs"
	"ncs-job-agent/internal/match"
	"ncs-job-agent/internal/parser"
	"ncs-job-agent/internal/reporter"
	"ncs-job-agent/internal/summarize"
)

type Session struct {
	ID string

	cfg      *config.Config
	store    *match.Store
	drafter  ai.Client
	prompter Prompter
	shots    *browser.ScreenShotDebugger

	//optional
	cache    *dedup.Cache
	notifier *reporter.TelegramReporter

	resumeText string

	//results in processing order; keys guards within-run uniqueness
	records []jobs.Record
	keys    map[string]int
}

func New(cfg *config.Config, store *match.Store, drafter ai.Client, prompter Prompter, shots *browser.ScreenShotDebugger, resumeText string) *Session {
	return &Session{
		ID:         uuid.NewString(),
		cfg:        cfg,
		store:      store,
		drafter:    drafter,
		prompter:   prompter,
		shots:      shots,
		resumeText: resumeText,
		keys:       make(map[string]int),
	}
}

// UseCache enables skipping listings already processed in previous runs.
func (s *Session) UseCache(c *dedup.Cache) { s.cache = c }

// UseNotifier enables Telegram notifications for high matches.
func (s *Session) UseNotifier(r *reporter.TelegramReporter) { s.notifier = r }

// Records returns the results accumulated so far, in processing order.
func (s *Session) Records() []jobs.Record { return s.records }

// Run executes the whole pipeline on an already-open page. creds == nil
// means guest mode. The returned error is fatal-session only.
func (s *Session) Run(ctx context.Context, page playwright.Page, creds *Credentials, f Filters, jobCount int) error {
	log.Println("🔎 Embedding resume ...")
	if err := s.store.Embed(ctx, s.ID, s.resumeText); err != nil {
		return fmt.Errorf("could not embed resume: %w", err)
	}

	//1) login or guest entry
	if creds != nil {
		if err := s.login(page, creds); err != nil {
			return err
		}
	} else {
		log.Println("🔎 Running in guest mode (no login).")
		if _, err := page.Goto(s.cfg.SearchURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(30000),
		}); err != nil {
			log.Printf("⚠️ Issue opening search page: %v", err)
		}
	}

	//2) make sure we are on the search page
	if !strings.Contains(page.URL(), "Search.aspx") {
		log.Println("➡️ Navigating to NCS search page...")
		if _, err := page.Goto(s.cfg.SearchURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(30000),
		}); err != nil {
			log.Printf("⚠️ Issue opening search page: %v", err)
		}
	}
	page.WaitForTimeout(1000)

	//3) filters (best effort)
	s.applyFilters(page, f)

	//4) trigger lazy loading: a human-like scroll first, then bounded rounds
	log.Println("📜 Scrolling results to load job listings ...")
	browser.SmoothScroll(page)
	browser.LazyLoadScroll(page, s.cfg.ScrollRounds, time.Duration(s.cfg.ScrollPauseMs)*time.Millisecond)

	//5) collect candidate cards
	log.Println("🔗 Collecting job cards ...")
	cards := extractor.Discover(page, jobCount, s.cfg.CandidateMultiplier)
	log.Printf("🔎 Found %d candidate card elements (will process up to %d).", len(cards), jobCount)

	//6) per-card loop with error isolation
	processed := 0
	for idx, card := range cards {
		if processed >= jobCount {
			break
		}
		log.Printf("\n🧾 Processing job card #%d ...", processed+1)

		if s.processCard(ctx, page, card, idx) {
			processed++
		}

		//throttle between cards with human-ish noise
		browser.MouseJiggle(page)
		browser.RandomDelay(s.cfg.CardPauseMs, s.cfg.CardPauseMs*2)
	}

	//7) persist: a failed save must not prevent the summary
	log.Println("\n💾 Saving results to CSV ...")
	if err := jobs.SaveCSV(s.cfg.CSVPath, s.records); err != nil {
		log.Printf("⚠️ Could not save CSV: %v", err)
	} else {
		log.Printf("✅ Results saved to %s", s.cfg.CSVPath)
	}

	if s.cache != nil {
		urls := make([]string, 0, len(s.records))
		for _, r := range s.records {
			urls = append(urls, r.URL)
		}
		s.cache.Add(urls)
	}

	//8) report
	s.printSummary()
	if s.notifier != nil {
		high := 0
		for _, r := range s.records {
			if r.Similarity >= s.cfg.SimilarityThreshold {
				high++
			}
		}
		if err := s.notifier.SendSummary(len(s.records), high); err != nil {
			log.Printf("⚠️ Failed to send summary to Telegram: %v", err)
		}
	}

	//9) leave the browser open for manual review
	log.Println("🔔 Browser will remain open so you can review any auto-opened job pages.")
	s.prompter.AskText("Press Enter after you finish reviewing to close the browser and terminate ...")

	return nil
}

// processCard runs one card through extract → parse → score → decide and
// appends a record. It reports whether the card counted toward the
// requested total (cache-skipped cards do not). Any failure inside
// degrades rather than aborts: a record is appended with whatever partial
// data exists.
func (s *Session) processCard(ctx context.Context, page playwright.Page, card playwright.Locator, idx int) bool {
	rawText, detail := extractor.ExtractDetail(page, card, s.cfg.BaseOrigin)

	jobURL := ""
	if detail != nil {
		jobURL = detail.URL()
		//in-place fallbacks leave us on the listing page: no per-job URL
		if strings.Contains(jobURL, "Search.aspx") {
			jobURL = ""
		}
	}

	if s.cache != nil && s.cache.IsSeen(jobURL) {
		log.Printf("⏭️ Already processed in a previous run, skipping: %s", jobURL)
		s.closeDetail(page, detail, false)
		return false
	}

	rec := parser.Parse(rawText, jobURL)

	simText := strings.Join([]string{rec.Title, rec.Company, rec.Description}, "\n")
	sim, err := s.store.Similarity(ctx, s.ID, simText)
	if err != nil {
		//scoring failure degrades to 0.0; the raw snippet keeps the
		//record auditable
		log.Printf("⚠️ Error scoring card #%d: %v", idx+1, err)
		sim = 0.0
	}
	rec.Similarity = sim
	log.Printf("   ➤ Similarity with resume: %.3f", sim)

	highMatch := sim >= s.cfg.SimilarityThreshold
	if highMatch && detail != nil {
		log.Println("✨ High match detected — auto-opening job details in browser for manual review.")
		detail.BringToFront()
		detail.WaitForTimeout(800)
	}

	s.evaluate(ctx, &rec)
	s.addRecord(rec, idx)

	keepOpen := highMatch && rec.Decision == jobs.DecisionApply
	s.closeDetail(page, detail, keepOpen)
	return true
}

// evaluate applies the threshold policy to a scored record: draft and
// preview a cover letter plus the blocking apply prompt for high matches,
// the fixed sentinel for everything else.
func (s *Session) evaluate(ctx context.Context, rec *jobs.Record) {
	if rec.Similarity < s.cfg.SimilarityThreshold {
		rec.CoverLetter = jobs.NotAGoodMatch
		rec.Decision = jobs.DecisionSkip
		log.Println("ℹ️ Not a good match — skipping cover letter generation.")
		return
	}

	resumeSummary := summarize.Text(s.resumeText, s.cfg.SummarySentences)
	jobSummary := summarize.Text(rec.Description, s.cfg.SummarySentences)

	//extra company context for the drafter when the listing has a URL
	if rec.URL != "" {
		if info, ok := company.FetchSummary(ctx, rec.URL); ok {
			jobSummary += "\n\nCompany context: " + info
		}
	}

	letter, err := s.drafter.DraftCoverLetter(ctx, resumeSummary, jobSummary)
	if err != nil {
		log.Printf("⚠️ Error generating cover letter: %v", err)
	} else {
		rec.CoverLetter = letter
		fmt.Println("\n--- Cover Letter Preview ---")
		fmt.Println(clipRunes(letter, previewLimit))
		fmt.Println("--- end preview ---")
	}

	if s.notifier != nil {
		if err := s.notifier.SendHighMatch(*rec); err != nil {
			log.Printf("⚠️ Failed to send Telegram notification: %v", err)
		}
	}

	if s.prompter.AskYesNo("👉 Do you want to apply to this job now? (y/n): ") {
		rec.Decision = jobs.DecisionApply
		rec.Applied = false // applying stays a manual follow-up
		log.Println("✅ Marked to apply (manual follow-up).")
	} else {
		rec.Decision = jobs.DecisionSkip
		log.Println("⛔ Skipping application for this job.")
	}
}

const previewLimit = 1200

// clipRunes truncates on rune boundaries so multibyte text never gets a
// split sequence.
func clipRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// addRecord stores a record under its run-unique key. A duplicate URL
// within one run replaces the earlier record, mirroring map semantics.
func (s *Session) addRecord(rec jobs.Record, idx int) {
	key := jobs.Key(rec.URL, idx)
	if pos, exists := s.keys[key]; exists {
		s.records[pos] = rec
		return
	}
	s.keys[key] = len(s.records)
	s.records = append(s.records, rec)
}

func (s *Session) closeDetail(page, detail playwright.Page, keepOpen bool) {
	if detail == nil || detail == page || keepOpen {
		return
	}
	if err := detail.Close(); err != nil {
		log.Printf("⚠️ Could not close detail page: %v", err)
	}
}

func (s *Session) printSummary() {
	fmt.Println("\n" + strings.Repeat("#", 60))
	fmt.Println("SUMMARY")
	fmt.Printf("Total jobs processed: %d\n", len(s.records))
	for i, r := range s.records {
		title := r.Title
		if title == "" {
			title = "No Title"
		}
		comp := r.Company
		if comp == "" {
			comp = "Unknown"
		}
		shortDesc := strings.ReplaceAll(r.Description, "\n", " ")
		if len(shortDesc) > 200 {
			shortDesc = shortDesc[:200]
		}
		fmt.Printf("\n[%d] %s @ %s\n", i+1, title, comp)
		fmt.Printf(" URL: %s\n", jobs.Key(r.URL, i))
		fmt.Printf(" Similarity: %.3f\n", r.Similarity)
		fmt.Printf(" Apply decision: %s\n", r.Decision)
		fmt.Printf(" Last date: %s\n", r.LastDate)
		fmt.Printf(" Short desc: %s\n", shortDesc)
	}
	fmt.Println(strings.Repeat("#", 60) + "\n")
}
