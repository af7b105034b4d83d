package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"ncs-job-agent/internal/ai"
	"ncs-job-agent/internal/browser"
	"ncs-job-agent/internal/config"
	"ncs-job-agent/internal/dedup"
	"ncs-job-agent/internal/match"
	"ncs-job-agent/internal/reporter"
	"ncs-job-agent/internal/resume"
	"ncs-job-agent/internal/session"
)

func main() {
	//load config (fails fast on a missing API key)
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Target: %s", cfg.BaseOrigin)

	prompter := session.NewConsolePrompter()

	//interactive run parameters
	var creds *session.Credentials
	if prompter.AskYesNo("Do you want to log in to NCS? (y/n): ") {
		username := prompter.AskText("NCS username / email: ")
		password := prompter.AskSecret("NCS password (input hidden): ")
		creds = &session.Credentials{Username: username, Password: password}
	} else {
		log.Println("ℹ️ Continuing as guest — some listings may be hidden.")
	}

	filters := session.Filters{
		Sector:        prompter.AskText("Sector filter (blank to skip): "),
		Location:      prompter.AskText("Location filter (blank to skip): "),
		OrgType:       askDefault(prompter, "Organization type filter (default Both): ", "Both"),
		Qualification: askDefault(prompter, "Qualification filter (default Any): ", "Any"),
		JobNature:     askDefault(prompter, "Job nature filter (default Any): ", "Any"),
	}

	jobCount := askJobCount(prompter, 10)
	resumePath := askResumePath(prompter, "resume.pdf")

	log.Printf("📄 Reading resume from %s ...", resumePath)
	resumeText, err := resume.ReadPDF(resumePath)
	if err != nil {
		log.Fatalf("❌ Could not read resume PDF: %v", err)
	}
	log.Printf("✅ Resume loaded (%d characters).", len(resumeText))

	//wire collaborators
	store := match.NewStore(match.NewGroqEncoder(cfg.GroqAPIKey, cfg.EmbedModel))
	drafter := ai.NewGrokClient(cfg.GroqAPIKey, cfg.ChatModel)
	shots := browser.NewScreenShotDebugger(cfg.ScreenshotsDir)

	sess := session.New(cfg, store, drafter, prompter, shots, resumeText)
	if cfg.SkipSeen {
		sess.UseCache(dedup.NewCache(cfg.CachePath))
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Could not init Telegram bot, continuing without notifications: %v", err)
		} else {
			log.Println("🤖 Telegram notifications enabled.")
			sess.UseNotifier(bot)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Minute)
	defer cancel()

	//headed browser with slow-mo: the run is interactive by design
	log.Println("🚀 Launching browser ...")
	mgr, err := browser.NewManager(false, 500)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer mgr.Close()

	page, err := mgr.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	if err := sess.Run(ctx, page, creds, filters, jobCount); err != nil {
		log.Printf("❌ Session failed: %v", err)
		mgr.Close() // os.Exit skips the deferred close
		os.Exit(1)
	}
	log.Println("🎉 Done.")
}

func askDefault(p session.Prompter, prompt, def string) string {
	if v := p.AskText(prompt); v != "" {
		return v
	}
	return def
}

// askJobCount re-prompts until it gets a positive integer; blank takes
// the default.
func askJobCount(p session.Prompter, def int) int {
	for {
		raw := p.AskText("How many jobs to process? (default " + strconv.Itoa(def) + "): ")
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err == nil && n > 0 {
			return n
		}
		log.Println("⚠️ Please enter a positive number.")
	}
}

// askResumePath re-prompts until the file exists; blank takes the
// default.
func askResumePath(p session.Prompter, def string) string {
	for {
		raw := p.AskText("Path to resume PDF (default " + def + "): ")
		if raw == "" {
			raw = def
		}
		if !strings.HasSuffix(strings.ToLower(raw), ".pdf") {
			log.Println("⚠️ Expecting a .pdf file.")
			continue
		}
		if _, err := os.Stat(raw); err == nil {
			return raw
		}
		log.Printf("⚠️ File not found: %s", raw)
	}
}
