package session

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Credentials for the optional login phase. Nil means guest mode.
type Credentials struct {
	Username string
	Password string
}

// fieldStrategy is one entry of a prioritized locator chain: strategies
// are tried in order and the first that finds something wins. Keeping the
// chains as data keeps them testable and easy to extend when the site's
// markup shifts.
type fieldStrategy struct {
	desc   string
	locate func(page playwright.Page) playwright.Locator
}

var usernameStrategies = []fieldStrategy{
	{
		desc: "accessible textbox 'User Name'",
		locate: func(p playwright.Page) playwright.Locator {
			return p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "User Name"})
		},
	},
	{
		desc: "accessible name regex",
		locate: func(p playwright.Page) playwright.Locator {
			return p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: regexp.MustCompile(`(?i)User|Login|Email`)})
		},
	},
	{
		desc: "generic text/email input",
		locate: func(p playwright.Page) playwright.Locator {
			return p.Locator("input[type='email'], input[type='text']")
		},
	},
	{
		desc: "ASP.NET username ID",
		locate: func(p playwright.Page) playwright.Locator {
			return p.Locator("input#ctl00_PlaceHolderMain_txtUserName")
		},
	},
	{
		desc: "ASP.NET username name",
		locate: func(p playwright.Page) playwright.Locator {
			return p.Locator("input[name='ctl00$PlaceHolderMain$txtUserName']")
		},
	},
}

var passwordStrategies = []fieldStrategy{
	{
		desc: "accessible textbox 'Password'",
		locate: func(p playwright.Page) playwright.Locator {
			return p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Password"})
		},
	},
	{
		desc: "password regex",
		locate: func(p playwright.Page) playwright.Locator {
			return p.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: regexp.MustCompile(`(?i)Password`)})
		},
	},
	{
		desc: "password input",
		locate: func(p playwright.Page) playwright.Locator {
			return p.Locator("input[type='password']")
		},
	},
	{
		desc: "ASP.NET password ID",
		locate: func(p playwright.Page) playwright.Locator {
			return p.Locator("input#ctl00_PlaceHolderMain_txtPassword")
		},
	},
	{
		desc: "ASP.NET password name",
		locate: func(p playwright.Page) playwright.Locator {
			return p.Locator("input[name='ctl00$PlaceHolderMain$txtPassword']")
		},
	},
}

var submitStrategies = []fieldStrategy{
	{
		desc: "'Sign In' button",
		locate: func(p playwright.Page) playwright.Locator {
			return p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Sign In"})
		},
	},
	{
		desc: "'Submit' button",
		locate: func(p playwright.Page) playwright.Locator {
			return p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Submit"})
		},
	},
	{
		desc: "'Login' button",
		locate: func(p playwright.Page) playwright.Locator {
			return p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Login"})
		},
	},
	{
		desc: "regex button",
		locate: func(p playwright.Page) playwright.Locator {
			return p.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: regexp.MustCompile(`(?i)Sign|Login|Submit`)})
		},
	},
	{
		desc: "submit input",
		locate: func(p playwright.Page) playwright.Locator {
			return p.Locator("input[type='submit']")
		},
	},
	{
		desc: "submit button",
		locate: func(p playwright.Page) playwright.Locator {
			return p.Locator("button[type='submit']")
		},
	},
}

// fillByStrategy walks a locator chain and fills the first match.
func fillByStrategy(page playwright.Page, strategies []fieldStrategy, value string) bool {
	for _, s := range strategies {
		loc := s.locate(page)
		cnt, err := loc.Count()
		if err != nil || cnt == 0 {
			continue
		}
		first := loc.First()
		if err := first.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(3000)}); err != nil {
			log.Printf("⚠️ Strategy %s: click failed: %v", s.desc, err)
			continue
		}
		if err := first.Fill(value); err != nil {
			log.Printf("⚠️ Strategy %s: fill failed: %v", s.desc, err)
			continue
		}
		log.Printf("✔️ Filled field using: %s", s.desc)
		return true
	}
	return false
}

// clickByStrategy walks a locator chain and clicks the first match.
func clickByStrategy(page playwright.Page, strategies []fieldStrategy) bool {
	for _, s := range strategies {
		loc := s.locate(page)
		cnt, err := loc.Count()
		if err != nil || cnt == 0 {
			continue
		}
		if err := loc.First().Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)}); err != nil {
			log.Printf("⚠️ Strategy %s: click failed: %v", s.desc, err)
			continue
		}
		log.Printf("🔁 Clicked using: %s", s.desc)
		return true
	}
	return false
}

// fillInFrames retries the username/password fill inside every iframe on
// the page. Used when the top-level chains came up empty.
func fillInFrames(page playwright.Page, creds *Credentials) bool {
	filled := false
	for i, frame := range page.Frames() {
		if frame == page.MainFrame() {
			continue
		}
		userLoc := frame.GetByRole(*playwright.AriaRoleTextbox, playwright.FrameGetByRoleOptions{Name: "User Name"})
		if cnt, err := userLoc.Count(); err == nil && cnt > 0 {
			if err := userLoc.First().Fill(creds.Username); err == nil {
				log.Printf("👤 Filled username in iframe %d.", i)
				filled = true
			}
		}
		passLoc := frame.GetByRole(*playwright.AriaRoleTextbox, playwright.FrameGetByRoleOptions{Name: "Password"})
		if cnt, err := passLoc.Count(); err == nil && cnt > 0 {
			if err := passLoc.First().Fill(creds.Password); err == nil {
				log.Printf("🔒 Filled password in iframe %d.", i)
			}
		}
	}
	return filled
}

// login runs the interactive login phase. Only a failed navigation to the
// login page is fatal; every other hiccup is logged (with a screenshot)
// and the run continues so the human can straighten things out in the
// visible browser.
func (s *Session) login(page playwright.Page, creds *Credentials) error {
	log.Println("🔐 Navigating to NCS login page...")
	if _, err := page.Goto(s.cfg.LoginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(60000),
	}); err != nil {
		s.shots.CaptureAndLog(page, "login_error", "🚨 Login navigation failed")
		return fmt.Errorf("login navigation failed: %w", err)
	}

	s.shots.CaptureAndLog(page, "login_page", "Saved screenshot of login page")

	//wait for any form controls to show up
	if _, err := page.WaitForSelector("input, [role='textbox']", playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(30000),
	}); err != nil {
		log.Println("⚠️ No input or textbox elements found within 30s. Possible CAPTCHA or redirect.")
		s.shots.CaptureAndLog(page, "login_no_inputs", "🚨 Login page showed no inputs")
	}

	usernameFilled := fillByStrategy(page, usernameStrategies, creds.Username)
	if !fillByStrategy(page, passwordStrategies, creds.Password) {
		log.Println("⚠️ Could not fill password field automatically.")
	}

	if !usernameFilled {
		if frames := page.Frames(); len(frames) > 1 {
			log.Printf("⚠️ Found %d frame(s). Attempting to fill inside iframes...", len(frames)-1)
			usernameFilled = fillInFrames(page, creds)
		}
	}

	if !usernameFilled {
		log.Println("❌ Could not locate username field; fill it manually in the browser.")
		s.shots.CaptureAndLog(page, "login_no_username", "🚨 Username field not found")
	}

	//human-in-the-loop gate: CAPTCHA and field verification
	log.Println("⚠️ Check the browser: verify fields are filled. Complete any CAPTCHA if shown.")
	s.prompter.AskText("Press Enter when ready to submit the login form...")

	if !clickByStrategy(page, submitStrategies) {
		log.Println("❌ Could not click login button. Please click manually in the browser.")
		s.shots.CaptureAndLog(page, "login_no_button", "🚨 Submit button not found")
	}

	page.WaitForTimeout(5000)

	current := strings.ToLower(page.URL())
	if !strings.Contains(current, "login") || strings.Contains(current, "dashboard") || strings.Contains(current, "home") {
		log.Println("✅ Login appears successful (URL changed).")
	} else {
		log.Println("⚠️ Still on login page; check for errors or CAPTCHA.")
		s.shots.CaptureAndLog(page, "login_error", "🚨 Login may have failed")
	}

	return nil
}
