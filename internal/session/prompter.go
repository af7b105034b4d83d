package session

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter is the human-decision port. The pipeline blocks on it at every
// consequential step; tests substitute a scripted implementation.
type Prompter interface {
	AskText(prompt string) string
	AskSecret(prompt string) string
	AskYesNo(prompt string) bool
}

// ConsolePrompter reads answers from stdin.
type ConsolePrompter struct {
	in *bufio.Reader
}

func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(os.Stdin)}
}

func (p *ConsolePrompter) AskText(prompt string) string {
	fmt.Print(prompt)
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// AskSecret reads without echoing. When no terminal is attached it falls
// back to a plain read.
func (p *ConsolePrompter) AskSecret(prompt string) string {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Printf("⚠️ Could not disable echo (%v); reading password in the clear.", err)
		return p.AskText("")
	}
	return strings.TrimSpace(string(raw))
}

func (p *ConsolePrompter) AskYesNo(prompt string) bool {
	for {
		switch strings.ToLower(p.AskText(prompt)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Println("Please enter 'y' or 'n'.")
		}
	}
}
