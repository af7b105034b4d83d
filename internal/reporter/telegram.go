// Package reporter pushes optional Telegram notifications so high matches
// are not lost when nobody is watching the console.
package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ncs-job-agent/internal/jobs"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// SendHighMatch announces a listing that scored above the threshold.
func (t *TelegramReporter) SendHighMatch(rec jobs.Record) error {
	text := fmt.Sprintf(
		"✨ <b>%s</b>\n"+
			"🏢 %s\n"+
			"📈 Similarity: %.3f\n"+
			"📅 Last date: %s\n"+
			"🔗 <a href=\"%s\">Open listing</a>",
		rec.Title,
		rec.Company,
		rec.Similarity,
		rec.LastDate,
		rec.URL,
	)
	return t.SendMessage(text)
}

// SendSummary reports the end-of-run totals.
func (t *TelegramReporter) SendSummary(total, highMatches int) error {
	return t.SendMessage(fmt.Sprintf("✅ Run finished: %d jobs processed, %d high matches.", total, highMatches))
}
