// Package alerts pushes one-way staff notifications to a Telegram group.
// The lost-and-found office watches this channel for new reports and claims
// without keeping a dashboard open.
package alerts

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/models"
)

// Notifier sends staff alerts. Sends are fire-and-forget: a failure is
// logged and never reaches the caller.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier connects to the Telegram Bot API. chatID is the staff group
// chat, passed as a string straight from the environment.
func NewNotifier(token, chatID string) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid staff chat id %q: %w", chatID, err)
	}

	zap.S().Infow("staff alert bot connected", "account", bot.Self.UserName)
	return &Notifier{bot: bot, chatID: id}, nil
}

// ReportSubmitted announces a new report awaiting review.
func (n *Notifier) ReportSubmitted(report *models.SubmittedReport, submitterName string) {
	text := fmt.Sprintf("New %s report #%d from %s\n%s: %s\nLocation: %s",
		report.Type, report.ID, submitterName, report.Category, report.ItemName, report.Location)
	n.send(text)
}

// ClaimSubmitted announces a new claim awaiting verification.
func (n *Notifier) ClaimSubmitted(claim *models.Claim, claimantName string) {
	itemType := "lost"
	itemID := uint(0)
	if claim.LostItemID != nil {
		itemID = *claim.LostItemID
	}
	if claim.FoundItemID != nil {
		itemType = "found"
		itemID = *claim.FoundItemID
	}
	text := fmt.Sprintf("New claim #%d from %s on %s item #%d",
		claim.ID, claimantName, itemType, itemID)
	n.send(text)
}

func (n *Notifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		zap.S().Warnw("staff alert send failed", "err", err)
	}
}
