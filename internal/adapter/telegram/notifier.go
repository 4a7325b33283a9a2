package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketmind/internal/domain"
)

// Notifier sends best-effort trade notifications to a Telegram chat.
// Delivery is fire-and-forget with no exactly-once guarantee; a lost
// message is never retried.
type Notifier struct {
	botToken   string
	chatID     string
	enabled    bool
	httpClient *http.Client
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// NewNotifier creates a Telegram notifier. It is disabled (all sends
// become no-ops) when the token or chat ID is missing.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		enabled:  botToken != "" && chatID != "",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifyTrade sends a trade outcome notification
func (n *Notifier) NotifyTrade(trade *domain.TradeRecord) error {
	if !n.enabled {
		return nil // Silently skip if Telegram is not configured
	}

	var statusEmoji string
	switch trade.Status {
	case domain.TradeCompleted:
		statusEmoji = "✅"
	case domain.TradeFailed:
		statusEmoji = "❌"
	default:
		statusEmoji = "⏳"
	}

	chosenBy := "you"
	if trade.Source == domain.SourceAI {
		chosenBy = "the signal engine"
	}

	message := fmt.Sprintf(
		"%s *TRADE %s*\n\n"+
			"📊 Symbol: `%s`\n"+
			"📈 Direction: `%s` (chosen by %s)\n"+
			"⛓ Chain: `%s`\n"+
			"💰 Amount: `%.6f`\n"+
			"🕒 Time: `%s`",
		statusEmoji,
		trade.Status,
		trade.Symbol,
		trade.Direction,
		chosenBy,
		trade.Chain,
		trade.Amount,
		trade.UpdatedAt.Format("2006-01-02 15:04:05"),
	)

	if trade.TxReference != nil {
		message += fmt.Sprintf("\n🔗 Tx: `%s`", *trade.TxReference)
	}
	if trade.Error != nil {
		message += fmt.Sprintf("\n⚠️ Error: `%s`", *trade.Error)
	}

	return n.sendMessage(message)
}

// sendMessage sends a message to Telegram using the Bot API
func (n *Notifier) sendMessage(text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)

	payload := telegramMessage{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: "Markdown",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	resp, err := n.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
