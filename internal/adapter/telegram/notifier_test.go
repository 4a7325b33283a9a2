package telegram

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"marketmind/internal/domain"
)

func TestNotifierDisabledWithoutCredentials(t *testing.T) {
	tests := []struct {
		name     string
		botToken string
		chatID   string
		enabled  bool
	}{
		{"both missing", "", "", false},
		{"token only", "tok", "", false},
		{"chat only", "", "123", false},
		{"both set", "tok", "123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotifier(tt.botToken, tt.chatID)
			assert.Equal(t, tt.enabled, n.enabled)
		})
	}
}

func TestNotifyTradeNoOpWhenDisabled(t *testing.T) {
	n := NewNotifier("", "")

	trade := domain.NewTradeRecord(uuid.New(), "BTC", domain.ChainEVM, domain.DirectionBuy, domain.SourceUser, 0.5)
	assert.NoError(t, n.NotifyTrade(trade), "a disabled notifier swallows sends without touching the network")
}
