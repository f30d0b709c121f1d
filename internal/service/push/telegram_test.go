package push

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestTelegram_Send(t *testing.T) {
	bot := &fakeBot{}
	tg := NewTelegram(bot)

	err := tg.Send(context.Background(), json.RawMessage(`{"telegram_chat_id":555}`), Message{Title: "Daily PTP Reminder", Body: "You have 2 PTP promises due today."})

	require.NoError(t, err)
	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(555), bot.sent[0].ChatID)
	assert.Equal(t, "Daily PTP Reminder\nYou have 2 PTP promises due today.", bot.sent[0].Text)
}

func TestTelegram_BlockedIsGone(t *testing.T) {
	bot := &fakeBot{err: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}}

	err := NewTelegram(bot).Send(context.Background(), json.RawMessage(`{"telegram_chat_id":1}`), Message{Body: "x"})

	assert.ErrorIs(t, err, ErrSubscriptionGone)
}

func TestTelegram_OtherErrors(t *testing.T) {
	bot := &fakeBot{err: &tgbotapi.Error{Code: 429, Message: "Too Many Requests"}}
	err := NewTelegram(bot).Send(context.Background(), json.RawMessage(`{"telegram_chat_id":1}`), Message{Body: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSubscriptionGone)

	bot = &fakeBot{err: errors.New("dial tcp: timeout")}
	err = NewTelegram(bot).Send(context.Background(), json.RawMessage(`{"telegram_chat_id":1}`), Message{Body: "x"})
	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "telegram", de.Transport)
}

func TestTelegram_BadDescriptorAndCancelledContext(t *testing.T) {
	bot := &fakeBot{}
	tg := NewTelegram(bot)

	assert.ErrorIs(t, tg.Send(context.Background(), json.RawMessage(`{"endpoint":"x"}`), Message{}), ErrUnknownDescriptor)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tg.Send(ctx, json.RawMessage(`{"telegram_chat_id":1}`), Message{}), context.Canceled)
	assert.Empty(t, bot.sent)
}
