package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender подмножество *tgbotapi.BotAPI
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram доставка сообщением в чат, дескриптор {"telegram_chat_id": N}
type Telegram struct {
	bot TelegramSender
}

func NewTelegram(bot TelegramSender) *Telegram {
	return &Telegram{bot: bot}
}

func (t *Telegram) Send(ctx context.Context, subscription json.RawMessage, msg Message) error {
	var d descriptor
	if err := json.Unmarshal(subscription, &d); err != nil || d.TelegramChatID == 0 {
		return ErrUnknownDescriptor
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text := msg.Body
	if msg.Title != "" {
		text = fmt.Sprintf("%s\n%s", msg.Title, msg.Body)
	}
	_, err := t.bot.Send(tgbotapi.NewMessage(d.TelegramChatID, text))
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return &DeliveryError{
			Transport:  "telegram",
			StatusCode: apiErr.Code,
			// 403 - бот заблокирован или чат удален
			Gone: apiErr.Code == http.StatusForbidden,
			Err:  err,
		}
	}
	return &DeliveryError{Transport: "telegram", Err: err}
}
