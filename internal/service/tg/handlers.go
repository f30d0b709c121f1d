package tg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Не отвечать одному чату чаще, чем раз в replyCooldown
const replyCooldown = 3 * time.Second

// Sender подмножество *tgbotapi.BotAPI
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TGHandler отвечает на /start дескриптором подписки для этого чата
type TGHandler struct {
	bot    Sender
	logger *zap.Logger
	recent *gocache.Cache
}

func NewTGHandler(bot Sender, logger *zap.Logger) *TGHandler {
	return &TGHandler{
		bot:    bot,
		logger: logger,
		recent: gocache.New(replyCooldown, time.Minute),
	}
}

// Run читает обновления до отмены ctx
func (h *TGHandler) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := h.HandleUpdate(update); err != nil {
				h.logger.Error("error handling telegram update", zap.Error(err), zap.Int("update_id", update.UpdateID))
			}
		}
	}
}

func (h *TGHandler) HandleUpdate(update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return nil
	}
	switch msg.Command() {
	case "start", "subscribe":
	default:
		return nil
	}

	key := fmt.Sprint(msg.Chat.ID)
	if _, found := h.recent.Get(key); found {
		return nil
	}
	h.recent.SetDefault(key, struct{}{})

	reply, err := StartReply(msg.Chat.ID)
	if err != nil {
		return err
	}
	_, err = h.bot.Send(reply)
	return err
}

// StartReply сообщение с дескриптором {"telegram_chat_id": N} для POST /api/auth/subscribe
func StartReply(chatID int64) (tgbotapi.MessageConfig, error) {
	descriptor, err := json.Marshal(map[string]int64{"telegram_chat_id": chatID})
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your chat id: %d\n", chatID)
	b.WriteString("Register this subscription to receive daily PTP reminders here:\n")
	b.Write(descriptor)
	return tgbotapi.NewMessage(chatID, b.String()), nil
}
