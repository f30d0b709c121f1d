package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSubscriptionGone endpoint больше не существует, подписку нужно удалить
	ErrSubscriptionGone  = errors.New("push subscription is gone")
	ErrUnknownDescriptor = errors.New("unknown push subscription descriptor")
	ErrNotConfigured     = errors.New("push transport is not configured")
)

// Message содержимое уведомления
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
}

type Transport interface {
	Send(ctx context.Context, subscription json.RawMessage, msg Message) error
}

// DeliveryError ошибка одной доставки, не фатальна для транспорта
type DeliveryError struct {
	Transport  string
	StatusCode int
	Gone       bool
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s delivery failed (status %d): %v", e.Transport, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s delivery failed (status %d)", e.Transport, e.StatusCode)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Is(target error) bool {
	return target == ErrSubscriptionGone && e.Gone
}

// descriptor общие поля всех поддерживаемых дескрипторов
type descriptor struct {
	Endpoint       string `json:"endpoint"`
	TelegramChatID int64  `json:"telegram_chat_id"`
}

// Router выбирает транспорт по форме дескриптора
type Router struct {
	WebPush  Transport
	Telegram Transport
}

func (r *Router) Send(ctx context.Context, subscription json.RawMessage, msg Message) error {
	var d descriptor
	if err := json.Unmarshal(subscription, &d); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownDescriptor, err)
	}

	var t Transport
	switch {
	case d.Endpoint != "":
		t = r.WebPush
	case d.TelegramChatID != 0:
		t = r.Telegram
	default:
		return ErrUnknownDescriptor
	}
	if t == nil {
		return ErrNotConfigured
	}
	return t.Send(ctx, subscription, msg)
}

// ValidateDescriptor проверяет, что дескриптор можно доставить
func ValidateDescriptor(subscription json.RawMessage) error {
	var d descriptor
	if err := json.Unmarshal(subscription, &d); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownDescriptor, err)
	}
	if d.Endpoint == "" && d.TelegramChatID == 0 {
		return ErrUnknownDescriptor
	}
	return nil
}
