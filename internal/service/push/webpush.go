package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
)

const defaultTTL = 60 * 60 * 24

type WebPushConfig struct {
	Subscriber      string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	TTL             int
}

// WebPush доставка через Web Push с VAPID
type WebPush struct {
	cfg    WebPushConfig
	client webpush.HTTPClient
}

func NewWebPush(cfg WebPushConfig, client webpush.HTTPClient) *WebPush {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &WebPush{cfg: cfg, client: client}
}

func (w *WebPush) Send(ctx context.Context, subscription json.RawMessage, msg Message) error {
	var sub webpush.Subscription
	if err := json.Unmarshal(subscription, &sub); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownDescriptor, err)
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &sub, &webpush.Options{
		HTTPClient:      w.client,
		Subscriber:      w.cfg.Subscriber,
		VAPIDPublicKey:  w.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: w.cfg.VAPIDPrivateKey,
		TTL:             w.cfg.TTL,
	})
	if err != nil {
		return &DeliveryError{Transport: "webpush", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &DeliveryError{
		Transport:  "webpush",
		StatusCode: resp.StatusCode,
		Gone:       resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound,
	}
}
