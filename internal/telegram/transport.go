package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hebertsb/pizzeria-nova-backend/internal/logger"
	"github.com/sethvargo/go-retry"
)

// Mode selects how the runtime receives inbound updates.
type Mode int

const (
	// ModeWebhook registers a public endpoint with Telegram.
	ModeWebhook Mode = iota
	// ModePolling long-polls getUpdates.
	ModePolling
)

// SelectMode resolves the transport once at startup: an explicitly
// configured public URL means push delivery, otherwise pull.
func SelectMode(publicBaseURL string) Mode {
	if publicBaseURL != "" {
		return ModeWebhook
	}
	return ModePolling
}

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// RegisterWebhook points Telegram at url, protected by the shared
// secret token. setWebhook overwrites any prior registration, so
// re-running it is safe; transient provider errors are retried.
func (r *Runtime) RegisterWebhook(ctx context.Context, url, secret string) error {
	b := retry.WithMaxRetries(3, retry.NewConstant(2*time.Second))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		params := make(tgbotapi.Params)
		params["url"] = url
		params["secret_token"] = secret
		if _, err := r.bot.MakeRequest("setWebhook", params); err != nil {
			return retry.RetryableError(err)
		}
		logger.Info("telegram webhook registered", "url", url)
		return nil
	})
}

// WebhookHandler accepts provider pushes. Requests without the
// matching secret header are rejected before touching the runtime.
func (r *Runtime) WebhookHandler(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get(secretTokenHeader) != secret {
			logger.Warn("webhook request rejected: bad secret token", "remote", req.RemoteAddr)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var upd tgbotapi.Update
		if err := json.NewDecoder(req.Body).Decode(&upd); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		r.enqueueUpdate(upd)
		w.WriteHeader(http.StatusOK)
	}
}

// Poll drops any stale webhook and long-polls for updates until ctx is
// cancelled, feeding them to the runtime loop.
func (r *Runtime) Poll(ctx context.Context) error {
	if _, err := r.bot.MakeRequest("deleteWebhook", make(tgbotapi.Params)); err != nil {
		logger.Warn("deleteWebhook failed", "err", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	ch := r.bot.GetUpdatesChan(u)
	defer r.bot.StopReceivingUpdates()

	logger.Info("telegram polling started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-ch:
			if !ok {
				return nil
			}
			r.enqueueUpdate(upd)
		}
	}
}
