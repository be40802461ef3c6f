package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
	"github.com/hebertsb/pizzeria-nova-backend/internal/logger"
)

const (
	sendQueueSize   = 256
	updateQueueSize = 64
)

type Config struct {
	Token     string
	WebAppURL string
}

type sendJob struct {
	chatID  string
	text    string
	buttons []domain.LinkButton
}

// Runtime is the channel runtime: it owns the only live Bot API client
// and executes all outbound sends and inbound update handling on one
// goroutine. Producers reach it exclusively through its queues.
type Runtime struct {
	bot       *tgbotapi.BotAPI
	webAppURL string
	queue     chan sendJob
	updates   chan tgbotapi.Update
}

func NewRuntime(cfg Config) (*Runtime, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	logger.Info("telegram bot authorized", "username", bot.Self.UserName)

	return &Runtime{
		bot:       bot,
		webAppURL: cfg.WebAppURL,
		queue:     make(chan sendJob, sendQueueSize),
		updates:   make(chan tgbotapi.Update, updateQueueSize),
	}, nil
}

// Run drains the send and update queues until ctx is cancelled. It is
// the only place the bot client is ever used after startup.
func (r *Runtime) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job := <-r.queue:
			r.deliver(job)
		case upd := <-r.updates:
			r.handleUpdate(upd)
		}
	}
}

func (r *Runtime) deliver(job sendJob) {
	chatID, err := strconv.ParseInt(job.chatID, 10, 64)
	if err != nil {
		logger.Warn("notification dropped: bad destination", "destination", job.chatID)
		return
	}

	msg := tgbotapi.NewMessage(chatID, job.text)
	msg.ParseMode = tgbotapi.ModeHTML
	if len(job.buttons) > 0 {
		msg.ReplyMarkup = buildMarkup(job.buttons)
	}

	if _, err := r.bot.Send(msg); err != nil {
		// Delivery failures are logged and dropped, never retried.
		logger.Warn("notification send failed", "destination", job.chatID, "err", err)
	}
}

func buildMarkup(buttons []domain.LinkButton) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// enqueueUpdate hands an inbound update to the runtime loop without
// blocking the transport that received it.
func (r *Runtime) enqueueUpdate(upd tgbotapi.Update) {
	select {
	case r.updates <- upd:
	default:
		logger.Warn("inbound update dropped: queue full")
	}
}
