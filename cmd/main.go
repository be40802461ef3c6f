package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/hebertsb/pizzeria-nova-backend/internal/application"
	"github.com/hebertsb/pizzeria-nova-backend/internal/config"
	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
	"github.com/hebertsb/pizzeria-nova-backend/internal/driver"
	"github.com/hebertsb/pizzeria-nova-backend/internal/events"
	"github.com/hebertsb/pizzeria-nova-backend/internal/geocode"
	"github.com/hebertsb/pizzeria-nova-backend/internal/ideas"
	"github.com/hebertsb/pizzeria-nova-backend/internal/logger"
	"github.com/hebertsb/pizzeria-nova-backend/internal/migrate"
	"github.com/hebertsb/pizzeria-nova-backend/internal/presentation"
	"github.com/hebertsb/pizzeria-nova-backend/internal/repository"
	"github.com/hebertsb/pizzeria-nova-backend/internal/telegram"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("config load failed", "err", err)
		os.Exit(1)
	}
	if cfg.DB_STRING == "" {
		logger.Warn("DB_STRING is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DB_STRING)
	if err != nil {
		logger.Warn("pgxpool new failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	pingBackoff := retry.WithMaxRetries(5, retry.NewConstant(2*time.Second))
	err = retry.Do(ctx, pingBackoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			logger.Warn("db ping failed, retrying", "err", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		logger.Warn("db unreachable", "err", err)
		os.Exit(1)
	}
	logger.Info("db connected")

	if err := migrate.Up(cfg.DB_STRING); err != nil {
		logger.Warn("migrations failed", "err", err)
		os.Exit(1)
	}

	// Wiring
	repo := repository.NewOrderRepository(pool)
	dispatcher := telegram.NewDispatcher()

	var rt *telegram.Runtime
	if cfg.BOT_TOKEN != "" {
		rt, err = telegram.NewRuntime(telegram.Config{
			Token:     cfg.BOT_TOKEN,
			WebAppURL: cfg.WEB_APP_URL,
		})
		if err != nil {
			logger.Warn("telegram init failed", "err", err)
			os.Exit(1)
		}
		dispatcher.Attach(rt)
	} else {
		logger.Warn("BOT_TOKEN is empty, notifications disabled")
	}

	var publisher application.EventPublisher
	if cfg.KAFKA_BROKERS != "" {
		prod := events.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		publisher = prod
		logger.Info("order event stream enabled", "brokers", cfg.KAFKA_BROKERS, "topic", cfg.KAFKA_TOPIC)
	}

	svc := application.NewOrdersService(repo, dispatcher, publisher, application.Config{
		RestaurantChatID: cfg.RESTAURANT_CHAT_ID,
		InvoiceBaseURL:   cfg.PUBLIC_BASE_URL,
	})

	sim := driver.NewSimulator(ctx, svc, driver.Config{
		Origin:   domain.LatLng{Latitude: cfg.RestaurantLat, Longitude: cfg.RestaurantLon},
		Duration: cfg.DriverSimDuration,
		Interval: cfg.DriverSimInterval,
	})
	svc.AttachSimulator(sim)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h := presentation.NewOrdersHandler(svc, geocode.NewClient(), ideas.NewClient(cfg.GEMINI_API_KEY))
	h.Register(r)

	g, gctx := errgroup.WithContext(ctx)

	if rt != nil {
		g.Go(func() error { return rt.Run(gctx) })

		secret := cfg.WEBHOOK_SECRET_TOKEN
		if secret == "" {
			secret = uuid.NewString()
			logger.Info("WEBHOOK_SECRET_TOKEN is empty, generated one for this run")
		}

		switch telegram.SelectMode(cfg.PUBLIC_BASE_URL) {
		case telegram.ModeWebhook:
			r.Post("/telegram/webhook", rt.WebhookHandler(secret))
			if err := rt.RegisterWebhook(gctx, cfg.PUBLIC_BASE_URL+"/telegram/webhook", secret); err != nil {
				logger.Warn("webhook registration failed", "err", err)
				os.Exit(1)
			}
		case telegram.ModePolling:
			g.Go(func() error { return rt.Poll(gctx) })
		}
	}

	srv := &http.Server{Addr: ":" + cfg.HTTP_PORT, Handler: r}

	g.Go(func() error {
		logger.Info("starting http", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Warn("server stopped with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
