package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-chi/chi/v5"
	"github.com/grizzco/salmon-rotation-bot/internal/assets"
	"github.com/grizzco/salmon-rotation-bot/internal/config"
	"github.com/grizzco/salmon-rotation-bot/internal/notify"
	"github.com/grizzco/salmon-rotation-bot/internal/platform/logger"
	"github.com/grizzco/salmon-rotation-bot/internal/platform/metrics"
	"github.com/grizzco/salmon-rotation-bot/internal/render"
	"github.com/grizzco/salmon-rotation-bot/internal/scheduler"
	"github.com/grizzco/salmon-rotation-bot/internal/splatnet"
	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	logg := logger.New(cfg.LogLevel, cfg.LogFile)
	defer logg.Sync()

	if cfg.SlackBotToken == "" || cfg.ScheduleChannel == "" {
		logg.Fatal("SLACK_BOT_TOKEN and SCHEDULE_CHANNEL are required")
	}

	feedClient := splatnet.NewClient(cfg.ScheduleURL, cfg.TranslationURL, cfg.HTTPTimeout, logg)

	// The translation table is mandatory for labels, so an unreachable
	// locale feed fails startup instead of producing nameless posts.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	table, err := feedClient.FetchLocale(ctx)
	cancel()
	if err != nil {
		logg.Fatal("failed to load translation table", zap.Error(err))
	}

	fetcher, err := assets.NewFetcher(cfg.AssetDir, cfg.HTTPTimeout, logg)
	if err != nil {
		logg.Fatal("failed to prepare asset directory", zap.Error(err))
	}

	compositor := render.NewCompositor(cfg.AssetDir, cfg.BackgroundOverride, logg)
	slackClient := slack.New(cfg.SlackBotToken)
	notifier := notify.NewSlack(slackClient, cfg.ScheduleChannel, logg)
	met := metrics.New()

	sched := scheduler.New(scheduler.Params{
		Feed:     feedClient,
		Assets:   fetcher,
		Table:    table,
		Renderer: compositor,
		Notifier: notifier,
		Metrics:  met,
		Clock:    clock.New(),
		Log:      logg,
	}, scheduler.Config{
		SuppressInitialNotification: cfg.SuppressInitialNotification,
		RecheckInterval:             cfg.RecheckInterval,
	})
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})
	r.Get("/metrics", met.Handler().ServeHTTP)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logg.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown error", zap.Error(err))
	}
}
