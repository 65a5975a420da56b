package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/solxray/solana-wallet-xray/internal/config"
	"github.com/solxray/solana-wallet-xray/internal/helius"
	"github.com/solxray/solana-wallet-xray/internal/notifier"
	"github.com/solxray/solana-wallet-xray/internal/storage"
	"github.com/solxray/solana-wallet-xray/internal/telegram"
	"github.com/solxray/solana-wallet-xray/internal/webhook"
)

func main() {
	// Setup logger
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(log)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	// Load config
	cfg := config.Load()

	if cfg.BotToken == "" {
		log.Error("BOT_TOKEN is required")
		os.Exit(1)
	}
	if cfg.HeliusKey == "" {
		log.Error("HELIUS_KEY is required")
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Error("init storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("storage initialized", "path", cfg.DBPath)

	// Initialize Helius client
	heliusClient := helius.NewClient(cfg.HeliusAPIURL, cfg.HeliusRPCURL, cfg.HeliusKey)
	log.Info("helius client initialized", "api_url", cfg.HeliusAPIURL)

	// Initialize webhook subscription manager
	manager := webhook.NewManager(store, heliusClient, cfg.HeliusWebhookID, cfg.WebhookURL, log)

	// Initialize telegram bot
	bot, err := telegram.New(cfg, store, heliusClient, manager, log)
	if err != nil {
		log.Error("init telegram bot", "error", err)
		os.Exit(1)
	}
	log.Info("telegram bot initialized")

	// Initialize notifier pipeline
	notify := notifier.New(store, heliusClient, store, bot, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reconcile webhook subscriptions with the registry
	if cfg.HeliusWebhookID != "" {
		if err := manager.Sync(ctx); err != nil {
			log.Error("initial webhook sync", "error", err)
		} else {
			log.Info("webhook subscriptions synced", "webhook_id", cfg.HeliusWebhookID)
		}
	}

	// Start inbound webhook server
	server := webhook.NewServer(notify.HandleEvent, log)
	go func() {
		if err := server.Start(ctx, cfg.WebhookPort); err != nil && err != http.ErrServerClosed {
			log.Error("webhook server", "error", err)
		}
	}()

	// Start webhook sync loop
	go manager.SyncLoop(ctx, 30*time.Second)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting down...")
		cancel()
	}()

	// Start bot polling
	log.Info("starting bot polling...")
	bot.Start(ctx)
}
