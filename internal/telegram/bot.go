package telegram

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/solxray/solana-wallet-xray/internal/config"
	"github.com/solxray/solana-wallet-xray/internal/helius"
	"github.com/solxray/solana-wallet-xray/internal/storage"
)

// SubscriptionSyncer pushes the current wallet set to the upstream
// webhook after registry changes.
type SubscriptionSyncer interface {
	Sync(ctx context.Context) error
}

// Bot wraps the telegram bot with wallet management handlers
type Bot struct {
	bot     *bot.Bot
	cfg     *config.Config
	storage *storage.Storage
	helius  *helius.Client
	syncer  SubscriptionSyncer
	states  *StateManager
	log     *slog.Logger
}

// New creates a new telegram bot
func New(cfg *config.Config, store *storage.Storage, client *helius.Client, syncer SubscriptionSyncer, log *slog.Logger) (*Bot, error) {
	b := &Bot{
		cfg:     cfg,
		storage: store,
		helius:  client,
		syncer:  syncer,
		states:  NewStateManager(),
		log:     log,
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(b.defaultHandler),
		bot.WithCallbackQueryDataHandler("", bot.MatchTypePrefix, b.callbackHandler),
	}

	tgBot, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b.bot = tgBot

	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.startHandler)
	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/start ", bot.MatchTypePrefix, b.startHandler)

	return b, nil
}

// Start starts the bot polling
func (b *Bot) Start(ctx context.Context) {
	b.bot.Start(ctx)
}

// --- Delivery transport ---

// SendText delivers a Markdown notification without link previews
func (b *Bot) SendText(ctx context.Context, userID int64, text string) error {
	disablePreview := true
	_, err := b.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    userID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: &disablePreview,
		},
	})
	return err
}

// SendPhoto delivers a captioned photo notification
func (b *Bot) SendPhoto(ctx context.Context, userID int64, photo []byte, caption string) error {
	_, err := b.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: userID,
		Photo: &models.InputFileUpload{
			Filename: "nft.jpg",
			Data:     bytes.NewReader(photo),
		},
		Caption:   caption,
		ParseMode: models.ParseModeMarkdownV1,
	})
	return err
}

// --- Helpers ---

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := b.bot.SendMessage(ctx, params)
	if err != nil {
		b.log.Error("send message", "error", err)
	}
}

func (b *Bot) editMessage(ctx context.Context, msg models.MaybeInaccessibleMessage, text string, keyboard *models.InlineKeyboardMarkup) {
	if msg.Message == nil {
		return
	}

	params := &bot.EditMessageTextParams{
		ChatID:    msg.Message.Chat.ID,
		MessageID: msg.Message.ID,
		Text:      text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := b.bot.EditMessageText(ctx, params)
	if err != nil {
		b.log.Error("edit message", "error", err)
	}
}
