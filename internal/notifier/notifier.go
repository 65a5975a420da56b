package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/solxray/solana-wallet-xray/internal/helius"
	"github.com/solxray/solana-wallet-xray/internal/storage"
)

// WalletRegistry looks up active wallets by address
type WalletRegistry interface {
	FindActiveWallets(ctx context.Context, addresses []string) ([]storage.Wallet, error)
}

// AuditLog records delivery attempts
type AuditLog interface {
	AppendMessage(ctx context.Context, userID int64, text string, at time.Time) error
}

// MetadataService resolves NFT and compressed-asset metadata
type MetadataService interface {
	GetNFTMetadata(ctx context.Context, mint string) (string, error)
	GetCompressedAsset(ctx context.Context, assetID string) (string, error)
	FetchJSON(ctx context.Context, uri string) (string, error)
}

// Messenger delivers notifications to users
type Messenger interface {
	SendText(ctx context.Context, userID int64, text string) error
	SendPhoto(ctx context.Context, userID int64, photo []byte, caption string) error
}

// Notifier runs the webhook-to-notification pipeline: match registered
// wallets, resolve media, format per-user messages, deliver.
type Notifier struct {
	registry  WalletRegistry
	media     *mediaResolver
	audit     AuditLog
	messenger Messenger
	images    *imageFetcher
	log       *slog.Logger
}

// New creates a new Notifier
func New(registry WalletRegistry, metadata MetadataService, audit AuditLog, messenger Messenger, log *slog.Logger) *Notifier {
	return &Notifier{
		registry:  registry,
		media:     &mediaResolver{metadata: metadata},
		audit:     audit,
		messenger: messenger,
		images:    newImageFetcher(),
		log:       log,
	}
}

// HandleEvent processes one transaction event end to end. Delivery is
// best-effort per user; only a registry failure aborts the event.
func (n *Notifier) HandleEvent(ctx context.Context, ev *helius.TransactionEvent) {
	matches, err := matchEvent(ctx, n.registry, ev)
	if err != nil {
		n.log.Error("match wallets", "signature", ev.Signature, "error", err)
		return
	}
	if len(matches) == 0 {
		n.log.Debug("no registered wallets involved", "signature", ev.Signature)
		return
	}

	n.log.Info("event matched",
		"signature", ev.Signature,
		"type", ev.Type,
		"users", len(matches),
	)

	// Media resolution degrades to text-only, never aborts the event.
	image, err := n.media.resolveImage(ctx, ev)
	if err != nil {
		n.log.Warn("resolve image", "signature", ev.Signature, "error", err)
		image = ""
	}

	n.dispatch(ctx, formatMessages(ev, matches, image))
}

// dispatch delivers each message, writing one audit record per attempt
// and falling back to text-only delivery when the image path fails.
func (n *Notifier) dispatch(ctx context.Context, messages []Message) {
	for _, msg := range messages {
		if err := n.audit.AppendMessage(ctx, msg.UserID, msg.Text, time.Now()); err != nil {
			n.log.Error("append audit record", "user_id", msg.UserID, "error", err)
		}

		if msg.Image != "" {
			err := n.sendPhoto(ctx, msg)
			if err == nil {
				continue
			}
			n.log.Warn("image delivery failed, falling back to text",
				"user_id", msg.UserID,
				"image", msg.Image,
				"error", err,
			)
		}

		if err := n.messenger.SendText(ctx, msg.UserID, msg.Text); err != nil {
			n.log.Error("send text", "user_id", msg.UserID, "error", err)
		}
	}
}

func (n *Notifier) sendPhoto(ctx context.Context, msg Message) error {
	photo, err := n.images.fetch(ctx, msg.Image)
	if err != nil {
		return err
	}
	return n.messenger.SendPhoto(ctx, msg.UserID, photo, msg.Text)
}
