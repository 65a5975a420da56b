package webhook

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/solxray/solana-wallet-xray/internal/helius"
	"github.com/solxray/solana-wallet-xray/internal/storage"
)

// Manager keeps the Helius webhook's watched address list in sync with
// the active wallets in the registry.
type Manager struct {
	storage    *storage.Storage
	helius     *helius.Client
	webhookID  string
	webhookURL string
	log        *slog.Logger

	mu sync.Mutex
}

// NewManager creates a new webhook manager
func NewManager(store *storage.Storage, client *helius.Client, webhookID, webhookURL string, log *slog.Logger) *Manager {
	return &Manager{
		storage:    store,
		helius:     client,
		webhookID:  webhookID,
		webhookURL: webhookURL,
		log:        log,
	}
}

// Sync pushes the registry's distinct active addresses to the webhook
// when they differ from what Helius currently has.
func (m *Manager) Sync(ctx context.Context) error {
	if m.webhookID == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	needed, err := m.storage.ActiveAddresses(ctx)
	if err != nil {
		return err
	}

	wh, err := m.helius.GetWebhook(ctx, m.webhookID)
	if err != nil {
		return err
	}

	if sameAddresses(needed, wh.AccountAddresses) {
		return nil
	}

	url := m.webhookURL
	if url == "" {
		url = wh.WebhookURL
	}

	if err := m.helius.UpdateWebhookAddresses(ctx, m.webhookID, url, needed); err != nil {
		return err
	}

	m.log.Info("webhook addresses updated",
		"webhook_id", m.webhookID,
		"count", len(needed),
	)

	return nil
}

// SyncLoop periodically reconciles subscriptions with wallets in DB
func (m *Manager) SyncLoop(ctx context.Context, interval time.Duration) {
	if m.webhookID == "" {
		m.log.Warn("webhook id not set, skipping subscription sync")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.log.Info("webhook sync loop started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Sync(ctx); err != nil {
				m.log.Error("sync webhook addresses", "error", err)
			}
		}
	}
}

func sameAddresses(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)

	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
