package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solxray/solana-wallet-xray/internal/helius"
	"github.com/solxray/solana-wallet-xray/internal/storage"
)

type heliusStub struct {
	addresses []string

	updates [][]string
}

func (h *heliusStub) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v0/webhooks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]helius.Webhook{{
			WebhookID:        "wh-1",
			WebhookURL:       "https://relay.example/wallet",
			AccountAddresses: h.addresses,
		}})
	})
	mux.HandleFunc("/v0/webhooks/wh-1", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AccountAddresses []string `json:"accountAddresses"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		h.updates = append(h.updates, body.AccountAddresses)
		h.addresses = body.AccountAddresses
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestManagerSync(t *testing.T) {
	ctx := context.Background()

	newManager := func(t *testing.T, stub *heliusStub) (*Manager, *storage.Storage) {
		t.Helper()

		ts := httptest.NewServer(stub.routes())
		t.Cleanup(ts.Close)

		store, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })

		client := helius.NewClient(ts.URL, ts.URL, "test-key")
		return NewManager(store, client, "wh-1", "https://relay.example/wallet", discardLogger()), store
	}

	t.Run("should push active addresses when the webhook is stale", func(t *testing.T) {
		stub := &heliusStub{}
		m, store := newManager(t, stub)

		_, err := store.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)
		_, err = store.AddWallet(ctx, 200, "addr2", 5)
		require.NoError(t, err)

		require.NoError(t, m.Sync(ctx))
		require.Len(t, stub.updates, 1)
		assert.ElementsMatch(t, []string{"addr1", "addr2"}, stub.updates[0])
	})

	t.Run("should do nothing when the webhook already matches", func(t *testing.T) {
		stub := &heliusStub{addresses: []string{"addr1"}}
		m, store := newManager(t, stub)

		_, err := store.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)

		require.NoError(t, m.Sync(ctx))
		assert.Empty(t, stub.updates)
	})

	t.Run("should drop soft-deleted addresses from the webhook", func(t *testing.T) {
		stub := &heliusStub{addresses: []string{"addr1"}}
		m, store := newManager(t, stub)

		w, err := store.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)
		require.NoError(t, store.RemoveWallet(ctx, 100, w.ID))

		require.NoError(t, m.Sync(ctx))
		require.Len(t, stub.updates, 1)
		assert.Empty(t, stub.updates[0])
	})

	t.Run("should be a no-op without a configured webhook id", func(t *testing.T) {
		m := NewManager(nil, nil, "", "", discardLogger())
		assert.NoError(t, m.Sync(ctx))
	})
}
