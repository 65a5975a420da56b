package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("should register an active wallet", func(t *testing.T) {
		s := newTestStorage(t)

		w, err := s.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)
		assert.Equal(t, int64(100), w.UserID)
		assert.Equal(t, "addr1", w.Address)
		assert.Equal(t, StatusActive, w.Status)

		count, err := s.CountActiveWallets(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("should reject a duplicate active wallet", func(t *testing.T) {
		s := newTestStorage(t)

		_, err := s.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)

		_, err = s.AddWallet(ctx, 100, "addr1", 5)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("should allow the same address for different users", func(t *testing.T) {
		s := newTestStorage(t)

		_, err := s.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)

		_, err = s.AddWallet(ctx, 200, "addr1", 5)
		assert.NoError(t, err)
	})

	t.Run("should enforce the per-user limit", func(t *testing.T) {
		s := newTestStorage(t)

		_, err := s.AddWallet(ctx, 100, "addr1", 2)
		require.NoError(t, err)
		_, err = s.AddWallet(ctx, 100, "addr2", 2)
		require.NoError(t, err)

		_, err = s.AddWallet(ctx, 100, "addr3", 2)
		assert.ErrorIs(t, err, ErrLimitReached)
	})

	t.Run("should accept an address again after soft deletion", func(t *testing.T) {
		s := newTestStorage(t)

		w, err := s.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)
		require.NoError(t, s.RemoveWallet(ctx, 100, w.ID))

		_, err = s.AddWallet(ctx, 100, "addr1", 5)
		assert.NoError(t, err)
	})
}

func TestRemoveWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("should soft-delete and free up the limit", func(t *testing.T) {
		s := newTestStorage(t)

		w, err := s.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)

		require.NoError(t, s.RemoveWallet(ctx, 100, w.ID))

		wallets, err := s.ListActiveWallets(ctx, 100)
		require.NoError(t, err)
		assert.Empty(t, wallets)

		count, err := s.CountActiveWallets(ctx, 100)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("should not delete another user's wallet", func(t *testing.T) {
		s := newTestStorage(t)

		w, err := s.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)

		err = s.RemoveWallet(ctx, 200, w.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should report an unknown wallet", func(t *testing.T) {
		s := newTestStorage(t)

		err := s.RemoveWallet(ctx, 100, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFindActiveWallets(t *testing.T) {
	ctx := context.Background()

	t.Run("should return only active wallets with matching addresses", func(t *testing.T) {
		s := newTestStorage(t)

		_, err := s.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)
		_, err = s.AddWallet(ctx, 200, "addr2", 5)
		require.NoError(t, err)
		deleted, err := s.AddWallet(ctx, 300, "addr3", 5)
		require.NoError(t, err)
		require.NoError(t, s.RemoveWallet(ctx, 300, deleted.ID))

		wallets, err := s.FindActiveWallets(ctx, []string{"addr1", "addr3", "unknown"})
		require.NoError(t, err)
		require.Len(t, wallets, 1)
		assert.Equal(t, int64(100), wallets[0].UserID)
	})

	t.Run("should return nothing for an empty address set", func(t *testing.T) {
		s := newTestStorage(t)

		wallets, err := s.FindActiveWallets(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, wallets)
	})
}

func TestActiveAddresses(t *testing.T) {
	ctx := context.Background()

	t.Run("should return distinct active addresses", func(t *testing.T) {
		s := newTestStorage(t)

		_, err := s.AddWallet(ctx, 100, "addr1", 5)
		require.NoError(t, err)
		_, err = s.AddWallet(ctx, 200, "addr1", 5)
		require.NoError(t, err)
		_, err = s.AddWallet(ctx, 100, "addr2", 5)
		require.NoError(t, err)

		addresses, err := s.ActiveAddresses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"addr1", "addr2"}, addresses)
	})
}

func TestMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("should append and list audit records", func(t *testing.T) {
		s := newTestStorage(t)
		now := time.Now()

		require.NoError(t, s.AppendMessage(ctx, 100, "first", now))
		require.NoError(t, s.AppendMessage(ctx, 100, "second", now))
		require.NoError(t, s.AppendMessage(ctx, 200, "other user", now))

		messages, err := s.ListMessages(ctx, 100, 10)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "second", messages[0].Text)
		assert.Equal(t, "first", messages[1].Text)
	})
}
