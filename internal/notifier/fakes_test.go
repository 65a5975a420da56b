package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/solxray/solana-wallet-xray/internal/storage"
)

type fakeRegistry struct {
	wallets []storage.Wallet
	err     error

	gotAddresses []string
}

func (f *fakeRegistry) FindActiveWallets(ctx context.Context, addresses []string) ([]storage.Wallet, error) {
	f.gotAddresses = addresses
	if f.err != nil {
		return nil, f.err
	}

	var found []storage.Wallet
	for _, w := range f.wallets {
		for _, addr := range addresses {
			if w.Address == addr {
				found = append(found, w)
				break
			}
		}
	}
	return found, nil
}

type fakeMetadata struct {
	getNFTMetadata     func(ctx context.Context, mint string) (string, error)
	getCompressedAsset func(ctx context.Context, assetID string) (string, error)
	fetchJSON          func(ctx context.Context, uri string) (string, error)
}

func (f *fakeMetadata) GetNFTMetadata(ctx context.Context, mint string) (string, error) {
	return f.getNFTMetadata(ctx, mint)
}

func (f *fakeMetadata) GetCompressedAsset(ctx context.Context, assetID string) (string, error) {
	return f.getCompressedAsset(ctx, assetID)
}

func (f *fakeMetadata) FetchJSON(ctx context.Context, uri string) (string, error) {
	return f.fetchJSON(ctx, uri)
}

type auditEntry struct {
	UserID int64
	Text   string
	At     time.Time
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []auditEntry
	err     error
}

func (f *fakeAudit) AppendMessage(ctx context.Context, userID int64, text string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, auditEntry{UserID: userID, Text: text, At: at})
	return nil
}

type sentText struct {
	UserID int64
	Text   string
}

type sentPhoto struct {
	UserID  int64
	Photo   []byte
	Caption string
}

type fakeMessenger struct {
	mu     sync.Mutex
	texts  []sentText
	photos []sentPhoto

	textErr  func(userID int64) error
	photoErr error
}

func (f *fakeMessenger) SendText(ctx context.Context, userID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.textErr != nil {
		if err := f.textErr(userID); err != nil {
			return err
		}
	}
	f.texts = append(f.texts, sentText{UserID: userID, Text: text})
	return nil
}

func (f *fakeMessenger) SendPhoto(ctx context.Context, userID int64, photo []byte, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.photoErr != nil {
		return f.photoErr
	}
	f.photos = append(f.photos, sentPhoto{UserID: userID, Photo: photo, Caption: caption})
	return nil
}
