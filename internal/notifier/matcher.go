package notifier

import (
	"context"

	"github.com/solxray/solana-wallet-xray/internal/helius"
)

// userMatch groups the matched wallet addresses of one user for one event
type userMatch struct {
	UserID    int64
	Addresses []string
}

// collectAddresses gathers every account referenced by the event: all
// instruction accounts plus both sides of each token transfer. Duplicates
// are dropped, first-seen order is kept.
func collectAddresses(ev *helius.TransactionEvent) []string {
	var addresses []string
	seen := make(map[string]bool)

	add := func(addr string) {
		if addr == "" || seen[addr] {
			return
		}
		seen[addr] = true
		addresses = append(addresses, addr)
	}

	for _, inst := range ev.Instructions {
		for _, acc := range inst.Accounts {
			add(acc)
		}
	}
	for _, tt := range ev.TokenTransfers {
		add(tt.FromUserAccount)
		add(tt.ToUserAccount)
	}

	return addresses
}

// matchEvent intersects the event's addresses with the active wallet
// registry and groups the hits by user. A user with several matching
// wallets appears once, with all of their matched addresses.
func matchEvent(ctx context.Context, registry WalletRegistry, ev *helius.TransactionEvent) ([]userMatch, error) {
	addresses := collectAddresses(ev)
	if len(addresses) == 0 {
		return nil, nil
	}

	wallets, err := registry.FindActiveWallets(ctx, addresses)
	if err != nil {
		return nil, err
	}

	var matches []userMatch
	byUser := make(map[int64]int)

	for _, w := range wallets {
		idx, ok := byUser[w.UserID]
		if !ok {
			idx = len(matches)
			byUser[w.UserID] = idx
			matches = append(matches, userMatch{UserID: w.UserID})
		}

		duplicate := false
		for _, addr := range matches[idx].Addresses {
			if addr == w.Address {
				duplicate = true
				break
			}
		}
		if !duplicate {
			matches[idx].Addresses = append(matches[idx].Addresses, w.Address)
		}
	}

	return matches, nil
}
