package notifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/solxray/solana-wallet-xray/internal/helius"
	"github.com/solxray/solana-wallet-xray/internal/solana"
)

// Message is one notification ready for delivery
type Message struct {
	UserID int64
	Text   string
	Image  string
}

// addressPattern is a heuristic for base58 addresses and signatures
// embedded in free text.
var addressPattern = regexp.MustCompile(`[A-Za-z0-9]{32,44}`)

// formatMessages builds one Markdown notification per matched user.
func formatMessages(ev *helius.TransactionEvent, matches []userMatch, imageURL string) []Message {
	messages := make([]Message, 0, len(matches))
	for _, m := range matches {
		messages = append(messages, Message{
			UserID: m.UserID,
			Text:   formatText(ev, m.Addresses),
			Image:  imageURL,
		})
	}
	return messages
}

func formatText(ev *helius.TransactionEvent, ownAddresses []string) string {
	txType := strings.ReplaceAll(ev.Type, "_", " ")

	var text string
	if ev.Source != "SYSTEM_PROGRAM" {
		text = fmt.Sprintf("*%s* on %s", txType, ev.Source)
	} else {
		text = fmt.Sprintf("*%s*", txType)
	}

	if ev.Description != "" {
		text = text + "\n\n" + ev.Description
	}

	// Annotate the user's own wallets before the global redaction so the
	// literal addresses are gone by the time the pattern runs.
	for _, addr := range ownAddresses {
		if !strings.Contains(text, addr) {
			continue
		}
		text = strings.ReplaceAll(text, addr,
			fmt.Sprintf("*YOUR WALLET* (%s)", solana.Abbreviate(addr)))
	}

	text = addressPattern.ReplaceAllStringFunc(text, solana.Abbreviate)

	text = text + fmt.Sprintf(
		"\n[XRAY](https://xray.helius.xyz/tx/%s) | [Solscan](https://solscan.io/tx/%s)",
		ev.Signature, ev.Signature,
	)

	// Legacy-Markdown safety: drop hashes, space out underscores.
	text = strings.ReplaceAll(text, "#", "")
	text = strings.ReplaceAll(text, "_", " ")

	return text
}
