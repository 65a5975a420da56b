package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/solxray/solana-wallet-xray/internal/solana"
	"github.com/solxray/solana-wallet-xray/internal/storage"
)

func welcomeMessage() string {
	return "🤖 Ahoy there, Solana Wallet Wrangler! Welcome to Solana Wallet Xray Bot! 🤖\n\n" +
		"I'm your trusty sidekick, here to help you juggle those wallets and keep an eye on transactions.\n" +
		"Once you've added your wallets, you can sit back and relax, as I'll swoop in with a snappy notification " +
		"and a brief transaction summary every time your wallet makes a move on Solana. 🚀\n" +
		"Have a blast using the bot! 😄\n\n" +
		"Ready to rumble? Use the buttons below and follow the prompts:"
}

// --- Handlers ---

func (b *Bot) startHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.states.Clear(update.Message.From.ID)
	b.sendMessage(ctx, update.Message.Chat.ID, welcomeMessage(), MainKeyboard())
}

func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	userID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)

	state := b.states.Get(userID)
	if state == nil {
		return
	}

	switch state.State {
	case StateWaitAddress:
		b.handleWaitAddress(ctx, update.Message, text)
	}
}

// handleWaitAddress vets and registers a wallet address: base58 shape,
// daily transaction volume, per-user wallet limit, duplicates.
func (b *Bot) handleWaitAddress(ctx context.Context, msg *models.Message, address string) {
	userID := msg.From.ID

	if !solana.IsWalletAddress(address) {
		b.sendMessage(ctx, msg.Chat.ID,
			"Uh-oh! That Solana wallet address seems a bit fishy. Double-check it and send a valid one, please! 🕵️‍♂️",
			BackKeyboard(),
		)
		return
	}

	txCount, err := b.helius.CountRecentTransactions(ctx, address)
	if err != nil {
		b.log.Error("count recent transactions", "address", address, "error", err)
		b.sendMessage(ctx, msg.Chat.ID,
			"Hmm, I couldn't check that wallet's activity right now. Give it another shot in a moment! 🔁",
			BackKeyboard(),
		)
		return
	}
	if txCount >= b.cfg.MaxTxPerDay {
		b.sendMessage(ctx, msg.Chat.ID,
			fmt.Sprintf("Whoa, slow down Speedy Gonzales! 🏎️ We can only handle wallets with under %d transactions per day. Your wallet's at %d. Let's pick another, shall we? 😉",
				b.cfg.MaxTxPerDay, txCount),
			BackKeyboard(),
		)
		return
	}

	wallet, err := b.storage.AddWallet(ctx, userID, address, b.cfg.MaxWalletsPerUser)
	b.states.Clear(userID)

	switch {
	case errors.Is(err, storage.ErrLimitReached):
		b.sendMessage(ctx, msg.Chat.ID,
			fmt.Sprintf("Oops! You've reached the wallet limit! It seems you're quite the collector, but we can only handle up to %d wallets per user. Time to make some tough choices! 😄",
				b.cfg.MaxWalletsPerUser),
			MainKeyboard(),
		)
		return
	case errors.Is(err, storage.ErrAlreadyExists):
		b.sendMessage(ctx, msg.Chat.ID,
			"Hey there, déjà vu! You've already added this wallet. Time for a different action, perhaps? 🔄",
			MainKeyboard(),
		)
		return
	case err != nil:
		b.log.Error("add wallet", "error", err)
		b.sendMessage(ctx, msg.Chat.ID, "❌ Something went sideways while adding the wallet. Try again!", MainKeyboard())
		return
	}

	b.log.Info("wallet added",
		"user_id", userID,
		"wallet_id", wallet.ID,
		"address", wallet.Address,
	)

	if err := b.syncer.Sync(ctx); err != nil {
		b.log.Error("sync webhook after add", "error", err)
	}

	b.sendMessage(ctx, msg.Chat.ID,
		fmt.Sprintf("Great Scott! Your wallet %s is now on my watchlist. 🎉 Sit tight and I'll ping you the moment it makes a move!",
			solana.Abbreviate(wallet.Address)),
		MainKeyboard(),
	)
}

func (b *Bot) callbackHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	cb := update.CallbackQuery
	data := cb.Data

	tgBot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
	})

	switch {
	case data == "back":
		b.showMainMenu(ctx, cb)
	case data == "add":
		b.handleAdd(ctx, cb)
	case data == "delete":
		b.showWalletList(ctx, cb)
	case data == "show":
		b.showWallets(ctx, cb)
	case strings.HasPrefix(data, "del:"):
		b.handleDelete(ctx, cb, data)
	default:
		b.log.Warn("unknown callback", "data", data, "user_id", cb.From.ID)
	}
}

func (b *Bot) showMainMenu(ctx context.Context, cb *models.CallbackQuery) {
	b.states.Clear(cb.From.ID)
	b.editMessage(ctx, cb.Message,
		"No worries! Let's head back to the main menu for more fun! 🎉\n\n"+
			"The world is your oyster! Choose an action and let's embark on this thrilling journey! 🌍",
		MainKeyboard(),
	)
}

func (b *Bot) handleAdd(ctx context.Context, cb *models.CallbackQuery) {
	b.states.Set(cb.From.ID, StateWaitAddress)
	b.editMessage(ctx, cb.Message,
		"Alright, ready to expand your wallet empire? Send me the wallet address you'd like to add! 🎩",
		BackKeyboard(),
	)
}

func (b *Bot) showWalletList(ctx context.Context, cb *models.CallbackQuery) {
	wallets, err := b.storage.ListActiveWallets(ctx, cb.From.ID)
	if err != nil {
		b.log.Error("list wallets", "error", err)
		return
	}

	if len(wallets) == 0 {
		b.editMessage(ctx, cb.Message,
			"Nothing to delete yet — your wallet list is squeaky clean! ✨",
			MainKeyboard(),
		)
		return
	}

	b.editMessage(ctx, cb.Message,
		"Which wallet has fallen out of favor? Tap the bin next to it! 🗑️",
		WalletsKeyboard(wallets),
	)
}

func (b *Bot) showWallets(ctx context.Context, cb *models.CallbackQuery) {
	wallets, err := b.storage.ListActiveWallets(ctx, cb.From.ID)
	if err != nil {
		b.log.Error("list wallets", "error", err)
		return
	}

	if len(wallets) == 0 {
		b.editMessage(ctx, cb.Message,
			"No wallets on the watchlist yet. Hit ✨ Add and let's fix that! 🚀",
			MainKeyboard(),
		)
		return
	}

	lines := []string{"👀 Your watched wallets:\n"}
	for _, w := range wallets {
		lines = append(lines, fmt.Sprintf("• %s", solana.Abbreviate(w.Address)))
	}
	lines = append(lines, fmt.Sprintf("\nLimit: %d wallets", b.cfg.MaxWalletsPerUser))

	b.editMessage(ctx, cb.Message, strings.Join(lines, "\n"), MainKeyboard())
}

func (b *Bot) handleDelete(ctx context.Context, cb *models.CallbackQuery, data string) {
	walletID, _ := strconv.ParseInt(strings.TrimPrefix(data, "del:"), 10, 64)

	err := b.storage.RemoveWallet(ctx, cb.From.ID, walletID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		b.log.Error("remove wallet", "error", err)
	}
	if err == nil {
		if err := b.syncer.Sync(ctx); err != nil {
			b.log.Error("sync webhook after delete", "error", err)
		}
	}

	// Refresh the wallet list
	b.showWalletList(ctx, cb)
}
