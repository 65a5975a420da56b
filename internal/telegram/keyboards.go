package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/solxray/solana-wallet-xray/internal/solana"
	"github.com/solxray/solana-wallet-xray/internal/storage"
)

// MainKeyboard returns the main menu keyboard
func MainKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✨ Add", CallbackData: "add"},
				{Text: "🗑️ Delete", CallbackData: "delete"},
				{Text: "👀 Show", CallbackData: "show"},
			},
		},
	}
}

// WalletsKeyboard returns a keyboard with one delete button per wallet
func WalletsKeyboard(wallets []storage.Wallet) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton

	for _, w := range wallets {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: solana.Abbreviate(w.Address), URL: fmt.Sprintf("https://xray.helius.xyz/account/%s", w.Address)},
			{Text: "🗑", CallbackData: fmt.Sprintf("del:%d", w.ID)},
		})
	}

	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "🔙 Back", CallbackData: "back"},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// BackKeyboard returns a simple back button
func BackKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "🔙 Back", CallbackData: "back"},
			},
		},
	}
}
