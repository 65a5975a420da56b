package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Telegram
	BotToken string

	// Helius
	HeliusKey       string
	HeliusAPIURL    string
	HeliusRPCURL    string
	HeliusWebhookID string

	// Webhook
	WebhookURL  string
	WebhookPort int

	// Database
	DBPath string

	// Limits
	MaxWalletsPerUser int
	MaxTxPerDay       int
}

func Load() *Config {
	return &Config{
		// Telegram
		BotToken: getEnv("BOT_TOKEN", ""),

		// Helius
		HeliusKey:       getEnv("HELIUS_KEY", ""),
		HeliusAPIURL:    strings.TrimSuffix(getEnv("HELIUS_API_URL", "https://api.helius.xyz"), "/"),
		HeliusRPCURL:    strings.TrimSuffix(getEnv("HELIUS_RPC_URL", "https://rpc.helius.xyz"), "/"),
		HeliusWebhookID: getEnv("HELIUS_WEBHOOK_ID", ""),

		// Webhook
		WebhookURL:  getEnv("WEBHOOK_URL", ""),
		WebhookPort: getEnvInt("WEBHOOK_PORT", 5002),

		// Database
		DBPath: getEnv("DB_PATH", "./xray.db"),

		// Limits
		MaxWalletsPerUser: getEnvInt("MAX_WALLETS_PER_USER", 5),
		MaxTxPerDay:       getEnvInt("MAX_TX_PER_DAY", 50),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
