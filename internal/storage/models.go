package storage

import "time"

// Wallet statuses
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Wallet represents a registered Solana wallet
type Wallet struct {
	ID        int64
	UserID    int64
	Address   string
	Status    string
	CreatedAt time.Time
}

// Message is an audit record of a notification delivery attempt
type Message struct {
	ID        int64
	UserID    int64
	Text      string
	CreatedAt time.Time
}
