package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrLimitReached  = errors.New("wallet limit reached")
	ErrAlreadyExists = errors.New("already exists")
)

// Storage handles all database operations
type Storage struct {
	db *sql.DB
}

// New creates a new Storage instance and initializes the database
func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS wallets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			address TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wallets_user_id ON wallets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wallets_address ON wallets(address)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			message TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_user_id ON messages(user_id)`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}

	return nil
}

// --- Wallets ---

// AddWallet registers an active wallet for a user. Returns ErrAlreadyExists
// if the user already has this address active and ErrLimitReached when the
// user is at maxWallets. A previously deleted address can be re-added.
func (s *Storage) AddWallet(ctx context.Context, userID int64, address string, maxWallets int) (*Wallet, error) {
	var existing int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM wallets WHERE user_id = ? AND address = ? AND status = ?",
		userID, address, StatusActive,
	).Scan(&existing)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyExists
	}

	count, err := s.CountActiveWallets(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= maxWallets {
		return nil, ErrLimitReached
	}

	now := time.Now().Unix()
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO wallets (user_id, address, status, created_at) VALUES (?, ?, ?, ?)",
		userID, address, StatusActive, now,
	)
	if err != nil {
		return nil, err
	}

	id, _ := result.LastInsertId()
	return &Wallet{
		ID:        id,
		UserID:    userID,
		Address:   address,
		Status:    StatusActive,
		CreatedAt: time.Unix(now, 0),
	}, nil
}

// ListActiveWallets returns a user's active wallets, newest first
func (s *Storage) ListActiveWallets(ctx context.Context, userID int64) ([]Wallet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, address, status, created_at
		 FROM wallets WHERE user_id = ? AND status = ? ORDER BY id DESC`,
		userID, StatusActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWallets(rows)
}

// FindActiveWallets returns every active wallet whose address is in addresses
func (s *Storage) FindActiveWallets(ctx context.Context, addresses []string) ([]Wallet, error) {
	if len(addresses) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(addresses)-1) + "?"
	args := make([]any, 0, len(addresses)+1)
	for _, a := range addresses {
		args = append(args, a)
	}
	args = append(args, StatusActive)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, address, status, created_at
		 FROM wallets WHERE address IN (`+placeholders+`) AND status = ? ORDER BY id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWallets(rows)
}

// RemoveWallet soft-deletes a wallet. The row is kept with status "deleted".
func (s *Storage) RemoveWallet(ctx context.Context, userID, walletID int64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE wallets SET status = ? WHERE id = ? AND user_id = ? AND status = ?",
		StatusDeleted, walletID, userID, StatusActive,
	)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveWallets returns the number of active wallets for a user
func (s *Storage) CountActiveWallets(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM wallets WHERE user_id = ? AND status = ?",
		userID, StatusActive,
	).Scan(&count)
	return count, err
}

// ActiveAddresses returns the distinct addresses of all active wallets
func (s *Storage) ActiveAddresses(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT address FROM wallets WHERE status = ? ORDER BY address",
		StatusActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, err
		}
		addresses = append(addresses, addr)
	}

	return addresses, rows.Err()
}

// --- Messages ---

// AppendMessage records a notification delivery attempt
func (s *Storage) AppendMessage(ctx context.Context, userID int64, text string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (user_id, message, created_at) VALUES (?, ?, ?)",
		userID, text, at.Unix(),
	)
	return err
}

// ListMessages returns the most recent audit records for a user
func (s *Storage) ListMessages(ctx context.Context, userID int64, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, message, created_at
		 FROM messages WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var createdAt int64

		if err := rows.Scan(&m.ID, &m.UserID, &m.Text, &createdAt); err != nil {
			return nil, err
		}

		m.CreatedAt = time.Unix(createdAt, 0)
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func scanWallets(rows *sql.Rows) ([]Wallet, error) {
	var wallets []Wallet
	for rows.Next() {
		var w Wallet
		var createdAt int64

		if err := rows.Scan(&w.ID, &w.UserID, &w.Address, &w.Status, &createdAt); err != nil {
			return nil, err
		}

		w.CreatedAt = time.Unix(createdAt, 0)
		wallets = append(wallets, w)
	}

	return wallets, rows.Err()
}
