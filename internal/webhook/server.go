package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/solxray/solana-wallet-xray/internal/helius"
)

// EventHandler is a function that handles one incoming transaction event
type EventHandler func(ctx context.Context, ev *helius.TransactionEvent)

// Server handles incoming webhooks from Helius
type Server struct {
	handler  EventHandler
	validate *validator.Validate
	log      *slog.Logger

	server *http.Server
}

// NewServer creates a new webhook server
func NewServer(handler EventHandler, log *slog.Logger) *Server {
	return &Server{
		handler:  handler,
		validate: validator.New(),
		log:      log,
	}
}

// Start starts the webhook server
func (s *Server) Start(ctx context.Context, port int) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.log.Info("starting webhook server", "port", port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()

	return s.server.ListenAndServe()
}

// Routes returns the server's handler
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/wallet", s.handleWallet)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleWallet accepts a JSON array of enhanced transaction events.
// Malformed payloads get a 400; anything past validation is acknowledged
// with a fixed OK regardless of delivery outcomes.
func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var events []helius.TransactionEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		s.log.Warn("invalid webhook payload", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if len(events) == 0 {
		s.log.Warn("empty webhook payload")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for i := range events {
		if err := s.validate.Struct(&events[i]); err != nil {
			s.log.Warn("malformed transaction event", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	s.log.Debug("webhook received", "events", len(events))

	// Process asynchronously; the response never reflects delivery results.
	for i := range events {
		ev := events[i]
		go s.handler(context.Background(), &ev)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
