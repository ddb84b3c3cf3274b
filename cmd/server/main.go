package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/chorecast/chorecast/internal/chores"
	"github.com/chorecast/chorecast/internal/config"
	"github.com/chorecast/chorecast/internal/identity"
	"github.com/chorecast/chorecast/internal/ledger"
	"github.com/chorecast/chorecast/internal/middleware"
	"github.com/chorecast/chorecast/internal/service"
	"github.com/chorecast/chorecast/internal/storage/sqlite"
	"github.com/chorecast/chorecast/pkg/logging"
)

const tokenLifetime = 24 * time.Hour

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	ledgerCore, err := ledger.New(context.Background(), store)
	if err != nil {
		slog.Error("Failed to initialize ledger", "error", err)
		os.Exit(1)
	}

	choreService := chores.NewService(store)
	tokens := identity.NewTokenManager(cfg.JWTSecret, tokenLifetime)

	// API routes live behind auth; everything below the /api mux trusts
	// the member id the middleware put in context.
	api := http.NewServeMux()
	service.NewLedgerService(ledgerCore).Register(api)
	service.NewMemberService(store).Register(api)
	service.NewChoreService(choreService).Register(api)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.RequireAuth(tokens)(api))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.RequestLogger(middleware.Metrics(corsMiddleware(mux)))

	// h2c allows HTTP/2 without TLS; a fronting proxy terminates TLS.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
