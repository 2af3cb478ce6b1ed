package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mreece/fincast/internal/api"
	"github.com/mreece/fincast/internal/auth"
	"github.com/mreece/fincast/internal/middleware"
	"github.com/mreece/fincast/internal/service"
	"github.com/mreece/fincast/internal/storage/sqlite"
	"github.com/mreece/fincast/pkg/logging"
)

const defaultPort = "8080"

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/fincast.db")
	port := getEnv("PORT", defaultPort)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		// Ephemeral secret: tokens do not survive a restart.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			slog.Error("Failed to generate JWT secret", "error", err)
			os.Exit(1)
		}
		jwtSecret = hex.EncodeToString(buf)
		slog.Warn("JWT_SECRET not set, using an ephemeral secret")
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, 24*time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := api.NewServer(
		service.NewSimulationService(store, slog.Default()),
		service.NewAuthService(authenticator, jwtManager, slog.Default()),
		jwtManager,
	)

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, middleware.Logging(server)); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
