package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"securebank/internal/auth"
	"securebank/internal/bank"
	"securebank/internal/config"
	"securebank/internal/database"
	"securebank/internal/server"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDemoData(ctx, db); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}

	srv := &server.Server{
		Bank:   bank.NewService(db),
		Tokens: auth.NewTokenManager(cfg.Server.TokenSecret, cfg.Server.TokenIssuer, 24*time.Hour),
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("bankd listening on %s", cfg.Server.Addr)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
