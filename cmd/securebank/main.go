package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"securebank/internal/api"
	"securebank/internal/auth"
	"securebank/internal/backend"
	"securebank/internal/bank"
	"securebank/internal/config"
	"securebank/internal/database"
	"securebank/internal/session"
	"securebank/internal/tui"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if _, err := os.Stat(config.Path()); os.IsNotExist(err) {
		if err := config.Save(cfg); err != nil {
			log.Printf("config: write defaults: %v", err)
		}
	}

	store, err := session.NewStateStore()
	if err != nil {
		log.Fatalf("state store: %v", err)
	}
	mgr := session.NewManager(store)

	var provider backend.Provider
	switch strings.ToLower(strings.TrimSpace(cfg.Backend.Mode)) {
	case "remote":
		client := api.New(cfg.Backend.BaseURL, mgr.Token)
		client.OnUnauthorized = mgr.Invalidate
		provider = backend.NewRemote(client)
	default:
		provider = localProvider(ctx, cfg, mgr)
	}
	mgr.SetProvider(provider)

	p := tea.NewProgram(tui.New(ctx, cfg, mgr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// localProvider runs the whole bank in-process against sqlite, seeded with
// the demo dataset.
func localProvider(ctx context.Context, cfg config.Config, mgr *session.Manager) backend.Provider {
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
	if err := database.SeedDemoData(ctx, db); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}

	svc := bank.NewService(db)
	tokens := auth.NewTokenManager(cfg.Server.TokenSecret, cfg.Server.TokenIssuer, 24*time.Hour)
	local := backend.NewLocal(svc, tokens, mgr.Token)
	local.OnUnauthorized = mgr.Invalidate
	return local
}
