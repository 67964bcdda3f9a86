package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"securebank/internal/auth"
	"securebank/internal/backend"
	"securebank/internal/bank"
	"securebank/internal/config"
	"securebank/internal/database"
	"securebank/internal/session"
)

func loggedInApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDemoData(ctx, db))

	mgr := session.NewManager(session.NewStateStoreAt(t.TempDir()))
	local := backend.NewLocal(bank.NewService(db), auth.NewTokenManager("test-secret", "securebank", time.Hour), mgr.Token)
	local.OnUnauthorized = mgr.Invalidate
	mgr.SetProvider(local)
	require.True(t, mgr.Login(ctx, database.DemoEmail, database.DemoPassword).OK)

	cfg := config.Config{UI: config.UIConfig{CurrencySymbol: "$", DateFormat: "02/01/2006"}}
	app := New(ctx, cfg, mgr)
	app.state = viewSend
	return app
}

func TestTransferReceiptUpdatesBalanceBeforeDashboard(t *testing.T) {
	t.Parallel()
	app := loggedInApp(t)

	before, ok := app.mgr.User()
	require.True(t, ok)
	served := before.Balance.Sub(decimal.RequireFromString("250.25"))

	model, _ := app.Update(transferDoneMsg{
		Message:       "Money sent successfully",
		TransactionID: "tx-1",
		NewBalance:    served,
	})
	a := model.(*App)

	require.Equal(t, viewDashboard, a.state)
	after, ok := a.mgr.User()
	require.True(t, ok)
	require.True(t, after.Balance.Equal(served), "dashboard would show %s", after.Balance)
}

func TestSaleReceiptUpdatesBalance(t *testing.T) {
	t.Parallel()
	app := loggedInApp(t)
	app.state = viewInvestments

	before, ok := app.mgr.User()
	require.True(t, ok)
	served := before.Balance.Add(decimal.RequireFromString("27500.00"))

	model, _ := app.Update(soldMsg{
		Message:        "Investment sold successfully",
		AmountReceived: decimal.RequireFromString("27500.00"),
		NewBalance:     served,
	})
	a := model.(*App)

	after, ok := a.mgr.User()
	require.True(t, ok)
	require.True(t, after.Balance.Equal(served))
}
