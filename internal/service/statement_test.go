package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"securebank/internal/models"
)

func TestStatementExport(t *testing.T) {
	t.Parallel()

	txs := []models.Transaction{
		{
			Type:         models.TypeCredit,
			Amount:       decimal.NewFromInt(2500),
			Description:  "Salary Credit",
			Category:     "Income",
			BalanceAfter: decimal.RequireFromString("45750.50"),
			Date:         time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			Type:         models.TypeDebit,
			Amount:       decimal.NewFromInt(150),
			Description:  "Grocery Store",
			Category:     "Shopping",
			BalanceAfter: decimal.RequireFromString("43250.50"),
			Date:         time.Date(2026, 7, 31, 18, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	svc := &StatementService{}
	require.NoError(t, svc.Export(&buf, txs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"date", "type", "description", "category", "amount", "balance_after"}, records[0])
	require.Equal(t, []string{"2026-08-01T09:00:00Z", "credit", "Salary Credit", "Income", "2500.00", "45750.50"}, records[1])
	require.Equal(t, "150.00", records[2][4])
}

func TestStatementExportEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svc := &StatementService{}
	require.NoError(t, svc.Export(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestDefaultStatementName(t *testing.T) {
	t.Parallel()

	name := DefaultStatementName(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	require.Equal(t, "securebank-statement-20260829.csv", name)
}
