package bank

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"securebank/internal/models"
)

func TestPortfolioSummarySeeded(t *testing.T) {
	t.Parallel()
	svc, user := testService(t)
	ctx := context.Background()

	sum, err := svc.PortfolioSummary(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, sum.InvestmentsCount)
	require.True(t, sum.TotalInvested.Equal(decimal.NewFromInt(105000)))
	require.True(t, sum.TotalCurrentValue.Equal(decimal.NewFromInt(121100)))
	require.True(t, sum.TotalReturns.Equal(decimal.NewFromInt(16100)))
	require.Equal(t, "15.33", sum.TotalReturnsPercent.StringFixed(2))
}

func TestCreateInvestment(t *testing.T) {
	t.Parallel()
	svc, user := testService(t)
	ctx := context.Background()

	inv, err := svc.CreateInvestment(ctx, user.ID, InvestmentCreateRequest{
		Type:   "Mutual Fund",
		Name:   "Index Fund",
		Amount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	require.Equal(t, "active", inv.Status)
	require.True(t, inv.ReturnsPercent.GreaterThanOrEqual(decimal.NewFromInt(5)))
	require.True(t, inv.ReturnsPercent.LessThanOrEqual(decimal.NewFromInt(20)))
	require.True(t, inv.CurrentValue.GreaterThan(inv.Amount))

	balance, err := svc.Balance(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, balance.Equal(user.Balance.Sub(decimal.NewFromInt(5000))))

	recent, err := svc.Recent(ctx, user.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "Investment in Index Fund", recent[0].Description)
	require.Equal(t, models.TypeDebit, recent[0].Type)
}

func TestCreateInvestmentInsufficientBalance(t *testing.T) {
	t.Parallel()
	svc, user := testService(t)

	_, err := svc.CreateInvestment(context.Background(), user.ID, InvestmentCreateRequest{
		Type:   "Stocks",
		Name:   "Everything",
		Amount: user.Balance.Add(decimal.NewFromInt(1)),
	})
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestCreateInvestmentRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()
	svc, user := testService(t)
	ctx := context.Background()

	for _, amount := range []string{"-5000", "0"} {
		_, err := svc.CreateInvestment(ctx, user.ID, InvestmentCreateRequest{
			Type:   "Stocks",
			Name:   "Short Everything",
			Amount: decimal.RequireFromString(amount),
		})
		require.ErrorIs(t, err, ErrInvalidAmount, "amount %s", amount)
	}

	balance, err := svc.Balance(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, balance.Equal(user.Balance), "balance was %s", balance)
}

func TestSellInvestment(t *testing.T) {
	t.Parallel()
	svc, user := testService(t)
	ctx := context.Background()

	investments, err := svc.ListInvestments(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, investments, 3)
	target := investments[0]

	receipt, err := svc.SellInvestment(ctx, user.ID, target.ID)
	require.NoError(t, err)
	require.True(t, receipt.AmountReceived.Equal(target.CurrentValue))
	require.True(t, receipt.NewBalance.Equal(user.Balance.Add(target.CurrentValue)))

	after, err := svc.ListInvestments(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, after, 2)
	for _, inv := range after {
		require.NotEqual(t, target.ID, inv.ID)
	}

	// selling twice fails: the holding is no longer active
	_, err = svc.SellInvestment(ctx, user.ID, target.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
