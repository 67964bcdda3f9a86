package bank

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMI(t *testing.T) {
	t.Parallel()

	quote := CalculateEMI(decimal.NewFromInt(100000), decimal.NewFromInt(12), 12)
	require.Equal(t, "8884.88", quote.EMI.StringFixed(2))
	require.Equal(t, 12, quote.TenureMonths)
	require.True(t, quote.TotalAmount.Sub(quote.TotalInterest).Equal(quote.LoanAmount),
		"total %s interest %s principal %s", quote.TotalAmount, quote.TotalInterest, quote.LoanAmount)
	require.True(t, quote.TotalInterest.IsPositive())
}

func TestCalculateEMIZeroRate(t *testing.T) {
	t.Parallel()

	quote := CalculateEMI(decimal.NewFromInt(12000), decimal.Zero, 12)
	require.Equal(t, "1000.00", quote.EMI.StringFixed(2))
	require.True(t, quote.TotalInterest.IsZero())
}

func TestPayEMI(t *testing.T) {
	t.Parallel()
	svc, user := testService(t)
	ctx := context.Background()

	loans, err := svc.ListLoans(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	loan := loans[0]

	receipt, err := svc.PayEMI(ctx, user.ID, loan.ID)
	require.NoError(t, err)
	require.True(t, receipt.NewBalance.Equal(user.Balance.Sub(loan.EMI)))
	require.True(t, receipt.RemainingAmount.Equal(loan.Outstanding.Sub(loan.EMI)))

	after, err := svc.ListLoans(ctx, user.ID)
	require.NoError(t, err)
	for _, l := range after {
		if l.ID != loan.ID {
			continue
		}
		require.Equal(t, loan.RemainingMonths-1, l.RemainingMonths)
		require.NotEqual(t, loan.NextDueDate, l.NextDueDate)
	}

	recent, err := svc.Recent(ctx, user.ID, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "EMI", recent[0].Category)
	require.Equal(t, "EMI Payment - "+loan.Type, recent[0].Description)
}

func TestPayEMIUnknownLoan(t *testing.T) {
	t.Parallel()
	svc, user := testService(t)

	_, err := svc.PayEMI(context.Background(), user.ID, "no-such-loan")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApplyLoan(t *testing.T) {
	t.Parallel()
	svc, user := testService(t)

	receipt, err := svc.ApplyLoan(context.Background(), user.ID, LoanApplicationRequest{
		LoanType:        "Car Loan",
		RequestedAmount: decimal.NewFromInt(30000),
		MonthlyIncome:   decimal.NewFromInt(6000),
		EmploymentType:  "salaried",
		Purpose:         "vehicle",
	})
	require.NoError(t, err)
	require.NotEmpty(t, receipt.ApplicationID)
	require.Equal(t, "pending", receipt.Status)
}

func TestAdvanceDueDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2026-03-15", advanceDueDate("2026-02-15"))
	require.Equal(t, "2027-01-01", advanceDueDate("2026-12-01"))
	// unparseable input passes through
	require.Equal(t, "soon", advanceDueDate("soon"))
}
