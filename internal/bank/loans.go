package bank

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"securebank/internal/database"
	"securebank/internal/database/repository"
	"securebank/internal/models"
)

// dueDateLayout is the wire format for loan due dates.
const dueDateLayout = "2006-01-02"

// ListLoans returns the user's active loans.
func (s *Service) ListLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	return s.Loans.ListActive(ctx, userID)
}

// ApplyLoan records a loan application; review is out of band.
func (s *Service) ApplyLoan(ctx context.Context, userID string, req LoanApplicationRequest) (LoanApplicationReceipt, error) {
	app := repository.LoanApplication{
		ID:              uuid.NewString(),
		UserID:          userID,
		LoanType:        req.LoanType,
		RequestedAmount: req.RequestedAmount,
		MonthlyIncome:   req.MonthlyIncome,
		EmploymentType:  req.EmploymentType,
		Purpose:         req.Purpose,
		Status:          "pending",
		CreatedAt:       database.Now(),
	}
	if err := s.Loans.InsertApplication(ctx, app); err != nil {
		return LoanApplicationReceipt{}, err
	}
	return LoanApplicationReceipt{
		Message:       "Loan application submitted successfully",
		ApplicationID: app.ID,
		Status:        app.Status,
	}, nil
}

// PayEMI debits one installment, decrements the outstanding amount, and
// advances the due date by one month. The loan closes when nothing remains.
func (s *Service) PayEMI(ctx context.Context, userID, loanID string) (EMIReceipt, error) {
	loan, err := s.Loans.Get(ctx, userID, loanID)
	if err != nil {
		return EMIReceipt{}, err
	}
	if loan == nil {
		return EMIReceipt{}, ErrNotFound
	}

	rec, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return EMIReceipt{}, err
	}
	if rec == nil {
		return EMIReceipt{}, ErrNotFound
	}
	if rec.Balance.LessThan(loan.EMI) {
		return EMIReceipt{}, ErrInsufficientBalance
	}

	newBalance := rec.Balance.Sub(loan.EMI)

	outstanding := loan.Outstanding.Sub(loan.EMI)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	remaining := loan.RemainingMonths - 1
	if remaining < 0 {
		remaining = 0
	}
	status := "active"
	if outstanding.IsZero() {
		status = "closed"
	}

	entry := models.Transaction{
		ID:           uuid.NewString(),
		Type:         models.TypeDebit,
		Amount:       loan.EMI,
		Description:  "EMI Payment - " + loan.Type,
		Category:     "EMI",
		BalanceAfter: newBalance,
		Status:       "completed",
		Date:         database.Now(),
	}

	err = database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := s.Users.UpdateBalanceTx(ctx, tx, userID, newBalance); err != nil {
			return err
		}
		if err := s.Loans.UpdateRepaymentTx(ctx, tx, loanID, outstanding, remaining, advanceDueDate(loan.NextDueDate), status); err != nil {
			return err
		}
		return s.Transactions.InsertTx(ctx, tx, userID, entry)
	})
	if err != nil {
		return EMIReceipt{}, err
	}

	return EMIReceipt{
		Message:         "EMI paid successfully",
		TransactionID:   entry.ID,
		NewBalance:      newBalance,
		RemainingAmount: outstanding,
	}, nil
}

// CalculateEMI quotes an installment using the standard amortization formula:
// EMI = P * r * (1+r)^n / ((1+r)^n - 1), r being the monthly rate.
func CalculateEMI(loanAmount, annualRate decimal.Decimal, tenureMonths int) EMIQuote {
	n := decimal.NewFromInt(int64(tenureMonths))
	monthlyRate := annualRate.Div(decimal.NewFromInt(1200))
	if monthlyRate.IsZero() {
		// Interest-free: equal installments of the principal.
		return EMIQuote{
			LoanAmount:    loanAmount,
			InterestRate:  annualRate,
			TenureMonths:  tenureMonths,
			EMI:           loanAmount.Div(n).Round(2),
			TotalAmount:   loanAmount,
			TotalInterest: decimal.Zero,
		}
	}
	factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
	emi := loanAmount.Mul(monthlyRate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	total := emi.Mul(n)
	return EMIQuote{
		LoanAmount:    loanAmount,
		InterestRate:  annualRate,
		TenureMonths:  tenureMonths,
		EMI:           emi.Round(2),
		TotalAmount:   total.Round(2),
		TotalInterest: total.Sub(loanAmount).Round(2),
	}
}

func advanceDueDate(due string) string {
	t, err := time.Parse(dueDateLayout, due)
	if err != nil {
		return due
	}
	return t.AddDate(0, 1, 0).Format(dueDateLayout)
}
