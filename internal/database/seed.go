package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"securebank/internal/auth"
	"securebank/internal/database/repository"
	"securebank/internal/models"
)

// Demo account credentials seeded for the offline backend.
const (
	DemoEmail         = "john@example.com"
	DemoPassword      = "password123"
	DemoAccountNumber = "ACC1234567890"
	DefaultIFSCCode   = "BANK0001234"
)

// SeedDemoData ensures the demo user and their ledger exist.
// It is idempotent and safe to run on every startup.
func SeedDemoData(ctx context.Context, db *sql.DB) error {
	users := repository.NewUserRepo(db)
	existing, err := users.ByEmail(ctx, DemoEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	userID := uuid.NewString()
	user := repository.UserRecord{
		User: models.User{
			ID:            userID,
			Name:          "John Doe",
			Email:         DemoEmail,
			Phone:         "+1234567890",
			AccountNumber: DemoAccountNumber,
			IFSCCode:      DefaultIFSCCode,
			Balance:       dec("45750.50"),
			AccountType:   "Savings",
			CreatedAt:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			IsActive:      true,
		},
		PasswordHash: hash,
	}
	if err := users.Insert(ctx, user); err != nil {
		return err
	}

	txRepo := repository.NewTransactionRepo(db)
	seedTxs := []models.Transaction{
		{Type: models.TypeCredit, Amount: dec("2500"), Description: "Salary Credit", Category: "Income", BalanceAfter: dec("45750.50"), Date: seedDate(1, 9, 0)},
		{Type: models.TypeDebit, Amount: dec("150"), Description: "Grocery Store", Category: "Shopping", BalanceAfter: dec("43250.50"), Date: seedDate(2, 18, 30)},
		{Type: models.TypeDebit, Amount: dec("50"), Description: "Coffee Shop", Category: "Food", BalanceAfter: dec("43400.50"), Date: seedDate(2, 14, 15)},
		{Type: models.TypeCredit, Amount: dec("1000"), Description: "Freelance Payment", Category: "Income", BalanceAfter: dec("43450.50"), Date: seedDate(3, 16, 45)},
		{Type: models.TypeDebit, Amount: dec("300"), Description: "Electric Bill", Category: "Bills", BalanceAfter: dec("42450.50"), Date: seedDate(4, 12, 0)},
		{Type: models.TypeDebit, Amount: dec("80"), Description: "Gas Station", Category: "Transport", BalanceAfter: dec("42750.50"), Date: seedDate(5, 19, 20)},
		{Type: models.TypeCredit, Amount: dec("200"), Description: "Cashback Reward", Category: "Rewards", BalanceAfter: dec("42830.50"), Date: seedDate(6, 11, 30)},
		{Type: models.TypeDebit, Amount: dec("1200"), Description: "Rent Payment", Category: "Housing", BalanceAfter: dec("42630.50"), Date: seedDate(7, 10, 0)},
	}
	for _, t := range seedTxs {
		t.ID = uuid.NewString()
		t.Status = "completed"
		if err := txRepo.Insert(ctx, userID, t); err != nil {
			return err
		}
	}

	loanRepo := repository.NewLoanRepo(db)
	loans := []models.Loan{
		{Type: "Home Loan", Amount: dec("500000"), Outstanding: dec("425000"), EMI: dec("3500"), InterestRate: dec("8.5"), Tenure: 240, RemainingMonths: 180, NextDueDate: nextMonthDue(1)},
		{Type: "Personal Loan", Amount: dec("100000"), Outstanding: dec("65000"), EMI: dec("2200"), InterestRate: dec("12.5"), Tenure: 60, RemainingMonths: 30, NextDueDate: nextMonthDue(25)},
	}
	for _, l := range loans {
		l.ID = uuid.NewString()
		l.Status = "active"
		l.CreatedAt = Now()
		if err := loanRepo.Insert(ctx, userID, l); err != nil {
			return err
		}
	}

	invRepo := repository.NewInvestmentRepo(db)
	mfUnits := dec("2340.5")
	stockUnits := dec("150")
	investments := []models.Investment{
		{Type: "Mutual Fund", Name: "Equity Growth Fund", Amount: dec("50000"), CurrentValue: dec("58500"), Units: &mfUnits},
		{Type: "Fixed Deposit", Name: "FD - 1 Year", Amount: dec("25000"), CurrentValue: dec("27000"), MaturityDate: Now().AddDate(0, 6, 0).Format("2006-01-02")},
		{Type: "Stocks", Name: "Tech Stocks Portfolio", Amount: dec("30000"), CurrentValue: dec("35600"), Units: &stockUnits},
	}
	for _, inv := range investments {
		inv.ID = uuid.NewString()
		inv.Status = "active"
		inv.CreatedAt = Now()
		if err := invRepo.Insert(ctx, userID, inv); err != nil {
			return err
		}
	}

	contactRepo := repository.NewContactRepo(db)
	contacts := []models.Contact{
		{Name: "Alice Johnson", AccountNumber: "ACC9876543210", Phone: "+1234567891", Avatar: "AJ"},
		{Name: "Bob Smith", AccountNumber: "ACC5432109876", Phone: "+1234567892", Avatar: "BS"},
		{Name: "Carol Williams", AccountNumber: "ACC1357924680", Phone: "+1234567893", Avatar: "CW"},
		{Name: "David Brown", AccountNumber: "ACC2468013579", Phone: "+1234567894", Avatar: "DB"},
	}
	for _, c := range contacts {
		c.ID = uuid.NewString()
		if err := contactRepo.Insert(ctx, userID, c); err != nil {
			return err
		}
	}

	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedDate places ledger entries in the recent past so the history reads naturally.
func seedDate(daysAgo, hour, minute int) time.Time {
	d := Now().AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

// nextMonthDue returns the given day of next month as a due date string.
func nextMonthDue(day int) string {
	n := Now().AddDate(0, 1, 0)
	return time.Date(n.Year(), n.Month(), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
