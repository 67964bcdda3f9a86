package bank

import (
	"context"
	"database/sql"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"securebank/internal/database"
	"securebank/internal/models"
)

// ListInvestments returns the user's active holdings.
func (s *Service) ListInvestments(ctx context.Context, userID string) ([]models.Investment, error) {
	return s.Investments.ListActive(ctx, userID)
}

// PortfolioSummary aggregates the active holdings.
func (s *Service) PortfolioSummary(ctx context.Context, userID string) (models.PortfolioSummary, error) {
	investments, err := s.Investments.ListActive(ctx, userID)
	if err != nil {
		return models.PortfolioSummary{}, err
	}
	sum := models.PortfolioSummary{InvestmentsCount: len(investments)}
	for _, inv := range investments {
		sum.TotalInvested = sum.TotalInvested.Add(inv.Amount)
		sum.TotalCurrentValue = sum.TotalCurrentValue.Add(inv.CurrentValue)
	}
	sum.TotalReturns = sum.TotalCurrentValue.Sub(sum.TotalInvested)
	if sum.TotalInvested.IsPositive() {
		sum.TotalReturnsPercent = sum.TotalReturns.Div(sum.TotalInvested).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return sum, nil
}

// CreateInvestment debits the invested amount and opens a holding. The demo
// market assigns a paper return between 5 and 20 percent up front.
func (s *Service) CreateInvestment(ctx context.Context, userID string, req InvestmentCreateRequest) (models.Investment, error) {
	if !req.Amount.IsPositive() {
		return models.Investment{}, ErrInvalidAmount
	}
	rec, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return models.Investment{}, err
	}
	if rec == nil {
		return models.Investment{}, ErrNotFound
	}
	if rec.Balance.LessThan(req.Amount) {
		return models.Investment{}, ErrInsufficientBalance
	}

	newBalance := rec.Balance.Sub(req.Amount)

	returnsPercent := decimal.NewFromFloat(5 + rand.Float64()*15).Round(2)
	currentValue := req.Amount.Mul(decimal.NewFromInt(1).Add(returnsPercent.Div(decimal.NewFromInt(100)))).Round(2)

	inv := models.Investment{
		ID:             uuid.NewString(),
		Type:           req.Type,
		Name:           req.Name,
		Amount:         req.Amount,
		CurrentValue:   currentValue,
		Returns:        currentValue.Sub(req.Amount),
		ReturnsPercent: returnsPercent,
		Units:          req.Units,
		MaturityDate:   req.MaturityDate,
		Status:         "active",
		CreatedAt:      database.Now(),
	}
	entry := models.Transaction{
		ID:           uuid.NewString(),
		Type:         models.TypeDebit,
		Amount:       req.Amount,
		Description:  "Investment in " + req.Name,
		Category:     "Investment",
		BalanceAfter: newBalance,
		Status:       "completed",
		Date:         database.Now(),
	}

	err = database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := s.Users.UpdateBalanceTx(ctx, tx, userID, newBalance); err != nil {
			return err
		}
		if err := s.Investments.InsertTx(ctx, tx, userID, inv); err != nil {
			return err
		}
		return s.Transactions.InsertTx(ctx, tx, userID, entry)
	})
	if err != nil {
		return models.Investment{}, err
	}
	return inv, nil
}

// SellInvestment credits the current value back to the balance and marks the
// holding sold.
func (s *Service) SellInvestment(ctx context.Context, userID, investmentID string) (SaleReceipt, error) {
	inv, err := s.Investments.Get(ctx, userID, investmentID)
	if err != nil {
		return SaleReceipt{}, err
	}
	if inv == nil || inv.Status != "active" {
		return SaleReceipt{}, ErrNotFound
	}

	rec, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return SaleReceipt{}, err
	}
	if rec == nil {
		return SaleReceipt{}, ErrNotFound
	}

	newBalance := rec.Balance.Add(inv.CurrentValue)

	entry := models.Transaction{
		ID:           uuid.NewString(),
		Type:         models.TypeCredit,
		Amount:       inv.CurrentValue,
		Description:  "Investment sold - " + inv.Name,
		Category:     "Investment",
		BalanceAfter: newBalance,
		Status:       "completed",
		Date:         database.Now(),
	}

	err = database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := s.Users.UpdateBalanceTx(ctx, tx, userID, newBalance); err != nil {
			return err
		}
		if err := s.Investments.SetStatusTx(ctx, tx, investmentID, "sold"); err != nil {
			return err
		}
		return s.Transactions.InsertTx(ctx, tx, userID, entry)
	})
	if err != nil {
		return SaleReceipt{}, err
	}

	return SaleReceipt{
		Message:        "Investment sold successfully",
		TransactionID:  entry.ID,
		AmountReceived: inv.CurrentValue,
		NewBalance:     newBalance,
	}, nil
}
