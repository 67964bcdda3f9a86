package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The banking API speaks bare JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction directions.
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// User is the authenticated account holder. Owned by the session manager;
// mutated only through login, signup, balance refresh, or profile update.
type User struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	AccountNumber string          `json:"account_number"`
	IFSCCode      string          `json:"ifsc_code"`
	Balance       decimal.Decimal `json:"balance"`
	AccountType   string          `json:"account_type"`
	CreatedAt     time.Time       `json:"created_at"`
	IsActive      bool            `json:"is_active"`
}

// Transaction is a ledger entry. Read-only from the screens' perspective.
type Transaction struct {
	ID               string          `json:"id"`
	Type             string          `json:"type"` // credit | debit
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	RecipientName    string          `json:"recipient_name,omitempty"`
	RecipientAccount string          `json:"recipient_account,omitempty"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	Date             time.Time       `json:"date"`
	Status           string          `json:"status"`
}

// Loan is read-only display data.
type Loan struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	EMI             decimal.Decimal `json:"emi"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	Tenure          int             `json:"tenure"`
	RemainingMonths int             `json:"remaining_months"`
	NextDueDate     string          `json:"next_due_date"` // YYYY-MM-DD
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Investment is read-only display data.
type Investment struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	Name           string           `json:"name"`
	Amount         decimal.Decimal  `json:"amount"`
	CurrentValue   decimal.Decimal  `json:"current_value"`
	Returns        decimal.Decimal  `json:"returns"`
	ReturnsPercent decimal.Decimal  `json:"returns_percent"`
	Units          *decimal.Decimal `json:"units,omitempty"`
	MaturityDate   string           `json:"maturity_date,omitempty"` // YYYY-MM-DD
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

// PortfolioSummary aggregates active investments.
type PortfolioSummary struct {
	TotalInvested       decimal.Decimal `json:"total_invested"`
	TotalCurrentValue   decimal.Decimal `json:"total_current_value"`
	TotalReturns        decimal.Decimal `json:"total_returns"`
	TotalReturnsPercent decimal.Decimal `json:"total_returns_percent"`
	InvestmentsCount    int             `json:"investments_count"`
}

// Contact is a saved transfer recipient.
type Contact struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	Phone         string `json:"phone"`
	Avatar        string `json:"avatar"`
}

// PaymentRequest is an outgoing request-money record with a shareable link.
type PaymentRequest struct {
	ID            string          `json:"id"`
	RecipientName string          `json:"recipient_name"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	PaymentLink   string          `json:"payment_link"`
}
