// Package backend defines the banking backend contract and its two
// implementations: Remote (HTTP against a configured base URL) and Local
// (offline, sqlite-backed). Exactly one is constructed at startup; the rest
// of the app only sees the interface.
package backend

import (
	"context"

	"github.com/shopspring/decimal"

	"securebank/internal/bank"
	"securebank/internal/database/repository"
	"securebank/internal/models"
)

// Credentials is the result of a successful login or signup.
type Credentials struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
}

// Provider is the capability set the screens and the session manager consume.
type Provider interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	Signup(ctx context.Context, req bank.SignupRequest) (Credentials, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	CurrentUser(ctx context.Context) (models.User, error)

	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, update bank.ProfileUpdate) (models.User, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, delta decimal.Decimal) (decimal.Decimal, error)

	SendMoney(ctx context.Context, req bank.SendMoneyRequest) (bank.TransferReceipt, error)
	RequestMoney(ctx context.Context, req bank.RequestMoneyRequest) (models.PaymentRequest, error)
	QRPayment(ctx context.Context, req bank.QRPaymentRequest) (bank.TransferReceipt, error)
	History(ctx context.Context, f repository.TransactionFilters) ([]models.Transaction, error)
	Recent(ctx context.Context, limit int) ([]models.Transaction, error)
	Contacts(ctx context.Context) ([]models.Contact, error)

	Loans(ctx context.Context) ([]models.Loan, error)
	ApplyLoan(ctx context.Context, req bank.LoanApplicationRequest) (bank.LoanApplicationReceipt, error)
	PayEMI(ctx context.Context, loanID string) (bank.EMIReceipt, error)
	CalculateEMI(ctx context.Context, amount, annualRate decimal.Decimal, tenureMonths int) (bank.EMIQuote, error)

	Investments(ctx context.Context) ([]models.Investment, error)
	Portfolio(ctx context.Context) (models.PortfolioSummary, error)
	CreateInvestment(ctx context.Context, req bank.InvestmentCreateRequest) (models.Investment, error)
	SellInvestment(ctx context.Context, investmentID string) (bank.SaleReceipt, error)
}
