package bank

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"securebank/internal/auth"
	"securebank/internal/database"
	"securebank/internal/database/repository"
	"securebank/internal/models"
)

// Starting conditions for newly created accounts.
var (
	newAccountBalance = decimal.NewFromInt(10000)
)

const paymentLinkBase = "https://securebank.com/pay/"

// Service implements the banking operations shared by the offline backend
// and the bankd HTTP handlers. All user-facing operations are scoped by userID;
// resolving a token to a user is the caller's concern.
type Service struct {
	DB           *sql.DB
	Users        *repository.UserRepo
	Transactions *repository.TransactionRepo
	Loans        *repository.LoanRepo
	Investments  *repository.InvestmentRepo
	Contacts     *repository.ContactRepo
}

// NewService wires a Service over an open database.
func NewService(db *sql.DB) *Service {
	return &Service{
		DB:           db,
		Users:        repository.NewUserRepo(db),
		Transactions: repository.NewTransactionRepo(db),
		Loans:        repository.NewLoanRepo(db),
		Investments:  repository.NewInvestmentRepo(db),
		Contacts:     repository.NewContactRepo(db),
	}
}

// Authenticate matches credentials against stored users.
func (s *Service) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	rec, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if rec == nil || !auth.CheckPassword(rec.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return rec.User, nil
}

// CreateUser registers a new account with a synthesized account number,
// the fixed routing code, and the standard starting balance.
func (s *Service) CreateUser(ctx context.Context, req SignupRequest) (models.User, error) {
	existing, err := s.Users.ByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		AccountNumber: newAccountNumber(),
		IFSCCode:      database.DefaultIFSCCode,
		Balance:       newAccountBalance,
		AccountType:   "Savings",
		CreatedAt:     database.Now(),
		IsActive:      true,
	}
	if err := s.Users.Insert(ctx, repository.UserRecord{User: user, PasswordHash: hash}); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UserByEmail resolves a token subject to its user record.
func (s *Service) UserByEmail(ctx context.Context, email string) (models.User, error) {
	rec, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if rec == nil {
		return models.User{}, ErrNotFound
	}
	return rec.User, nil
}

// VerifyOTP accepts any six-digit code, mirroring the demo backend.
func (s *Service) VerifyOTP(otp string) error {
	if !allDigits(otp) || len(otp) != 6 {
		return ErrInvalidOTP
	}
	return nil
}

// UpdateProfile applies partial profile changes and returns the updated user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (models.User, error) {
	rec, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if rec == nil {
		return models.User{}, ErrNotFound
	}
	u := rec.User
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil && *update.Email != rec.Email {
		other, err := s.Users.ByEmail(ctx, *update.Email)
		if err != nil {
			return models.User{}, err
		}
		if other != nil {
			return models.User{}, ErrEmailTaken
		}
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if err := s.Users.UpdateProfile(ctx, userID, u.Name, u.Email, u.Phone); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Balance returns the current stored balance.
func (s *Service) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	rec, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if rec == nil {
		return decimal.Zero, ErrNotFound
	}
	return rec.Balance, nil
}

// UpdateBalance adjusts the balance by delta. A result below zero is rejected
// and leaves the stored balance unchanged.
func (s *Service) UpdateBalance(ctx context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, error) {
	rec, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if rec == nil {
		return decimal.Zero, ErrNotFound
	}
	newBalance := rec.Balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, ErrInsufficientBalance
	}
	if err := s.Users.UpdateBalance(ctx, userID, newBalance); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// SendMoney debits the sender and records the transfer. The PIN must be exactly
// four digits; the balance must cover the amount.
func (s *Service) SendMoney(ctx context.Context, userID string, req SendMoneyRequest) (TransferReceipt, error) {
	if len(req.PIN) != 4 || !allDigits(req.PIN) {
		return TransferReceipt{}, ErrInvalidPIN
	}
	return s.debit(ctx, userID, req.Amount, models.Transaction{
		Description:      "Transfer to " + req.RecipientName,
		Category:         "Transfer",
		RecipientName:    req.RecipientName,
		RecipientAccount: req.RecipientAccount,
	}, "Money sent successfully")
}

// QRPayment debits the payer for a scanned merchant charge.
func (s *Service) QRPayment(ctx context.Context, userID string, req QRPaymentRequest) (TransferReceipt, error) {
	return s.debit(ctx, userID, req.Amount, models.Transaction{
		Description:   req.Description,
		Category:      "Payment",
		RecipientName: req.MerchantID,
	}, "Payment successful")
}

func (s *Service) debit(ctx context.Context, userID string, amount decimal.Decimal, tmpl models.Transaction, message string) (TransferReceipt, error) {
	if !amount.IsPositive() {
		return TransferReceipt{}, ErrInvalidAmount
	}
	rec, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return TransferReceipt{}, err
	}
	if rec == nil {
		return TransferReceipt{}, ErrNotFound
	}
	if rec.Balance.LessThan(amount) {
		return TransferReceipt{}, ErrInsufficientBalance
	}
	newBalance := rec.Balance.Sub(amount)

	entry := tmpl
	entry.ID = uuid.NewString()
	entry.Type = models.TypeDebit
	entry.Amount = amount
	entry.BalanceAfter = newBalance
	entry.Status = "completed"
	entry.Date = database.Now()

	// Balance write and ledger entry land together or not at all.
	err = database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := s.Users.UpdateBalanceTx(ctx, tx, userID, newBalance); err != nil {
			return err
		}
		return s.Transactions.InsertTx(ctx, tx, userID, entry)
	})
	if err != nil {
		return TransferReceipt{}, err
	}
	return TransferReceipt{Message: message, TransactionID: entry.ID, NewBalance: newBalance}, nil
}

// RequestMoney records a payment request and returns it with a shareable link.
func (s *Service) RequestMoney(ctx context.Context, userID string, req RequestMoneyRequest) (models.PaymentRequest, error) {
	if !req.Amount.IsPositive() {
		return models.PaymentRequest{}, ErrInvalidAmount
	}
	pr := models.PaymentRequest{
		ID:            uuid.NewString(),
		RecipientName: req.RecipientName,
		Amount:        req.Amount,
		Description:   req.Description,
		Status:        "pending",
		CreatedAt:     database.Now(),
	}
	pr.PaymentLink = paymentLinkBase + pr.ID
	expires := pr.CreatedAt.AddDate(0, 0, 7)
	if err := s.Transactions.InsertPaymentRequest(ctx, userID, pr, req.RecipientPhone, expires); err != nil {
		return models.PaymentRequest{}, err
	}
	return pr, nil
}

// History returns the user's transactions, filterable by type and category.
func (s *Service) History(ctx context.Context, userID string, f repository.TransactionFilters) ([]models.Transaction, error) {
	return s.Transactions.List(ctx, userID, f)
}

// Recent returns the newest transactions, default five.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.Transactions.List(ctx, userID, repository.TransactionFilters{Limit: limit})
}

// ContactList returns the user's saved recipients.
func (s *Service) ContactList(ctx context.Context, userID string) ([]models.Contact, error) {
	return s.Contacts.List(ctx, userID)
}

func newAccountNumber() string {
	id := uuid.New()
	digits := new(big.Int).SetBytes(id[:]).String()
	return "ACC" + digits[:10]
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
