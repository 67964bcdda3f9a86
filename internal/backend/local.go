package backend

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"securebank/internal/auth"
	"securebank/internal/bank"
	"securebank/internal/database/repository"
	"securebank/internal/models"
)

// ErrUnauthorized is returned by Local for missing or invalid tokens, playing
// the role a 401 plays on the wire.
var ErrUnauthorized = errors.New("could not validate credentials")

// Local is the offline backend: the same banking core bankd serves, minus the
// sockets. Tokens are still minted and verified so the session lifecycle is
// identical in both modes.
type Local struct {
	service *bank.Service
	tokens  *auth.TokenManager
	token   func() string

	// OnUnauthorized mirrors the HTTP client hook: it runs whenever a
	// presented token fails verification.
	OnUnauthorized func()
}

// NewLocal wraps the banking core. token supplies the session's current token.
func NewLocal(service *bank.Service, tokens *auth.TokenManager, token func() string) *Local {
	return &Local{service: service, tokens: tokens, token: token}
}

func (l *Local) Login(ctx context.Context, email, password string) (Credentials, error) {
	user, err := l.service.Authenticate(ctx, email, password)
	if err != nil {
		return Credentials{}, err
	}
	return l.issue(user)
}

func (l *Local) Signup(ctx context.Context, req bank.SignupRequest) (Credentials, error) {
	user, err := l.service.CreateUser(ctx, req)
	if err != nil {
		return Credentials{}, err
	}
	return l.issue(user)
}

func (l *Local) VerifyOTP(ctx context.Context, email, otp string) error {
	return l.service.VerifyOTP(otp)
}

func (l *Local) CurrentUser(ctx context.Context) (models.User, error) {
	return l.currentUser(ctx)
}

func (l *Local) Profile(ctx context.Context) (models.User, error) {
	return l.currentUser(ctx)
}

func (l *Local) UpdateProfile(ctx context.Context, update bank.ProfileUpdate) (models.User, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return models.User{}, err
	}
	return l.service.UpdateProfile(ctx, user.ID, update)
}

func (l *Local) Balance(ctx context.Context) (decimal.Decimal, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return l.service.Balance(ctx, user.ID)
}

func (l *Local) UpdateBalance(ctx context.Context, delta decimal.Decimal) (decimal.Decimal, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return l.service.UpdateBalance(ctx, user.ID, delta)
}

func (l *Local) SendMoney(ctx context.Context, req bank.SendMoneyRequest) (bank.TransferReceipt, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return bank.TransferReceipt{}, err
	}
	return l.service.SendMoney(ctx, user.ID, req)
}

func (l *Local) RequestMoney(ctx context.Context, req bank.RequestMoneyRequest) (models.PaymentRequest, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return models.PaymentRequest{}, err
	}
	return l.service.RequestMoney(ctx, user.ID, req)
}

func (l *Local) QRPayment(ctx context.Context, req bank.QRPaymentRequest) (bank.TransferReceipt, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return bank.TransferReceipt{}, err
	}
	return l.service.QRPayment(ctx, user.ID, req)
}

func (l *Local) History(ctx context.Context, f repository.TransactionFilters) ([]models.Transaction, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return l.service.History(ctx, user.ID, f)
}

func (l *Local) Recent(ctx context.Context, limit int) ([]models.Transaction, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return l.service.Recent(ctx, user.ID, limit)
}

func (l *Local) Contacts(ctx context.Context) ([]models.Contact, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return l.service.ContactList(ctx, user.ID)
}

func (l *Local) Loans(ctx context.Context) ([]models.Loan, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return l.service.ListLoans(ctx, user.ID)
}

func (l *Local) ApplyLoan(ctx context.Context, req bank.LoanApplicationRequest) (bank.LoanApplicationReceipt, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return bank.LoanApplicationReceipt{}, err
	}
	return l.service.ApplyLoan(ctx, user.ID, req)
}

func (l *Local) PayEMI(ctx context.Context, loanID string) (bank.EMIReceipt, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return bank.EMIReceipt{}, err
	}
	return l.service.PayEMI(ctx, user.ID, loanID)
}

func (l *Local) CalculateEMI(ctx context.Context, amount, annualRate decimal.Decimal, tenureMonths int) (bank.EMIQuote, error) {
	return bank.CalculateEMI(amount, annualRate, tenureMonths), nil
}

func (l *Local) Investments(ctx context.Context) ([]models.Investment, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return l.service.ListInvestments(ctx, user.ID)
}

func (l *Local) Portfolio(ctx context.Context) (models.PortfolioSummary, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return models.PortfolioSummary{}, err
	}
	return l.service.PortfolioSummary(ctx, user.ID)
}

func (l *Local) CreateInvestment(ctx context.Context, req bank.InvestmentCreateRequest) (models.Investment, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return models.Investment{}, err
	}
	return l.service.CreateInvestment(ctx, user.ID, req)
}

func (l *Local) SellInvestment(ctx context.Context, investmentID string) (bank.SaleReceipt, error) {
	user, err := l.currentUser(ctx)
	if err != nil {
		return bank.SaleReceipt{}, err
	}
	return l.service.SellInvestment(ctx, user.ID, investmentID)
}

func (l *Local) issue(user models.User) (Credentials, error) {
	token, err := l.tokens.Generate(user.Email)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{User: user, AccessToken: token, TokenType: "bearer"}, nil
}

func (l *Local) currentUser(ctx context.Context) (models.User, error) {
	tok := ""
	if l.token != nil {
		tok = l.token()
	}
	if tok == "" {
		return models.User{}, ErrUnauthorized
	}
	email, err := l.tokens.Verify(tok)
	if err != nil {
		if l.OnUnauthorized != nil {
			l.OnUnauthorized()
		}
		return models.User{}, ErrUnauthorized
	}
	user, err := l.service.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, bank.ErrNotFound) {
			if l.OnUnauthorized != nil {
				l.OnUnauthorized()
			}
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, err
	}
	return user, nil
}
