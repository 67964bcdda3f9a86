package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"securebank/internal/api"
	"securebank/internal/bank"
	"securebank/internal/database/repository"
	"securebank/internal/models"
)

// Remote talks to the banking API over HTTP+JSON.
type Remote struct {
	client *api.Client
}

// NewRemote wraps the boundary client.
func NewRemote(client *api.Client) *Remote {
	return &Remote{client: client}
}

func (r *Remote) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	body := map[string]string{"email": email, "password": password}
	if err := r.client.Post(ctx, "/auth/login", body, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (r *Remote) Signup(ctx context.Context, req bank.SignupRequest) (Credentials, error) {
	var creds Credentials
	if err := r.client.Post(ctx, "/auth/signup", req, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (r *Remote) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return r.client.Post(ctx, "/auth/verify-otp", body, nil)
}

func (r *Remote) CurrentUser(ctx context.Context) (models.User, error) {
	var u models.User
	if err := r.client.Get(ctx, "/auth/me", nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *Remote) Profile(ctx context.Context) (models.User, error) {
	var u models.User
	if err := r.client.Get(ctx, "/user/profile", nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *Remote) UpdateProfile(ctx context.Context, update bank.ProfileUpdate) (models.User, error) {
	var u models.User
	if err := r.client.Put(ctx, "/user/profile", update, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *Remote) Balance(ctx context.Context) (decimal.Decimal, error) {
	var resp struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := r.client.Get(ctx, "/user/balance", nil, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (r *Remote) UpdateBalance(ctx context.Context, delta decimal.Decimal) (decimal.Decimal, error) {
	var resp struct {
		Balance decimal.Decimal `json:"balance"`
		Message string          `json:"message"`
	}
	body := map[string]decimal.Decimal{"amount": delta}
	if err := r.client.Post(ctx, "/user/update-balance", body, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (r *Remote) SendMoney(ctx context.Context, req bank.SendMoneyRequest) (bank.TransferReceipt, error) {
	var receipt bank.TransferReceipt
	if err := r.client.Post(ctx, "/transactions/send-money", req, &receipt); err != nil {
		return bank.TransferReceipt{}, err
	}
	return receipt, nil
}

func (r *Remote) RequestMoney(ctx context.Context, req bank.RequestMoneyRequest) (models.PaymentRequest, error) {
	var pr models.PaymentRequest
	if err := r.client.Post(ctx, "/transactions/request-money", req, &pr); err != nil {
		return models.PaymentRequest{}, err
	}
	return pr, nil
}

func (r *Remote) QRPayment(ctx context.Context, req bank.QRPaymentRequest) (bank.TransferReceipt, error) {
	var receipt bank.TransferReceipt
	if err := r.client.Post(ctx, "/transactions/qr-payment", req, &receipt); err != nil {
		return bank.TransferReceipt{}, err
	}
	return receipt, nil
}

func (r *Remote) History(ctx context.Context, f repository.TransactionFilters) ([]models.Transaction, error) {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	var txs []models.Transaction
	if err := r.client.Get(ctx, "/transactions/history", q, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *Remote) Recent(ctx context.Context, limit int) ([]models.Transaction, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var txs []models.Transaction
	if err := r.client.Get(ctx, "/transactions/recent", q, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *Remote) Contacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.client.Get(ctx, "/user/contacts", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *Remote) Loans(ctx context.Context) ([]models.Loan, error) {
	var loans []models.Loan
	if err := r.client.Get(ctx, "/loans", nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *Remote) ApplyLoan(ctx context.Context, req bank.LoanApplicationRequest) (bank.LoanApplicationReceipt, error) {
	var receipt bank.LoanApplicationReceipt
	if err := r.client.Post(ctx, "/loans/apply", req, &receipt); err != nil {
		return bank.LoanApplicationReceipt{}, err
	}
	return receipt, nil
}

func (r *Remote) PayEMI(ctx context.Context, loanID string) (bank.EMIReceipt, error) {
	var receipt bank.EMIReceipt
	if err := r.client.Post(ctx, "/loans/pay-emi/"+loanID, nil, &receipt); err != nil {
		return bank.EMIReceipt{}, err
	}
	return receipt, nil
}

func (r *Remote) CalculateEMI(ctx context.Context, amount, annualRate decimal.Decimal, tenureMonths int) (bank.EMIQuote, error) {
	q := url.Values{}
	q.Set("loan_amount", amount.String())
	q.Set("interest_rate", annualRate.String())
	q.Set("tenure_months", strconv.Itoa(tenureMonths))
	var quote bank.EMIQuote
	if err := r.client.Get(ctx, "/loans/calculator", q, &quote); err != nil {
		return bank.EMIQuote{}, err
	}
	return quote, nil
}

func (r *Remote) Investments(ctx context.Context) ([]models.Investment, error) {
	var investments []models.Investment
	if err := r.client.Get(ctx, "/investments", nil, &investments); err != nil {
		return nil, err
	}
	return investments, nil
}

func (r *Remote) Portfolio(ctx context.Context) (models.PortfolioSummary, error) {
	var sum models.PortfolioSummary
	if err := r.client.Get(ctx, "/investments/portfolio", nil, &sum); err != nil {
		return models.PortfolioSummary{}, err
	}
	return sum, nil
}

func (r *Remote) CreateInvestment(ctx context.Context, req bank.InvestmentCreateRequest) (models.Investment, error) {
	var inv models.Investment
	if err := r.client.Post(ctx, "/investments", req, &inv); err != nil {
		return models.Investment{}, err
	}
	return inv, nil
}

func (r *Remote) SellInvestment(ctx context.Context, investmentID string) (bank.SaleReceipt, error) {
	var receipt bank.SaleReceipt
	if err := r.client.Delete(ctx, "/investments/"+investmentID, &receipt); err != nil {
		return bank.SaleReceipt{}, err
	}
	return receipt, nil
}
