package bank

import (
	"github.com/shopspring/decimal"
)

// SignupRequest carries the fields collected on the signup screen.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ProfileUpdate carries optional profile field changes; nil means unchanged.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// SendMoneyRequest is the terminal submission of the send-money wizard.
type SendMoneyRequest struct {
	RecipientName    string          `json:"recipient_name"`
	RecipientAccount string          `json:"recipient_account"`
	RecipientPhone   string          `json:"recipient_phone,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	PIN              string          `json:"pin"`
}

// RequestMoneyRequest asks another party for money.
type RequestMoneyRequest struct {
	RecipientName  string          `json:"recipient_name"`
	RecipientPhone string          `json:"recipient_phone,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
}

// QRPaymentRequest pays a scanned merchant code.
type QRPaymentRequest struct {
	MerchantID  string          `json:"merchant_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// TransferReceipt is returned by the debit-side operations.
type TransferReceipt struct {
	Message       string          `json:"message"`
	TransactionID string          `json:"transaction_id"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// LoanApplicationRequest applies for a new loan.
type LoanApplicationRequest struct {
	LoanType        string          `json:"loan_type"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	EmploymentType  string          `json:"employment_type"`
	Purpose         string          `json:"purpose"`
}

// LoanApplicationReceipt acknowledges a submitted application.
type LoanApplicationReceipt struct {
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

// EMIReceipt is returned after an EMI payment.
type EMIReceipt struct {
	Message         string          `json:"message"`
	TransactionID   string          `json:"transaction_id"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// EMIQuote is the output of the EMI calculator.
type EMIQuote struct {
	LoanAmount    decimal.Decimal `json:"loan_amount"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	TenureMonths  int             `json:"tenure_months"`
	EMI           decimal.Decimal `json:"emi"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// InvestmentCreateRequest opens a new holding.
type InvestmentCreateRequest struct {
	Type         string           `json:"type"`
	Name         string           `json:"name"`
	Amount       decimal.Decimal  `json:"amount"`
	Units        *decimal.Decimal `json:"units,omitempty"`
	MaturityDate string           `json:"maturity_date,omitempty"`
}

// SaleReceipt is returned when a holding is sold.
type SaleReceipt struct {
	Message        string          `json:"message"`
	TransactionID  string          `json:"transaction_id"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	NewBalance     decimal.Decimal `json:"new_balance"`
}
