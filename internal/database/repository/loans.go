package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"securebank/internal/models"
)

// LoanRepo handles loans and loan applications.
type LoanRepo struct {
	db *sql.DB
}

func NewLoanRepo(db *sql.DB) *LoanRepo {
	return &LoanRepo{db: db}
}

// LoanApplication is a submitted application awaiting review.
type LoanApplication struct {
	ID              string
	UserID          string
	LoanType        string
	RequestedAmount decimal.Decimal
	MonthlyIncome   decimal.Decimal
	EmploymentType  string
	Purpose         string
	Status          string
	CreatedAt       time.Time
}

const loanColumns = `id, type, amount, outstanding, emi, interest_rate, tenure, remaining_months, next_due_date, status, created_at`

func (r *LoanRepo) Insert(ctx context.Context, userID string, l models.Loan) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO loans(id, user_id, type, amount, outstanding, emi, interest_rate, tenure, remaining_months, next_due_date, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, l.ID, userID, l.Type, l.Amount, l.Outstanding, l.EMI, l.InterestRate, l.Tenure, l.RemainingMonths, l.NextDueDate, l.Status, l.CreatedAt)
	return err
}

// ListActive returns the user's active loans.
func (r *LoanRepo) ListActive(ctx context.Context, userID string) ([]models.Loan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE user_id = ? AND status = 'active' ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LoanRepo) Get(ctx context.Context, userID, loanID string) (*models.Loan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE user_id = ? AND id = ?`, userID, loanID)
	l, err := scanLoan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateRepayment records an EMI payment's effect on the loan row.
func (r *LoanRepo) UpdateRepayment(ctx context.Context, loanID string, outstanding decimal.Decimal, remainingMonths int, nextDueDate, status string) error {
	return updateRepayment(ctx, r.db, loanID, outstanding, remainingMonths, nextDueDate, status)
}

// UpdateRepaymentTx is UpdateRepayment inside an existing transaction.
func (r *LoanRepo) UpdateRepaymentTx(ctx context.Context, tx *sql.Tx, loanID string, outstanding decimal.Decimal, remainingMonths int, nextDueDate, status string) error {
	return updateRepayment(ctx, tx, loanID, outstanding, remainingMonths, nextDueDate, status)
}

func updateRepayment(ctx context.Context, q execer, loanID string, outstanding decimal.Decimal, remainingMonths int, nextDueDate, status string) error {
	_, err := q.ExecContext(ctx, `
	UPDATE loans SET outstanding = ?, remaining_months = ?, next_due_date = ?, status = ? WHERE id = ?`,
		outstanding, remainingMonths, nextDueDate, status, loanID)
	return err
}

func (r *LoanRepo) InsertApplication(ctx context.Context, app LoanApplication) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO loan_applications(id, user_id, loan_type, requested_amount, monthly_income, employment_type, purpose, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, app.ID, app.UserID, app.LoanType, app.RequestedAmount, app.MonthlyIncome, app.EmploymentType, app.Purpose, app.Status, app.CreatedAt)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (models.Loan, error) {
	var l models.Loan
	err := row.Scan(&l.ID, &l.Type, &l.Amount, &l.Outstanding, &l.EMI, &l.InterestRate,
		&l.Tenure, &l.RemainingMonths, &l.NextDueDate, &l.Status, &l.CreatedAt)
	return l, err
}
