package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"securebank/internal/models"
)

// InvestmentRepo handles investment holdings.
type InvestmentRepo struct {
	db *sql.DB
}

func NewInvestmentRepo(db *sql.DB) *InvestmentRepo {
	return &InvestmentRepo{db: db}
}

func (r *InvestmentRepo) Insert(ctx context.Context, userID string, inv models.Investment) error {
	return insertInvestment(ctx, r.db, userID, inv)
}

// InsertTx is Insert inside an existing transaction.
func (r *InvestmentRepo) InsertTx(ctx context.Context, tx *sql.Tx, userID string, inv models.Investment) error {
	return insertInvestment(ctx, tx, userID, inv)
}

func insertInvestment(ctx context.Context, q execer, userID string, inv models.Investment) error {
	var units decimal.NullDecimal
	if inv.Units != nil {
		units = decimal.NullDecimal{Decimal: *inv.Units, Valid: true}
	}
	_, err := q.ExecContext(ctx, `
	INSERT INTO investments(id, user_id, type, name, amount, current_value, units, maturity_date, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, inv.ID, userID, inv.Type, inv.Name, inv.Amount, inv.CurrentValue, units, nullable(inv.MaturityDate), inv.Status, inv.CreatedAt)
	return err
}

// ListActive returns the user's active holdings. Returns fields are derived,
// not stored: returns = current_value - amount.
func (r *InvestmentRepo) ListActive(ctx context.Context, userID string) ([]models.Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, type, name, amount, current_value, units, maturity_date, status, created_at
	FROM investments WHERE user_id = ? AND status = 'active' ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *InvestmentRepo) Get(ctx context.Context, userID, id string) (*models.Investment, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, type, name, amount, current_value, units, maturity_date, status, created_at
	FROM investments WHERE user_id = ? AND id = ?`, userID, id)
	inv, err := scanInvestment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvestmentRepo) SetStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE investments SET status = ? WHERE id = ?`, status, id)
	return err
}

// SetStatusTx is SetStatus inside an existing transaction.
func (r *InvestmentRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE investments SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *InvestmentRepo) UpdateValue(ctx context.Context, id string, currentValue decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `UPDATE investments SET current_value = ? WHERE id = ?`, currentValue, id)
	return err
}

func scanInvestment(row rowScanner) (models.Investment, error) {
	var inv models.Investment
	var units decimal.NullDecimal
	var maturity sql.NullString
	err := row.Scan(&inv.ID, &inv.Type, &inv.Name, &inv.Amount, &inv.CurrentValue,
		&units, &maturity, &inv.Status, &inv.CreatedAt)
	if err != nil {
		return inv, err
	}
	if units.Valid {
		inv.Units = &units.Decimal
	}
	inv.MaturityDate = maturity.String
	inv.Returns = inv.CurrentValue.Sub(inv.Amount)
	if inv.Amount.IsPositive() {
		inv.ReturnsPercent = inv.Returns.Div(inv.Amount).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return inv, nil
}
