package repository

import (
	"context"
	"database/sql"
	"time"

	"securebank/internal/models"
)

// TransactionRepo handles ledger entries.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// TransactionFilters narrows history queries. Zero values mean "no filter".
type TransactionFilters struct {
	Type     string
	Category string
	Limit    int
}

func (r *TransactionRepo) Insert(ctx context.Context, userID string, t models.Transaction) error {
	return insertTransaction(ctx, r.db, userID, t)
}

// InsertTx is Insert inside an existing transaction.
func (r *TransactionRepo) InsertTx(ctx context.Context, tx *sql.Tx, userID string, t models.Transaction) error {
	return insertTransaction(ctx, tx, userID, t)
}

func insertTransaction(ctx context.Context, q execer, userID string, t models.Transaction) error {
	_, err := q.ExecContext(ctx, `
	INSERT INTO transactions(id, user_id, type, amount, description, category, recipient_name, recipient_account, balance_after, status, date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, t.ID, userID, t.Type, t.Amount, t.Description, t.Category,
		nullable(t.RecipientName), nullable(t.RecipientAccount), t.BalanceAfter, t.Status, t.Date)
	return err
}

// List returns the user's transactions newest first.
func (r *TransactionRepo) List(ctx context.Context, userID string, f TransactionFilters) ([]models.Transaction, error) {
	query := `SELECT id, type, amount, description, category, recipient_name, recipient_account, balance_after, status, date
	FROM transactions WHERE user_id = ?`
	args := []any{userID}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, f.Type)
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` ORDER BY date DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var recName, recAcct sql.NullString
		if err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.Description, &t.Category,
			&recName, &recAcct, &t.BalanceAfter, &t.Status, &t.Date); err != nil {
			return nil, err
		}
		t.RecipientName = recName.String
		t.RecipientAccount = recAcct.String
		out = append(out, t)
	}
	return out, rows.Err()
}

// InsertPaymentRequest records an outgoing request-money entry.
func (r *TransactionRepo) InsertPaymentRequest(ctx context.Context, userID string, pr models.PaymentRequest, recipientPhone string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO payment_requests(id, user_id, recipient_name, recipient_phone, amount, description, status, expires_at, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, pr.ID, userID, pr.RecipientName, recipientPhone, pr.Amount, pr.Description, pr.Status, expiresAt, pr.CreatedAt)
	return err
}

// execer is satisfied by both *sql.DB and *sql.Tx, so write helpers can run
// standalone or inside database.WithTx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
