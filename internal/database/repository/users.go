package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"securebank/internal/models"
)

// UserRecord is a user row including the stored credential hash.
type UserRecord struct {
	models.User
	PasswordHash string
}

// UserRepo handles users.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Insert(ctx context.Context, u UserRecord) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users(id, name, email, phone, password_hash, account_number, ifsc_code, balance, account_type, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.AccountNumber, u.IFSCCode, u.Balance, u.AccountType, u.IsActive, u.CreatedAt)
	return err
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*UserRecord, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*UserRecord, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// UpdateBalance overwrites the stored balance.
func (r *UserRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	return updateBalance(ctx, r.db, id, balance)
}

// UpdateBalanceTx is UpdateBalance inside an existing transaction.
func (r *UserRepo) UpdateBalanceTx(ctx context.Context, tx *sql.Tx, id string, balance decimal.Decimal) error {
	return updateBalance(ctx, tx, id, balance)
}

func updateBalance(ctx context.Context, q execer, id string, balance decimal.Decimal) error {
	_, err := q.ExecContext(ctx,
		`UPDATE users SET balance = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, balance, id)
	return err
}

// UpdateProfile overwrites name, email, and phone.
func (r *UserRepo) UpdateProfile(ctx context.Context, id, name, email, phone string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, phone = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, email, phone, id)
	return err
}

const userColumns = `id, name, email, phone, password_hash, account_number, ifsc_code, balance, account_type, is_active, created_at`

func (r *UserRepo) one(ctx context.Context, query string, arg any) (*UserRecord, error) {
	var u UserRecord
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
		&u.AccountNumber, &u.IFSCCode, &u.Balance, &u.AccountType, &u.IsActive, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
