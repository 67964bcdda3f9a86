package repository

import (
	"context"
	"database/sql"

	"securebank/internal/models"
)

// ContactRepo handles saved transfer recipients.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Insert(ctx context.Context, userID string, c models.Contact) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO contacts(id, user_id, name, account_number, phone, avatar)
	VALUES (?, ?, ?, ?, ?, ?);
	`, c.ID, userID, c.Name, c.AccountNumber, c.Phone, c.Avatar)
	return err
}

func (r *ContactRepo) List(ctx context.Context, userID string) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, account_number, phone, avatar FROM contacts WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.AccountNumber, &c.Phone, &c.Avatar); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
