package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"securebank/internal/models"
)

// StatementService exports transaction history as CSV.
type StatementService struct{}

var statementHeader = []string{"date", "type", "description", "category", "amount", "balance_after"}

// Export writes the transactions to w, newest first as given.
func (s *StatementService) Export(w io.Writer, txs []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statementHeader); err != nil {
		return err
	}
	for _, t := range txs {
		rec := []string{
			t.Date.UTC().Format(time.RFC3339),
			t.Type,
			t.Description,
			t.Category,
			t.Amount.StringFixed(2),
			t.BalanceAfter.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the statement to path and returns the path.
func (s *StatementService) ExportFile(path string, txs []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := s.Export(f, txs); err != nil {
		return err
	}
	return f.Close()
}

// DefaultStatementName names an export after the current date.
func DefaultStatementName(now time.Time) string {
	return "securebank-statement-" + now.Format("20060102") + ".csv"
}
