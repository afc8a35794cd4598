// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one classified (or not yet classified) bank transaction.
// Transactions are values: classification and corrections return modified copies.
type Transaction struct {
	// ID is stable for the lifetime of an import and is how edits are reconciled.
	ID        string
	Date      time.Time
	Details   string
	Amount    decimal.Decimal
	Direction Direction
	Category  string
}

// NewTransaction builds a transaction with the default category.
func NewTransaction(id string, date time.Time, details string, amount decimal.Decimal, direction Direction) Transaction {
	return Transaction{
		ID:        id,
		Date:      date,
		Details:   details,
		Amount:    amount,
		Direction: direction,
		Category:  CategoryUncategorized,
	}
}

// WithCategory returns a copy of t assigned to category.
func (t Transaction) WithCategory(category string) Transaction {
	t.Category = category
	return t
}

// Validate checks the record invariants that do not depend on the category store.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("transaction has no ID")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s has no date", t.ID)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction %s has negative amount %s", t.ID, t.Amount.String())
	}
	if !t.Direction.IsDebit() && !t.Direction.IsCredit() {
		return fmt.Errorf("transaction %s has invalid direction %q", t.ID, t.Direction)
	}
	return nil
}

// Month returns the YYYY-MM period the transaction falls in.
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// RowID is the identifier given to the n-th (1-based) data row of an import.
func RowID(n int) string {
	return fmt.Sprintf("row-%d", n)
}
