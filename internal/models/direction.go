package models

import (
	"fmt"
	"strings"
)

// Direction tells whether money left (Debit) or entered (Credit) the account.
type Direction string

const (
	DirectionDebit  Direction = "Debit"
	DirectionCredit Direction = "Credit"
)

// ParseDirection accepts "debit"/"credit" in any case, surrounded by any whitespace.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit":
		return DirectionDebit, nil
	case "credit":
		return DirectionCredit, nil
	default:
		return "", fmt.Errorf("unknown debit/credit value %q", s)
	}
}

// String returns the direction as written in bank exports.
func (d Direction) String() string {
	return string(d)
}

// IsDebit reports whether d is DirectionDebit.
func (d Direction) IsDebit() bool { return d == DirectionDebit }

// IsCredit reports whether d is DirectionCredit.
func (d Direction) IsCredit() bool { return d == DirectionCredit }
