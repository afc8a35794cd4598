// Package parser defines the contract shared by transaction sources.
package parser

import (
	"io"

	"fjacquet/budget-csv/internal/models"
)

// Parser turns a bank export into transactions.
type Parser interface {
	// Parse reads the whole export from r. Transactions come back in source order
	// with stable IDs and the default category. Format problems are reported with
	// the typed errors of package parsererror.
	Parse(r io.Reader) ([]models.Transaction, error)
}

// Validator checks that an input looks like the export a parser understands,
// without converting any row.
type Validator interface {
	ValidateFormat(r io.Reader) error
}

// FileParser is a Parser that can also read directly from a path.
type FileParser interface {
	Parser
	Validator
	ParseFile(path string) ([]models.Transaction, error)
}
