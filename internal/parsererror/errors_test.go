package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "with row",
			err: &ParseError{
				Parser: "bank-csv",
				Row:    4,
				Field:  "Amount",
				Value:  "12,x",
				Err:    errors.New("can't convert 12x to decimal"),
			},
			expected: "bank-csv: row 4: failed to parse Amount='12,x': can't convert 12x to decimal",
		},
		{
			name: "without row",
			err: &ParseError{
				Parser: "categorized-csv",
				Field:  "Date",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "categorized-csv: failed to parse Date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	var err error = &ParseError{Parser: "bank-csv", Field: "Amount", Value: "?", Err: originalErr}

	assert.True(t, errors.Is(err, originalErr))

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Amount", parseErr.Field)
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name: "missing columns",
			err: &InvalidFormatError{
				FilePath:       "statement.csv",
				ExpectedFormat: "bank CSV",
				Missing:        []string{"Amount", "Date"},
				Msg:            "required columns not found",
			},
			expected: "invalid format in file 'statement.csv': required columns not found. Expected: bank CSV. Missing columns: Amount, Date",
		},
		{
			name: "reader input",
			err: &InvalidFormatError{
				ExpectedFormat: "bank CSV",
				Msg:            "empty input",
			},
			expected: "invalid format in input: empty input. Expected: bank CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Row: 7, Reason: "amount must not be negative"}
	assert.Equal(t, "validation failed for row 7: amount must not be negative", err.Error())
}
