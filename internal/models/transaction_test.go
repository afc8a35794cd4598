package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{input: "Debit", want: DirectionDebit},
		{input: " credit ", want: DirectionCredit},
		{input: "DEBIT", want: DirectionDebit},
		{input: "DBIT", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTransaction_DefaultsToUncategorized(t *testing.T) {
	tx := NewTransaction(RowID(1), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "UBER", decimal.NewFromInt(12), DirectionDebit)
	assert.Equal(t, CategoryUncategorized, tx.Category)
	assert.Equal(t, "row-1", tx.ID)
	assert.Equal(t, "2024-01", tx.Month())
	assert.NoError(t, tx.Validate())
}

func TestTransaction_WithCategoryIsCopy(t *testing.T) {
	tx := NewTransaction("row-1", time.Now(), "UBER", decimal.NewFromInt(1), DirectionDebit)
	moved := tx.WithCategory("Transport")

	assert.Equal(t, "Transport", moved.Category)
	assert.Equal(t, CategoryUncategorized, tx.Category)
}

func TestTransaction_Validate(t *testing.T) {
	base := NewTransaction("row-1", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "x", decimal.NewFromInt(1), DirectionCredit)

	noID := base
	noID.ID = ""
	assert.Error(t, noID.Validate())

	noDate := base
	noDate.Date = time.Time{}
	assert.Error(t, noDate.Validate())

	negative := base
	negative.Amount = decimal.NewFromInt(-1)
	assert.Error(t, negative.Validate())

	badDirection := base
	badDirection.Direction = "Sideways"
	assert.Error(t, badDirection.Validate())
}

func TestCategorizationStats(t *testing.T) {
	stats := NewCategorizationStats()
	assert.Zero(t, stats.CategorizedRatio())

	stats.Record("Food")
	stats.Record("Food")
	stats.Record(CategoryUncategorized)
	stats.Record("Transport")

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Categorized)
	assert.Equal(t, 1, stats.Uncategorized)
	assert.Equal(t, 2, stats.PerCategory["Food"])
	assert.InDelta(t, 0.75, stats.CategorizedRatio(), 1e-9)
}
