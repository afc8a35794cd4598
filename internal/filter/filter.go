// Package filter narrows a set of transactions down to the ones a user is looking at.
package filter

import (
	"strings"
	"time"

	"fjacquet/budget-csv/internal/dateutils"
	"fjacquet/budget-csv/internal/models"
)

// Criteria selects transactions. Zero-valued fields do not filter.
type Criteria struct {
	From       time.Time // inclusive
	To         time.Time // inclusive, whole day
	Categories []string
	Search     string // case-insensitive substring of Details
	Direction  models.Direction
}

// IsEmpty reports whether c lets every transaction through.
func (c Criteria) IsEmpty() bool {
	return c.From.IsZero() && c.To.IsZero() && len(c.Categories) == 0 &&
		strings.TrimSpace(c.Search) == "" && c.Direction == ""
}

// Apply returns the transactions matching c, in input order, as a new slice.
func Apply(transactions []models.Transaction, c Criteria) []models.Transaction {
	match := c.matcher()
	out := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

func (c Criteria) matcher() func(models.Transaction) bool {
	categories := make(map[string]bool, len(c.Categories))
	for _, name := range c.Categories {
		categories[name] = true
	}
	search := strings.ToLower(strings.TrimSpace(c.Search))
	from := dateutils.StartOfDay(c.From)
	to := dateutils.StartOfDay(c.To)

	return func(tx models.Transaction) bool {
		day := dateutils.StartOfDay(tx.Date)
		if !from.IsZero() && day.Before(from) {
			return false
		}
		if !to.IsZero() && day.After(to) {
			return false
		}
		if len(categories) > 0 && !categories[tx.Category] {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(tx.Details), search) {
			return false
		}
		if c.Direction != "" && tx.Direction != c.Direction {
			return false
		}
		return true
	}
}
