// Package categorizer assigns categories to transactions using the keyword rule set
// of the category store, and turns user corrections into new keywords.
package categorizer

import (
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
)

// Categorizer classifies transactions against a KeywordSource.
type Categorizer struct {
	source KeywordSource
	logger logging.Logger
}

// NewCategorizer creates a Categorizer reading rules from source.
func NewCategorizer(source KeywordSource, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{source: source, logger: logger}
}

// Classify returns the category the current rule set gives details.
func (c *Categorizer) Classify(details string) string {
	return Classify(details, c.source.Categories())
}

// CategorizeTransaction returns a copy of tx with its category set by the rule set.
func (c *Categorizer) CategorizeTransaction(tx models.Transaction) models.Transaction {
	return c.categorize(Compile(c.source.Categories()), tx)
}

func (c *Categorizer) categorize(rules Rules, tx models.Transaction) models.Transaction {
	category, keyword := rules.Match(tx.Details)
	if keyword != "" {
		c.logger.Debug("Transaction categorized by keyword",
			logging.F(logging.FieldTransaction, tx.ID),
			logging.F(logging.FieldKeyword, keyword),
			logging.F(logging.FieldCategory, category))
	}
	return tx.WithCategory(category)
}

// CategorizeAll classifies every transaction and returns the results in a new slice,
// in input order. The input is not modified. The rule set is read once, so all
// transactions of a batch see the same rules.
func (c *Categorizer) CategorizeAll(transactions []models.Transaction) ([]models.Transaction, models.CategorizationStats) {
	rules := Compile(c.source.Categories())
	stats := models.NewCategorizationStats()

	out := make([]models.Transaction, len(transactions))
	for i, tx := range transactions {
		out[i] = c.categorize(rules, tx)
		stats.Record(out[i].Category)
	}

	c.logger.Info("Categorized transactions",
		logging.F(logging.FieldCount, stats.Total),
		logging.F("categorized", stats.Categorized),
		logging.F("uncategorized", stats.Uncategorized))
	return out, stats
}
