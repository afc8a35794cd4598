package categorizer

import "fjacquet/budget-csv/internal/models"

// KeywordSource provides the ordered rule set the classifier reads.
type KeywordSource interface {
	Categories() []models.CategoryConfig
}

// KeywordStore is what the learner needs: a way to check category existence and to
// add keywords, persisting them.
type KeywordStore interface {
	KeywordSource
	Has(name string) bool
	AddKeyword(category, keyword string) (bool, error)
}
