package categorizer

import (
	"fmt"

	"fjacquet/budget-csv/internal/logging"
)

// Learner turns a user's category correction into a keyword rule.
type Learner struct {
	store  KeywordStore
	logger logging.Logger
}

// NewLearner creates a Learner writing to store.
func NewLearner(store KeywordStore, logger logging.Logger) *Learner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Learner{store: store, logger: logger}
}

// Learn records that transactions described as details belong to category. The whole
// description, trimmed, becomes a keyword of category, so the same description will
// classify the same way from now on. It reports whether a new rule was added; repeating
// a correction returns false. Blank descriptions teach nothing.
//
// category must be one the store already knows. An unknown category is logged and
// then created, because dropping the correction would lose the user's edit.
func (l *Learner) Learn(category, details string) (bool, error) {
	log := l.logger.WithFields(
		logging.F(logging.FieldCategory, category),
		logging.F(logging.FieldDetails, details))

	if !l.store.Has(category) {
		log.Warn("Learning a keyword for a category that does not exist")
	}

	changed, err := l.store.AddKeyword(category, details)
	if err != nil {
		log.WithError(err).Error("Learned keyword could not be saved")
		return changed, fmt.Errorf("saving learned keyword for %q: %w", category, err)
	}
	if changed {
		log.Info("Learned keyword from correction")
	}
	return changed, nil
}
