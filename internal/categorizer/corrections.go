package categorizer

import (
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
)

// Correction is a user's choice of category for the transaction with the given ID.
type Correction struct {
	ID       string
	Category string
}

// Rejection is a correction that could not be applied, with the reason.
type Rejection struct {
	Correction
	Reason string
}

// Rejection reasons.
const (
	ReasonUnknownTransaction = "unknown transaction"
	ReasonUnknownCategory    = "unknown category"
)

// CorrectionResult describes the outcome of ApplyCorrections.
type CorrectionResult struct {
	// Transactions is a copy of the input with the accepted corrections applied.
	Transactions []models.Transaction
	// Applied counts transactions whose category changed.
	Applied int
	// Learned counts corrections that added a keyword.
	Learned int
	// Unchanged counts corrections that matched the current category.
	Unchanged int
	Rejected  []Rejection
}

// ApplyCorrections reconciles edits into current by transaction ID. An edit whose
// category equals the transaction's current one is a no-op and is not learned. An edit
// naming a category the store does not know, or an ID not in current, is rejected.
// Every other edit updates the transaction and is passed to Learn.
//
// All edits are applied in memory even when saving a learned keyword fails; the first
// save error is returned alongside the complete result.
func (l *Learner) ApplyCorrections(current []models.Transaction, edits []Correction) (CorrectionResult, error) {
	result := CorrectionResult{
		Transactions: make([]models.Transaction, len(current)),
	}
	copy(result.Transactions, current)

	byID := make(map[string]int, len(current))
	for i, tx := range current {
		byID[tx.ID] = i
	}

	reject := func(edit Correction, reason string) {
		l.logger.Warn("Rejected correction",
			logging.F(logging.FieldTransaction, edit.ID),
			logging.F(logging.FieldCategory, edit.Category),
			logging.F(logging.FieldReason, reason))
		result.Rejected = append(result.Rejected, Rejection{Correction: edit, Reason: reason})
	}

	var firstErr error
	for _, edit := range edits {
		i, ok := byID[edit.ID]
		if !ok {
			reject(edit, ReasonUnknownTransaction)
			continue
		}
		tx := result.Transactions[i]
		if edit.Category == tx.Category {
			result.Unchanged++
			continue
		}
		if !l.store.Has(edit.Category) {
			reject(edit, ReasonUnknownCategory)
			continue
		}

		result.Transactions[i] = tx.WithCategory(edit.Category)
		result.Applied++

		learned, err := l.Learn(edit.Category, tx.Details)
		if learned {
			result.Learned++
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	l.logger.Info("Applied corrections",
		logging.F("applied", result.Applied),
		logging.F("learned", result.Learned),
		logging.F("unchanged", result.Unchanged),
		logging.F("rejected", len(result.Rejected)))
	return result, firstErr
}
