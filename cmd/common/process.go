// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/budget-csv/internal/categorizer"
	"fjacquet/budget-csv/internal/dateutils"
	"fjacquet/budget-csv/internal/filter"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/parser"
	"fjacquet/budget-csv/internal/ui"
)

// FlagDateLayout is the layout of --from and --to values.
const FlagDateLayout = dateutils.ISODateLayout

// LoadTransactions parses inputFile and classifies every transaction.
func LoadTransactions(
	p parser.FileParser,
	c *categorizer.Categorizer,
	inputFile string,
	log logging.Logger,
) ([]models.Transaction, models.CategorizationStats, error) {
	if strings.TrimSpace(inputFile) == "" {
		return nil, models.CategorizationStats{}, fmt.Errorf("an input file is required (--input)")
	}

	transactions, err := p.ParseFile(inputFile)
	if err != nil {
		log.WithError(err).Error("Failed to parse input file", logging.F(logging.FieldInputFile, inputFile))
		return nil, models.CategorizationStats{}, fmt.Errorf("error parsing %s: %w", inputFile, err)
	}

	classified, stats := c.CategorizeAll(transactions)
	return classified, stats, nil
}

// FilterFlags are the values of the filtering flags shared by commands.
type FilterFlags struct {
	From       string
	To         string
	Categories []string
	Search     string
	Direction  string
}

// Criteria converts the flag values, validating dates and direction.
func (f FilterFlags) Criteria() (filter.Criteria, error) {
	var criteria filter.Criteria
	var err error

	if criteria.From, err = parseFlagDate("from", f.From); err != nil {
		return filter.Criteria{}, err
	}
	if criteria.To, err = parseFlagDate("to", f.To); err != nil {
		return filter.Criteria{}, err
	}
	if !criteria.From.IsZero() && !criteria.To.IsZero() && criteria.To.Before(criteria.From) {
		return filter.Criteria{}, fmt.Errorf("--to %s is before --from %s", f.To, f.From)
	}
	if strings.TrimSpace(f.Direction) != "" {
		if criteria.Direction, err = models.ParseDirection(f.Direction); err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid --direction: %w", err)
		}
	}
	for _, category := range f.Categories {
		if category = strings.TrimSpace(category); category != "" {
			criteria.Categories = append(criteria.Categories, category)
		}
	}
	criteria.Search = f.Search
	return criteria, nil
}

func parseFlagDate(name, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	date, err := dateutils.ParseDate(value, []string{FlagDateLayout})
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q (expected YYYY-MM-DD): %w", name, value, err)
	}
	return date, nil
}

// ReportSaveError tells the user a category change is kept for this run only.
func ReportSaveError(w io.Writer, err error) {
	fmt.Fprintln(w, ui.FormatWarning(fmt.Sprintf("Change applied but not saved: %v", err)))
}

// PrintStats prints the categorization summary of an import.
func PrintStats(w io.Writer, stats models.CategorizationStats) {
	fmt.Fprintln(w, ui.FormatSuccess(fmt.Sprintf("%d transactions, %d categorized, %d uncategorized (%.0f%%)",
		stats.Total, stats.Categorized, stats.Uncategorized, stats.CategorizedRatio()*100)))
}
