// Package common provides the categorized CSV format shared by the export and
// learn commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fjacquet/budget-csv/internal/fileutils"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/parsererror"
	"fjacquet/budget-csv/internal/report"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

const (
	// DefaultDelimiter separates fields in exported files.
	DefaultDelimiter = ','
	// DefaultDateLayout is the export date format, day first.
	DefaultDateLayout = "02/01/2006"

	categorizedParser = "categorized-csv"
)

// CategorizedCSVRow is one row of an exported (and possibly hand-edited) file.
type CategorizedCSVRow struct {
	ID        string `csv:"ID"`
	Date      string `csv:"Date"`
	Details   string `csv:"Details"`
	Amount    string `csv:"Amount"`
	Direction string `csv:"Debit/Credit"`
	Category  string `csv:"Category"`
	Assigned  string `csv:"Assigned"`
}

// EditedTransaction is a row read back from an exported file. Category holds what the
// file says now; Assigned is the category the row was exported with, or "" when the
// file predates the Assigned column.
type EditedTransaction struct {
	models.Transaction
	Assigned string
}

// CategoryTotalRow is one row of the aggregated export.
type CategoryTotalRow struct {
	Category string `csv:"Category"`
	Amount   string `csv:"Amount"`
	Count    int    `csv:"Count"`
}

// CSVHandler reads and writes categorized transaction files.
type CSVHandler struct {
	delimiter  rune
	dateLayout string
	logger     logging.Logger
}

// NewCSVHandler creates a handler. A zero delimiter or empty layout selects the default.
func NewCSVHandler(delimiter rune, dateLayout string, logger logging.Logger) *CSVHandler {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CSVHandler{delimiter: delimiter, dateLayout: dateLayout, logger: logger}
}

// Delimiter returns the field separator in use.
func (h *CSVHandler) Delimiter() rune {
	return h.delimiter
}

func (h *CSVHandler) newWriter(w io.Writer) *gocsv.SafeCSVWriter {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = h.delimiter
	return gocsv.NewSafeCSVWriter(csvWriter)
}

// WriteTransactions writes transactions with a header row to w.
func (h *CSVHandler) WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	rows := make([]CategorizedCSVRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = CategorizedCSVRow{
			ID:        tx.ID,
			Date:      tx.Date.Format(h.dateLayout),
			Details:   tx.Details,
			Amount:    tx.Amount.StringFixed(2),
			Direction: tx.Direction.String(),
			Category:  tx.Category,
			Assigned:  tx.Category,
		}
	}
	if err := gocsv.MarshalCSV(rows, h.newWriter(w)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsToCSV writes transactions to path, creating parent directories.
func (h *CSVHandler) WriteTransactionsToCSV(transactions []models.Transaction, path string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	logger := h.logger.WithFields(
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldDelimiter, string(h.delimiter)))
	logger.Info("Writing transactions to CSV file")

	err := writeFile(path, func(w io.Writer) error { return h.WriteTransactions(w, transactions) })
	if err != nil {
		logger.WithError(err).Error("Failed to write transactions")
		return err
	}
	return nil
}

// WriteCategoryTotalsCSV writes the per-category debit totals to w.
func (h *CSVHandler) WriteCategoryTotalsCSV(totals []report.CategoryTotal, w io.Writer) error {
	rows := make([]CategoryTotalRow, len(totals))
	for i, total := range totals {
		rows[i] = CategoryTotalRow{
			Category: total.Category,
			Amount:   total.Amount.StringFixed(2),
			Count:    total.Count,
		}
	}
	if err := gocsv.MarshalCSV(rows, h.newWriter(w)); err != nil {
		return fmt.Errorf("error writing category totals: %w", err)
	}
	return nil
}

// WriteCategoryTotalsFile writes the per-category totals to path.
func (h *CSVHandler) WriteCategoryTotalsFile(totals []report.CategoryTotal, path string) error {
	h.logger.Info("Writing category totals",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(totals)))
	return writeFile(path, func(w io.Writer) error { return h.WriteCategoryTotalsCSV(totals, w) })
}

// ReadCategorizedCSV reads a file produced by WriteTransactionsToCSV, usually after
// the user edited its Category column.
func (h *CSVHandler) ReadCategorizedCSV(path string) ([]EditedTransaction, error) {
	rows, err := ReadCSVFile[CategorizedCSVRow](path, h.delimiter, h.logger)
	if err != nil {
		return nil, err
	}
	edited := make([]EditedTransaction, 0, len(rows))
	for i, row := range rows {
		tx, err := h.convertRow(i+1, row)
		if err != nil {
			return nil, err
		}
		edited = append(edited, EditedTransaction{Transaction: tx, Assigned: strings.TrimSpace(row.Assigned)})
	}
	return edited, nil
}

func (h *CSVHandler) convertRow(n int, row CategorizedCSVRow) (models.Transaction, error) {
	fail := func(field, value string, err error) error {
		return &parsererror.ParseError{Parser: categorizedParser, Row: n, Field: field, Value: value, Err: err}
	}

	id := strings.TrimSpace(row.ID)
	if id == "" {
		return models.Transaction{}, &parsererror.ValidationError{Row: n, Reason: "missing ID"}
	}
	date, err := time.Parse(h.dateLayout, strings.TrimSpace(row.Date))
	if err != nil {
		return models.Transaction{}, fail("Date", row.Date, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
	if err != nil {
		return models.Transaction{}, fail("Amount", row.Amount, err)
	}
	direction, err := models.ParseDirection(row.Direction)
	if err != nil {
		return models.Transaction{}, fail("Debit/Credit", row.Direction, err)
	}

	tx := models.NewTransaction(id, date, row.Details, amount, direction)
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, &parsererror.ValidationError{Row: n, Reason: err.Error()}
	}
	if category := strings.TrimSpace(row.Category); category != "" {
		tx.Category = category
	}
	return tx, nil
}

// ReadCSVFile reads a delimited file into a slice of TCSVRow using its csv tags.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune, logger logging.Logger) ([]TCSVRow, error) {
	logger = logger.WithField(logging.FieldFile, filePath)
	logger.Info("Reading CSV file")

	file, err := os.Open(filePath) // #nosec G304 -- path is supplied by the user on the command line
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Info("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := fileutils.CreateFile(path, models.PermissionExportFile)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing CSV file: %w", err)
	}
	return nil
}
