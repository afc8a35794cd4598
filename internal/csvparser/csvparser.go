// Package csvparser reads the bank's CSV transaction export.
//
// The export has one header row naming at least the columns Date, Details, Amount
// and Debit/Credit. Other columns are ignored.
package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"fjacquet/budget-csv/internal/currencyutils"
	"fjacquet/budget-csv/internal/dateutils"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/parser"
	"fjacquet/budget-csv/internal/parsererror"

	"github.com/gocarina/gocsv"
)

const (
	parserName     = "bank-csv"
	expectedFormat = "bank CSV with columns Date, Details, Amount, Debit/Credit"

	// DefaultDateLayout is the date format of the export, e.g. "05 Mar 2024".
	DefaultDateLayout = "02 Jan 2006"
)

// RequiredColumns are the header names every export must carry.
var RequiredColumns = []string{"Date", "Details", "Amount", "Debit/Credit"}

// BankCSVRow is one data row of the export.
type BankCSVRow struct {
	Date      string `csv:"Date"`
	Details   string `csv:"Details"`
	Amount    string `csv:"Amount"`
	Direction string `csv:"Debit/Credit"`
}

// Parser implements parser.FileParser for the bank export.
type Parser struct {
	parser.BaseParser
	dateLayouts []string
}

var _ parser.FileParser = (*Parser)(nil)

// NewParser creates a parser accepting dates in the given layouts, tried in order.
// With no layouts DefaultDateLayout is used. The single-digit-day variant of each
// layout is always accepted too.
func NewParser(logger logging.Logger, dateLayouts ...string) *Parser {
	if len(dateLayouts) == 0 {
		dateLayouts = []string{DefaultDateLayout}
	}
	return &Parser{BaseParser: parser.NewBaseParser(logger), dateLayouts: dateutils.WithUnpaddedDay(dateLayouts)}
}

// ValidateFormat reports a *parsererror.InvalidFormatError when the header lacks a
// required column. Only the header row is read.
func (p *Parser) ValidateFormat(r io.Reader) error {
	reader := newCSVReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &parsererror.InvalidFormatError{ExpectedFormat: expectedFormat, Msg: "input is empty"}
	}
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}
	return checkHeader(trimHeader(header))
}

// Parse reads the export. Rows are numbered from 1 in source order and get the ID
// models.RowID(n); rows that are dropped keep their number so IDs stay stable.
//
// A row whose date does not parse is dropped, as is a row whose Debit/Credit value is
// neither debit nor credit. An amount that does not parse fails the whole import with
// a *parsererror.ParseError.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	logger := p.GetLogger()

	records, err := newCSVReader(r).ReadAll()
	if err != nil {
		logger.WithError(err).Error("Failed to read bank CSV")
		return nil, fmt.Errorf("error reading bank CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, &parsererror.InvalidFormatError{ExpectedFormat: expectedFormat, Msg: "input is empty"}
	}
	records[0] = trimHeader(records[0])
	if err := checkHeader(records[0]); err != nil {
		logger.WithError(err).Error("Bank CSV is missing required columns")
		return nil, err
	}
	padRecords(records)

	var rows []BankCSVRow
	if err := gocsv.UnmarshalCSV(newRecordReader(records), &rows); err != nil {
		logger.WithError(err).Error("Failed to unmarshal bank CSV rows")
		return nil, fmt.Errorf("error parsing bank CSV: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		n := i + 1
		tx, ok, err := p.convertRow(n, row)
		if err != nil {
			return nil, err
		}
		if ok {
			transactions = append(transactions, tx)
		}
	}

	logger.Info("Parsed bank CSV",
		logging.F(logging.FieldCount, len(transactions)),
		logging.F("dropped", len(rows)-len(transactions)))
	return transactions, nil
}

// ParseFile opens path and parses it.
func (p *Parser) ParseFile(path string) ([]models.Transaction, error) {
	logger := p.GetLogger().WithField(logging.FieldFile, path)
	logger.Info("Parsing bank CSV file")

	file, err := os.Open(path) // #nosec G304 -- path is supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("error opening bank CSV: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	transactions, err := p.Parse(file)
	if err != nil {
		var formatErr *parsererror.InvalidFormatError
		if errors.As(err, &formatErr) && formatErr.FilePath == "" {
			formatErr.FilePath = path
		}
		return nil, err
	}
	return transactions, nil
}

func (p *Parser) convertRow(n int, row BankCSVRow) (models.Transaction, bool, error) {
	logger := p.GetLogger().WithField(logging.FieldRow, n)

	date, err := p.parseDate(row.Date)
	if err != nil {
		logger.Debug("Dropping row with unparseable date", logging.F("date", row.Date))
		return models.Transaction{}, false, nil
	}

	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return models.Transaction{}, false, &parsererror.ParseError{
			Parser: parserName,
			Row:    n,
			Field:  "Amount",
			Value:  row.Amount,
			Err:    err,
		}
	}

	direction, err := models.ParseDirection(row.Direction)
	if err != nil {
		logger.Warn("Dropping row with unknown debit/credit value",
			logging.F("direction", row.Direction))
		return models.Transaction{}, false, nil
	}

	// Direction comes from its own column, so the sign carries no information.
	amount = amount.Abs()

	return models.NewTransaction(models.RowID(n), date, strings.TrimSpace(row.Details), amount, direction), true, nil
}

func (p *Parser) parseDate(value string) (time.Time, error) {
	return dateutils.ParseDate(value, p.dateLayouts)
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func trimHeader(header []string) []string {
	trimmed := make([]string, len(header))
	for i, name := range header {
		trimmed[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}
	return trimmed
}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	var missing []string
	for _, required := range RequiredColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &parsererror.InvalidFormatError{
		ExpectedFormat: expectedFormat,
		Missing:        missing,
		Msg:            "missing required columns",
	}
}

// padRecords gives short rows empty trailing fields so every row matches the header.
func padRecords(records [][]string) {
	width := len(records[0])
	for i := 1; i < len(records); i++ {
		if missing := width - len(records[i]); missing > 0 {
			records[i] = append(records[i], make([]string, missing)...)
		}
	}
}

// recordReader serves already-read records to gocsv.
type recordReader struct {
	records [][]string
	next    int
}

func newRecordReader(records [][]string) *recordReader {
	return &recordReader{records: records}
}

func (r *recordReader) Read() ([]string, error) {
	if r.next >= len(r.records) {
		return nil, io.EOF
	}
	record := r.records[r.next]
	r.next++
	return record, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.next:]
	r.next = len(r.records)
	return rest, nil
}
