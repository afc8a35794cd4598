package integration

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-csv/internal/categorizer"
	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/container"
	"fjacquet/budget-csv/internal/filter"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = `Date,Details,Amount,Debit/Credit,Balance
01 Mar 2024,CARREFOUR CITY CENTRE,250.00,Debit,9750
02 Mar 2024,RTA NOL TOPUP,100.00,Debit,9650
03 Mar 2024,SALARY MARCH,"12,000.00",Credit,21650
05 Apr 2024,CARREFOUR CITY CENTRE,80.00,Debit,21570
`

func newTestConfig(categoriesFile string) *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.CSV.InputDateLayout = "02 Jan 2006"
	cfg.CSV.ExportDateLayout = "02/01/2006"
	cfg.Categories.File = categoriesFile
	cfg.Report.Currency = "AED"
	return cfg
}

func newTestContainer(t *testing.T, categoriesFile string) *container.Container {
	t.Helper()
	c, err := container.NewContainerWithLogger(newTestConfig(categoriesFile), logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func importStatement(t *testing.T, c *container.Container, path string) []models.Transaction {
	t.Helper()
	txs, err := c.GetParser().ParseFile(path)
	require.NoError(t, err)
	categorized, _ := c.GetCategorizer().CategorizeAll(txs)
	return categorized
}

func categoriesOf(txs []models.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Category
	}
	return out
}

// TestLearningLoop imports a statement, corrects the export by hand, learns from
// it and checks that a fresh run classifies the same descriptions the new way.
func TestLearningLoop(t *testing.T) {
	dir := t.TempDir()
	categoriesFile := filepath.Join(dir, "categories.json")
	require.NoError(t, os.WriteFile(categoriesFile,
		[]byte(`{"Groceries": ["spinneys"], "Transport": ["careem"], "Uncategorized": []}`), 0600))
	statementFile := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(statementFile, []byte(statement), 0600))

	c := newTestContainer(t, categoriesFile)

	first := importStatement(t, c, statementFile)
	require.Len(t, first, 4)
	assert.Equal(t, []string{"Uncategorized", "Uncategorized", "Uncategorized", "Uncategorized"}, categoriesOf(first))

	exported := filepath.Join(dir, "export.csv")
	require.NoError(t, c.GetCSVHandler().WriteTransactionsToCSV(first, exported))

	edited, err := c.GetCSVHandler().ReadCategorizedCSV(exported)
	require.NoError(t, err)
	require.Len(t, edited, 4)
	exportedTxs := make([]models.Transaction, len(edited))
	for i, row := range edited {
		assert.Equal(t, row.Category, row.Assigned)
		exportedTxs[i] = row.Transaction
	}

	edits := []categorizer.Correction{
		{ID: edited[0].ID, Category: "Groceries"},
		{ID: edited[1].ID, Category: "Transport"},
		{ID: edited[2].ID, Category: "Income"},
		{ID: "row-99", Category: "Groceries"},
	}
	result, err := c.GetLearner().ApplyCorrections(exportedTxs, edits)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 2, result.Learned)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, categorizer.ReasonUnknownCategory, result.Rejected[0].Reason)
	assert.Equal(t, categorizer.ReasonUnknownTransaction, result.Rejected[1].Reason)
	assert.Equal(t, []string{"Groceries", "Transport", "Uncategorized", "Uncategorized"}, categoriesOf(result.Transactions))

	// A new process sees what was persisted, in the original category order.
	reopened := newTestContainer(t, categoriesFile)
	assert.Equal(t, []string{"Groceries", "Transport", "Uncategorized"}, reopened.GetStore().Names())
	assert.Equal(t, []string{"spinneys", "CARREFOUR CITY CENTRE"}, reopened.GetStore().Keywords("Groceries"))

	second := importStatement(t, reopened, statementFile)
	assert.Equal(t, []string{"Groceries", "Transport", "Uncategorized", "Groceries"}, categoriesOf(second))

	expenses := filter.Apply(second, filter.Criteria{Direction: models.DirectionDebit})
	totals := report.CategoryTotals(expenses)
	require.Len(t, totals, 2)
	assert.Equal(t, "Groceries", totals[0].Category)
	assert.True(t, decimal.NewFromInt(330).Equal(totals[0].Amount))
	assert.Equal(t, 2, totals[0].Count)

	summary := report.Summarize(second)
	assert.True(t, decimal.NewFromInt(430).Equal(summary.TotalExpenses))
	assert.True(t, decimal.NewFromInt(12000).Equal(summary.TotalIncome))
}

// TestLearningLoop_RepeatIsIdempotent checks that applying the same corrections
// twice learns nothing new and leaves the category file unchanged.
func TestLearningLoop_RepeatIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	categoriesFile := filepath.Join(dir, "categories.yaml")
	require.NoError(t, os.WriteFile(categoriesFile, []byte("Groceries: []\nUncategorized: []\n"), 0600))
	statementFile := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(statementFile, []byte(statement), 0600))

	c := newTestContainer(t, categoriesFile)
	txs := importStatement(t, c, statementFile)
	edits := []categorizer.Correction{{ID: txs[0].ID, Category: "Groceries"}}

	result, err := c.GetLearner().ApplyCorrections(txs, edits)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Learned)
	saved, err := os.ReadFile(categoriesFile) // #nosec G304 -- test fixture path
	require.NoError(t, err)

	again := newTestContainer(t, categoriesFile)
	txs = importStatement(t, again, statementFile)
	assert.Equal(t, "Groceries", txs[0].Category)

	result, err = again.GetLearner().ApplyCorrections(txs, edits)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, 0, result.Learned)

	resaved, err := os.ReadFile(categoriesFile) // #nosec G304 -- test fixture path
	require.NoError(t, err)
	assert.Equal(t, string(saved), string(resaved))
}
