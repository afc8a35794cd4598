package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/budget-csv/internal/currencyutils"
	"fjacquet/budget-csv/internal/ui"

	"github.com/shopspring/decimal"
)

// Render writes the KPI summary followed by the category and monthly tables. Category
// shares are relative to the sum of totals, so they add up to 100% even when summary
// covers more transactions than the tables.
func Render(w io.Writer, summary Summary, totals []CategoryTotal, monthly []MonthlyTotal, currency string) error {
	var b strings.Builder

	b.WriteString(ui.FormatTitle("Summary") + "\n")
	b.WriteString(ui.Table(nil, [][]string{
		{"Total expenses", currencyutils.FormatAmount(summary.TotalExpenses, currency), fmt.Sprintf("(%d)", summary.Debits)},
		{"Total income", currencyutils.FormatAmount(summary.TotalIncome, currency), fmt.Sprintf("(%d)", summary.Credits)},
		{"Net", currencyutils.FormatAmount(summary.Net, currency)},
	}))
	b.WriteString("\n")

	b.WriteString(ui.FormatTitle("Expenses by category") + "\n")
	if len(totals) == 0 {
		b.WriteString(ui.FormatSubtle("No expenses.") + "\n")
	} else {
		whole := decimal.Zero
		for _, total := range totals {
			whole = whole.Add(total.Amount)
		}
		rows := make([][]string, len(totals))
		for i, total := range totals {
			rows[i] = []string{
				total.Category,
				currencyutils.FormatAmount(total.Amount, currency),
				Share(total.Amount, whole).StringFixed(1) + "%",
				strconv.Itoa(total.Count),
			}
		}
		b.WriteString(ui.Table([]string{"Category", "Amount", "Share", "Count"}, rows))
	}
	b.WriteString("\n")

	b.WriteString(ui.FormatTitle("Monthly expenses") + "\n")
	if len(monthly) == 0 {
		b.WriteString(ui.FormatSubtle("No expenses.") + "\n")
	} else {
		rows := make([][]string, len(monthly))
		for i, month := range monthly {
			rows[i] = []string{month.Month, currencyutils.FormatAmount(month.Amount, currency)}
		}
		b.WriteString(ui.Table(nil, rows))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
