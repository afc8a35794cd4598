// Package summary implements the summary command.
package summary

import (
	"fmt"
	"io"

	"fjacquet/budget-csv/cmd/common"
	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/internal/container"
	"fjacquet/budget-csv/internal/filter"
	"fjacquet/budget-csv/internal/report"
	"fjacquet/budget-csv/internal/ui"
	"fjacquet/budget-csv/internal/validation"

	"github.com/spf13/cobra"
)

var filters common.FilterFlags

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Report spending per category and per month",
	Long: `Summary imports a bank CSV export, categorizes it and prints total expenses,
total income, net, expenses per category and expenses per month. Totals always cover
the whole file; the filters narrow the category and monthly tables. With --output
the per-category totals of the filtered selection are also written as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(c, root.SharedFlags.Input, root.SharedFlags.Output, filters, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&filters.From, "from", "", "Only transactions on or after this date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&filters.To, "to", "", "Only transactions on or before this date (YYYY-MM-DD)")
	Cmd.Flags().StringSliceVar(&filters.Categories, "category", nil, "Only these categories (repeatable)")
	Cmd.Flags().StringVar(&filters.Search, "search", "", "Only transactions whose details contain this text")
}

// Run prints the report of input and, when output is set, writes the category totals.
func Run(c *container.Container, input, output string, flags common.FilterFlags, w io.Writer) error {
	criteria, err := flags.Criteria()
	if err != nil {
		return err
	}
	if err := validation.IsValidOutputFile(input, output); err != nil {
		return err
	}
	transactions, _, err := common.LoadTransactions(c.GetParser(), c.GetCategorizer(), input, c.GetLogger())
	if err != nil {
		return err
	}
	selected := filter.Apply(transactions, criteria)

	totals := report.CategoryTotals(selected)
	if err := report.Render(w, report.Summarize(transactions), totals, report.MonthlyTotals(selected),
		c.GetConfig().Report.Currency); err != nil {
		return err
	}

	if output == "" {
		return nil
	}
	if err := c.GetCSVHandler().WriteCategoryTotalsFile(totals, output); err != nil {
		return err
	}
	fmt.Fprintln(w, ui.FormatSuccess("Wrote category totals to "+output))
	return nil
}
