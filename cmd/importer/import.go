// Package importer implements the import command.
package importer

import (
	"fmt"
	"io"

	"fjacquet/budget-csv/cmd/common"
	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/internal/container"
	"fjacquet/budget-csv/internal/filter"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/report"
	"fjacquet/budget-csv/internal/ui"
	"fjacquet/budget-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the inputs of one import run.
type Options struct {
	Input   string
	Output  string
	Filters common.FilterFlags
	Summary bool
}

var opts Options

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a bank CSV export and categorize its transactions",
	Long: `Import reads a bank CSV export (columns Date, Details, Amount, Debit/Credit),
assigns each transaction a category from the keyword rules and writes the result
as CSV, either to --output or to standard output. Edit the Category column of
that file and feed it to "learn" to teach the rules.`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVar(&opts.Filters.From, "from", "", "Only transactions on or after this date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&opts.Filters.To, "to", "", "Only transactions on or before this date (YYYY-MM-DD)")
	Cmd.Flags().StringSliceVar(&opts.Filters.Categories, "category", nil, "Only these categories (repeatable)")
	Cmd.Flags().StringVar(&opts.Filters.Search, "search", "", "Only transactions whose details contain this text")
	Cmd.Flags().StringVar(&opts.Filters.Direction, "direction", "", "Only Debit or Credit transactions")
	Cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print the spending report of the selected transactions")
}

func importFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	opts.Input = root.SharedFlags.Input
	opts.Output = root.SharedFlags.Output
	return Run(c, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Run imports opts.Input. The categorized CSV goes to opts.Output, or to out when no
// output file is set; messages and the optional report go to msg in that case.
func Run(c *container.Container, opts Options, out, msg io.Writer) error {
	criteria, err := opts.Filters.Criteria()
	if err != nil {
		return err
	}
	if err := validation.IsValidOutputFile(opts.Input, opts.Output); err != nil {
		return err
	}

	transactions, stats, err := common.LoadTransactions(c.GetParser(), c.GetCategorizer(), opts.Input, c.GetLogger())
	if err != nil {
		return err
	}
	selected := filter.Apply(transactions, criteria)
	if !criteria.IsEmpty() {
		c.GetLogger().Info("Filtered transactions",
			logging.F(logging.FieldCount, len(selected)),
			logging.F("total", len(transactions)))
	}

	if opts.Output == "" {
		if err := c.GetCSVHandler().WriteTransactions(out, selected); err != nil {
			return err
		}
	} else {
		if err := c.GetCSVHandler().WriteTransactionsToCSV(selected, opts.Output); err != nil {
			return err
		}
		// Standard output is free for messages once the CSV went to a file.
		msg = out
		fmt.Fprintln(msg, ui.FormatSuccess(fmt.Sprintf("Wrote %d transactions to %s", len(selected), opts.Output)))
	}
	common.PrintStats(msg, stats)

	if !opts.Summary {
		return nil
	}
	fmt.Fprintln(msg)
	return report.Render(msg, report.Summarize(selected), report.CategoryTotals(selected),
		report.MonthlyTotals(selected), c.GetConfig().Report.Currency)
}
