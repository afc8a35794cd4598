// Package learn implements the learn command.
package learn

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/budget-csv/cmd/common"
	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/internal/categorizer"
	csvcommon "fjacquet/budget-csv/internal/common"
	"fjacquet/budget-csv/internal/container"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/ui"
	"fjacquet/budget-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the learn command
var Cmd = &cobra.Command{
	Use:   "learn",
	Short: "Learn keyword rules from an edited categorized CSV",
	Long: `Learn reads a file written by "import" in which you changed some values of the
Category column. Every row whose category differs from the one it was exported with
(the Assigned column) is corrected, and its details become a keyword of the chosen
category. Files without an Assigned column are compared with what the rules assign now.
Categories must already exist. With --output the corrected file is written back.`,
	RunE: learnFunc,
}

func learnFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return Run(c, root.SharedFlags.Input, root.SharedFlags.Output, cmd.OutOrStdout())
}

// Run applies the corrections found in input. When output is set the corrected
// transactions are written there.
func Run(c *container.Container, input, output string, w io.Writer) error {
	if input == "" {
		return fmt.Errorf("an edited CSV file is required (--input)")
	}

	if err := validation.IsValidInputFile(input); err != nil {
		return err
	}

	edited, err := c.GetCSVHandler().ReadCategorizedCSV(input)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", input, err)
	}

	current, edits := baseline(c.GetCategorizer(), edited)
	result, saveErr := c.GetLearner().ApplyCorrections(current, edits)

	for _, rejected := range result.Rejected {
		fmt.Fprintln(w, ui.FormatWarning(fmt.Sprintf("%s: %s %q", rejected.ID, rejected.Reason, rejected.Category)))
	}
	if result.Applied == 0 {
		fmt.Fprintln(w, ui.FormatSubtle("No changes to apply."))
	} else {
		fmt.Fprintln(w, ui.FormatSuccess(fmt.Sprintf("Applied %d change(s), learned %d keyword(s).", result.Applied, result.Learned)))
	}

	var writeErr error
	if output != "" {
		if writeErr = c.GetCSVHandler().WriteTransactionsToCSV(result.Transactions, output); writeErr == nil {
			fmt.Fprintln(w, ui.FormatSuccess("Wrote corrected transactions to "+output))
		}
	}

	if saveErr != nil {
		common.ReportSaveError(w, saveErr)
	}
	return errors.Join(saveErr, writeErr)
}

// baseline rebuilds the transactions as they were exported, and the edits the file
// holds against them. Rows without an Assigned value fall back to what the rules assign now.
func baseline(cat *categorizer.Categorizer, edited []csvcommon.EditedTransaction) ([]models.Transaction, []categorizer.Correction) {
	current := make([]models.Transaction, len(edited))
	edits := make([]categorizer.Correction, len(edited))
	for i, row := range edited {
		prior := row.Assigned
		if prior == "" {
			prior = cat.Classify(row.Details)
		}
		current[i] = row.Transaction.WithCategory(prior)
		edits[i] = categorizer.Correction{ID: row.ID, Category: row.Category}
	}
	return current, edits
}
