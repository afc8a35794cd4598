// Package classify implements the classify command.
package classify

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/internal/categorizer"

	"github.com/spf13/cobra"
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify DETAILS",
	Short: "Show the category a transaction description would get",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(c.GetCategorizer(), strings.Join(args, " "), cmd.OutOrStdout())
	},
}

// Run prints the category of details.
func Run(c *categorizer.Categorizer, details string, w io.Writer) error {
	_, err := fmt.Fprintln(w, c.Classify(details))
	return err
}
