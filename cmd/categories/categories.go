// Package categories implements the commands that inspect and edit the category rules.
package categories

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/budget-csv/cmd/common"
	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/internal/store"
	"fjacquet/budget-csv/internal/ui"

	"github.com/spf13/cobra"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List and edit spending categories and their keywords",
	Long: `Categories are kept in order; when several categories have a keyword found in a
transaction, the one listed first wins.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in rule order with their keywords",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return List(c.GetStore(), cmd.OutOrStdout())
	},
}

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Add(c.GetStore(), args[0], cmd.OutOrStdout())
	},
}

var keywordCmd = &cobra.Command{
	Use:   "keyword CATEGORY KEYWORD",
	Short: "Add a keyword to an existing category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return AddKeyword(c.GetStore(), args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	Cmd.AddCommand(listCmd, addCmd, keywordCmd)
}

// List prints every category with its keywords.
func List(s *store.CategoryStore, w io.Writer) error {
	rows := make([][]string, 0, s.Len())
	for i, category := range s.Categories() {
		keywords := strings.Join(category.Keywords, ", ")
		if keywords == "" {
			keywords = ui.FormatSubtle("(none)")
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), category.Name, keywords})
	}
	if _, err := io.WriteString(w, ui.Table([]string{"#", "Category", "Keywords"}, rows)); err != nil {
		return err
	}
	fmt.Fprintln(w, ui.FormatSubtle("Rules file: "+s.Path()))
	return nil
}

// Add creates a category. A blank or existing name changes nothing.
func Add(s *store.CategoryStore, name string, w io.Writer) error {
	created, err := s.CreateCategory(name)
	if err != nil {
		common.ReportSaveError(w, err)
		return err
	}
	if !created {
		fmt.Fprintln(w, ui.FormatWarning(fmt.Sprintf("Category %q already exists or is blank", strings.TrimSpace(name))))
		return nil
	}
	fmt.Fprintln(w, ui.FormatSuccess(fmt.Sprintf("Added category %q", strings.TrimSpace(name))))
	return nil
}

// AddKeyword adds keyword to category, which must already exist.
func AddKeyword(s *store.CategoryStore, category, keyword string, w io.Writer) error {
	if !s.Has(category) {
		return fmt.Errorf("unknown category %q (create it with \"categories add\")", category)
	}
	added, err := s.AddKeyword(category, keyword)
	if err != nil {
		common.ReportSaveError(w, err)
		return err
	}
	if !added {
		fmt.Fprintln(w, ui.FormatWarning(fmt.Sprintf("Keyword %q is blank or already in %q", strings.TrimSpace(keyword), category)))
		return nil
	}
	fmt.Fprintln(w, ui.FormatSuccess(fmt.Sprintf("Added keyword %q to %q", strings.TrimSpace(keyword), category)))
	return nil
}
