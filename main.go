package main

import (
	"fmt"
	"os"

	"fjacquet/budget-csv/cmd/categories"
	"fjacquet/budget-csv/cmd/classify"
	"fjacquet/budget-csv/cmd/importer"
	"fjacquet/budget-csv/cmd/learn"
	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/cmd/summary"
	"fjacquet/budget-csv/internal/ui"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(learn.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}
