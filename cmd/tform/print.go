package main

import (
	"github.com/spf13/cobra"

	"github.com/cernflow/tformula/formula"
	"github.com/cernflow/tformula/internal/repl"
)

var printVerbose bool

var printCmd = &cobra.Command{
	Use:   "print <expression>",
	Short: "Parse and resolve a formula, printing its tables without evaluating it",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().BoolVarP(&printVerbose, "verbose", "v", true, "add variables, parameters, canonical text and unresolved functors to the summary")
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	f, err := formula.New(nil, "cli", args[0])
	if err != nil {
		return err
	}
	repl.FormatFormula(f, printVerbose, cmd.OutOrStdout())
	return nil
}
