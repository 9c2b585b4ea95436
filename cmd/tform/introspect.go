package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cernflow/tformula/formula"
)

var varsCmd = &cobra.Command{
	Use:   "vars <expression>",
	Short: "List the variable names a formula resolved against",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listNames(cmd, args[0], (*formula.Formula).VariableNames)
	},
}

var paramsCmd = &cobra.Command{
	Use:   "params <expression>",
	Short: "List the parameter names a formula resolved against",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listNames(cmd, args[0], (*formula.Formula).ParameterNames)
	},
}

func init() {
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(paramsCmd)
}

func listNames(cmd *cobra.Command, expr string, names func(*formula.Formula) []string) error {
	f, err := formula.New(nil, "cli", expr)
	if err != nil {
		return err
	}
	for _, name := range names(f) {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
