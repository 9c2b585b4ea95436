package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cernflow/tformula/formula"
)

var (
	evalParams []string
	evalVars   []string
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Parse, resolve and evaluate a formula expression once",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringSliceVarP(&evalParams, "param", "p", nil, "parameter as name=value, repeatable")
	evalCmd.Flags().StringSliceVarP(&evalVars, "var", "x", nil, "variable as name=value, repeatable")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	f, err := formula.New(nil, "cli", args[0])
	if err != nil {
		return err
	}
	if !f.Ready() {
		return fmt.Errorf("formula did not resolve: unresolved functors %v", f.Unresolved())
	}
	if err := applyAssignments(f, evalParams, setParam); err != nil {
		return err
	}
	if err := applyAssignments(f, evalVars, setVar); err != nil {
		return err
	}
	v, err := f.EvalCurrent()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%g\n", v)
	return nil
}

func setParam(f *formula.Formula, name string, v float64) error { return f.SetParameter(name, v) }
func setVar(f *formula.Formula, name string, v float64) error   { return f.SetVariable(name, v) }

func applyAssignments(f *formula.Formula, assignments []string, set func(*formula.Formula, string, float64) error) error {
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("malformed assignment %q, want name=value", a)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("malformed value in %q: %w", a, err)
		}
		if err := set(f, name, v); err != nil {
			return err
		}
	}
	return nil
}
