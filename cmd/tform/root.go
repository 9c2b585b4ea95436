/*
Package main implements the tform command line interface: evaluate a
formula from flags, or drop into an interactive REPL. Startup wires a
cobra root command with cobra.OnInitialize(loadConfig) to load site
configuration before any subcommand runs.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cernflow/tformula"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.cli")
}

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tform",
	Short: "Parse, resolve and evaluate ROOT-style TFormula expressions",
	Long: `tform parses an infix mathematical expression with named
variables, bracketed parameters and qualified math-library calls,
resolves it against a set of symbol tables, and evaluates it against
numeric inputs. It can run a single evaluation from flags or drop into
an interactive REPL.
`,
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file")
}

func loadConfig() {
	var paths []string
	if cfgFile != "" {
		paths = append(paths, cfgFile)
	}
	if _, err := tformula.Configure(paths...); err != nil {
		tracer().Errorf("configuration load failed: %v", err)
	}
}

// Execute runs the root command. It is called exactly once by main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
