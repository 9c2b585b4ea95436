package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cernflow/tformula/formula"
	"github.com/cernflow/tformula/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive formula evaluation REPL",
	Run:   runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) {
	tracer().Infof("starting interactive repl")
	r := repl.New("tform", "0.1")
	fi := &formulaInterpreter{repl: r, current: nil}
	r.Interpreter = fi
	r.Helper = fi.help
	r.Run(true)
}

// formulaInterpreter dispatches REPL lines that aren't one of repl.REPL's
// own administrative commands (help/bye/mode/setprompt): "set <expr>"
// parses and resolves a new current formula, "param"/"var" assign into
// it, "eval" evaluates it, "print" shows its tables.
type formulaInterpreter struct {
	repl    *repl.REPL
	current *formula.Formula
}

// PromptStatus implements repl.Status: the prompt shows the current
// formula's name and readiness, e.g. "tform[gaus1]> " or
// "tform[gaus1!]> " if it didn't fully resolve.
func (fi *formulaInterpreter) PromptStatus() string {
	if fi.current == nil {
		return ""
	}
	if !fi.current.Ready() {
		return fmt.Sprintf("[%s!]", fi.current.Name())
	}
	return fmt.Sprintf("[%s]", fi.current.Name())
}

// Completions implements repl.Completer: the set/param/var/eval/print
// verbs, plus the current formula's variable and parameter names so
// "param a<TAB>" completes against its actual symbol table.
func (fi *formulaInterpreter) Completions() []string {
	words := []string{"set", "param", "var", "eval", "print"}
	if fi.current != nil {
		words = append(words, fi.current.VariableNames()...)
		words = append(words, fi.current.ParameterNames()...)
	}
	return words
}

func (fi *formulaInterpreter) help(w io.Writer) {
	io.WriteString(w, `
tform repl commands:

  set <expr>         : parse and resolve <expr> as the current formula
  param <name>=<val>  : set a parameter on the current formula
  var <name>=<val>    : set a variable on the current formula
  eval                : evaluate the current formula
  print               : print the current formula's tables

`)
}

func (fi *formulaInterpreter) InterpretCommand(line string) {
	out, errOut := fi.repl.Outputs()
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}
	switch words[0] {
	case "set":
		expr := strings.TrimSpace(strings.TrimPrefix(line, "set"))
		f, err := formula.New(nil, "repl", expr)
		if err != nil {
			fmt.Fprintf(errOut, "> error: %v\n", err)
			return
		}
		if !f.Ready() {
			fmt.Fprintf(errOut, "> formula did not resolve: unresolved functors %v\n", f.Unresolved())
		}
		fi.current = f
		fmt.Fprintf(out, "> current formula: %s\n", f.Canonical())
	case "param", "var":
		if fi.current == nil {
			fmt.Fprintln(errOut, "> no current formula, use 'set <expr>' first")
			return
		}
		if len(words) < 2 {
			fmt.Fprintln(errOut, "> usage: param name=value")
			return
		}
		name, value, ok := strings.Cut(words[1], "=")
		if !ok {
			fmt.Fprintln(errOut, "> usage: param name=value")
			return
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Fprintf(errOut, "> error: %v\n", err)
			return
		}
		if words[0] == "param" {
			err = fi.current.SetParameter(name, v)
		} else {
			err = fi.current.SetVariable(name, v)
		}
		if err != nil {
			fmt.Fprintf(errOut, "> error: %v\n", err)
		}
	case "eval":
		if fi.current == nil {
			fmt.Fprintln(errOut, "> no current formula, use 'set <expr>' first")
			return
		}
		v, err := fi.current.EvalCurrent()
		if err != nil {
			fmt.Fprintf(errOut, "> error: %v\n", err)
			return
		}
		repl.FormatResult(fi.current.Canonical(), v, out)
	case "print":
		if fi.current == nil {
			fmt.Fprintln(errOut, "> no current formula, use 'set <expr>' first")
			return
		}
		repl.FormatFormula(fi.current, true, out)
	default:
		fmt.Fprintf(errOut, "> unknown command %q, type 'help' for a list\n", words[0])
	}
}
