package repl

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/cernflow/tformula/formula"
)

// FormatFormula writes the formula's Print(verbose) summary, then renders
// its name, variables and parameters as a table (regardless of verbose).
func FormatFormula(f *formula.Formula, verbose bool, w io.Writer) {
	io.WriteString(w, f.Print(verbose))
	io.WriteString(w, "\n")

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(f.Name())
	tw.AppendHeader(table.Row{"kind", "name", "value"})
	for _, name := range f.VariableNames() {
		v, _ := f.GetVariable(name)
		tw.AppendRow(table.Row{"variable", name, v})
	}
	for _, name := range f.ParameterNames() {
		v, _ := f.GetParameter(name)
		tw.AppendRow(table.Row{"parameter", name, v})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}

// FormatResult renders a single evaluation result line.
func FormatResult(expr string, value float64, w io.Writer) {
	fmt.Fprintf(w, "▶ %s = %g\n", expr, value)
}
