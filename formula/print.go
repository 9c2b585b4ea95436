package formula

import (
	"fmt"
	"strings"
)

// Print renders the formula's summary line and, if verbose, its
// variables, parameters, canonical text and unresolved functors,
// mirroring the source's "V"-verbosity Print(Option_t*).
func (f *Formula) Print(verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %q (nDim=%d, nPar=%d, number=%d, ready=%t)\n",
		f.name, f.original, f.nDim, f.NPar(), f.number, f.ready)
	if !verbose {
		return strings.TrimRight(b.String(), "\n")
	}

	fmt.Fprintf(&b, "  variables: %s\n", strings.Join(f.variables.Names(), ", "))
	fmt.Fprintf(&b, "  parameters: %s\n", strings.Join(f.parameters.Names(), ", "))
	fmt.Fprintf(&b, "  canonical: %s\n", f.canonical)
	if len(f.unresolved) > 0 {
		fmt.Fprintf(&b, "  unresolved: %s\n", strings.Join(f.unresolved, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (f *Formula) String() string { return f.Print(false) }
