/*
Package macro implements the formula preprocessor (C2): a fixed sequence
of textual rewrites that expand polN, the parametrized distribution
families (gaus, landau, expo and their 2-D/normalized variants),
right-associative exponentiation, and the "++" linear-composition
operator into a plain arithmetic string over names, numeric literals,
brackets and calls.

Each rewrite step runs to a fixed point before the next one starts, and
every step is idempotent: running Rewrite twice on an already-canonical
string is a no-op.
*/
package macro

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.macro")
}

// Split is the operand pair of one "++" linear composition; both halves are kept
// so a caller can compile them into separately owned "linear part"
// sub-formulas.
type Split struct {
	Left, Right string
}

// Result carries both the rewritten text and the bookkeeping the rest of
// the pipeline needs: the classification code C2 assigns ("number"),
// whether any linear-family rewrite fired, and the ordered list of
// "++" splits.
type Result struct {
	Text        string
	Number      int
	Linear      bool
	Normalized  bool
	LinearParts []Split
}

func isNameChar(r byte) bool {
	return r == '_' || r == ':' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isOperator(r byte) bool {
	switch r {
	case '+', '-', '*', '/', '^', '<', '>', '|', '&', '!', '=':
		return true
	}
	return false
}

// Rewrite runs the full fixed-point macro pipeline over raw formula text:
// normalize, polynomials, parametrized families, exponentiation, linear
// composition, in that order.
func Rewrite(raw string) (*Result, error) {
	text := normalize(raw)

	r := &Result{}
	text = handlePolN(text, r)

	var err error
	text, err = handleFamilies(text, r)
	if err != nil {
		return nil, err
	}

	text = handleExponentiation(text)
	text = handleLinear(text, r)

	r.Text = text
	return r, nil
}

// normalize replaces "**" with "^" and strips all ASCII spaces.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "**", "^")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// handlePolN expands every "[prefix]polN[(k)]" occurrence into the
// explicit polynomial sum.
func handlePolN(formula string, r *Result) string {
	for {
		polPos := strings.Index(formula, "pol")
		if polPos < 0 {
			break
		}
		r.Linear = true

		openParen := strings.IndexByte(formula[polPos:], '(')
		defaultCounter := openParen < 0
		if openParen >= 0 {
			openParen += polPos
		}

		var degree, counter int
		defaultDegree := true
		if !defaultCounter {
			degree, _ = strconv.Atoi(formula[polPos+3 : openParen])
			closeParen := strings.IndexByte(formula[polPos:], ')')
			if closeParen >= 0 {
				closeParen += polPos
			}
			counter, _ = strconv.Atoi(formula[openParen+1 : closeParen])
		} else {
			tmp := polPos + 3
			for tmp < len(formula) && formula[tmp] >= '0' && formula[tmp] <= '9' {
				defaultDegree = false
				tmp++
			}
			degree, _ = strconv.Atoi(formula[polPos+3 : tmp])
			counter = 0
		}
		r.Number = 300 + degree

		variable := "x"
		defaultVariable := true
		if polPos-1 >= 0 && isNameChar(formula[polPos-1]) {
			tmp := polPos - 1
			for tmp >= 0 && isNameChar(formula[tmp]) {
				tmp--
			}
			variable = formula[tmp+1 : polPos]
			defaultVariable = false
		}

		var repl strings.Builder
		fmt.Fprintf(&repl, "[%d]", counter)
		param := counter + 1
		for tmp := 1; tmp <= degree; tmp++ {
			fmt.Fprintf(&repl, "+[%d]*%s^%d", param, variable, tmp)
			param++
		}

		var pattern string
		switch {
		case defaultCounter && !defaultDegree:
			pattern = fmt.Sprintf("%spol%d", prefixOrEmpty(defaultVariable, variable), degree)
		case defaultCounter && defaultDegree:
			pattern = fmt.Sprintf("%spol", prefixOrEmpty(defaultVariable, variable))
		default:
			pattern = fmt.Sprintf("%spol%d(%d)", prefixOrEmpty(defaultVariable, variable), degree, counter)
		}

		if !strings.Contains(formula, pattern) {
			// Defensive: the located occurrence doesn't round-trip to the
			// same pattern (malformed input). Drop just this "pol" to
			// avoid looping forever.
			tracer().Errorf("polN pattern %q not reconstructible, skipping", pattern)
			formula = formula[:polPos] + "_" + formula[polPos+3:]
			continue
		}
		formula = strings.ReplaceAll(formula, pattern, repl.String())
	}
	return formula
}

func prefixOrEmpty(defaultVariable bool, variable string) string {
	if defaultVariable {
		return ""
	}
	return variable
}
