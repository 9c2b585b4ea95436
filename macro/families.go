package macro

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cernflow/tformula/internal/errs"
)

type familyBody struct {
	plain      string
	normalized string // empty means "no normalized form"
}

// families maps (name, dimension) to its body pair, grounded on
// TFormula.cxx's HandleParametrizedFunctions.
var families = map[string]map[int]familyBody{
	"gaus": {
		1: {plain: "[0]*exp(-0.5*(({V0}-[1])/[2])^2)", normalized: "[0]*exp(-0.5*(({V0}-[1])/[2])^2)/(sqrt(2*pi)*[2])"},
		2: {plain: "[0]*exp(-0.5*(({V0}-[1])/[2])^2-0.5*(({V1}-[3])/[4])^2)", normalized: ""},
	},
	"landau": {
		1: {plain: "[0]*TMath::Landau({V0},[1],[2],false)", normalized: "[0]*TMath::Landau({V0},[1],[2],true)"},
		2: {plain: "[0]*TMath::Landau({V0},[1],[2],false)*TMath::Landau({V1},[3],[4],false)", normalized: ""},
	},
	"expo": {
		1: {plain: "exp([0]+[1]*{V0})", normalized: ""},
		2: {plain: "exp([0]+[1]*{V0})", normalized: "exp([0]+[1]*{V0}+[2]*{V1})"},
	},
}

var familyNumbers = map[string]int{"gaus": 100, "landau": 200, "expo": 400}

// legacySpellings rewrites xygaus/xylandau/xyexpo to the bracketed form
// before the main family scan.
var legacySpellings = []struct{ old, new string }{
	{"xygaus", "gaus[x,y]"},
	{"xylandau", "landau[x,y]"},
	{"xyexpo", "expo[x,y]"},
}

// handleFamilies expands gaus/gausn/landau/landaun/expo/expon occurrences,
// with their optional [v0,v1,...] variable list and (k) parameter offset.
func handleFamilies(formula string, r *Result) (string, error) {
	for _, sp := range legacySpellings {
		formula = strings.ReplaceAll(formula, sp.old, sp.new)
	}

	// Deterministic order over family names, mirroring the source's
	// iteration over a sorted map of (name,dim) keys closely enough for
	// our purposes: process gaus, landau, expo in turn.
	for _, name := range []string{"gaus", "landau", "expo"} {
		for {
			funPos := strings.Index(formula, name)
			if funPos < 0 {
				break
			}
			r.Number = familyNumbers[name]

			isNormalized := funPos+len(name) < len(formula) && formula[funPos+len(name)] == 'n'
			if isNormalized {
				r.Normalized = true
			}

			bracketStart := funPos + len(name)
			if isNormalized {
				bracketStart++
			}

			var variables []string
			defaultVariable := false
			varList := ""
			closeBracket := -1
			if bracketStart >= len(formula) || formula[bracketStart] != '[' {
				variables = []string{"x"}
				defaultVariable = true
			} else {
				closeBracket = strings.IndexByte(formula[bracketStart:], ']')
				if closeBracket < 0 {
					tracer().Errorf("unterminated variable list for %s", name)
					return formula, fmt.Errorf("macro: unterminated variable list for %s", name)
				}
				closeBracket += bracketStart
				varList = formula[bracketStart+1 : closeBracket]
				variables = splitVarList(varList)
			}

			dim := len(variables)
			body, ok := families[name][dim]
			if !ok {
				tracer().Errorf("%d dimension function %s is not defined as a parametrized function", dim, name)
				return formula, fmt.Errorf("%w: %s has no %d-dimensional body", errs.ErrUnknownDimension, name, dim)
			}

			parenStart := bracketStart
			if closeBracket >= 0 {
				parenStart = closeBracket + 1
			}
			defaultCounter := parenStart >= len(formula) || formula[parenStart] != '('
			counter := 0
			if !defaultCounter {
				closeParen := strings.IndexByte(formula[parenStart:], ')')
				if closeParen < 0 {
					tracer().Errorf("unterminated parameter offset for %s", name)
					return formula, fmt.Errorf("macro: unterminated parameter offset for %s", name)
				}
				closeParen += parenStart
				counter, _ = strconv.Atoi(formula[parenStart+1 : closeParen])
			}

			chosen := body.plain
			if isNormalized {
				chosen = body.normalized
				if chosen == "" {
					tracer().Errorf("%d dimension function %s has no normalized form", dim, name)
					return formula, fmt.Errorf("%w: %s has no %d-dimensional normalized body", errs.ErrMissingNormalizedForm, name, dim)
				}
			}

			replacement := expandBody(chosen, variables, counter)

			pattern := buildFamilyPattern(name, isNormalized, defaultCounter, defaultVariable, varList, counter)
			if !strings.Contains(formula, pattern) {
				tracer().Errorf("family pattern %q not reconstructible, skipping", pattern)
				formula = formula[:funPos] + "_" + formula[funPos+len(name):]
				continue
			}
			formula = strings.Replace(formula, pattern, replacement, 1)
		}
	}
	return formula, nil
}

func splitVarList(varList string) []string {
	var out []string
	var cur strings.Builder
	for i := 0; i < len(varList); i++ {
		c := varList[i]
		if isNameChar(c) {
			cur.WriteByte(c)
		}
		if c == ',' {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// expandBody substitutes {Vi} placeholders with the i-th listed variable
// and adds counter to every bracketed parameter index.
func expandBody(body string, variables []string, counter int) string {
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			end := strings.IndexByte(body[i:], '}')
			end += i
			numStr := body[i+2 : end] // skip '{' and 'V'
			num, _ := strconv.Atoi(numStr)
			if num < len(variables) {
				out.WriteString(variables[num])
			}
			i = end
		case '[':
			end := strings.IndexByte(body[i:], ']')
			end += i
			num, _ := strconv.Atoi(body[i+1 : end])
			fmt.Fprintf(&out, "[%d]", num+counter)
			i = end
		default:
			out.WriteByte(body[i])
		}
	}
	return out.String()
}

func buildFamilyPattern(name string, normalized, defaultCounter, defaultVariable bool, varList string, counter int) string {
	n := ""
	if normalized {
		n = "n"
	}
	switch {
	case defaultCounter && defaultVariable:
		return fmt.Sprintf("%s%s", name, n)
	case !defaultCounter && defaultVariable:
		return fmt.Sprintf("%s%s(%d)", name, n, counter)
	case defaultCounter && !defaultVariable:
		return fmt.Sprintf("%s%s[%s]", name, n, varList)
	default:
		return fmt.Sprintf("%s%s[%s](%d)", name, n, varList, counter)
	}
}
