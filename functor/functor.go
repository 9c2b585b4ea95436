/*
Package functor implements the lexical extraction stage (C3): a single
walk over macro-rewritten formula text that produces an ordered list of
functors (bare names, bracketed parameter literals, and qualified or
short-named calls) and wraps every resolvable token in place with curly
braces so the resolver can find and replace them unambiguously.
*/
package functor

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.functor")
}

// Functor is a tuple (name, body, nargs, found). NArgs==0 marks a plain
// symbol (variable, constant, parameter, or nested formula reference);
// a positive NArgs marks a call, and Args holds the recursively
// extracted functors of its comma-separated argument list.
type Functor struct {
	Name           string
	Body           string
	NArgs          int
	Found          bool
	Args           []*Functor
	Indexed        bool
	BaseName       string
	Index          int
	IsParamLiteral bool
}

// Token returns the exact wrapped substring this functor occupies in
// the text Extract returned, so a resolver can locate and replace it.
func (f *Functor) Token() string {
	switch {
	case f.Indexed:
		return "{" + f.Name + "}"
	case f.NArgs > 0:
		return f.Name + "("
	case f.IsParamLiteral:
		return "{[" + f.Name + "]}"
	default:
		return "{" + f.Name + "}"
	}
}

func isNameChar(r byte) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isNameStart(text string, i int) bool {
	if i+1 < len(text) && text[i] == ':' && text[i+1] == ':' {
		return true
	}
	c := text[i]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Extract walks text once and returns the text with every resolvable
// token wrapped in place (bare names as "{name}", bracketed literals as
// "{[literal]}"), alongside the deduplicated, order-stable list of
// functors found. Call bodies are left untouched in the wrapped text;
// only their arguments are recursively walked and wrapped.
func Extract(text string) (string, []*Functor) {
	var out strings.Builder
	var found []*Functor
	seen := map[string]*Functor{}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '[':
			end := strings.IndexByte(text[i:], ']')
			if end < 0 {
				out.WriteByte(c)
				i++
				continue
			}
			end += i
			literal := text[i+1 : end]
			f := register(seen, &found, literal, "", 0)
			f.IsParamLiteral = true
			out.WriteString("{[")
			out.WriteString(literal)
			out.WriteString("]}")
			i = end + 1

		case isNameStart(text, i) || c == ':':
			start := i
			for i < len(text) && (isNameChar(text[i]) || (text[i] == ':' && i+1 < len(text) && text[i+1] == ':')) {
				if text[i] == ':' {
					i += 2
				} else {
					i++
				}
			}
			name := text[start:i]

			if idx, end, ok := scanIndex(text, i); ok {
				full := name + "[" + text[i+1:end] + "]"
				f := register(seen, &found, full, "", 0)
				f.Indexed = true
				f.BaseName = name
				f.Index = idx
				out.WriteString("{")
				out.WriteString(full)
				out.WriteString("}")
				i = end + 1
				continue
			}

			if i < len(text) && text[i] == '(' {
				depth := 1
				argStart := i + 1
				j := argStart
				for depth != 0 && j < len(text) {
					switch text[j] {
					case '(':
						depth++
					case ')':
						depth--
					}
					j++
				}
				body := text[argStart : j-1]
				wrappedBody, argFunctors := Extract(body)
				nargs := countArgs(body)

				f := register(seen, &found, name, body, nargs)
				// A repeated call (e.g. two pow(...) sites) shares one
				// functor; keep the argument functors of every site.
				f.Args = append(f.Args, argFunctors...)

				out.WriteString(name)
				out.WriteByte('(')
				out.WriteString(wrappedBody)
				out.WriteByte(')')
				i = j
			} else {
				register(seen, &found, name, "", 0)
				out.WriteString("{")
				out.WriteString(name)
				out.WriteString("}")
			}

		default:
			out.WriteByte(c)
			i++
		}
	}

	return out.String(), found
}

// scanIndex recognizes a trailing "[digits]" immediately after a name,
// the literal indexed-observable form x[k].
func scanIndex(text string, bracketPos int) (index, end int, ok bool) {
	if bracketPos >= len(text) || text[bracketPos] != '[' {
		return 0, 0, false
	}
	j := bracketPos + 1
	for j < len(text) && text[j] >= '0' && text[j] <= '9' {
		j++
	}
	if j == bracketPos+1 || j >= len(text) || text[j] != ']' {
		return 0, 0, false
	}
	n := 0
	for k := bracketPos + 1; k < j; k++ {
		n = n*10 + int(text[k]-'0')
	}
	return n, j, true
}

func register(seen map[string]*Functor, found *[]*Functor, name, body string, nargs int) *Functor {
	if f, ok := seen[name]; ok {
		return f
	}
	f := &Functor{Name: name, Body: body, NArgs: nargs}
	seen[name] = f
	*found = append(*found, f)
	return f
}

// countArgs returns the number of comma-separated arguments at
// parenthesis depth zero within body; zero when body is empty.
func countArgs(body string) int {
	if body == "" {
		return 0
	}
	n := 1
	depth := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				n++
			}
		}
	}
	return n
}

// Reset clears the Found flag on every functor in the list, mirroring
// the fresh pass the resolver runs each time it re-walks the canonical
// form.
func Reset(functors []*Functor) {
	for _, f := range functors {
		f.Found = false
		Reset(f.Args)
	}
}
