package tformula

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tformula'.
func tracer() tracing.Trace {
	return tracing.Select("tformula")
}
