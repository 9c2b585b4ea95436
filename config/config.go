/*
Package config wraps koanf to load tformula's handful of overridable
settings: short-name function-alias overrides, a log sink destination,
and default-constant overrides for the symbols package. Settings layer
as: built-in defaults, then an optional config file, then TFORMULA_*
environment variables, in increasing order of precedence.
*/
package config

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.config")
}

// envPrefix is stripped from every TFORMULA_* environment variable before
// it is merged, and "_" in the remainder maps to koanf's "." delimiter.
const envPrefix = "TFORMULA_"

var defaults = map[string]interface{}{
	"tracing.destination": "stderr",
	"tracing.adapter":     "go",
	"aliases":             map[string]interface{}{},
	"constants":           map[string]interface{}{},
}

// Config is the resolved view callers read settings from.
type Config struct {
	k *koanf.Koanf
}

// Koanf exposes the underlying koanf instance, for callers that push it
// into a wider application-global scope.
func (c *Config) Koanf() *koanf.Koanf {
	return c.k
}

// Load builds a Config from built-in defaults, an optional config file
// (the first of paths that exists; absent paths are skipped, not an
// error) and TFORMULA_* environment variables, in that increasing order
// of precedence. If paths is empty, the platform-default config
// directory (see DefaultAppPaths) is tried as a fallback.
func Load(paths ...string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		if p, err := DefaultAppPaths("tformula"); err == nil {
			paths = []string{p.ConfigDir() + "/config.yaml"}
		}
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			tracer().Debugf("config file %q not loaded: %v", p, err)
			continue
		}
		tracer().Infof("loaded configuration from %q", p)
		break
	}
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil)
	if err != nil {
		return nil, err
	}
	return &Config{k: k}, nil
}

// TracingDestination returns the configured log sink ("stderr" by
// default; a file path or "file://..." URL otherwise).
func (c *Config) TracingDestination() string {
	return c.k.String("tracing.destination")
}

// AliasOverrides returns short-name -> qualified-name overrides for
// functable.Aliases, e.g. {"sin": "TMath::Sin"}.
func (c *Config) AliasOverrides() map[string]string {
	raw := c.k.StringMap("aliases")
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out
}

// ConstantOverrides returns name -> value overrides for the default
// constant table (e.g. a site-local redefinition of "pi").
func (c *Config) ConstantOverrides() map[string]float64 {
	raw := c.k.Raw()
	out := make(map[string]float64)
	constants, ok := raw["constants"].(map[string]interface{})
	if !ok {
		return out
	}
	for name, v := range constants {
		if f, ok := toFloat(v); ok {
			out[name] = f
		}
	}
	return out
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
