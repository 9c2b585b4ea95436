/*
Package tformula is a symbolic-formula engine modeled on ROOT's TFormula:
parse an infix mathematical expression with named variables, bracketed
parameters and qualified math-library calls, resolve it against a set
of symbol tables, and evaluate it repeatedly against numeric inputs.

Package-level New/Get/Names operate against a single global directory,
mirroring TFormula.cxx's registration into gROOT->GetListOfFunctions();
callers who want an isolated directory construct their own with
formula.NewDirectory and call formula.New directly.
*/
package tformula

import (
	"os"

	"github.com/knadh/koanf"

	"github.com/cernflow/tformula/config"
	"github.com/cernflow/tformula/formula"
)

// Configuration holds the koanf view loaded by config.Load, pushed here
// at application-global scope by cobra's OnInitialize(loadConfig).
var Configuration *koanf.Koanf

var globalDirectory = formula.NewDirectory()

// Exit terminates the application with errcode. It does not flush or
// close trace destinations.
func Exit(errcode int) {
	os.Exit(errcode)
}

// New parses and resolves expr under name, registering it into the
// global directory so later formulas can reference it by name.
func New(name, expr string) (*formula.Formula, error) {
	return formula.New(globalDirectory, name, expr)
}

// Get looks up a previously constructed formula by name in the global
// directory.
func Get(name string) (*formula.Formula, bool) {
	return globalDirectory.Get(name)
}

// Names lists every formula currently registered in the global
// directory.
func Names() []string {
	return globalDirectory.Names()
}

// Configure loads configuration from the given file paths (if any) and
// TFORMULA_* environment variables, pushes it to the Configuration
// global, and installs its alias/constant overrides so every formula
// built afterwards (via New or formula.New) picks them up.
func Configure(paths ...string) (*config.Config, error) {
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}
	Configuration = cfg.Koanf()
	formula.SetOverrides(cfg.AliasOverrides(), cfg.ConstantOverrides())
	return cfg, nil
}
