package formula

import (
	"sync"

	"github.com/cernflow/tformula/internal/errs"
)

// internalPrefix tags every name actually stored in a Directory's map,
// so a user-visible formula name can never collide with an internal
// helper. "++"-produced linear parts (named "<name>_lin_l" and
// "<name>_lin_r") are never registered and carry no prefix.
const internalPrefix = "tf$"

var reservedNames = map[string]bool{"x": true, "y": true, "z": true, "t": true}

// Directory is a process-wide, name-keyed store of registered formulas.
// Construction is eager: New registers into a Directory as soon as
// resolution finishes. Registration is replace-on-construct: a second
// formula built with the same name evicts the first.
type Directory struct {
	mu    sync.Mutex
	byTag map[string]*Formula
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{byTag: make(map[string]*Formula)}
}

func (d *Directory) register(f *Formula) error {
	if reservedNames[f.name] {
		tracer().Errorf("formula name %q is reserved, not registering", f.name)
		return errs.ErrReservedName
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byTag[internalPrefix+f.name] = f
	return nil
}

// Lookup returns the raw text of the registered formula named name, for
// the resolver's nested-formula inlining step. It satisfies
// resolve.Lookup without this package importing resolve's test-only
// surface or vice versa.
func (d *Directory) Lookup(name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.byTag[internalPrefix+name]
	if !ok {
		return "", false
	}
	return f.original, true
}

// Get returns the registered Formula itself, for callers that want to
// evaluate a previously constructed named formula directly.
func (d *Directory) Get(name string) (*Formula, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.byTag[internalPrefix+name]
	return f, ok
}

// Names lists every currently registered formula name.
func (d *Directory) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.byTag))
	for k := range d.byTag {
		names = append(names, k[len(internalPrefix):])
	}
	return names
}
