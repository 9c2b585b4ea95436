package symbols

import "math"

// Constants is a read-only mapping from name to value, seeded once at
// construction (optionally adjusted right away via Override by site
// configuration) and never mutated once resolution starts.
type Constants struct {
	values map[string]float64
}

// NewConstants returns the fixed set of predefined constants: pi, sqrt2,
// e, ln10, loge, infinity, c, g, h, k, sigma, r, eg, true, false.
func NewConstants() *Constants {
	return &Constants{
		values: map[string]float64{
			"pi":       math.Pi,
			"sqrt2":    math.Sqrt2,
			"e":        math.E,
			"ln10":     math.Ln10,
			"loge":     math.Log10E,
			"infinity": math.Inf(1),
			"c":        2.99792458e8,    // speed of light, m s^-1
			"g":        6.67430e-11,     // gravitational constant
			"h":        6.62607015e-34,  // Planck constant
			"k":        1.380649e-23,    // Boltzmann constant
			"sigma":    5.670374419e-8,  // Stefan-Boltzmann constant
			"r":        8.31446261815324, // molar gas constant
			"eg":       1.602176634e-19, // electron charge magnitude
			"true":     1,
			"false":    0,
		},
	}
}

// Get returns a constant's value and whether it exists.
func (c *Constants) Get(name string) (float64, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Has is a predicate: is name a known constant?
func (c *Constants) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Override replaces a constant's value, for site-local configuration
// (see the config package). It does not add new names.
func (c *Constants) Override(name string, value float64) {
	if _, ok := c.values[name]; ok {
		c.values[name] = value
	}
}
