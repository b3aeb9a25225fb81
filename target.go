package marley

import (
	"fmt"

	"github.com/rbbouabid/marley/pdg"
)

// Target is a material made of one or more atomic species, each present
// with a fixed number fraction. Fractions are normalized to unity at
// construction.
type Target struct {
	atoms     []int
	fractions []float64
}

// NewTarget builds a target from parallel slices of nuclear PDG codes and
// relative atom abundances.
func NewTarget(atoms []int, fractions []float64) (*Target, error) {
	if len(atoms) == 0 || len(atoms) != len(fractions) {
		return nil, fmt.Errorf("%w: need matching non-empty atom and"+
			" fraction lists", ErrConfig)
	}
	sum := 0.0
	for i, a := range atoms {
		if !pdg.IsIon(a) {
			return nil, fmt.Errorf("%w: %d is not an atomic PDG code",
				ErrConfig, a)
		}
		if fractions[i] <= 0 {
			return nil, fmt.Errorf("%w: non-positive abundance %g for"+
				" atom %d", ErrConfig, fractions[i], a)
		}
		sum += fractions[i]
	}

	t := &Target{
		atoms:     make([]int, len(atoms)),
		fractions: make([]float64, len(fractions)),
	}
	copy(t.atoms, atoms)
	for i, f := range fractions {
		t.fractions[i] = f / sum
	}
	return t, nil
}

// NewSingleAtomTarget builds a target made of one atomic species.
func NewSingleAtomTarget(atom int) (*Target, error) {
	return NewTarget([]int{atom}, []float64{1})
}

// Atoms returns the nuclear PDG codes of the target's atomic species.
func (t *Target) Atoms() []int { return t.atoms }

// AtomFraction returns the normalized number fraction of the given atomic
// species, or zero if the species is not part of the target.
func (t *Target) AtomFraction(atom int) float64 {
	for i, a := range t.atoms {
		if a == atom {
			return t.fractions[i]
		}
	}
	return 0
}
