package marley

import (
	"fmt"
	"math"

	"github.com/rbbouabid/marley/nucphys"
)

// METype labels the kind of nuclear transition described by a matrix
// element.
type METype int

const (
	// Fermi transitions carry B(F) strength.
	Fermi METype = iota
	// GamowTeller transitions carry B(GT) strength.
	GamowTeller
)

func (t METype) String() string {
	switch t {
	case Fermi:
		return "Fermi"
	case GamowTeller:
		return "Gamow-Teller"
	}
	return fmt.Sprintf("METype(%d)", int(t))
}

// Level is a discrete nuclear level with known spin-parity.
type Level struct {
	Energy float64 // excitation energy, MeV
	TwoJ   int     // two times the level spin
	Parity nucphys.Parity
}

// MatrixElement associates a nuclear level (or continuum bin) with a
// reduced transition strength B(F) or B(GT).
type MatrixElement struct {
	// LevelEnergy is the excitation energy (MeV) of the final level.
	LevelEnergy float64
	// Strength is the reduced matrix element B(F) or B(GT).
	Strength float64
	// Type tags the transition as Fermi or Gamow-Teller.
	Type METype
	// Level points at the discrete level record, or is nil for a
	// continuum bin.
	Level *Level
}

// CosThetaPDF evaluates the normalized probability density of the CM-frame
// ejectile scattering cosine for this matrix element, given the CM-frame
// ejectile speed betaC.
func (m *MatrixElement) CosThetaPDF(cosTheta, betaC float64) float64 {
	if math.Abs(cosTheta) > 1 {
		return 0
	}
	switch m.Type {
	case Fermi:
		return (1 + betaC*cosTheta) / 2
	case GamowTeller:
		return (3 - betaC*cosTheta) / 6
	}
	return 0
}

// MaxCosThetaPDF returns the maximum value of CosThetaPDF over the allowed
// angular range. The Fermi density peaks at cos(theta) = 1, the
// Gamow-Teller density at cos(theta) = -1.
func (m *MatrixElement) MaxCosThetaPDF(betaC float64) (float64, error) {
	switch m.Type {
	case Fermi:
		return m.CosThetaPDF(1, betaC), nil
	case GamowTeller:
		return m.CosThetaPDF(-1, betaC), nil
	}
	return 0, fmt.Errorf("%w: unrecognized matrix element type %v",
		ErrPhysics, m.Type)
}

// MatrixElementTable is an ordered list of matrix elements for one
// projectile/target pair. The same table may back several reactions.
type MatrixElementTable []MatrixElement

// Validate checks the ordering invariant: level energies must be
// non-decreasing, so that cross-section sums can stop at the first level
// beyond the kinematic ceiling.
func (t MatrixElementTable) Validate() error {
	for i := 1; i < len(t); i++ {
		if t[i].LevelEnergy < t[i-1].LevelEnergy {
			return fmt.Errorf("%w: matrix element table is not ordered by"+
				" level energy (%g MeV after %g MeV)", ErrConfig,
				t[i].LevelEnergy, t[i-1].LevelEnergy)
		}
	}
	return nil
}
