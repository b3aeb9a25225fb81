package marley

import (
	"fmt"

	"github.com/rbbouabid/marley/nucphys"
	"github.com/rbbouabid/marley/pdg"
)

// SpinParity is a nuclear spin-parity assignment.
type SpinParity struct {
	TwoJ   int
	Parity nucphys.Parity
}

// StructureDB provides nuclear structure information for the nuclides a
// generator scatters on.
type StructureDB interface {
	// GroundStateSpinParity returns the ground-state spin-parity of the
	// nuclide with the given PDG code.
	GroundStateSpinParity(nucleusPDG int) (twoJ int, p nucphys.Parity,
		err error)
}

// SpinParityMap is a map-backed StructureDB. Nuclides missing from the map
// fall back to the even-even systematic of a 0+ ground state; odd nuclides
// without an entry produce an error.
type SpinParityMap map[int]SpinParity

var _ StructureDB = SpinParityMap(nil)

func (m SpinParityMap) GroundStateSpinParity(nucleusPDG int) (int,
	nucphys.Parity, error) {

	if sp, ok := m[nucleusPDG]; ok {
		return sp.TwoJ, sp.Parity, nil
	}
	z, a := pdg.AtomicNumber(nucleusPDG), pdg.MassNumber(nucleusPDG)
	if z%2 == 0 && (a-z)%2 == 0 {
		return 0, nucphys.ParityPositive, nil
	}
	return 0, 0, fmt.Errorf("%w: no ground-state spin-parity known for"+
		" nuclide %d", ErrConfig, nucleusPDG)
}

// DefaultSpinParityMap returns ENSDF ground-state spin-parities for the
// nuclides covered by the built-in mass data.
func DefaultSpinParityMap() SpinParityMap {
	return SpinParityMap{
		pdg.Nucleus(17, 40): {TwoJ: 4, Parity: nucphys.ParityNegative},
		pdg.Nucleus(18, 39): {TwoJ: 7, Parity: nucphys.ParityNegative},
		pdg.Nucleus(18, 40): {TwoJ: 0, Parity: nucphys.ParityPositive},
		pdg.Nucleus(19, 39): {TwoJ: 3, Parity: nucphys.ParityPositive},
		pdg.Nucleus(19, 40): {TwoJ: 8, Parity: nucphys.ParityNegative},
		pdg.Nucleus(20, 40): {TwoJ: 0, Parity: nucphys.ParityPositive},
	}
}
