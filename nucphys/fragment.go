package nucphys

import "github.com/rbbouabid/marley/pdg"

// Fragment describes a nuclear fragment that may be emitted during the
// de-excitation of a residual nucleus, together with the ground-state
// spin (times two) and parity of the fragment.
type Fragment struct {
	PDG    int
	TwoS   int
	Parity Parity
}

// Z returns the fragment's atomic number.
func (f Fragment) Z() int { return pdg.AtomicNumber(f.PDG) }

// A returns the fragment's mass number.
func (f Fragment) A() int { return pdg.MassNumber(f.PDG) }

// Fragments lists the nuclear fragments considered when computing
// de-excitation branching ratios. Spin-parity values are taken from the
// nuclear ground states listed in the 10/2014 release of ENSDF.
var Fragments = []Fragment{
	{pdg.Neutron, 1, ParityPositive},
	{pdg.Proton, 1, ParityPositive},
	{pdg.Deuteron, 2, ParityPositive},
	{pdg.Triton, 1, ParityPositive},
	{pdg.Helion, 1, ParityPositive},
	{pdg.Alpha, 0, ParityPositive},
}
