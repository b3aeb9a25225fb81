// Package pdg provides helpers for the Particle Data Group Monte Carlo
// particle numbering scheme, including the 10LZZZAAAI convention used for
// nuclei.
package pdg

import "fmt"

// Frequently used particle codes.
const (
	Electron             = 11
	Positron             = -11
	ElectronNeutrino     = 12
	ElectronAntiNeutrino = -12
	Muon                 = 13
	MuonNeutrino         = 14
	MuonAntiNeutrino     = -14
	Tau                  = 15
	TauNeutrino          = 16
	TauAntiNeutrino      = -16
	Photon               = 22
	Neutron              = 2112
	Proton               = 2212
	Deuteron             = 1000010020
	Triton               = 1000010030
	Helion               = 1000020030
	Alpha                = 1000020040
)

// Nucleus returns the code of a ground-state nucleus with atomic number z
// and mass number a.
func Nucleus(z, a int) int {
	switch {
	case z == 0 && a == 1:
		return Neutron
	case z == 1 && a == 1:
		return Proton
	}
	return 1000000000 + 10000*z + 10*a
}

// AtomicNumber returns the number of protons Z encoded in code.
// Non-nuclear codes other than the proton give zero.
func AtomicNumber(code int) int {
	switch {
	case code == Proton:
		return 1
	case code > 1000000000:
		return (code % 10000000) / 10000
	}
	return 0
}

// MassNumber returns the mass number A encoded in code.
// Non-nuclear codes other than the nucleons give zero.
func MassNumber(code int) int {
	switch {
	case code == Proton, code == Neutron:
		return 1
	case code > 1000000000:
		return (code % 10000) / 10
	}
	return 0
}

// IsIon reports whether code represents a nucleus (or atom).
func IsIon(code int) bool {
	return code > 1000000000 && code < 2000000000
}

// IsLepton reports whether code represents a standard model (anti)lepton.
func IsLepton(code int) bool {
	abs := code
	if abs < 0 {
		abs = -abs
	}
	return abs >= Electron && abs <= TauNeutrino
}

// charges of particles (not antiparticles), in units of the proton charge.
var charges = map[int]int{
	Electron:         -1,
	ElectronNeutrino: 0,
	Muon:             -1,
	MuonNeutrino:     0,
	Tau:              -1,
	TauNeutrino:      0,
	Photon:           0,
	Neutron:          0,
	Proton:           1,
}

// ElectricCharge returns the electric charge of the particle with the given
// code, in units of the proton charge. Nuclei are assumed to be bare, so
// their charge equals their atomic number.
func ElectricCharge(code int) int {
	if code > 1000000000 {
		return AtomicNumber(code)
	}
	abs := code
	if abs < 0 {
		abs = -abs
	}
	q, ok := charges[abs]
	if !ok {
		return 0
	}
	if code < 0 {
		return -q
	}
	return q
}

var symbols = map[int]string{
	Electron:         "e",
	ElectronNeutrino: "ve",
	Muon:             "mu",
	MuonNeutrino:     "vu",
	Tau:              "tau",
	TauNeutrino:      "vt",
	Photon:           "gamma",
	Neutron:          "n",
	Proton:           "p",
	Deuteron:         "d",
	Triton:           "t",
	Helion:           "h",
	Alpha:            "alpha",
}

// Symbol returns a short ASCII symbol for the particle with the given code.
// Nuclei not in the fragment table are rendered as mass number plus element
// symbol, e.g. "40Ar".
func Symbol(code int) string {
	abs := code
	if abs < 0 {
		abs = -abs
	}
	s, ok := symbols[abs]
	if !ok && IsIon(code) {
		return fmt.Sprintf("%d%s", MassNumber(code),
			ElementSymbol(AtomicNumber(code)))
	}
	if !ok {
		return "?"
	}
	switch q := ElectricCharge(code); {
	case q < 0:
		s += "-"
	case q > 0:
		s += "+"
	case code < 0:
		s = "anti-" + s
	}
	return s
}

// elements[z] is the symbol of the element with atomic number z. Index 0 is
// the bare neutron, following the ENSDF convention.
var elements = []string{
	"Nn", "H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba",
}

// ElementSymbol returns the periodic table symbol for atomic number z, or
// "?" if z is out of the tabulated range.
func ElementSymbol(z int) string {
	if z < 0 || z >= len(elements) {
		return "?"
	}
	return elements[z]
}
