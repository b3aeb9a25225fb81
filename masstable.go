package marley

import (
	"fmt"
	"math"

	"github.com/rbbouabid/marley/nucphys"
	"github.com/rbbouabid/marley/pdg"
)

// MassTable is a read-only lookup of particle and atomic rest masses. It is
// constructed explicitly and shared by reference among the reactions that
// need it; there is no process-wide instance.
//
// Masses are stored in micro-amu, the unit moved around by mass
// evaluations, and converted to MeV on lookup.
type MassTable struct {
	particles map[int]float64 // micro-amu
	atomic    map[int]float64 // micro-amu
}

// Built-in particle masses (micro-amu), CODATA/PDG values.
var builtinParticleMasses = map[int]float64{
	pdg.Photon:           0,
	pdg.Electron:         548.57990907,
	pdg.ElectronNeutrino: 0,
	pdg.Muon:             113428.9267,
	pdg.MuonNeutrino:     0,
	pdg.Tau:              1907542.0,
	pdg.TauNeutrino:      0,
	pdg.Neutron:          1008664.91588,
	pdg.Proton:           1007276.466879,
	pdg.Deuteron:         2013553.212745,
	pdg.Triton:           3015500.71632,
	pdg.Helion:           3014932.24717,
	pdg.Alpha:            4001506.179127,
}

// Built-in atomic masses (micro-amu) for the nuclides this module ships
// demonstration reactions for, AME2020 values. Nuclides missing from this
// table fall back to the liquid drop model.
var builtinAtomicMasses = map[int]float64{
	pdg.Nucleus(1, 1):   1007825.032241,
	pdg.Nucleus(1, 2):   2014101.778114,
	pdg.Nucleus(1, 3):   3016049.2779,
	pdg.Nucleus(2, 3):   3016029.32008,
	pdg.Nucleus(2, 4):   4002603.254136,
	pdg.Nucleus(17, 40): 39970415.47,
	pdg.Nucleus(18, 39): 38964313.038,
	pdg.Nucleus(18, 40): 39962383.1237,
	pdg.Nucleus(19, 39): 38963706.4864,
	pdg.Nucleus(19, 40): 39963998.166,
	pdg.Nucleus(20, 40): 39962590.863,
}

// NewMassTable builds a mass table from the built-in data.
func NewMassTable() *MassTable {
	return &MassTable{
		particles: builtinParticleMasses,
		atomic:    builtinAtomicMasses,
	}
}

// ParticleMass returns the rest mass (MeV) of the particle with the given
// PDG code. Antiparticles share the mass of their partners.
func (t *MassTable) ParticleMass(code int) (float64, error) {
	abs := code
	if abs < 0 {
		abs = -abs
	}
	m, ok := t.particles[abs]
	if !ok {
		return 0, fmt.Errorf("%w: no mass for particle %d", ErrConfig, code)
	}
	return m * microAMU, nil
}

// AtomicMass returns the mass (MeV) of the neutral atom with the given
// nuclear PDG code. If no experimental mass is tabulated, a theoretical
// value from the liquid drop model is used instead.
func (t *MassTable) AtomicMass(code int) (float64, error) {
	if !pdg.IsIon(code) && code != pdg.Proton {
		return 0, fmt.Errorf("%w: %d is not a nuclear PDG code",
			ErrConfig, code)
	}
	if m, ok := t.atomic[code]; ok {
		return m * microAMU, nil
	}
	z, a := pdg.AtomicNumber(code), pdg.MassNumber(code)
	if code == pdg.Proton {
		// The proton entry in the atomic table is the 1H atom.
		if m, ok := t.atomic[pdg.Nucleus(1, 1)]; ok {
			return m * microAMU, nil
		}
	}
	return t.LiquidDropModelAtomicMass(z, a), nil
}

// amu is the atomic mass unit in MeV.
const amu = 1e6 * microAMU

// MassExcess returns the mass excess (MeV) of the nuclide (z, a).
func (t *MassTable) MassExcess(z, a int) (float64, error) {
	m, err := t.AtomicMass(pdg.Nucleus(z, a))
	if err != nil {
		return 0, err
	}
	return m - float64(a)*amu, nil
}

// BindingEnergy returns the binding energy (MeV) of the nuclide (z, a),
// neglecting atomic electron binding.
func (t *MassTable) BindingEnergy(z, a int) (float64, error) {
	mH, err := t.AtomicMass(pdg.Nucleus(1, 1))
	if err != nil {
		return 0, err
	}
	mn, err := t.ParticleMass(pdg.Neutron)
	if err != nil {
		return 0, err
	}
	m, err := t.AtomicMass(pdg.Nucleus(z, a))
	if err != nil {
		return 0, err
	}
	return float64(z)*mH + float64(a-z)*mn - m, nil
}

// FragmentSeparationEnergy returns the energy (MeV) needed to remove the
// fragment with PDG code frag from the nuclide (z, a).
func (t *MassTable) FragmentSeparationEnergy(z, a, frag int) (float64, error) {
	zf, af := pdg.AtomicNumber(frag), pdg.MassNumber(frag)
	zd, ad := z-zf, a-af
	if zd < 0 || ad < 1 || ad < zd {
		return 0, fmt.Errorf("%w: cannot remove fragment %d from (Z=%d,"+
			" A=%d)", ErrKinematics, frag, z, a)
	}
	mInitial, err := t.AtomicMass(pdg.Nucleus(z, a))
	if err != nil {
		return 0, err
	}
	var mDaughter float64
	if zd == 0 && ad == 1 {
		mDaughter, err = t.ParticleMass(pdg.Neutron)
	} else {
		mDaughter, err = t.AtomicMass(pdg.Nucleus(zd, ad))
	}
	if err != nil {
		return 0, err
	}
	mFrag, err := t.ParticleMass(frag)
	if err != nil {
		return 0, err
	}
	me, err := t.ParticleMass(pdg.Electron)
	if err != nil {
		return 0, err
	}
	// Atomic masses carry the electrons of the neutral atoms; the bare
	// fragment leaves zf electrons unaccounted for.
	return mDaughter + mFrag + float64(zf)*me - mInitial, nil
}

// UnboundThreshold returns the lowest excitation energy (MeV) at which the
// nuclide with the given PDG code can emit one of the tabulated fragments.
func (t *MassTable) UnboundThreshold(code int) (float64, error) {
	z, a := pdg.AtomicNumber(code), pdg.MassNumber(code)
	threshold := math.Inf(1)
	for _, f := range nucphys.Fragments {
		s, err := t.FragmentSeparationEnergy(z, a, f.PDG)
		if err != nil {
			continue
		}
		if s < threshold {
			threshold = s
		}
	}
	if math.IsInf(threshold, 1) {
		return 0, fmt.Errorf("%w: no fragment emission possible for"+
			" nuclide %d", ErrKinematics, code)
	}
	return threshold, nil
}

// Liquid drop model parameters (Myers and Swiatecki).
const (
	ldmC1    = 15.677 // volume coefficient, MeV
	ldmC2    = 18.56  // surface coefficient, MeV
	ldmC3    = 0.717  // Coulomb coefficient, MeV
	ldmC4    = 1.21129
	ldmKappa = 1.79
	// nucleon mass excesses, MeV
	ldmMEHydrogen = 7.289034
	ldmMENeutron  = 8.071431
)

// LiquidDropModelMassExcess computes a theoretical mass excess (MeV) for
// the nuclide (z, a) using the liquid drop model.
func (t *MassTable) LiquidDropModelMassExcess(z, a int) float64 {
	n := a - z
	zf, af, nf := float64(z), float64(a), float64(n)
	rel := (nf - zf) / af
	sym := 1 - ldmKappa*rel*rel

	var pairing float64
	switch {
	case z%2 == 0 && n%2 == 0:
		pairing = 11 / math.Sqrt(af)
	case z%2 == 1 && n%2 == 1:
		pairing = -11 / math.Sqrt(af)
	}

	binding := ldmC1*af*sym - ldmC2*math.Pow(af, 2.0/3.0)*sym -
		ldmC3*zf*zf/math.Cbrt(af) + ldmC4*zf*zf/af + pairing

	return ldmMEHydrogen*zf + ldmMENeutron*nf - binding
}

// LiquidDropModelAtomicMass computes a theoretical atomic mass (MeV) for
// the nuclide (z, a) using the liquid drop model.
func (t *MassTable) LiquidDropModelAtomicMass(z, a int) float64 {
	return t.LiquidDropModelMassExcess(z, a) + float64(a)*amu
}
