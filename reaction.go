package marley

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/rbbouabid/marley/nucphys"
	"github.com/rbbouabid/marley/pdg"
)

// ProcessType describes the kind of scattering process represented by a
// Reaction.
type ProcessType int

const (
	// ProcessNeutrinoCC is neutrino charged-current scattering.
	ProcessNeutrinoCC ProcessType = iota
	// ProcessAntiNeutrinoCC is antineutrino charged-current scattering.
	ProcessAntiNeutrinoCC
	// ProcessNC is neutral-current scattering.
	ProcessNC
	// ProcessNuElectronElastic is neutrino-electron elastic scattering.
	ProcessNuElectronElastic
	// ProcessDM is an experimental dark-matter absorption process. Its
	// physics content is unvalidated, and reactions refuse to be built
	// for it.
	ProcessDM
)

func (pt ProcessType) String() string {
	switch pt {
	case ProcessNeutrinoCC:
		return "neutrino CC"
	case ProcessAntiNeutrinoCC:
		return "antineutrino CC"
	case ProcessNC:
		return "NC"
	case ProcessNuElectronElastic:
		return "nu-electron elastic"
	case ProcessDM:
		return "dark matter"
	}
	return fmt.Sprintf("ProcessType(%d)", int(pt))
}

// Reaction is a two-two scattering reaction a + b -> c + d. The projectile
// (particle a) travels along the positive z axis with lab-frame kinetic
// energy KEa; the target (particle b) is at rest in the lab frame.
//
// Cross-section queries with a projectile PDG code other than the one the
// reaction was built for return zero; event creation with a mismatched code
// fails instead.
type Reaction interface {
	// TotalXS returns the total cross section (MeV^-2) for a projectile
	// with the given PDG code and lab-frame kinetic energy.
	TotalXS(pdgA int, keA float64) float64
	// DiffXS returns the differential cross section
	// d(sigma)/d(cos theta_c^CM) (MeV^-2).
	DiffXS(pdgA int, keA, cosThetaCM float64) float64
	// CreateEvent samples a complete event for this reaction, drawing
	// randomness from the Generator's stream.
	CreateEvent(pdgA int, keA float64, g *Generator) (*Event, error)
	// ThresholdKineticEnergy returns the minimum projectile kinetic
	// energy (MeV) that lets the reaction proceed to the residue's
	// ground state.
	ThresholdKineticEnergy() float64
	// AtomicTarget returns the PDG code of the target atom.
	AtomicTarget() int
	// Process returns the reaction's process type.
	Process() ProcessType
	// ProjectilePDG returns the PDG code of the configured projectile.
	ProjectilePDG() int
	// Description returns a human-readable reaction formula.
	Description() string
}

// EjectilePDG returns the PDG code of the ejectile produced when a
// projectile with the given PDG code undergoes a process of the given type.
func EjectilePDG(pdgA int, pt ProcessType) (int, error) {
	switch pt {
	case ProcessNeutrinoCC:
		if pdgA == pdg.ElectronNeutrino || pdgA == pdg.MuonNeutrino ||
			pdgA == pdg.TauNeutrino {
			return pdgA - 1, nil
		}
	case ProcessAntiNeutrinoCC:
		if pdgA == pdg.ElectronAntiNeutrino || pdgA == pdg.MuonAntiNeutrino ||
			pdgA == pdg.TauAntiNeutrino {
			return pdgA + 1, nil
		}
	case ProcessNC, ProcessNuElectronElastic:
		if pdg.IsLepton(pdgA) && pdg.ElectricCharge(pdgA) == 0 {
			return pdgA, nil
		}
	}
	return 0, fmt.Errorf("%w: projectile %d cannot initiate a %v process",
		ErrPhysics, pdgA, pt)
}

// reactionBase carries the physical constants shared by all reaction
// variants: PDG codes and masses of the four participants, fixed at
// construction. The residue mass is not stored here; the variant passes the
// per-event value (ground-state mass plus sampled excitation) explicitly.
type reactionBase struct {
	process                ProcessType
	pdgA, pdgB, pdgC, pdgD int
	ma, mb, mc             float64
	description            string
}

func (r *reactionBase) Process() ProcessType { return r.process }
func (r *reactionBase) ProjectilePDG() int   { return r.pdgA }
func (r *reactionBase) Description() string  { return r.description }

// twoTwoScatter computes CM-frame kinematics for a + b -> c + d with the
// target at rest and the projectile along the z axis. ea is the
// projectile's lab-frame total energy. It returns Mandelstam s, the
// ejectile's CM-frame total energy and 3-momentum magnitude, and the
// residue's CM-frame total energy.
//
// Roundoff may drive Ec_cm slightly below mc or Ed_cm slightly below md;
// both cases are clamped (to zero momentum and to md respectively) rather
// than allowed to produce NaN. The clamping is part of the numerical
// contract of this function.
func twoTwoScatter(ea, ma, mb, mc, md float64) (s, ecCM, pcCM, edCM float64) {
	s = ma*ma + mb*mb + 2*mb*ea
	sqrtS := math.Sqrt(s)

	ecCM = (s + mc*mc - md*md) / (2 * sqrtS)
	pcCM = realSqrt(ecCM*ecCM - mc*mc)

	// In the CM frame the residue and ejectile have equal and opposite
	// momenta.
	edCM = math.Max(sqrtS-ecCM, md)
	return s, ecCM, pcCM, edCM
}

// makeEventObject assembles a lab-frame event from sampled CM-frame
// spherical coordinates for the ejectile. ea is the projectile's lab-frame
// total energy and md the residue mass including the sampled excitation
// energy eLevel. The ejectile and residue are built in the CM frame and
// boosted to the lab along the projectile axis.
//
// Generalizing to projectile directions other than +z is a known
// limitation.
func (r *reactionBase) makeEventObject(ea, pcCM, cosTheta, phi, ecCM, edCM,
	md, eLevel float64, twoJ int, par nucphys.Parity,
	qB, qD int) (*Event, error) {

	sinTheta := realSqrt(1 - cosTheta*cosTheta)
	pcx := sinTheta * math.Cos(phi) * pcCM
	pcy := sinTheta * math.Sin(phi) * pcCM
	pcz := cosTheta * pcCM

	pa := realSqrt(ea*ea - r.ma*r.ma)

	projectile, err := NewParticle(r.pdgA, ea, 0, 0, pa, r.ma,
		pdg.ElectricCharge(r.pdgA))
	if err != nil {
		return nil, err
	}
	target := NewParticleAtRest(r.pdgB, r.mb, qB)

	ejCM := fmom.NewPxPyPzE(pcx, pcy, pcz, ecCM)
	resCM := fmom.NewPxPyPzE(-pcx, -pcy, -pcz, edCM)

	// CM-to-lab boost velocity along the projectile axis.
	betaZ := pa / (ea + r.mb)
	boost := r3.Vec{Z: betaZ}
	ejLab := fmom.Boost(&ejCM, boost)
	resLab := fmom.Boost(&resCM, boost)

	ejectile, err := NewParticle(r.pdgC, ejLab.E(), ejLab.Px(), ejLab.Py(),
		ejLab.Pz(), r.mc, pdg.ElectricCharge(r.pdgC))
	if err != nil {
		return nil, err
	}
	residue, err := NewParticle(r.pdgD, resLab.E(), resLab.Px(), resLab.Py(),
		resLab.Pz(), md, qD)
	if err != nil {
		return nil, err
	}

	return newEvent(eLevel, twoJ, par, r.description,
		projectile, target, ejectile, residue), nil
}
