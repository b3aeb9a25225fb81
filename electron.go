package marley

import (
	"fmt"
	"math"

	"github.com/rbbouabid/marley/nucphys"
	"github.com/rbbouabid/marley/pdg"
)

// ElectronReaction is elastic neutrino scattering on the atomic electrons
// of a neutral atom. The outgoing neutrino plays the ejectile role and the
// recoiling electron the residue role; the cross section for one electron
// is scaled by the atomic number of the target atom.
type ElectronReaction struct {
	reactionBase

	atom int // neutral target atom
	z    int

	md           float64 // recoil electron mass
	g1, g2       float64
	keaThreshold float64
}

var _ Reaction = (*ElectronReaction)(nil)

// NewElectronReaction builds the elastic scattering reaction of the
// neutrino with PDG code pdgA on the electrons of the atom with nuclear PDG
// code targetAtomPDG.
func NewElectronReaction(pdgA, targetAtomPDG int,
	mt *MassTable) (*ElectronReaction, error) {

	if !pdg.IsIon(targetAtomPDG) {
		return nil, fmt.Errorf("%w: %d is not an atomic PDG code",
			ErrConfig, targetAtomPDG)
	}
	pdgC, err := EjectilePDG(pdgA, ProcessNuElectronElastic)
	if err != nil {
		return nil, err
	}

	ma, err := mt.ParticleMass(pdgA)
	if err != nil {
		return nil, err
	}
	me, err := mt.ParticleMass(pdg.Electron)
	if err != nil {
		return nil, err
	}

	r := &ElectronReaction{
		reactionBase: reactionBase{
			process: ProcessNuElectronElastic,
			pdgA:    pdgA,
			pdgB:    pdg.Electron,
			pdgC:    pdgC,
			pdgD:    pdg.Electron,
			ma:      ma,
			mb:      me,
			mc:      ma,
		},
		atom: targetAtomPDG,
		z:    pdg.AtomicNumber(targetAtomPDG),
		md:   me,
	}
	r.description = fmt.Sprintf("%s + %s --> %s + %s",
		pdg.Symbol(pdgA), pdg.Symbol(pdg.Electron),
		pdg.Symbol(pdgC), pdg.Symbol(pdg.Electron))

	if err := r.setCouplings(); err != nil {
		return nil, err
	}
	r.keaThreshold = ((r.mc+r.md)*(r.mc+r.md) -
		(r.ma+r.mb)*(r.ma+r.mb)) / (2 * r.mb)
	return r, nil
}

// setCouplings fixes the vector couplings g1 and g2 from the projectile
// flavor. Electron-flavor projectiles pick up the charged-current
// contribution on top of the neutral-current one.
func (r *ElectronReaction) setCouplings() error {
	switch r.pdgA {
	case pdg.ElectronNeutrino:
		r.g1 = 0.5 + sin2ThetaW
		r.g2 = sin2ThetaW
	case pdg.ElectronAntiNeutrino:
		r.g1 = sin2ThetaW
		r.g2 = 0.5 + sin2ThetaW
	case pdg.MuonNeutrino, pdg.TauNeutrino:
		r.g1 = -0.5 + sin2ThetaW
		r.g2 = sin2ThetaW
	case pdg.MuonAntiNeutrino, pdg.TauAntiNeutrino:
		r.g1 = sin2ThetaW
		r.g2 = -0.5 + sin2ThetaW
	default:
		return fmt.Errorf("%w: projectile %d cannot scatter"+
			" elastically on electrons", ErrPhysics, r.pdgA)
	}
	return nil
}

// AtomicTarget returns the PDG code of the neutral target atom.
func (r *ElectronReaction) AtomicTarget() int { return r.atom }

// ThresholdKineticEnergy returns the minimum projectile kinetic energy
// (MeV) for the reaction to proceed.
func (r *ElectronReaction) ThresholdKineticEnergy() float64 {
	return r.keaThreshold
}

// TotalXS returns the total elastic cross section (MeV^-2) on all Z atomic
// electrons, treating them as free and at rest.
func (r *ElectronReaction) TotalXS(pdgA int, keA float64) float64 {
	if pdgA != r.pdgA || keA < r.keaThreshold {
		return 0
	}

	s := (r.ma+r.mb)*(r.ma+r.mb) + 2*r.mb*keA
	ecCM := (s + r.mc*r.mc - r.md*r.md) / (2 * math.Sqrt(s))

	me2OverS := r.md * r.md / s
	g2SqOver3 := r.g2 * r.g2 / 3

	xs := (4 / math.Pi) * gf2 * ecCM * ecCM *
		(r.g1*r.g1 + (g2SqOver3-r.g1*r.g2)*me2OverS +
			g2SqOver3*(1+me2OverS*me2OverS))
	return xs * float64(r.z)
}

// DiffXS returns d(sigma)/d(cos theta_c^CM) (MeV^-2) on all Z atomic
// electrons.
func (r *ElectronReaction) DiffXS(pdgA int, keA, cosThetaCM float64) float64 {
	if pdgA != r.pdgA || keA < r.keaThreshold {
		return 0
	}
	if cosThetaCM < -1 || cosThetaCM > 1 {
		return 0
	}

	s := (r.ma+r.mb)*(r.ma+r.mb) + 2*r.mb*keA
	ecCM := (s + r.mc*r.mc - r.md*r.md) / (2 * math.Sqrt(s))

	me2OverS := r.md * r.md / s
	factor := (2 / math.Pi) * gf2 * ecCM * ecCM
	lin := r.g2 * (1 + 0.5*(1-me2OverS)*(cosThetaCM-1))
	terms := r.g1*r.g1 + r.g1*r.g2*me2OverS*(cosThetaCM-1) + lin*lin

	return factor * terms * float64(r.z)
}

// maxDiffXS returns the maximum of the differential cross section over the
// allowed angular range. The extremum of the quadratic in cos(theta) is
// found analytically and compared against the two endpoints.
func (r *ElectronReaction) maxDiffXS(keA float64) float64 {
	s := (r.ma+r.mb)*(r.ma+r.mb) + 2*r.mb*keA
	me2OverS := r.md * r.md / s

	b := 0.5 * r.g2 * (1 - me2OverS) * r.g2 * (1 - me2OverS)
	a := r.g1*r.g2*me2OverS + r.g2*r.g2*(1-me2OverS) - b
	cth := -a / b

	max := math.Max(r.DiffXS(r.pdgA, keA, -1), r.DiffXS(r.pdgA, keA, 1))
	if cth >= -1 && cth <= 1 {
		max = math.Max(max, r.DiffXS(r.pdgA, keA, cth))
	}
	return max
}

// CreateEvent samples an elastic scattering event. The recoil electron has
// spin 1/2 and positive intrinsic parity.
func (r *ElectronReaction) CreateEvent(pdgA int, keA float64,
	g *Generator) (*Event, error) {

	if pdgA != r.pdgA {
		return nil, fmt.Errorf("%w: reaction %q cannot handle"+
			" projectile %d", ErrConfig, r.description, pdgA)
	}
	if keA < r.keaThreshold {
		return nil, fmt.Errorf("%w: projectile kinetic energy %g MeV is"+
			" below the %g MeV threshold of %q", ErrKinematics, keA,
			r.keaThreshold, r.description)
	}

	ea := keA + r.ma
	_, ecCM, pcCM, edCM := twoTwoScatter(ea, r.ma, r.mb, r.mc, r.md)

	max := r.maxDiffXS(keA)
	pdf := func(ct float64) float64 { return r.DiffXS(pdgA, keA, ct) }
	cosTheta, _ := g.RejectionSample(pdf, -1, 1, max)
	phi := g.Uniform(0, 2*math.Pi, false)

	return r.makeEventObject(ea, pcCM, cosTheta, phi, ecCM, edCM, r.md,
		0, 1, nucphys.ParityPositive, -1, -1)
}
