package marley

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/rbbouabid/marley/pdg"
)

// massTolerance is the relative tolerance used to verify the mass-shell
// relation E^2 - |p|^2 = m^2 at particle construction.
const massTolerance = 1e-6

// Particle is a single particle record: a PDG identity, a four-momentum in
// MeV, a rest mass, and an electric charge in units of the proton charge.
// A particle owns the secondary particles created by its decay; the children
// form a tree, never a cycle.
type Particle struct {
	pdgCode int
	p4      fmom.PxPyPzE
	mass    float64
	charge  int

	children []*Particle
}

// NewParticle builds a particle from an explicit four-momentum. It returns
// an error if the four-momentum is off the mass shell for the given rest
// mass beyond floating-point tolerance.
func NewParticle(code int, e, px, py, pz, m float64, q int) (*Particle, error) {
	p2 := px*px + py*py + pz*pz
	if diff := math.Abs(e*e - p2 - m*m); diff > massTolerance*math.Max(1, e*e) {
		return nil, fmt.Errorf("%w: four-momentum (E=%g, |p|=%g) is off the"+
			" mass shell for m=%g", ErrPhysics, e, math.Sqrt(p2), m)
	}
	return &Particle{
		pdgCode: code,
		p4:      fmom.NewPxPyPzE(px, py, pz, e),
		mass:    m,
		charge:  q,
	}, nil
}

// NewParticleAtRest builds a particle at rest with the given mass.
func NewParticleAtRest(code int, m float64, q int) *Particle {
	return &Particle{
		pdgCode: code,
		p4:      fmom.NewPxPyPzE(0, 0, 0, m),
		mass:    m,
		charge:  q,
	}
}

// PDG returns the particle's PDG code.
func (p *Particle) PDG() int { return p.pdgCode }

// P4 returns the particle's four-momentum.
func (p *Particle) P4() fmom.PxPyPzE { return p.p4 }

// E returns the particle's total energy in MeV.
func (p *Particle) E() float64 { return p.p4.E() }

// Px returns the x component of the particle's three-momentum.
func (p *Particle) Px() float64 { return p.p4.Px() }

// Py returns the y component of the particle's three-momentum.
func (p *Particle) Py() float64 { return p.p4.Py() }

// Pz returns the z component of the particle's three-momentum.
func (p *Particle) Pz() float64 { return p.p4.Pz() }

// Mass returns the particle's rest mass in MeV.
func (p *Particle) Mass() float64 { return p.mass }

// Momentum returns the magnitude of the particle's three-momentum.
func (p *Particle) Momentum() float64 {
	return math.Sqrt(p.p4.Px()*p.p4.Px() + p.p4.Py()*p.p4.Py() +
		p.p4.Pz()*p.p4.Pz())
}

// KineticEnergy returns the particle's kinetic energy, clamped at zero.
func (p *Particle) KineticEnergy() float64 {
	return math.Max(p.p4.E()-p.mass, 0)
}

// Charge returns the particle's electric charge in units of the proton
// charge.
func (p *Particle) Charge() int { return p.charge }

// SetCharge overrides the particle's electric charge. This accommodates
// partially ionized atoms, which the PDG numbering scheme cannot express.
func (p *Particle) SetCharge(q int) { p.charge = q }

// Children returns the secondary particles owned by this one.
func (p *Particle) Children() []*Particle { return p.children }

// AddChild appends a decay product to the particle's child list, taking
// ownership of it.
func (p *Particle) AddChild(child *Particle) {
	p.children = append(p.children, child)
}

func (p *Particle) String() string {
	return fmt.Sprintf("%s (E=%g MeV, p=(%g, %g, %g) MeV, m=%g MeV, q=%d)",
		pdg.Symbol(p.pdgCode), p.p4.E(), p.p4.Px(), p.p4.Py(), p.p4.Pz(),
		p.mass, p.charge)
}
