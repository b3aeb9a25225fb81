package marley

import (
	"fmt"
	"strings"

	"github.com/rbbouabid/marley/nucphys"
	"github.com/rbbouabid/marley/pdg"
)

// Event is a fully assembled two-two scattering event: the projectile and
// target in the lab frame before the reaction, and the ejectile and residue
// after. The residue may carry an excitation energy Ex together with the
// spin-parity of the populated level, which seed the subsequent
// de-excitation cascade.
//
// Initial-state particles are ordered (projectile, target) and final-state
// particles (ejectile, residue).
type Event struct {
	ex     float64
	twoJ   int
	parity nucphys.Parity

	initial []*Particle
	final   []*Particle

	// description of the reaction that produced this event (non-owning)
	reaction string
}

func newEvent(ex float64, twoJ int, par nucphys.Parity, reaction string,
	projectile, target, ejectile, residue *Particle) *Event {
	return &Event{
		ex:       ex,
		twoJ:     twoJ,
		parity:   par,
		initial:  []*Particle{projectile, target},
		final:    []*Particle{ejectile, residue},
		reaction: reaction,
	}
}

// Ex returns the residue's excitation energy in MeV.
func (e *Event) Ex() float64 { return e.ex }

// TwoJ returns two times the spin of the residue's populated level.
func (e *Event) TwoJ() int { return e.twoJ }

// Parity returns the parity of the residue's populated level.
func (e *Event) Parity() nucphys.Parity { return e.parity }

// Reaction returns a description of the reaction that produced this event.
func (e *Event) Reaction() string { return e.reaction }

// Projectile returns the incident projectile in the lab frame.
func (e *Event) Projectile() *Particle { return e.initial[0] }

// Target returns the struck target, at rest in the lab frame.
func (e *Event) Target() *Particle { return e.initial[1] }

// Ejectile returns the light final-state particle in the lab frame.
func (e *Event) Ejectile() *Particle { return e.final[0] }

// Residue returns the heavy final-state particle in the lab frame.
func (e *Event) Residue() *Particle { return e.final[1] }

// InitialParticles returns the ordered initial-state particle list.
func (e *Event) InitialParticles() []*Particle { return e.initial }

// FinalParticles returns the ordered final-state particle list.
func (e *Event) FinalParticles() []*Particle { return e.final }

// TotalInitialFourMomentum sums the four-momenta of the initial-state
// particles, returning (E, px, py, pz).
func (e *Event) TotalInitialFourMomentum() (en, px, py, pz float64) {
	return sumP4(e.initial)
}

// TotalFinalFourMomentum sums the four-momenta of the final-state
// particles, returning (E, px, py, pz).
func (e *Event) TotalFinalFourMomentum() (en, px, py, pz float64) {
	return sumP4(e.final)
}

func sumP4(ps []*Particle) (en, px, py, pz float64) {
	for _, p := range ps {
		en += p.E()
		px += p.Px()
		py += p.Py()
		pz += p.Pz()
	}
	return en, px, py, pz
}

func (e *Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s + %s -> %s + %s",
		pdg.Symbol(e.Projectile().PDG()), pdg.Symbol(e.Target().PDG()),
		pdg.Symbol(e.Ejectile().PDG()), pdg.Symbol(e.Residue().PDG()))
	fmt.Fprintf(&b, " (Ex = %g MeV, Jpi = %g%s)",
		e.ex, float64(e.twoJ)/2, e.parity)
	return b.String()
}
