package marley

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/rbbouabid/marley/pdg"
)

// Source describes the energy spectrum of incident projectiles. PDF values
// are probability densities in reciprocal MeV, normalized over the source's
// energy range; a monoenergetic source is the exception and reports a unit
// weight at its single energy.
type Source interface {
	// PDG returns the PDG code of the projectiles this source emits.
	PDG() int
	// MinEnergy returns the lowest emitted total energy (MeV).
	MinEnergy() float64
	// MaxEnergy returns the highest emitted total energy (MeV).
	MaxEnergy() float64
	// PDF evaluates the energy probability density at e (MeV).
	PDF(e float64) float64
}

func checkSourcePDG(code int) error {
	switch code {
	case pdg.ElectronNeutrino, pdg.ElectronAntiNeutrino,
		pdg.MuonNeutrino, pdg.MuonAntiNeutrino,
		pdg.TauNeutrino, pdg.TauAntiNeutrino:
		return nil
	}
	return fmt.Errorf("%w: %d is not a neutrino PDG code", ErrConfig, code)
}

// MonoenergeticSource emits projectiles at a single fixed energy.
type MonoenergeticSource struct {
	pdgCode int
	energy  float64
}

var _ Source = (*MonoenergeticSource)(nil)

// NewMonoenergeticSource builds a source emitting projectiles with the
// given PDG code at the fixed total energy e (MeV).
func NewMonoenergeticSource(code int, e float64) (*MonoenergeticSource, error) {
	if err := checkSourcePDG(code); err != nil {
		return nil, err
	}
	if e <= 0 {
		return nil, fmt.Errorf("%w: non-positive source energy %g MeV",
			ErrConfig, e)
	}
	return &MonoenergeticSource{pdgCode: code, energy: e}, nil
}

func (s *MonoenergeticSource) PDG() int           { return s.pdgCode }
func (s *MonoenergeticSource) MinEnergy() float64 { return s.energy }
func (s *MonoenergeticSource) MaxEnergy() float64 { return s.energy }

func (s *MonoenergeticSource) PDF(e float64) float64 {
	if e == s.energy {
		return 1
	}
	return 0
}

// quadPoints is the number of Gauss-Legendre nodes used for the fixed
// quadratures in this package.
const quadPoints = 100

// FermiDiracSource emits projectiles with a Fermi-Dirac energy spectrum,
// the usual parametrization of supernova neutrino fluxes.
type FermiDiracSource struct {
	pdgCode    int
	emin, emax float64
	temp       float64
	eta        float64
	norm       float64
}

var _ Source = (*FermiDiracSource)(nil)

// NewFermiDiracSource builds a Fermi-Dirac source on [emin, emax] (MeV)
// with temperature temp (MeV) and pinching parameter eta. The spectrum is
// normalized over the energy range at construction.
func NewFermiDiracSource(code int, emin, emax, temp,
	eta float64) (*FermiDiracSource, error) {

	if err := checkSourcePDG(code); err != nil {
		return nil, err
	}
	if emin < 0 || emax <= emin {
		return nil, fmt.Errorf("%w: invalid source energy range"+
			" [%g, %g] MeV", ErrConfig, emin, emax)
	}
	if temp <= 0 {
		return nil, fmt.Errorf("%w: non-positive source temperature"+
			" %g MeV", ErrConfig, temp)
	}

	s := &FermiDiracSource{
		pdgCode: code,
		emin:    emin,
		emax:    emax,
		temp:    temp,
		eta:     eta,
	}
	integral := quad.Fixed(s.shape, emin, emax, quadPoints, nil, 0)
	if integral <= 0 || math.IsNaN(integral) {
		return nil, fmt.Errorf("%w: Fermi-Dirac spectrum vanishes on"+
			" [%g, %g] MeV", ErrConfig, emin, emax)
	}
	s.norm = 1 / integral
	return s, nil
}

func (s *FermiDiracSource) shape(e float64) float64 {
	return e * e / (math.Exp(e/s.temp-s.eta) + 1)
}

func (s *FermiDiracSource) PDG() int           { return s.pdgCode }
func (s *FermiDiracSource) MinEnergy() float64 { return s.emin }
func (s *FermiDiracSource) MaxEnergy() float64 { return s.emax }

func (s *FermiDiracSource) PDF(e float64) float64 {
	if e < s.emin || e > s.emax {
		return 0
	}
	return s.norm * s.shape(e)
}
