package marley

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbbouabid/marley/pdg"
)

func newElasticReaction(t *testing.T, pdgA int) *ElectronReaction {
	t.Helper()
	r, err := NewElectronReaction(pdgA, ar40, NewMassTable())
	require.NoError(t, err)
	return r
}

func TestNewElectronReaction(t *testing.T) {
	r := newElasticReaction(t, pdg.ElectronNeutrino)

	assert.Equal(t, ProcessNuElectronElastic, r.Process())
	assert.Equal(t, ar40, r.AtomicTarget())
	// Elastic scattering on a free electron has no threshold.
	assert.InDelta(t, 0, r.ThresholdKineticEnergy(), 1e-12)

	_, err := NewElectronReaction(pdg.Electron, ar40, NewMassTable())
	assert.Error(t, err)
}

func TestElectronCouplings(t *testing.T) {
	// Electron-flavor projectiles pick up the charged-current
	// contribution, so their cross section is the largest.
	nue := newElasticReaction(t, pdg.ElectronNeutrino)
	numu := newElasticReaction(t, pdg.MuonNeutrino)
	antiNue := newElasticReaction(t, pdg.ElectronAntiNeutrino)

	const ke = 20.0
	xsNue := nue.TotalXS(pdg.ElectronNeutrino, ke)
	xsNumu := numu.TotalXS(pdg.MuonNeutrino, ke)
	xsAntiNue := antiNue.TotalXS(pdg.ElectronAntiNeutrino, ke)

	assert.Greater(t, xsNue, xsAntiNue)
	assert.Greater(t, xsAntiNue, xsNumu)
	assert.Greater(t, xsNumu, 0.0)
}

func TestElectronTotalXSScalesWithZ(t *testing.T) {
	onAr := newElasticReaction(t, pdg.ElectronNeutrino)
	r, err := NewElectronReaction(pdg.ElectronNeutrino,
		pdg.Nucleus(2, 4), NewMassTable())
	require.NoError(t, err)

	const ke = 20.0
	assert.InDelta(t, 18.0/2.0,
		onAr.TotalXS(pdg.ElectronNeutrino, ke)/
			r.TotalXS(pdg.ElectronNeutrino, ke), 1e-9)
}

func TestElectronDiffXS(t *testing.T) {
	r := newElasticReaction(t, pdg.ElectronNeutrino)

	assert.Zero(t, r.DiffXS(pdg.MuonNeutrino, 20, 0))
	assert.Zero(t, r.DiffXS(pdg.ElectronNeutrino, 20, 1.2))

	for _, ct := range []float64{-1, -0.5, 0, 0.5, 1} {
		assert.GreaterOrEqual(t,
			r.DiffXS(pdg.ElectronNeutrino, 20, ct), 0.0,
			"cos(theta) = %g", ct)
	}

	// The analytic maximum bounds the differential cross section over
	// the whole angular range.
	max := r.maxDiffXS(20)
	for i := 0; i <= 400; i++ {
		ct := -1 + 2*float64(i)/400
		assert.LessOrEqual(t, r.DiffXS(pdg.ElectronNeutrino, 20, ct),
			max*(1+1e-12))
	}
}

func TestElectronDiffXSIntegratesToTotal(t *testing.T) {
	r := newElasticReaction(t, pdg.ElectronNeutrino)

	const (
		ke = 20.0
		n  = 4000
	)
	sum := 0.0
	for i := 0; i <= n; i++ {
		ct := -1 + 2*float64(i)/n
		w := 1.0
		if i == 0 || i == n {
			w = 0.5
		}
		sum += w * r.DiffXS(pdg.ElectronNeutrino, ke, ct)
	}
	sum *= 2.0 / n
	total := r.TotalXS(pdg.ElectronNeutrino, ke)
	assert.InDelta(t, total, sum, 1e-4*total)
}

func TestElectronCreateEvent(t *testing.T) {
	g := NewGenerator(5)
	r := newElasticReaction(t, pdg.ElectronNeutrino)

	_, err := r.CreateEvent(pdg.MuonNeutrino, 20, g)
	assert.ErrorIs(t, err, ErrConfig)

	for i := 0; i < 50; i++ {
		ev, err := r.CreateEvent(pdg.ElectronNeutrino, 20, g)
		require.NoError(t, err)

		ei, pxi, pyi, pzi := ev.TotalInitialFourMomentum()
		ef, pxf, pyf, pzf := ev.TotalFinalFourMomentum()
		assert.InDelta(t, ei, ef, 1e-9*ei)
		assert.InDelta(t, pxi, pxf, 1e-9)
		assert.InDelta(t, pyi, pyf, 1e-9)
		assert.InDelta(t, pzi, pzf, 1e-9*ei)

		assert.Equal(t, pdg.ElectronNeutrino, ev.Ejectile().PDG())
		assert.Equal(t, pdg.Electron, ev.Residue().PDG())
		assert.Equal(t, -1, ev.Residue().Charge())
		assert.Zero(t, ev.Ex())

		// The recoil electron cannot outrun the beam.
		assert.LessOrEqual(t, ev.Residue().KineticEnergy(), 20.0+1e-9)
	}
}
