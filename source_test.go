package marley

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/rbbouabid/marley/pdg"
)

func TestMonoenergeticSource(t *testing.T) {
	src, err := NewMonoenergeticSource(pdg.ElectronNeutrino, 25)
	require.NoError(t, err)

	assert.Equal(t, pdg.ElectronNeutrino, src.PDG())
	assert.Equal(t, 25.0, src.MinEnergy())
	assert.Equal(t, 25.0, src.MaxEnergy())
	assert.Equal(t, 1.0, src.PDF(25))
	assert.Zero(t, src.PDF(24))

	_, err = NewMonoenergeticSource(pdg.ElectronNeutrino, -1)
	assert.ErrorIs(t, err, ErrConfig)
	_, err = NewMonoenergeticSource(pdg.Electron, 25)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestFermiDiracSource(t *testing.T) {
	src, err := NewFermiDiracSource(pdg.ElectronAntiNeutrino, 0, 60, 3.5, 0)
	require.NoError(t, err)

	assert.Equal(t, pdg.ElectronAntiNeutrino, src.PDG())
	assert.Zero(t, src.PDF(-1))
	assert.Zero(t, src.PDF(61))
	assert.Greater(t, src.PDF(10), 0.0)

	// The spectrum is normalized over its energy range.
	integral := quad.Fixed(src.PDF, 0, 60, 200, nil, 0)
	assert.InDelta(t, 1.0, integral, 1e-9)

	// A Fermi-Dirac spectrum at T = 3.5 MeV peaks near 2T.
	assert.Greater(t, src.PDF(7), src.PDF(1))
	assert.Greater(t, src.PDF(7), src.PDF(40))
}

func TestFermiDiracSourceValidation(t *testing.T) {
	_, err := NewFermiDiracSource(pdg.ElectronNeutrino, 60, 0, 3.5, 0)
	assert.ErrorIs(t, err, ErrConfig)
	_, err = NewFermiDiracSource(pdg.ElectronNeutrino, 0, 60, -1, 0)
	assert.ErrorIs(t, err, ErrConfig)
	_, err = NewFermiDiracSource(pdg.Proton, 0, 60, 3.5, 0)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestTarget(t *testing.T) {
	tgt, err := NewTarget([]int{ar40, pdg.Nucleus(2, 4)},
		[]float64{3, 1})
	require.NoError(t, err)

	assert.InDelta(t, 0.75, tgt.AtomFraction(ar40), 1e-12)
	assert.InDelta(t, 0.25, tgt.AtomFraction(pdg.Nucleus(2, 4)), 1e-12)
	assert.Zero(t, tgt.AtomFraction(k40))

	_, err = NewTarget([]int{ar40}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrConfig)
	_, err = NewTarget([]int{pdg.Electron}, []float64{1})
	assert.ErrorIs(t, err, ErrConfig)
	_, err = NewTarget([]int{ar40}, []float64{-1})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSpinParityMap(t *testing.T) {
	db := DefaultSpinParityMap()

	twoJ, par, err := db.GroundStateSpinParity(k40)
	require.NoError(t, err)
	assert.Equal(t, 8, twoJ)
	assert.Equal(t, "-", par.String())

	// Unlisted even-even nuclides default to 0+.
	twoJ, par, err = db.GroundStateSpinParity(pdg.Nucleus(26, 56))
	require.NoError(t, err)
	assert.Zero(t, twoJ)
	assert.Equal(t, "+", par.String())

	// Unlisted odd nuclides have no systematic fallback.
	_, _, err = db.GroundStateSpinParity(pdg.Nucleus(26, 57))
	assert.ErrorIs(t, err, ErrConfig)
}
