package pdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNucleusRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		z, a int
		code int
	}{
		{18, 40, 1000180400},
		{19, 40, 1000190400},
		{1, 2, Deuteron},
		{2, 4, Alpha},
		{0, 1, Neutron},
		{1, 1, Proton},
	} {
		code := Nucleus(tc.z, tc.a)
		assert.Equal(t, tc.code, code, "Nucleus(%d, %d)", tc.z, tc.a)
		assert.Equal(t, tc.z, AtomicNumber(code))
		assert.Equal(t, tc.a, MassNumber(code))
	}
}

func TestElectricCharge(t *testing.T) {
	assert.Equal(t, -1, ElectricCharge(Electron))
	assert.Equal(t, +1, ElectricCharge(Positron))
	assert.Equal(t, 0, ElectricCharge(ElectronNeutrino))
	assert.Equal(t, 0, ElectricCharge(ElectronAntiNeutrino))
	assert.Equal(t, 1, ElectricCharge(Proton))
	assert.Equal(t, 18, ElectricCharge(Nucleus(18, 40)))
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, "e-", Symbol(Electron))
	assert.Equal(t, "e+", Symbol(Positron))
	assert.Equal(t, "anti-ve", Symbol(ElectronAntiNeutrino))
	assert.Equal(t, "Ar", ElementSymbol(18))
	assert.Equal(t, "Nn", ElementSymbol(0))
	assert.Equal(t, "?", ElementSymbol(-1))
}

func TestIsIonIsLepton(t *testing.T) {
	assert.True(t, IsIon(Nucleus(18, 40)))
	assert.False(t, IsIon(Proton))
	assert.True(t, IsLepton(Electron))
	assert.True(t, IsLepton(ElectronAntiNeutrino))
	assert.False(t, IsLepton(Neutron))
}
