package marley

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbbouabid/marley/nucphys"
	"github.com/rbbouabid/marley/pdg"
)

var (
	ar40 = pdg.Nucleus(18, 40)
	k40  = pdg.Nucleus(19, 40)
	cl40 = pdg.Nucleus(17, 40)
)

func testMatrixElements() MatrixElementTable {
	pos := nucphys.ParityPositive
	return MatrixElementTable{
		{LevelEnergy: 2.290, Strength: 0.259, Type: GamowTeller,
			Level: &Level{Energy: 2.290, TwoJ: 2, Parity: pos}},
		{LevelEnergy: 4.384, Strength: 4.0, Type: Fermi,
			Level: &Level{Energy: 4.384, TwoJ: 0, Parity: pos}},
		{LevelEnergy: 6.118, Strength: 0.350, Type: GamowTeller},
	}
}

func newCCReaction(t *testing.T, matrix MatrixElementTable) *NuclearReaction {
	t.Helper()
	r, err := NewNuclearReaction(ProcessNeutrinoCC, pdg.ElectronNeutrino,
		ar40, pdg.Electron, k40, 1, NewMassTable(), matrix)
	require.NoError(t, err)
	return r
}

func TestNewNuclearReaction(t *testing.T) {
	r := newCCReaction(t, testMatrixElements())

	assert.Equal(t, ProcessNeutrinoCC, r.Process())
	assert.Equal(t, pdg.ElectronNeutrino, r.ProjectilePDG())
	assert.Equal(t, ar40, r.AtomicTarget())
	assert.Equal(t, CoulombFermiMEMA, r.CoulombMode())
	assert.Contains(t, r.Description(), "-->")

	// The nu_e + 40Ar charged-current threshold sits near 1.5 MeV.
	assert.InDelta(t, 1.5, r.ThresholdKineticEnergy(), 0.2)
}

func TestNewNuclearReactionRejectsDM(t *testing.T) {
	_, err := NewNuclearReaction(ProcessDM, pdg.ElectronNeutrino, ar40,
		pdg.Electron, k40, 1, NewMassTable(), testMatrixElements())
	assert.ErrorIs(t, err, ErrPhysics)
}

func TestNewNuclearReactionRejectsUnsortedTable(t *testing.T) {
	matrix := MatrixElementTable{
		{LevelEnergy: 4.384, Strength: 4.0, Type: Fermi},
		{LevelEnergy: 2.290, Strength: 0.259, Type: GamowTeller},
	}
	_, err := NewNuclearReaction(ProcessNeutrinoCC, pdg.ElectronNeutrino,
		ar40, pdg.Electron, k40, 1, NewMassTable(), matrix)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestNuclearTotalXS(t *testing.T) {
	r := newCCReaction(t, testMatrixElements())

	t.Run("below threshold", func(t *testing.T) {
		assert.Zero(t, r.TotalXS(pdg.ElectronNeutrino, 0.5))
	})
	t.Run("wrong projectile", func(t *testing.T) {
		assert.Zero(t, r.TotalXS(pdg.MuonNeutrino, 25))
	})
	t.Run("above threshold", func(t *testing.T) {
		xs := r.TotalXS(pdg.ElectronNeutrino, 25)
		assert.Greater(t, xs, 0.0)
	})
	t.Run("monotonic in accessible levels", func(t *testing.T) {
		// At 3 MeV only the first level is open; at 25 MeV all are.
		lo := r.TotalXS(pdg.ElectronNeutrino, 3)
		hi := r.TotalXS(pdg.ElectronNeutrino, 25)
		assert.Greater(t, lo, 0.0)
		assert.Greater(t, hi, lo)
	})
}

func TestNuclearDiffXS(t *testing.T) {
	r := newCCReaction(t, testMatrixElements())

	for _, ct := range []float64{-1, -0.5, 0, 0.5, 1} {
		assert.GreaterOrEqual(t, r.DiffXS(pdg.ElectronNeutrino, 25, ct),
			0.0, "cos(theta) = %g", ct)
	}
	assert.Zero(t, r.DiffXS(pdg.ElectronNeutrino, 25, 1.5))

	// Integrating the differential cross section over cos(theta) with the
	// trapezoid rule recovers the total cross section.
	const n = 2000
	sum := 0.0
	for i := 0; i <= n; i++ {
		ct := -1 + 2*float64(i)/n
		w := 1.0
		if i == 0 || i == n {
			w = 0.5
		}
		sum += w * r.DiffXS(pdg.ElectronNeutrino, 25, ct)
	}
	sum *= 2.0 / n
	total := r.TotalXS(pdg.ElectronNeutrino, 25)
	assert.InDelta(t, total, sum, 1e-4*total)
}

func TestFermiFunctionEnhancesElectrons(t *testing.T) {
	r := newCCReaction(t, testMatrixElements())

	// Coulomb attraction enhances slow outgoing electrons.
	for _, beta := range []float64{0.1, 0.5, 0.9} {
		f := r.fermiFunction(beta)
		assert.Greater(t, f, 1.0, "beta = %g", beta)
	}
	// The enhancement fades as the electron speeds up.
	assert.Greater(t, r.fermiFunction(0.1), r.fermiFunction(0.9))
}

func TestWeakNuclearCharge(t *testing.T) {
	matrix := testMatrixElements()
	r, err := NewNuclearReaction(ProcessNC, pdg.ElectronNeutrino, ar40,
		pdg.ElectronNeutrino, ar40, 0, NewMassTable(), matrix)
	require.NoError(t, err)

	want := float64(40-18) - (1-4*sin2ThetaW)*18
	assert.InDelta(t, want, r.weakNuclearCharge(), 1e-12)
}

func TestEMAFactorInvalidForSlowPositrons(t *testing.T) {
	r, err := NewNuclearReaction(ProcessAntiNeutrinoCC,
		pdg.ElectronAntiNeutrino, ar40, pdg.Positron, cl40, -1,
		NewMassTable(), MatrixElementTable{
			{LevelEnergy: 0, Strength: 1, Type: Fermi,
				Level: &Level{TwoJ: 4, Parity: nucphys.ParityNegative}},
		})
	require.NoError(t, err)

	// A slow positron's effective energy drops below its rest mass once
	// the repulsive Coulomb shift is applied.
	_, ok := r.emaFactor(0.3, false)
	assert.False(t, ok)
	_, ok = r.emaFactor(0.3, true)
	assert.False(t, ok)

	keA := r.ThresholdKineticEnergy() + 2

	r.SetCoulombMode(CoulombEMA)
	assert.Zero(t, r.TotalXS(pdg.ElectronAntiNeutrino, keA),
		"invalid EMA factors floor the cross section to zero")

	// The hybrid modes fall back to the Fermi function instead.
	r.SetCoulombMode(CoulombFermiMEMA)
	assert.Greater(t, r.TotalXS(pdg.ElectronAntiNeutrino, keA), 0.0)
}

func TestCoulombModeStrings(t *testing.T) {
	for _, m := range []CoulombMode{CoulombNone, CoulombFermi, CoulombEMA,
		CoulombMEMA, CoulombFermiEMA, CoulombFermiMEMA} {
		got, err := ParseCoulombMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseCoulombMode("bogus")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestNuclearCreateEvent(t *testing.T) {
	g := NewGenerator(7)
	r := newCCReaction(t, testMatrixElements())

	t.Run("wrong projectile", func(t *testing.T) {
		_, err := r.CreateEvent(pdg.MuonNeutrino, 25, g)
		assert.ErrorIs(t, err, ErrConfig)
	})
	t.Run("below threshold", func(t *testing.T) {
		_, err := r.CreateEvent(pdg.ElectronNeutrino, 0.5, g)
		assert.ErrorIs(t, err, ErrKinematics)
	})

	for i := 0; i < 50; i++ {
		ev, err := r.CreateEvent(pdg.ElectronNeutrino, 25, g)
		require.NoError(t, err)

		ei, pxi, pyi, pzi := ev.TotalInitialFourMomentum()
		ef, pxf, pyf, pzf := ev.TotalFinalFourMomentum()
		assert.InDelta(t, ei, ef, 1e-6*ei)
		assert.InDelta(t, pxi, pxf, 1e-6)
		assert.InDelta(t, pyi, pyf, 1e-6)
		assert.InDelta(t, pzi, pzf, 1e-6*ei)

		qi := ev.Projectile().Charge() + ev.Target().Charge()
		qf := ev.Ejectile().Charge() + ev.Residue().Charge()
		assert.Equal(t, qi, qf)

		assert.Equal(t, pdg.Electron, ev.Ejectile().PDG())
		assert.Equal(t, k40, ev.Residue().PDG())
		assert.GreaterOrEqual(t, ev.Ex(), 0.0)
	}
}

func TestNuclearCreateEventGroundStateOnly(t *testing.T) {
	g := NewGenerator(11)
	mt := NewMassTable()
	matrix := MatrixElementTable{
		{LevelEnergy: 0, Strength: 4.0, Type: Fermi,
			Level: &Level{TwoJ: 8, Parity: nucphys.ParityNegative}},
	}
	r := newCCReaction(t, matrix)

	me, err := mt.ParticleMass(pdg.Electron)
	require.NoError(t, err)
	mK, err := mt.AtomicMass(k40)
	require.NoError(t, err)
	mdGS := mK - me

	for i := 0; i < 20; i++ {
		ev, err := r.CreateEvent(pdg.ElectronNeutrino, 25, g)
		require.NoError(t, err)

		assert.Zero(t, ev.Ex())
		assert.Equal(t, 8, ev.TwoJ())
		assert.Equal(t, nucphys.ParityNegative, ev.Parity())

		// Both outgoing particles sit on their mass shells: the
		// residue at the ground-state mass, the ejectile at the
		// electron mass.
		res := ev.Residue().P4()
		mRes := math.Sqrt(res.E()*res.E() - res.Px()*res.Px() -
			res.Py()*res.Py() - res.Pz()*res.Pz())
		assert.InDelta(t, mdGS, mRes, 1e-5*mdGS)

		ej := ev.Ejectile().P4()
		mEj := math.Sqrt(math.Max(0, ej.E()*ej.E()-ej.Px()*ej.Px()-
			ej.Py()*ej.Py()-ej.Pz()*ej.Pz()))
		assert.InDelta(t, me, mEj, 1e-3)
	}
}

func TestResidueSpinParityContinuum(t *testing.T) {
	g := NewGenerator(3)
	r := newCCReaction(t, testMatrixElements())

	t.Run("fermi copies the target ground state", func(t *testing.T) {
		me := &MatrixElement{LevelEnergy: 6, Strength: 1, Type: Fermi}
		twoJ, par, err := r.residueSpinParity(me, g)
		require.NoError(t, err)
		assert.Equal(t, 0, twoJ)
		assert.Equal(t, nucphys.ParityPositive, par)
	})
	t.Run("gamow-teller from a spin-0 target", func(t *testing.T) {
		me := &MatrixElement{LevelEnergy: 6, Strength: 1, Type: GamowTeller}
		for i := 0; i < 10; i++ {
			twoJ, par, err := r.residueSpinParity(me, g)
			require.NoError(t, err)
			assert.Equal(t, 2, twoJ)
			assert.Equal(t, nucphys.ParityPositive, par)
		}
	})
}
