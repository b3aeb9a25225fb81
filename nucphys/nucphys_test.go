package nucphys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineGammaTransitionType(t *testing.T) {
	tests := []struct {
		name         string
		twoJi, twoJf int
		pi, pf       Parity
		typ          TransitionType
		l            int
	}{
		{"1+ to 0+ is M1", 2, 0, ParityPositive, ParityPositive, Magnetic, 1},
		{"1- to 0+ is E1", 2, 0, ParityNegative, ParityPositive, Electric, 1},
		{"0+ to 2+ is E2", 0, 4, ParityPositive, ParityPositive, Electric, 2},
		{"0+ to 2- is M2", 0, 4, ParityPositive, ParityNegative, Magnetic, 2},
		{"2+ to 2+ is M1", 4, 4, ParityPositive, ParityPositive, Magnetic, 1},
		{"5/2+ to 1/2- is M2", 5, 1, ParityPositive, ParityNegative, Magnetic, 2},
		{"3- to 0+ is E3", 6, 0, ParityNegative, ParityPositive, Electric, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			typ, l, err := DetermineGammaTransitionType(tc.twoJi, tc.pi,
				tc.twoJf, tc.pf)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, typ)
			assert.Equal(t, tc.l, l)
		})
	}
}

func TestDetermineGammaTransitionTypeForbidden(t *testing.T) {
	_, _, err := DetermineGammaTransitionType(0, ParityPositive, 0,
		ParityPositive)
	require.ErrorIs(t, err, ErrForbiddenTransition)

	// Half-integer change of total angular momentum.
	_, _, err = DetermineGammaTransitionType(2, ParityPositive, 1,
		ParityPositive)
	require.ErrorIs(t, err, ErrForbiddenTransition)

	_, _, err = DetermineGammaTransitionType(0, ParityNegative, 3,
		ParityNegative)
	require.ErrorIs(t, err, ErrForbiddenTransition)
}

func TestGammaStrengthFunction(t *testing.T) {
	for _, typ := range []TransitionType{Electric, Magnetic} {
		for l := 1; l <= 3; l++ {
			f, err := GammaStrengthFunction(19, 40, typ, l, 2.5)
			require.NoError(t, err)
			assert.Greater(t, f, 0.0, "type %v l %d", typ, l)
		}
	}

	// Higher multipoles are suppressed relative to the base multipole.
	f2, err := GammaStrengthFunction(19, 40, Electric, 2, 2.5)
	require.NoError(t, err)
	f3, err := GammaStrengthFunction(19, 40, Electric, 3, 2.5)
	require.NoError(t, err)
	assert.Less(t, f3, f2)

	_, err = GammaStrengthFunction(19, 40, Electric, 0, 2.5)
	require.ErrorIs(t, err, ErrBadMultipolarity)

	_, err = GammaStrengthFunction(19, 40, TransitionType(99), 1, 2.5)
	require.ErrorIs(t, err, ErrBadTransitionType)
}

func TestWeisskopfPartialDecayWidth(t *testing.T) {
	e1, err := WeisskopfPartialDecayWidth(40, Electric, 1, 2.5)
	require.NoError(t, err)
	assert.Greater(t, e1, 0.0)

	m1, err := WeisskopfPartialDecayWidth(40, Magnetic, 1, 2.5)
	require.NoError(t, err)
	assert.Greater(t, m1, 0.0)

	// E2 widths are strongly suppressed relative to E1 at MeV-scale
	// gamma energies.
	e2, err := WeisskopfPartialDecayWidth(40, Electric, 2, 2.5)
	require.NoError(t, err)
	assert.Less(t, e2, e1)

	_, err = WeisskopfPartialDecayWidth(40, Electric, 0, 2.5)
	require.ErrorIs(t, err, ErrBadMultipolarity)
}

func TestParity(t *testing.T) {
	assert.Equal(t, ParityPositive, ParityNegative.Times(ParityNegative))
	assert.Equal(t, ParityNegative, ParityNegative.Times(ParityPositive))
	assert.Equal(t, "+", ParityPositive.String())
	assert.Equal(t, "-", ParityNegative.String())

	p, err := ParseParity("-")
	require.NoError(t, err)
	assert.Equal(t, ParityNegative, p)
	_, err = ParseParity("x")
	assert.Error(t, err)
}

func TestFragments(t *testing.T) {
	require.Len(t, Fragments, 6)
	assert.Equal(t, 2, Fragments[5].Z())
	assert.Equal(t, 4, Fragments[5].A())
	assert.Equal(t, 0, Fragments[5].TwoS)
}
