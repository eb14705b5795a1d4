package preference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/exchange-world/internal/numeric"
)

func subsistenceForm(t *testing.T) StoneGeary {
	t.Helper()
	f, err := NewStoneGeary(0.6, 0.4, 5, 3)
	require.NoError(t, err)
	return f
}

func TestStoneGeary_AboveSubsistence(t *testing.T) {
	f := subsistenceForm(t)

	assert.True(t, f.AboveSubsistence(10, 10))
	assert.False(t, f.AboveSubsistence(4, 10))
	assert.False(t, f.AboveSubsistence(10, 3), "boundary is strict, not inclusive")
	assert.False(t, f.AboveSubsistence(5, 10))
}

func TestStoneGeary_MRSDecreasesAwayFromSubsistence(t *testing.T) {
	f := subsistenceForm(t)

	near, ok := f.MRS(6, 10)
	require.True(t, ok)
	far, ok := f.MRS(50, 50)
	require.True(t, ok)

	assert.Greater(t, near, far, "scarcity of A near subsistence must raise its trade rate")
}

func TestStoneGeary_BelowSubsistenceIsFinite(t *testing.T) {
	f := subsistenceForm(t)

	u := f.U(2, 1)
	require.False(t, math.IsNaN(u) || math.IsInf(u, 0))
	assert.Less(t, u, f.U(10, 10), "below-subsistence utility is deeply negative, not an error")

	// The epsilon shift caps the marginal explosion at a large finite value.
	muA := f.MarginalA(5, 10)
	assert.InDelta(t, 0.6/numeric.Epsilon, muA, 1)
	assert.False(t, math.IsInf(muA, 1))
}

func TestStoneGeary_DesperationQuote(t *testing.T) {
	f := subsistenceForm(t)

	comfortable := f.ReservationBounds(50, 50, 0.05)
	require.Equal(t, QuoteTwoSided, comfortable.Side)

	desperate := f.ReservationBounds(5.001, 50, 0.05)
	require.Equal(t, QuoteTwoSided, desperate.Side)
	assert.Greater(t, desperate.Ask, comfortable.Ask*1e3,
		"near subsistence the ask explodes: no finite amount of B buys the last unit of A cheaply")
	assert.Greater(t, desperate.Bid, comfortable.Bid,
		"and the agent bids aggressively to replenish A")
}

func TestStoneGeary_CobbDouglasDegeneracy(t *testing.T) {
	f, err := NewStoneGeary(0.6, 0.4, 0, 0)
	require.NoError(t, err)

	points := [][2]float64{{1, 1}, {3, 7}, {10, 10}, {250, 40}}
	for _, pt := range points {
		a, b := pt[0], pt[1]

		wantU := 0.6*math.Log(a) + 0.4*math.Log(b)
		assert.InDelta(t, wantU, f.U(a, b), 1e-12, "U(%g, %g)", a, b)

		wantMRS := (0.6 / 0.4) * (b / a)
		mrs, ok := f.MRS(a, b)
		require.True(t, ok)
		assert.InDelta(t, wantMRS, mrs, 1e-9*wantMRS, "MRS(%g, %g)", a, b)
	}
}

func TestStoneGeary_InvalidParams(t *testing.T) {
	cases := []struct {
		name                           string
		alphaA, alphaB, gammaA, gammaB float64
	}{
		{"zero weight", 0, 0.4, 5, 3},
		{"negative weight", 0.6, -1, 5, 3},
		{"negative subsistence A", 0.6, 0.4, -1, 3},
		{"negative subsistence B", 0.6, 0.4, 5, -0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStoneGeary(tc.alphaA, tc.alphaB, tc.gammaA, tc.gammaB)
			require.Error(t, err)
		})
	}
}
