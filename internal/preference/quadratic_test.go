package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symmetricBliss(t *testing.T) Quadratic {
	t.Helper()
	f, err := NewQuadratic(10, 10, 5, 5, 0)
	require.NoError(t, err)
	return f
}

func TestQuadratic_KnownValues(t *testing.T) {
	f := symmetricBliss(t)

	assert.Equal(t, 0.0, f.U(10, 10), "utility is exactly zero at the bliss point")
	assert.InDelta(t, -2.0, f.U(5, 5), 1e-12)
	assert.InDelta(t, 0.4, f.MarginalA(5, 5), 1e-12)
	assert.InDelta(t, -0.4, f.MarginalA(15, 15), 1e-12, "marginal utility flips sign past the bliss point")
}

func TestQuadratic_MRSUndefinedAtBliss(t *testing.T) {
	f := symmetricBliss(t)

	_, ok := f.MRS(10, 10)
	assert.False(t, ok, "MRS must be undefined when both marginals vanish")

	mrs, ok := f.MRS(5, 5)
	require.True(t, ok)
	assert.InDelta(t, 1.0, mrs, 1e-12, "symmetric deficit gives a 1:1 rate")
}

func TestQuadratic_ReservationBounds(t *testing.T) {
	f := symmetricBliss(t)

	// Below bliss in both goods: normal two-sided quote.
	q := f.ReservationBounds(5, 5, 0.1)
	require.Equal(t, QuoteTwoSided, q.Side)
	assert.Less(t, q.Bid, q.Ask)
	assert.InDelta(t, 0.9, q.Bid, 1e-12)
	assert.InDelta(t, 1.1, q.Ask, 1e-12)

	// Saturated in A: explicit no-buy side, never the bid>ask ordering trick.
	q = f.ReservationBounds(15, 5, 0.1)
	assert.Equal(t, QuoteNoBuy, q.Side)
	assert.Zero(t, q.Bid)
	assert.Zero(t, q.Ask)

	// At the bliss point the agent is indifferent to any trade.
	q = f.ReservationBounds(10, 10, 0.1)
	assert.Equal(t, QuoteNoTrade, q.Side)

	// A still valued but B saturated: A cannot be priced in B.
	q = f.ReservationBounds(5, 15, 0.1)
	assert.Equal(t, QuoteNoTrade, q.Side)
}

func TestQuadratic_CrossTerm(t *testing.T) {
	f, err := NewQuadratic(10, 10, 5, 5, 0.01)
	require.NoError(t, err)

	// γ couples the goods: a B deficit now raises the marginal value of A.
	decoupled := symmetricBliss(t)
	assert.Greater(t, f.MarginalA(5, 5), decoupled.MarginalA(5, 5))
}

func TestQuadratic_InvalidParams(t *testing.T) {
	_, err := NewQuadratic(10, 10, 0, 5, 0)
	require.Error(t, err)

	_, err = NewQuadratic(10, 10, 5, -1, 0)
	require.Error(t, err)
}
