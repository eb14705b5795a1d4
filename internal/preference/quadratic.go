package preference

import (
	"github.com/talgya/exchange-world/internal/numeric"
)

// Quadratic is the bliss-point (satiation) form
// U = −(A−A*)²/σA² − (B−B*)²/σB² − γ(A−A*)(B−B*).
// Utility peaks at the bliss point (A*, B*); marginal utility turns negative
// beyond it, so consuming more of a saturated good makes the agent worse off.
type Quadratic struct {
	BlissA float64
	BlissB float64
	SigmaA float64
	SigmaB float64
	Gamma  float64
}

// NewQuadratic validates the parameter domain and constructs the form.
// gamma is the cross-curvature term; zero decouples the two goods.
func NewQuadratic(blissA, blissB, sigmaA, sigmaB, gamma float64) (Quadratic, error) {
	if sigmaA <= 0 {
		return Quadratic{}, &ConfigError{Type: TypeQuadratic, Field: "sigma_a", Reason: "must be positive"}
	}
	if sigmaB <= 0 {
		return Quadratic{}, &ConfigError{Type: TypeQuadratic, Field: "sigma_b", Reason: "must be positive"}
	}
	return Quadratic{BlissA: blissA, BlissB: blissB, SigmaA: sigmaA, SigmaB: sigmaB, Gamma: gamma}, nil
}

func (f Quadratic) U(a, b float64) float64 {
	da, db := a-f.BlissA, b-f.BlissB
	return -(da*da)/(f.SigmaA*f.SigmaA) - (db*db)/(f.SigmaB*f.SigmaB) - f.Gamma*da*db
}

// MarginalA is −2(A−A*)/σA² − γ(B−B*): positive below the bliss point,
// negative beyond it.
func (f Quadratic) MarginalA(a, b float64) float64 {
	return -2*(a-f.BlissA)/(f.SigmaA*f.SigmaA) - f.Gamma*(b-f.BlissB)
}

func (f Quadratic) MarginalB(a, b float64) float64 {
	return -2*(b-f.BlissB)/(f.SigmaB*f.SigmaB) - f.Gamma*(a-f.BlissA)
}

// MRS is undefined at the bliss point, where both marginals vanish and the
// agent is indifferent to any trade direction, and whenever the marginal
// value of the payment good is numerically zero.
func (f Quadratic) MRS(a, b float64) (float64, bool) {
	muA := f.MarginalA(a, b)
	muB := f.MarginalB(a, b)
	if numeric.NearZero(muB) {
		return 0, false
	}
	return muA / muB, true
}

// ReservationBounds encodes the satiation policy: a saturated good A yields
// QuoteNoBuy (never acquire more, shed at any price); indifference at the
// bliss point or a worthless payment good yields QuoteNoTrade.
func (f Quadratic) ReservationBounds(a, b, spread float64) Quote {
	muA := f.MarginalA(a, b)
	muB := f.MarginalB(a, b)

	if numeric.NearZero(muA) && numeric.NearZero(muB) {
		return noTrade()
	}
	if muA <= 0 {
		return Quote{Bid: 0, Ask: 0, Side: QuoteNoBuy}
	}
	if muB <= numeric.Epsilon {
		// B has no marginal value, so A cannot be priced in it.
		return noTrade()
	}
	return spreadQuote(muA/muB, spread)
}
