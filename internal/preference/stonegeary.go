package preference

import (
	"math"

	"github.com/talgya/exchange-world/internal/numeric"
)

// StoneGeary is the subsistence-constrained form
// U = αA·ln(A−γA) + αB·ln(B−γB).
// γA and γB are subsistence minima: marginal utility of a good grows without
// bound as inventory falls toward its minimum, capped only by the epsilon
// shift. With both γ at zero the form is exactly Cobb-Douglas.
type StoneGeary struct {
	AlphaA float64
	AlphaB float64
	GammaA float64
	GammaB float64
}

// NewStoneGeary validates the parameter domain and constructs the form.
func NewStoneGeary(alphaA, alphaB, gammaA, gammaB float64) (StoneGeary, error) {
	if alphaA <= 0 {
		return StoneGeary{}, &ConfigError{Type: TypeStoneGeary, Field: "alpha_a", Reason: "must be positive"}
	}
	if alphaB <= 0 {
		return StoneGeary{}, &ConfigError{Type: TypeStoneGeary, Field: "alpha_b", Reason: "must be positive"}
	}
	if gammaA < 0 {
		return StoneGeary{}, &ConfigError{Type: TypeStoneGeary, Field: "gamma_a", Reason: "must be non-negative"}
	}
	if gammaB < 0 {
		return StoneGeary{}, &ConfigError{Type: TypeStoneGeary, Field: "gamma_b", Reason: "must be non-negative"}
	}
	return StoneGeary{AlphaA: alphaA, AlphaB: alphaB, GammaA: gammaA, GammaB: gammaB}, nil
}

// U epsilon-shifts both surpluses before the logs, so inventory at or below
// subsistence yields a large negative but finite utility instead of a domain
// error.
func (f StoneGeary) U(a, b float64) float64 {
	return f.AlphaA*math.Log(numeric.FloorAbove(a, f.GammaA)) +
		f.AlphaB*math.Log(numeric.FloorAbove(b, f.GammaB))
}

// MarginalA is αA/(A−γA), epsilon-capped: approaching subsistence from above
// it grows to a large finite value rather than true infinity.
func (f StoneGeary) MarginalA(a, b float64) float64 {
	return f.AlphaA / numeric.FloorAbove(a, f.GammaA)
}

func (f StoneGeary) MarginalB(a, b float64) float64 {
	return f.AlphaB / numeric.FloorAbove(b, f.GammaB)
}

// MRS explodes as A falls toward γA (capped by the epsilon shift): a rational
// agent near subsistence will not give up a unit of A for any finite amount
// of B. Both marginals are strictly positive, so the rate is always defined.
func (f StoneGeary) MRS(a, b float64) (float64, bool) {
	return f.MarginalA(a, b) / f.MarginalB(a, b), true
}

// ReservationBounds quotes around the MRS; near subsistence the bounds take
// on the epsilon-capped extreme, which is how desperation reaches the
// trading engine.
func (f StoneGeary) ReservationBounds(a, b, spread float64) Quote {
	mrs, _ := f.MRS(a, b)
	return spreadQuote(mrs, spread)
}

// AboveSubsistence reports whether the inventory lies strictly above both
// subsistence minima. No epsilon shift: this is the strict predicate the
// scenario loader uses to reject initial endowments at or below subsistence.
func (f StoneGeary) AboveSubsistence(a, b float64) bool {
	return a > f.GammaA && b > f.GammaB
}
