package preference

import (
	"fmt"
	"math"

	"github.com/talgya/exchange-world/internal/numeric"
)

// Translog operating region. Monotonicity of the log-space shares is
// validated at construction over this box and not re-checked per call;
// evaluation outside it stays finite but may lose monotonicity.
const (
	translogRegionMin = 1.0
	translogRegionMax = 1e4
)

// Translog is the flexible second-order log-quadratic form
// ln U = α0 + αA·lnA + αB·lnB + ½βAA·ln²A + ½βBB·ln²B + βAB·lnA·lnB.
// All evaluation happens in log-space: that is what keeps U finite across
// orders of magnitude of inventory, and it lets the MRS be computed without
// ever forming U. With all β terms zero the form is exactly Cobb-Douglas.
type Translog struct {
	Alpha0 float64
	AlphaA float64
	AlphaB float64
	BetaAA float64
	BetaBB float64
	BetaAB float64
}

// NewTranslog validates the parameter domain and constructs the form.
// Monotonicity in both goods — αA + βAA·lnA + βAB·lnB > 0 and its mirror —
// must hold across the operating region; since each share is affine in the
// log inventories, checking the region corners suffices.
func NewTranslog(alpha0, alphaA, alphaB, betaAA, betaBB, betaAB float64) (Translog, error) {
	if alphaA <= 0 {
		return Translog{}, &ConfigError{Type: TypeTranslog, Field: "alpha_a", Reason: "must be positive"}
	}
	if alphaB <= 0 {
		return Translog{}, &ConfigError{Type: TypeTranslog, Field: "alpha_b", Reason: "must be positive"}
	}

	f := Translog{Alpha0: alpha0, AlphaA: alphaA, AlphaB: alphaB, BetaAA: betaAA, BetaBB: betaBB, BetaAB: betaAB}

	lo, hi := math.Log(translogRegionMin), math.Log(translogRegionMax)
	for _, la := range [2]float64{lo, hi} {
		for _, lb := range [2]float64{lo, hi} {
			if f.shareA(la, lb) <= 0 {
				return Translog{}, &ConfigError{
					Type:   TypeTranslog,
					Field:  "beta_aa",
					Reason: fmt.Sprintf("monotonicity in A fails at inventory (%g, %g)", math.Exp(la), math.Exp(lb)),
				}
			}
			if f.shareB(la, lb) <= 0 {
				return Translog{}, &ConfigError{
					Type:   TypeTranslog,
					Field:  "beta_bb",
					Reason: fmt.Sprintf("monotonicity in B fails at inventory (%g, %g)", math.Exp(la), math.Exp(lb)),
				}
			}
		}
	}

	return f, nil
}

// shareA is the log-space partial ∂lnU/∂lnA = αA + βAA·lnA + βAB·lnB.
func (f Translog) shareA(la, lb float64) float64 {
	return f.AlphaA + f.BetaAA*la + f.BetaAB*lb
}

func (f Translog) shareB(la, lb float64) float64 {
	return f.AlphaB + f.BetaBB*lb + f.BetaAB*la
}

func (f Translog) logU(la, lb float64) float64 {
	return f.Alpha0 + f.AlphaA*la + f.AlphaB*lb +
		0.5*f.BetaAA*la*la + 0.5*f.BetaBB*lb*lb + f.BetaAB*la*lb
}

func (f Translog) U(a, b float64) float64 {
	la := math.Log(numeric.Floor(a))
	lb := math.Log(numeric.Floor(b))
	return math.Exp(numeric.ClampLog(f.logU(la, lb)))
}

// MarginalA is U·(αA + βAA·lnA + βAB·lnB)/A by the chain rule from the log
// form.
func (f Translog) MarginalA(a, b float64) float64 {
	af := numeric.Floor(a)
	la := math.Log(af)
	lb := math.Log(numeric.Floor(b))
	return f.U(a, b) * f.shareA(la, lb) / af
}

func (f Translog) MarginalB(a, b float64) float64 {
	bf := numeric.Floor(b)
	la := math.Log(numeric.Floor(a))
	lb := math.Log(bf)
	return f.U(a, b) * f.shareB(la, lb) / bf
}

// MRS cancels the common U factor and is computed entirely in log-space:
// [(αA + βAA·lnA + βAB·lnB)/A] / [(αB + βBB·lnB + βAB·lnA)/B].
// Undefined when the B share is numerically zero.
func (f Translog) MRS(a, b float64) (float64, bool) {
	af, bf := numeric.Floor(a), numeric.Floor(b)
	la, lb := math.Log(af), math.Log(bf)

	den := f.shareB(la, lb) / bf
	if numeric.NearZero(den) {
		return 0, false
	}
	return (f.shareA(la, lb) / af) / den, true
}

func (f Translog) ReservationBounds(a, b, spread float64) Quote {
	mrs, ok := f.MRS(a, b)
	if !ok || mrs <= 0 {
		return noTrade()
	}
	return spreadQuote(mrs, spread)
}
