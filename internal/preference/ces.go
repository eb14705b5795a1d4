package preference

import (
	"math"

	"github.com/talgya/exchange-world/internal/numeric"
)

// CES is the constant-elasticity-of-substitution form
// U = (wA·A^ρ + wB·B^ρ)^(1/ρ).
// ρ < 1 keeps the indifference curves convex; ρ → 1 approaches Linear and
// ρ → 0 approaches Cobb-Douglas (configure Translog with zero β terms for the
// exact limit).
type CES struct {
	WeightA float64
	WeightB float64
	Rho     float64
}

// NewCES validates the parameter domain and constructs the form.
func NewCES(weightA, weightB, rho float64) (CES, error) {
	if weightA <= 0 {
		return CES{}, &ConfigError{Type: TypeCES, Field: "weight_a", Reason: "must be positive"}
	}
	if weightB <= 0 {
		return CES{}, &ConfigError{Type: TypeCES, Field: "weight_b", Reason: "must be positive"}
	}
	if rho == 0 {
		return CES{}, &ConfigError{Type: TypeCES, Field: "rho", Reason: "must be non-zero (use translog with zero betas for the Cobb-Douglas limit)"}
	}
	if rho >= 1 {
		return CES{}, &ConfigError{Type: TypeCES, Field: "rho", Reason: "must be below 1 for convex preferences"}
	}
	return CES{WeightA: weightA, WeightB: weightB, Rho: rho}, nil
}

// U evaluates through log-space so small |ρ| cannot overflow the outer
// exponent.
func (f CES) U(a, b float64) float64 {
	s := f.inner(a, b)
	return math.Exp(numeric.ClampLog(math.Log(s) / f.Rho))
}

func (f CES) inner(a, b float64) float64 {
	af, bf := numeric.Floor(a), numeric.Floor(b)
	return f.WeightA*math.Pow(af, f.Rho) + f.WeightB*math.Pow(bf, f.Rho)
}

// MarginalA is U^(1−ρ)·wA·A^(ρ−1), the closed-form derivative.
func (f CES) MarginalA(a, b float64) float64 {
	u := f.U(a, b)
	return math.Pow(u, 1-f.Rho) * f.WeightA * math.Pow(numeric.Floor(a), f.Rho-1)
}

// MarginalB is U^(1−ρ)·wB·B^(ρ−1).
func (f CES) MarginalB(a, b float64) float64 {
	u := f.U(a, b)
	return math.Pow(u, 1-f.Rho) * f.WeightB * math.Pow(numeric.Floor(b), f.Rho-1)
}

// MRS reduces to (wA/wB)·(A/B)^(ρ−1); the common U factor cancels, so the
// rate is always finite and positive for floored inventories.
func (f CES) MRS(a, b float64) (float64, bool) {
	af, bf := numeric.Floor(a), numeric.Floor(b)
	return (f.WeightA / f.WeightB) * math.Pow(af/bf, f.Rho-1), true
}

// ReservationBounds quotes symmetrically around the MRS.
func (f CES) ReservationBounds(a, b, spread float64) Quote {
	mrs, ok := f.MRS(a, b)
	if !ok {
		return noTrade()
	}
	return spreadQuote(mrs, spread)
}
