package preference

// Linear is the perfect-substitutes form U = wA·A + wB·B. Marginal utilities
// are the weights themselves, so the MRS is constant at every inventory.
type Linear struct {
	WeightA float64
	WeightB float64
}

// NewLinear validates the parameter domain and constructs the form.
func NewLinear(weightA, weightB float64) (Linear, error) {
	if weightA <= 0 {
		return Linear{}, &ConfigError{Type: TypeLinear, Field: "weight_a", Reason: "must be positive"}
	}
	if weightB <= 0 {
		return Linear{}, &ConfigError{Type: TypeLinear, Field: "weight_b", Reason: "must be positive"}
	}
	return Linear{WeightA: weightA, WeightB: weightB}, nil
}

func (f Linear) U(a, b float64) float64 {
	return f.WeightA*a + f.WeightB*b
}

func (f Linear) MarginalA(a, b float64) float64 { return f.WeightA }

func (f Linear) MarginalB(a, b float64) float64 { return f.WeightB }

// MRS is wA/wB regardless of inventory; always defined since both weights
// are validated positive.
func (f Linear) MRS(a, b float64) (float64, bool) {
	return f.WeightA / f.WeightB, true
}

func (f Linear) ReservationBounds(a, b, spread float64) Quote {
	mrs, _ := f.MRS(a, b)
	return spreadQuote(mrs, spread)
}
