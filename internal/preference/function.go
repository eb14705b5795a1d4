// Package preference implements the utility functions that represent agent
// preferences over the two traded goods, and the derived quantities the
// exchange engine consumes: marginal utilities, the marginal rate of
// substitution, and reservation-price quotes.
//
// Every form is an immutable value constructed once from validated
// parameters. All methods are pure functions of the form and the inventory
// passed in, so evaluation is safe to run concurrently across agents.
package preference

// Function is the capability set shared by every preference form.
//
// Inventories are always non-negative finite quantities of goods A and B.
// No method errors: mathematical edge cases (zero inventory, subsistence
// boundary, bliss point) are absorbed by the numeric safeguards and expressed
// through the documented result types.
type Function interface {
	// U returns total utility at the given inventory.
	U(a, b float64) float64

	// MarginalA returns ∂U/∂A at the given inventory.
	MarginalA(a, b float64) float64

	// MarginalB returns ∂U/∂B at the given inventory.
	MarginalB(a, b float64) float64

	// MRS returns the marginal rate of substitution MarginalA/MarginalB:
	// how many units of B compensate for one unit of A. ok is false when
	// the rate is undefined (numerically zero MarginalB, or indifference at
	// a bliss point); callers must treat that as "no finite trade rate",
	// not as an error.
	MRS(a, b float64) (mrs float64, ok bool)

	// ReservationBounds derives the (bid, ask) quote for good A priced in
	// units of B at the current inventory. spread is the half-spread
	// fraction in [0, 1) applied around the MRS.
	ReservationBounds(a, b, spread float64) Quote
}

// QuoteSide classifies a quote. It is the explicit sentinel for the
// saturation and indifference cases; callers branch on Side and never on the
// numeric ordering of Bid and Ask.
type QuoteSide uint8

const (
	// QuoteTwoSided is a normal quote: willing to buy below Bid and sell
	// above Ask.
	QuoteTwoSided QuoteSide = iota

	// QuoteNoBuy means the agent is saturated in good A: it will not
	// acquire more at any price, and will shed the good at any price.
	// Bid and Ask are both zero.
	QuoteNoBuy

	// QuoteNoTrade means no finite trade rate exists at this inventory
	// (indifference at a bliss point, or the payment good carries no
	// marginal value). The agent initiates nothing in either direction.
	QuoteNoTrade
)

// Quote is a reservation-price pair for good A priced in good B, produced
// fresh on every call and never retained by the form.
type Quote struct {
	Bid  float64
	Ask  float64
	Side QuoteSide
}

// noTrade is the zero-valued sentinel quote.
func noTrade() Quote {
	return Quote{Side: QuoteNoTrade}
}

// spreadQuote builds the generic two-sided quote around an MRS:
// Bid = mrs·(1−spread), Ask = mrs·(1+spread).
func spreadQuote(mrs, spread float64) Quote {
	if spread < 0 {
		spread = 0
	}
	return Quote{
		Bid:  mrs * (1 - spread),
		Ask:  mrs * (1 + spread),
		Side: QuoteTwoSided,
	}
}
