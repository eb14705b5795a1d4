// Exchange resolution — per-round bilateral trade between randomly paired
// agents, driven entirely by the reservation quotes their preferences
// produce. The engine decides who meets whom; the quotes decide whether and
// at what price a trade happens.
package engine

import (
	"github.com/talgya/exchange-world/internal/agents"
	"github.com/talgya/exchange-world/internal/numeric"
	"github.com/talgya/exchange-world/internal/preference"
)

// tradeUnit is the lot size for one bilateral exchange: one unit of good A.
const tradeUnit = 1.0

// resolveExchange pairs the population at random and attempts one trade per
// pair.
func (s *Simulation) resolveExchange(tick uint64) {
	order := s.rng.Perm(len(s.Agents))
	for i := 0; i+1 < len(order); i += 2 {
		x := s.Agents[order[i]]
		y := s.Agents[order[i+1]]
		s.tryTrade(tick, x, y)
	}
}

// tryTrade executes at most one unit trade of good A between the pair.
// Quotes are fetched fresh at current inventories; the crossing rule is the
// only trade trigger. Quote sides are the sentinel contract from the
// preference core: NoTrade parties initiate nothing, and a NoBuy party acts
// only as a seller, at any positive price.
func (s *Simulation) tryTrade(tick uint64, x, y *agents.Agent) {
	qx := x.Quote(s.Spread)
	qy := y.Quote(s.Spread)

	switch {
	case crossed(qx, qy):
		// x buys A from y at the midpoint of bid and ask.
		s.execute(tick, x, y, (qx.Bid+qy.Ask)/2)
	case crossed(qy, qx):
		s.execute(tick, y, x, (qy.Bid+qx.Ask)/2)
	case sheds(qy) && wantsToBuy(qx):
		// y is saturated and sheds A at any price; clear at half the
		// buyer's bid (the midpoint of bid and a zero ask).
		s.execute(tick, x, y, qx.Bid/2)
	case sheds(qx) && wantsToBuy(qy):
		s.execute(tick, y, x, qy.Bid/2)
	}
}

// crossed reports whether the buyer's bid strictly exceeds the seller's ask
// on two two-sided quotes.
func crossed(buyer, seller preference.Quote) bool {
	return buyer.Side == preference.QuoteTwoSided &&
		seller.Side == preference.QuoteTwoSided &&
		buyer.Bid > seller.Ask
}

func sheds(q preference.Quote) bool {
	return q.Side == preference.QuoteNoBuy
}

func wantsToBuy(q preference.Quote) bool {
	return q.Side == preference.QuoteTwoSided && q.Bid > 0
}

// execute transfers up to one unit of A from seller to buyer at the given
// price, limited by the seller's stock of A and the buyer's stock of B.
func (s *Simulation) execute(tick uint64, buyer, seller *agents.Agent, price float64) {
	if price <= 0 {
		return
	}

	qty := tradeUnit
	if seller.A < qty {
		qty = seller.A
	}
	if affordable := buyer.B / price; affordable < qty {
		qty = affordable
	}
	if qty < numeric.Epsilon {
		return
	}

	cost := qty * price
	seller.A -= qty
	seller.B += cost
	buyer.A += qty
	buyer.B -= cost

	s.Trades = append(s.Trades, Trade{
		Tick:   tick,
		Buyer:  buyer.ID,
		Seller: seller.ID,
		Qty:    qty,
		Price:  price,
	})
	s.Stats.TotalTrades++
	s.Stats.Volume += qty
}
