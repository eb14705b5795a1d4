// Simulation ties the agent population to the exchange mechanism and tracks
// what happened each round.
package engine

import (
	"math/rand"

	"github.com/talgya/exchange-world/internal/agents"
)

// Simulation holds the complete run state.
type Simulation struct {
	Name   string
	Seed   int64
	Spread float64 // Half-spread handed to every reservation-bounds call.

	Agents     []*agents.Agent
	AgentIndex map[agents.AgentID]*agents.Agent

	Trades  []Trade        // Ledger of executed trades, in order.
	Welfare []WelfarePoint // Total utility after each round.

	LastTick uint64
	Stats    SimStats

	rng *rand.Rand
}

// Trade is one executed bilateral exchange: the buyer acquired Qty of good A
// from the seller at Price units of B per unit of A.
type Trade struct {
	Tick   uint64         `json:"tick"`
	Buyer  agents.AgentID `json:"buyer"`
	Seller agents.AgentID `json:"seller"`
	Qty    float64        `json:"qty"`
	Price  float64        `json:"price"`
}

// WelfarePoint records total utility across the population after a round.
type WelfarePoint struct {
	Tick  uint64  `json:"tick"`
	Total float64 `json:"total"`
}

// SimStats tracks aggregate run statistics.
type SimStats struct {
	Rounds      uint64  `json:"rounds"`
	TotalTrades int     `json:"total_trades"`
	Volume      float64 `json:"volume"`       // Units of A exchanged.
	LastWelfare float64 `json:"last_welfare"` // Most recent welfare total.
}

// NewSimulation creates a Simulation over a built agent population. The
// random stream is derived from the scenario seed, so runs are reproducible.
func NewSimulation(name string, seed int64, spread float64, pop []*agents.Agent) *Simulation {
	index := make(map[agents.AgentID]*agents.Agent, len(pop))
	for _, a := range pop {
		index[a.ID] = a
	}
	return &Simulation{
		Name:       name,
		Seed:       seed,
		Spread:     spread,
		Agents:     pop,
		AgentIndex: index,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// TickRound runs one exchange round and records welfare.
func (s *Simulation) TickRound(tick uint64) {
	s.LastTick = tick
	s.Stats.Rounds++

	s.resolveExchange(tick)

	total := 0.0
	for _, a := range s.Agents {
		total += a.Utility()
	}
	s.Welfare = append(s.Welfare, WelfarePoint{Tick: tick, Total: total})
	s.Stats.LastWelfare = total
}

// TradesSince returns the tail of the trade ledger starting at index from.
func (s *Simulation) TradesSince(from int) []Trade {
	if from >= len(s.Trades) {
		return nil
	}
	return s.Trades[from:]
}

// WelfareSince returns the tail of the welfare history starting at index from.
func (s *Simulation) WelfareSince(from int) []WelfarePoint {
	if from >= len(s.Welfare) {
		return nil
	}
	return s.Welfare[from:]
}
