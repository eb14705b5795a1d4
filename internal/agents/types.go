// Package agents provides the exchange-agent data model: an inventory of the
// two goods plus the immutable preference the agent was instantiated with.
package agents

import (
	"github.com/talgya/exchange-world/internal/preference"
)

// AgentID is a unique identifier for an agent within a run.
type AgentID uint64

// Agent is one participant in the exchange economy.
//
// The inventory fields are owned and mutated only by the simulation engine;
// Pref is constructed once from scenario configuration and never changes for
// the agent's lifetime. Agents never share preference instances, even when
// two cohorts carry structurally equal parameters.
type Agent struct {
	ID     AgentID `json:"id"`
	Cohort string  `json:"cohort"`

	// Inventory of goods A and B.
	A float64 `json:"a"`
	B float64 `json:"b"`

	Pref preference.Function `json:"-"`
}

// Utility evaluates the agent's preference at its current inventory.
func (a *Agent) Utility() float64 {
	return a.Pref.U(a.A, a.B)
}

// Quote derives the agent's reservation bounds for good A priced in B at its
// current inventory.
func (a *Agent) Quote(spread float64) preference.Quote {
	return a.Pref.ReservationBounds(a.A, a.B, spread)
}
