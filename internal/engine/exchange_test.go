package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/exchange-world/internal/agents"
	"github.com/talgya/exchange-world/internal/preference"
)

func cobbDouglas(t *testing.T) preference.Function {
	t.Helper()
	fn, err := preference.New(preference.Config{
		Type:   "stone_geary",
		Params: map[string]float64{"alpha_a": 0.6, "alpha_b": 0.4},
	})
	require.NoError(t, err)
	return fn
}

func blissAt10(t *testing.T) preference.Function {
	t.Helper()
	fn, err := preference.New(preference.Config{
		Type:   "quadratic",
		Params: map[string]float64{"bliss_a": 10, "bliss_b": 10, "sigma_a": 5, "sigma_b": 5},
	})
	require.NoError(t, err)
	return fn
}

func pairSim(t *testing.T, x, y *agents.Agent) *Simulation {
	t.Helper()
	return NewSimulation("pair", 1, 0.05, []*agents.Agent{x, y})
}

func TestExchange_OppositeEndowmentsTrade(t *testing.T) {
	x := &agents.Agent{ID: 1, A: 2, B: 20, Pref: cobbDouglas(t)}
	y := &agents.Agent{ID: 2, A: 20, B: 2, Pref: cobbDouglas(t)}
	sim := pairSim(t, x, y)

	ux, uy := x.Utility(), y.Utility()
	totalA, totalB := x.A+y.A, x.B+y.B

	sim.TickRound(1)

	require.Len(t, sim.Trades, 1)
	tr := sim.Trades[0]
	assert.Equal(t, agents.AgentID(1), tr.Buyer, "the A-scarce agent buys A")
	assert.Equal(t, agents.AgentID(2), tr.Seller)
	assert.Equal(t, 1.0, tr.Qty)

	// A unit trade inside the crossed quotes improves both sides.
	assert.Greater(t, x.Utility(), ux)
	assert.Greater(t, y.Utility(), uy)

	// Goods are conserved: the engine only moves inventory, never mints it.
	assert.InDelta(t, totalA, x.A+y.A, 1e-12)
	assert.InDelta(t, totalB, x.B+y.B, 1e-12)
}

func TestExchange_IdenticalAgentsDoNotTrade(t *testing.T) {
	x := &agents.Agent{ID: 1, A: 10, B: 10, Pref: cobbDouglas(t)}
	y := &agents.Agent{ID: 2, A: 10, B: 10, Pref: cobbDouglas(t)}
	sim := pairSim(t, x, y)

	sim.TickRound(1)

	assert.Empty(t, sim.Trades, "identical quotes never cross through the spread")
	assert.Equal(t, 10.0, x.A)
}

func TestExchange_SaturatedAgentShedsGood(t *testing.T) {
	buyer := &agents.Agent{ID: 1, A: 2, B: 20, Pref: cobbDouglas(t)}
	glutted := &agents.Agent{ID: 2, A: 15, B: 5, Pref: blissAt10(t)}
	sim := pairSim(t, buyer, glutted)

	sim.TickRound(1)

	require.Len(t, sim.Trades, 1)
	tr := sim.Trades[0]
	assert.Equal(t, agents.AgentID(1), tr.Buyer)
	assert.Equal(t, agents.AgentID(2), tr.Seller)
	assert.Less(t, glutted.A, 15.0, "past the bliss point the agent gives the good up")
	assert.Greater(t, tr.Price, 0.0)
}

func TestExchange_BlissPointPairIsInert(t *testing.T) {
	x := &agents.Agent{ID: 1, A: 10, B: 10, Pref: blissAt10(t)}
	y := &agents.Agent{ID: 2, A: 10, B: 10, Pref: blissAt10(t)}
	sim := pairSim(t, x, y)

	sim.TickRound(1)

	assert.Empty(t, sim.Trades)
}

func TestExchange_WelfareRecordedEachRound(t *testing.T) {
	x := &agents.Agent{ID: 1, A: 2, B: 20, Pref: cobbDouglas(t)}
	y := &agents.Agent{ID: 2, A: 20, B: 2, Pref: cobbDouglas(t)}
	sim := pairSim(t, x, y)

	for tick := uint64(1); tick <= 5; tick++ {
		sim.TickRound(tick)
	}

	require.Len(t, sim.Welfare, 5)
	assert.GreaterOrEqual(t, sim.Welfare[4].Total, sim.Welfare[0].Total,
		"voluntary unit trades move total utility up, not down")
	assert.Equal(t, uint64(5), sim.Stats.Rounds)
}

func TestExchange_DeterministicBySeed(t *testing.T) {
	build := func() *Simulation {
		var pop []*agents.Agent
		for i := 0; i < 20; i++ {
			a, b := 2.0, 20.0
			if i%2 == 1 {
				a, b = 20.0, 2.0
			}
			pop = append(pop, &agents.Agent{ID: agents.AgentID(i + 1), A: a, B: b, Pref: cobbDouglas(t)})
		}
		return NewSimulation("det", 99, 0.05, pop)
	}

	first, second := build(), build()
	for tick := uint64(1); tick <= 10; tick++ {
		first.TickRound(tick)
		second.TickRound(tick)
	}

	assert.Equal(t, first.Trades, second.Trades, "same seed, same ledger")
	assert.Equal(t, first.Welfare, second.Welfare)
}

func TestEngine_RunsToMaxTicks(t *testing.T) {
	eng := NewEngine()
	eng.MaxTicks = 6
	eng.ReportEvery = 2

	ticks, reports := 0, 0
	eng.OnTick = func(uint64) { ticks++ }
	eng.OnReport = func(uint64) { reports++ }

	eng.Run()

	assert.Equal(t, 6, ticks)
	assert.Equal(t, 3, reports)
	assert.False(t, eng.Running)
}
