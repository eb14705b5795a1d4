// Package engine provides the tick-based loop that drives exchange rounds.
package engine

import (
	"log/slog"
	"time"
)

// Engine drives the simulation forward one round per tick.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	MaxTicks uint64        // Stop after this many ticks (0 = run until Stop)
	Interval time.Duration // Pause between ticks (0 = run flat out)
	Running  bool

	// Callbacks — populated during setup.
	OnTick   func(tick uint64) // Every tick: one exchange round.
	OnReport func(tick uint64) // Every ReportEvery ticks: persistence/logging.

	// ReportEvery controls how often OnReport fires (default 50).
	ReportEvery uint64
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{ReportEvery: 50}
}

// Run starts the loop. Blocks until MaxTicks is reached or Stop is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("engine started", "tick", e.Tick, "max_ticks", e.MaxTicks)

	for e.Running {
		e.step()

		if e.MaxTicks > 0 && e.Tick >= e.MaxTicks {
			e.Running = false
			break
		}
		if e.Interval > 0 {
			time.Sleep(e.Interval)
		}
	}

	slog.Info("engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current tick completes.
func (e *Engine) Stop() {
	e.Running = false
}

func (e *Engine) step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}

	every := e.ReportEvery
	if every == 0 {
		every = 50
	}
	if e.Tick%every == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
}
