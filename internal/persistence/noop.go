package persistence

import "github.com/talgya/exchange-world/internal/engine"

// Noop is a Recorder that discards everything. Used when no database path is
// configured.
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) StartRun(*engine.Simulation) error   { return nil }
func (Noop) Checkpoint(*engine.Simulation) error { return nil }
func (Noop) FinishRun(*engine.Simulation) error  { return nil }
func (Noop) Close() error                        { return nil }
