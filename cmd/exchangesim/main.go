// Command exchangesim runs a bilateral exchange simulation from a scenario
// file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/exchange-world/internal/api"
	"github.com/talgya/exchange-world/internal/engine"
	"github.com/talgya/exchange-world/internal/persistence"
	"github.com/talgya/exchange-world/internal/scenario"
)

func main() {
	scenarioPath := flag.String("scenario", "scenarios/baseline.yaml", "scenario file to run")
	dbPath := flag.String("db", "data/exchange.db", "SQLite database path (empty = no persistence)")
	apiPort := flag.Int("port", 8080, "HTTP API port (0 = API disabled)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// ── Scenario ──────────────────────────────────────────────────────
	scn, err := scenario.Load(*scenarioPath)
	if err != nil {
		slog.Error("failed to load scenario", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}
	slog.Info("scenario loaded",
		"name", scn.Name, "seed", scn.Seed,
		"ticks", scn.Ticks, "spread", scn.Spread,
		"cohorts", len(scn.Cohorts),
	)

	pop, err := scn.Build()
	if err != nil {
		slog.Error("failed to build population", "error", err)
		os.Exit(1)
	}
	slog.Info("population built", "agents", len(pop))

	// ── Persistence ───────────────────────────────────────────────────
	var rec persistence.Recorder = persistence.Noop{}
	if *dbPath != "" {
		os.MkdirAll(filepath.Dir(*dbPath), 0755)
		db, err := persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open database", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		rec = db
		slog.Info("database opened", "path", *dbPath)
	}

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.NewSimulation(scn.Name, scn.Seed, scn.Spread, pop)
	if err := rec.StartRun(sim); err != nil {
		slog.Error("failed to register run", "error", err)
		os.Exit(1)
	}

	eng := engine.NewEngine()
	eng.MaxTicks = scn.Ticks

	eng.OnTick = sim.TickRound
	eng.OnReport = func(tick uint64) {
		slog.Info("round report",
			"tick", tick,
			"trades", sim.Stats.TotalTrades,
			"volume", fmt.Sprintf("%.2f", sim.Stats.Volume),
			"welfare", fmt.Sprintf("%.2f", sim.Stats.LastWelfare),
		)
		if err := rec.Checkpoint(sim); err != nil {
			slog.Error("checkpoint failed", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if *apiPort > 0 {
		apiServer := &api.Server{Sim: sim, Eng: eng, Port: *apiPort}
		apiServer.Start()
	}

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	eng.Run()

	if err := rec.FinishRun(sim); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Printf("Run %q finished: %d ticks, %d trades, %.2f units of A exchanged.\n",
		sim.Name, sim.CurrentTick(), sim.Stats.TotalTrades, sim.Stats.Volume)
}
