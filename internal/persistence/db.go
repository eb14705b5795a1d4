// Package persistence provides SQLite-based run storage: one row per run,
// an agent snapshot, and append-only trade and welfare ledgers.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/exchange-world/internal/engine"
)

// Recorder receives run output. The SQLite DB implements it; Noop discards.
type Recorder interface {
	StartRun(sim *engine.Simulation) error
	Checkpoint(sim *engine.Simulation) error
	FinishRun(sim *engine.Simulation) error
	Close() error
}

// DB wraps a SQLite connection for run persistence.
type DB struct {
	conn  *sqlx.DB
	runID string

	// High-water marks into the simulation ledgers, so checkpoints only
	// write rows that appeared since the last save.
	tradesSaved  int
	welfareSaved int
}

var _ Recorder = (*DB)(nil)

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seed INTEGER NOT NULL,
		spread REAL NOT NULL,
		agents INTEGER NOT NULL,
		last_tick INTEGER NOT NULL,
		total_trades INTEGER NOT NULL,
		volume REAL NOT NULL,
		last_welfare REAL NOT NULL,
		finished INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS agents (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		cohort TEXT NOT NULL,
		a REAL NOT NULL,
		b REAL NOT NULL,
		utility REAL NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		buyer INTEGER NOT NULL,
		seller INTEGER NOT NULL,
		qty REAL NOT NULL,
		price REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS welfare (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		total REAL NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE INDEX IF NOT EXISTS idx_trades_run_tick ON trades(run_id, tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// StartRun registers the run and assigns it a fresh ID.
func (db *DB) StartRun(sim *engine.Simulation) error {
	db.runID = uuid.NewString()
	db.tradesSaved = 0
	db.welfareSaved = 0

	_, err := db.conn.Exec(`INSERT INTO runs
		(id, name, seed, spread, agents, last_tick, total_trades, volume, last_welfare, finished)
		VALUES (?, ?, ?, ?, ?, 0, 0, 0, 0, 0)`,
		db.runID, sim.Name, sim.Seed, sim.Spread, len(sim.Agents),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	slog.Info("run registered", "run_id", db.runID, "name", sim.Name, "agents", len(sim.Agents))
	return nil
}

// Checkpoint writes everything the simulation produced since the last save:
// new trades, new welfare points, the refreshed agent snapshot, and updated
// run aggregates.
func (db *DB) Checkpoint(sim *engine.Simulation) error {
	if err := db.saveTrades(sim); err != nil {
		return fmt.Errorf("save trades: %w", err)
	}
	if err := db.saveWelfare(sim); err != nil {
		return fmt.Errorf("save welfare: %w", err)
	}
	if err := db.saveAgents(sim); err != nil {
		return fmt.Errorf("save agents: %w", err)
	}
	if err := db.updateRun(sim, false); err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// FinishRun checkpoints one last time and marks the run complete.
func (db *DB) FinishRun(sim *engine.Simulation) error {
	if err := db.Checkpoint(sim); err != nil {
		return err
	}
	if err := db.updateRun(sim, true); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	slog.Info("run saved", "run_id", db.runID,
		"ticks", sim.CurrentTick(), "trades", sim.Stats.TotalTrades)
	return nil
}

func (db *DB) saveTrades(sim *engine.Simulation) error {
	fresh := sim.TradesSince(db.tradesSaved)
	if len(fresh) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO trades
		(run_id, tick, buyer, seller, qty, price)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, tr := range fresh {
		if _, err := stmt.Exec(db.runID, tr.Tick, tr.Buyer, tr.Seller, tr.Qty, tr.Price); err != nil {
			return fmt.Errorf("insert trade at tick %d: %w", tr.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	db.tradesSaved += len(fresh)
	return nil
}

func (db *DB) saveWelfare(sim *engine.Simulation) error {
	fresh := sim.WelfareSince(db.welfareSaved)
	if len(fresh) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, w := range fresh {
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO welfare (run_id, tick, total) VALUES (?, ?, ?)",
			db.runID, w.Tick, w.Total,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	db.welfareSaved += len(fresh)
	return nil
}

// saveAgents writes the current agent snapshot (full replace for this run).
func (db *DB) saveAgents(sim *engine.Simulation) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM agents WHERE run_id = ?", db.runID); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO agents
		(run_id, id, cohort, a, b, utility)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range sim.Agents {
		if _, err := stmt.Exec(db.runID, a.ID, a.Cohort, a.A, a.B, a.Utility()); err != nil {
			return fmt.Errorf("insert agent %d: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

func (db *DB) updateRun(sim *engine.Simulation, finished bool) error {
	done := 0
	if finished {
		done = 1
	}
	_, err := db.conn.Exec(`UPDATE runs SET
		last_tick = ?, total_trades = ?, volume = ?, last_welfare = ?, finished = ?
		WHERE id = ?`,
		sim.CurrentTick(), sim.Stats.TotalTrades, sim.Stats.Volume,
		sim.Stats.LastWelfare, done, db.runID,
	)
	return err
}

// TradeCount returns the number of trades stored for the current run.
func (db *DB) TradeCount() (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM trades WHERE run_id = ?", db.runID)
	return n, err
}
