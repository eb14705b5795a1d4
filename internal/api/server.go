// Package api provides the HTTP API for observing a running exchange
// simulation. All endpoints are GET and read-only.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/exchange-world/internal/agents"
	"github.com/talgya/exchange-world/internal/engine"
	"github.com/talgya/exchange-world/internal/preference"
)

// Server serves simulation state over HTTP.
type Server struct {
	Sim  *engine.Simulation
	Eng  *engine.Engine
	Port int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// The ledger endpoints can return thousands of rows, so they get a
	// per-IP budget.
	ledgerLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/agent/", s.handleAgentDetail)
	mux.HandleFunc("/api/v1/trades", RateLimitMiddleware(ledgerLimiter, s.handleTrades))
	mux.HandleFunc("/api/v1/welfare", RateLimitMiddleware(ledgerLimiter, s.handleWelfare))
	mux.HandleFunc("/api/v1/stats", s.handleStats)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"name":         s.Sim.Name,
		"tick":         s.Sim.CurrentTick(),
		"running":      s.Eng.Running,
		"agents":       len(s.Sim.Agents),
		"spread":       s.Sim.Spread,
		"total_trades": s.Sim.Stats.TotalTrades,
		"volume":       s.Sim.Stats.Volume,
		"welfare":      s.Sim.Stats.LastWelfare,
	}
	writeJSON(w, status)
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	cohort := r.URL.Query().Get("cohort")

	type agentSummary struct {
		ID      agents.AgentID `json:"id"`
		Cohort  string         `json:"cohort"`
		A       float64        `json:"a"`
		B       float64        `json:"b"`
		Utility float64        `json:"utility"`
	}

	var result []agentSummary
	for _, a := range s.Sim.Agents {
		if cohort != "" && a.Cohort != cohort {
			continue
		}
		result = append(result, agentSummary{
			ID:      a.ID,
			Cohort:  a.Cohort,
			A:       a.A,
			B:       a.B,
			Utility: a.Utility(),
		})
	}
	writeJSON(w, result)
}

// handleAgentDetail serves GET /api/v1/agent/:id with the agent's current
// inventory, utility, and reservation quote.
func (s *Server) handleAgentDetail(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/agent/")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid agent id", http.StatusBadRequest)
		return
	}

	a, ok := s.Sim.AgentIndex[agents.AgentID(id)]
	if !ok {
		http.Error(w, "agent not found", http.StatusNotFound)
		return
	}

	q := a.Quote(s.Sim.Spread)
	sideNames := map[preference.QuoteSide]string{
		preference.QuoteTwoSided: "two_sided",
		preference.QuoteNoBuy:    "no_buy",
		preference.QuoteNoTrade:  "no_trade",
	}

	detail := map[string]any{
		"id":      a.ID,
		"cohort":  a.Cohort,
		"a":       a.A,
		"b":       a.B,
		"utility": a.Utility(),
		"quote": map[string]any{
			"bid":  q.Bid,
			"ask":  q.Ask,
			"side": sideNames[q.Side],
		},
	}
	writeJSON(w, detail)
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 10000 {
			limit = n
		}
	}

	trades := s.Sim.Trades
	if len(trades) > limit {
		trades = trades[len(trades)-limit:]
	}
	writeJSON(w, trades)
}

func (s *Server) handleWelfare(w http.ResponseWriter, r *http.Request) {
	limit := 500
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100000 {
			limit = n
		}
	}

	points := s.Sim.Welfare
	if len(points) > limit {
		points = points[len(points)-limit:]
	}
	writeJSON(w, points)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Stats)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
