package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fortuna/cedar/internal/league"
	"github.com/gorilla/mux"
)

const (
	serviceName    = "Lebanese Basketball League API"
	serviceVersion = "1.0"
)

// Refresher triggers one synchronous scrape cycle. Implemented by the
// scheduler orchestrator.
type Refresher interface {
	RunCycle(ctx context.Context) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	cache     *league.Cache
	refresher Refresher
}

// NewHandler creates a new handler
func NewHandler(cache *league.Cache, refresher Refresher) *Handler {
	return &Handler{
		cache:     cache,
		refresher: refresher,
	}
}

// Index lists the service metadata and available endpoints
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":    serviceName,
		"version": serviceVersion,
		"endpoints": map[string]string{
			"/api/data":          "Get all data",
			"/api/standings":     "Get standings",
			"/api/results":       "Get results",
			"/api/upcoming":      "Get upcoming games",
			"/api/stats":         "Get stats leaders",
			"/api/game/{gameId}": "Get a single game",
			"/api/refresh":       "Force refresh (POST)",
		},
	})
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"service":      "cedar",
		"version":      serviceVersion,
		"last_updated": h.cache.Snapshot().LastUpdated,
	})
}

// GetData returns the full cached snapshot
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cache.Snapshot())
}

// GetStandings returns the current standings
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	snap := h.cache.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"standings":    snap.Standings,
		"last_updated": snap.LastUpdated,
	})
}

// GetResults returns recent game results
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	snap := h.cache.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results":      snap.Results,
		"last_updated": snap.LastUpdated,
	})
}

// GetUpcoming returns upcoming games
func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	snap := h.cache.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"upcoming":     snap.Upcoming,
		"last_updated": snap.LastUpdated,
	})
}

// GetStats returns the stat-leader lists
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	snap := h.cache.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stats_leaders": snap.StatsLeaders,
		"last_updated":  snap.LastUpdated,
	})
}

// GetGame looks up a single game: first by the box-score game id in the
// results, then by the "{home}-{away}" composite key in upcoming games.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["gameId"]

	snap := h.cache.Snapshot()
	for _, result := range snap.Results {
		if result.GameID != "" && result.GameID == gameID {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"game":   result,
				"source": "results",
			})
			return
		}
	}
	for _, game := range snap.Upcoming {
		if league.UpcomingKey(game.HomeTeam, game.AwayTeam) == gameID {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"game":   game,
				"source": "upcoming",
			})
			return
		}
	}

	respondError(w, http.StatusNotFound, "Game not found", nil)
}

// Refresh synchronously runs one scrape cycle. A failed cycle keeps the
// previous snapshot; the response still carries HTTP 200 with success=false.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.refresher.RunCycle(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      err == nil,
		"last_updated": h.cache.Snapshot().LastUpdated,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
