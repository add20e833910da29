package http

import (
	"net/http"
	"time"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/store"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/httpx"
)

type healthResponse struct {
	Status    string `json:"status"`
	DB        string `json:"db,omitempty"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler is the liveness probe; it answers ok whenever the process
// is serving.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// HealthDBHandler additionally checks database connectivity, answering 503
// when the store is unreachable.
func HealthDBHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC().Format(time.RFC3339)

		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:    "error",
				DB:        "down",
				Timestamp: now,
			})
			return
		}

		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			DB:        "up",
			Timestamp: now,
		})
	}
}
