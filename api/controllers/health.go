package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/angelmondragon/aestheticmarket-backend/api/responses"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
)

const healthPingTimeout = 2 * time.Second

var errDatabaseNotConfigured = errors.New("database not configured")

// Pinger is satisfied by *db.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status        string  `json:"status"`
	Message       string  `json:"message,omitempty"`
	Timestamp     string  `json:"timestamp,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds,omitempty"`
	Database      string  `json:"database"`
}

// Health reports liveness and database connectivity.
func Health(db Pinger, startedAt time.Time, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		err := errDatabaseNotConfigured
		if db != nil {
			err = db.Ping(ctx)
		}
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "health.db_unreachable", err)
			}
			responses.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:   "error",
				Message:  "Service Unavailable",
				Database: "disconnected",
			})
			return
		}

		now := time.Now()
		responses.WriteJSON(w, http.StatusOK, healthResponse{
			Status:        "ok",
			Timestamp:     now.UTC().Format(time.RFC3339),
			UptimeSeconds: now.Sub(startedAt).Seconds(),
			Database:      "connected",
		})
	}
}
