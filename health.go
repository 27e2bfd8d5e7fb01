package tracker

import (
	"net/http"
	"time"

	"github.com/bayarea-transit/vehicle-tracker/utils"
)

// Freshness classification for the last snapshot. A consumer can infer a
// degraded upstream when lastUpdate age exceeds twice the fetch interval.
const (
	freshnessFresh      = "fresh"
	freshnessAcceptable = "acceptable"
	freshnessStale      = "stale"
)

const acceptableAge = 5 * time.Minute

type healthResponse struct {
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	VehicleCount  int     `json:"vehicleCount"`
	LastUpdate    *string `json:"lastUpdate"`
	DataFreshness string  `json:"dataFreshness"`
	Broadcasting  bool    `json:"broadcasting"`
	Subscribers   int     `json:"subscribers"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Read()
	interval := a.scheduler.Interval()

	freshness := freshnessStale
	var lastUpdate *string
	if !snap.LastUpdate.IsZero() {
		ts := utils.Iso8601From(snap.LastUpdate)
		lastUpdate = &ts
		age := time.Since(snap.LastUpdate)
		switch {
		case age < 2*interval:
			freshness = freshnessFresh
		case age < acceptableAge:
			freshness = freshnessAcceptable
		}
	}

	status := "healthy"
	code := http.StatusOK
	switch {
	// A stale snapshot while broadcasting means cycles are failing; an idle
	// scheduler with no data is just a quiet service.
	case a.scheduler.Running() && freshness == freshnessStale:
		status = "degraded"
		code = http.StatusServiceUnavailable
	case len(snap.Records) == 0:
		status = "warning"
	}

	writeJSON(w, code, healthResponse{
		Status:        status,
		Timestamp:     utils.Iso8601Now(),
		VehicleCount:  len(snap.Records),
		LastUpdate:    lastUpdate,
		DataFreshness: freshness,
		Broadcasting:  a.scheduler.Running(),
		Subscribers:   a.hub.SubscriberCount(),
		UptimeSeconds: time.Since(a.startedAt).Seconds(),
	})
}
