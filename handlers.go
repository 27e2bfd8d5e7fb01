package tracker

import (
	"encoding/json"
	"net/http"

	"github.com/bayarea-transit/vehicle-tracker/utils"
	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

type vehiclesResponse struct {
	Vehicles   []vehicle.Record `json:"vehicles"`
	LastUpdate *string          `json:"lastUpdate"`
	Count      int              `json:"count"`
}

// handleVehicles serves the latest stored snapshot. Reads never trigger a
// fetch; the scheduler owns that.
func (a *App) handleVehicles(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Read()
	resp := vehiclesResponse{
		Vehicles: snap.Vehicles(),
		Count:    len(snap.Records),
	}
	if !snap.LastUpdate.IsZero() {
		ts := utils.Iso8601From(snap.LastUpdate)
		resp.LastUpdate = &ts
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh forces one immediate cycle, for operators and tests.
func (a *App) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.scheduler.ForceUpdate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
