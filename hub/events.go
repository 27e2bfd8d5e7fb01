package hub

import (
	"github.com/bayarea-transit/vehicle-tracker/store"
	"github.com/bayarea-transit/vehicle-tracker/utils"
	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

// Event names on the wire.
const (
	EventBulkUpdate = "bulk_update"
	EventError      = "error"
)

// envelope wraps every outbound message.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// UpdatePayload is the bulk_update event body.
type UpdatePayload struct {
	Vehicles  []vehicle.Record `json:"vehicles"`
	Timestamp string           `json:"timestamp"`
	FetchTime float64          `json:"fetchTime"`
	Count     int              `json:"count"`
}

// ErrorPayload is the error event body.
type ErrorPayload struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// UpdateFrom shapes a snapshot into the bulk_update payload.
func UpdateFrom(snap store.Snapshot) UpdatePayload {
	return UpdatePayload{
		Vehicles:  snap.Vehicles(),
		Timestamp: utils.Iso8601From(snap.LastUpdate),
		FetchTime: snap.FetchMillis,
		Count:     len(snap.Records),
	}
}
