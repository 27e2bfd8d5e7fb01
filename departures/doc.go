// Package departures fetches the station-departure feed and synthesizes
// pseudo-vehicle positions from it.
//
// The upstream exposes estimated departures per station, not live vehicle
// coordinates, so the client fabricates a bounded fleet: at most two
// vehicles per station and destination, each placed at a deterministic
// jitter of the station's fixed coordinate. Repeated fetches of the same
// estimate therefore produce stable positions.
package departures
