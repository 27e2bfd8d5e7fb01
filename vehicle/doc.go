// Package vehicle defines the canonical vehicle record shared by every
// upstream source and the normalization rules that map source-specific
// fields onto it.
//
// It contains:
//   - The Record type broadcast to clients and served over REST
//   - Kind resolution from (sub-agency, route) pairs
//   - Agency display-name lookup
//   - Route, speed and timestamp normalization helpers
package vehicle
