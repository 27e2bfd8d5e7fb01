// Package fetch runs the fan-out-fan-in fetch cycle.
//
// The Orchestrator calls every configured feed source concurrently, merges
// the results into one id-keyed map, removes aggregate-feed duplicates of
// trusted-source vehicles, and publishes the merged set as a new snapshot.
// Source failures are isolated: a cycle where every source fails still
// produces a valid (possibly empty) snapshot.
package fetch
