// Package hub tracks live WebSocket subscribers and fans broadcast events
// out to them.
//
// The Registry counts subscribers and drives the scheduler's start/stop
// transitions on first-connect and last-disconnect; the Hub is the
// broadcast transport. Delivery is fire-and-forget per subscriber: a slow
// or dead connection is dropped, never waited on.
package hub
