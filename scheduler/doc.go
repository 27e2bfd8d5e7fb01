// Package scheduler drives fetch cycles on a fixed interval while at least
// one subscriber is connected.
//
// The upstream APIs are quota limited, so polling stops entirely when
// nobody is watching: the scheduler is a two-state machine (Idle, Running)
// whose transitions are the subscriber-count edges reported by the hub
// registry.
package scheduler
