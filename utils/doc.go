// Package utils provides internal utility functions for the vehicle tracker.
// This package is not intended to be imported by external code.
//
// It contains time formatting and conversion utilities shared by the feed
// clients and HTTP handlers.
package utils
