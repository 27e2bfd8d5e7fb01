// Package gtfsrt fetches the regional multi-agency GTFS-Realtime
// vehicle-positions feed and normalizes its protobuf entities into vehicle
// records.
//
// Each configured agency code is queried as its own sub-feed; a failing
// sub-feed is logged and skipped without aborting the others. The
// aggregate "all agencies" mode is handled specially: its route values may
// carry an embedded sub-agency prefix that is split off during parsing.
package gtfsrt
