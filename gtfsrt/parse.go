package gtfsrt

import (
	"log"
	"strings"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

// parseEntities converts feed entities for one queried agency into vehicle
// records. An entity is used only if it carries both an identity and a
// position; anything else is skipped silently since the aggregator mixes
// trip updates into some agency feeds.
func (c *Client) parseEntities(feed *gtfs.FeedMessage, agency string) []vehicle.Record {
	fetchedAt := c.now()
	prefix := strings.ToLower(agency)
	records := make([]vehicle.Record, 0, len(feed.Entity))
	for _, ent := range feed.Entity {
		vp := ent.GetVehicle()
		if vp == nil || vp.GetVehicle() == nil || vp.GetPosition() == nil {
			continue
		}
		nativeID := vp.GetVehicle().GetId()
		if nativeID == "" {
			continue
		}
		pos := vp.GetPosition()
		lat := float64(pos.GetLatitude())
		lng := float64(pos.GetLongitude())
		if !vehicle.ValidPosition(lat, lng) {
			log.Printf("gtfsrt: dropping %s vehicle %s with invalid position (%f, %f)", agency, nativeID, lat, lng)
			continue
		}

		subAgency, routeID := c.resolveRoute(vp, agency, nativeID)

		rec := vehicle.Record{
			ID:         prefix + "-" + nativeID,
			Kind:       vehicle.KindFor(subAgency, routeID),
			Route:      vehicle.FormatRoute(routeID),
			Lat:        lat,
			Lng:        lng,
			Heading:    vehicle.Heading(float64(pos.GetBearing())),
			Agency:     vehicle.AgencyName(subAgency),
			ObservedAt: vehicle.ObservedAt(int64(vp.GetTimestamp()), fetchedAt),
		}
		if pos.Speed != nil {
			speed := float64(*pos.Speed)
			rec.Speed = vehicle.SpeedMPH(&speed)
		} else {
			rec.Speed = vehicle.SpeedMPH(nil)
		}
		records = append(records, rec)
	}
	return records
}

// resolveRoute extracts the sub-agency code and bare route identifier for
// an entity. The route falls back from trip data to the vehicle label to
// the native vehicle ID, because the aggregator does not reliably populate
// trip linkage for every member agency. In the aggregate "all agencies"
// mode the route value itself may be "AGENCY:ROUTE"; the first separator
// recovers the true sub-agency.
func (c *Client) resolveRoute(vp *gtfs.VehiclePosition, agency, nativeID string) (subAgency, routeID string) {
	routeID = vp.GetTrip().GetRouteId()
	if routeID == "" {
		routeID = vp.GetVehicle().GetLabel()
	}
	if routeID == "" {
		routeID = nativeID
	}

	subAgency = agency
	if agency == c.aggregate {
		if pre, rest, ok := strings.Cut(routeID, ":"); ok && pre != "" {
			subAgency = pre
			routeID = rest
		} else {
			log.Printf("gtfsrt: aggregate route %q has no agency prefix, attributing to %s", routeID, agency)
		}
	}
	return subAgency, routeID
}
