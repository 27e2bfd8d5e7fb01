package vehicle

import (
	"log"
	"math"
	"strings"
	"time"

	"github.com/bayarea-transit/vehicle-tracker/utils"
)

const (
	// MetersPerSecondToMPH converts upstream speed readings (m/s) to mph.
	MetersPerSecondToMPH = 2.237

	// DefaultSpeedMPH is used when an upstream omits speed. Non-zero so a
	// missing reading does not imply a stopped vehicle.
	DefaultSpeedMPH = 15.0
)

// Fixed route-code sets that override agency defaults: these codes identify
// rail services regardless of which feed reported them.
var (
	lightRailRoutes = map[string]struct{}{
		"J": {}, "K": {}, "L": {}, "M": {}, "N": {}, "T": {},
	}
	cableCarRoutes = map[string]struct{}{
		"PH": {}, "PM": {}, "CA": {},
	}
)

var agencyNames = map[string]string{
	"SF": "SFMTA",
	"GG": "Golden Gate",
	"AC": "AC Transit",
	"BA": "BART",
}

// KindFor resolves the vehicle kind from the sub-agency code and the bare
// route identifier (agency prefix already stripped, before display
// formatting). The fixed light-rail and cable-car sets take priority over
// agency defaults; ferry and express services are detected by substring.
func KindFor(subAgency, route string) Kind {
	if _, ok := lightRailRoutes[route]; ok {
		return KindLightRail
	}
	if _, ok := cableCarRoutes[route]; ok {
		return KindCableCar
	}
	lower := strings.ToLower(route)
	if strings.Contains(lower, "ferry") {
		return KindFerry
	}
	if strings.Contains(lower, "express") {
		return KindExpressBus
	}
	switch strings.ToUpper(subAgency) {
	case "SF":
		return KindMuniBus
	case "BA":
		return KindBARTTrain
	default:
		if strings.Contains(lower, "train") {
			return KindTrain
		}
		return KindBus
	}
}

// AgencyName resolves a sub-agency code to its display name. Unknown codes
// pass through verbatim with a logged warning; they never fail the record.
func AgencyName(code string) string {
	if name, ok := agencyNames[strings.ToUpper(code)]; ok {
		return name
	}
	log.Printf("vehicle: unknown agency code %q, passing through", code)
	return code
}

// FormatRoute strips native separators from a route identifier for display.
func FormatRoute(route string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(route)
}

// SpeedMPH converts an upstream m/s reading to mph, or returns the default
// policy value when the upstream omitted it.
func SpeedMPH(metersPerSecond *float64) float64 {
	if metersPerSecond == nil {
		return DefaultSpeedMPH
	}
	return *metersPerSecond * MetersPerSecondToMPH
}

// Heading wraps an upstream bearing into [0, 360). Feeds report 360 for
// due north and the occasional negative value; both wrap rather than drop
// the record.
func Heading(bearing float64) float64 {
	h := math.Mod(bearing, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// observedAtMaxAge and observedAtMaxSkew bound the sanity window for
// upstream-reported observation times.
const (
	observedAtMaxAge  = 24 * time.Hour
	observedAtMaxSkew = 5 * time.Minute
)

// ObservedAt converts an upstream epoch timestamp to ISO-8601. A missing
// (zero) or implausible timestamp is replaced with the fetch wall-clock
// time, since ObservedAt is the primary staleness signal.
func ObservedAt(epoch int64, fetchedAt time.Time) string {
	if epoch > 0 {
		t := time.Unix(epoch, 0)
		if !t.Before(fetchedAt.Add(-observedAtMaxAge)) && !t.After(fetchedAt.Add(observedAtMaxSkew)) {
			return utils.Iso8601FromUnixSeconds(epoch)
		}
	}
	return utils.Iso8601From(fetchedAt)
}
