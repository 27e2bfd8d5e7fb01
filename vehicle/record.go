package vehicle

// Kind classifies a vehicle for presentation. It is derived during
// normalization; no upstream feed provides it directly.
type Kind string

const (
	KindMuniBus    Kind = "muni-bus"
	KindLightRail  Kind = "light-rail"
	KindCableCar   Kind = "cable-car"
	KindBARTTrain  Kind = "bart-train"
	KindFerry      Kind = "ferry"
	KindBus        Kind = "bus"
	KindExpressBus Kind = "express-bus"
	KindTrain      Kind = "train"
)

// Record is the normalized vehicle model. Records are created fresh on
// every fetch cycle and owned by the snapshot store between cycles; they
// are never mutated after being published.
type Record struct {
	// ID is globally unique, formed as "<source prefix>-<native vehicle id>".
	ID          string  `json:"id"`
	Kind        Kind    `json:"kind"`
	Route       string  `json:"route"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Heading     float64 `json:"heading"`
	Speed       float64 `json:"speed"`
	Agency      string  `json:"agency"`
	Destination string  `json:"destination,omitempty"`
	// ObservedAt is the upstream-reported observation time in ISO-8601 when
	// available, else the fetch wall-clock time.
	ObservedAt string `json:"observedAt"`
}

// ValidPosition reports whether lat/lng form a plausible coordinate.
// Records failing this check are dropped at the parse boundary rather than
// stored with sentinel values.
func ValidPosition(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
