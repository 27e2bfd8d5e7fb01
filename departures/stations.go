package departures

// stationCoords maps station codes to fixed (lat, lng) anchors used for
// position synthesis. Stations absent from this table are skipped.
var stationCoords = map[string][2]float64{
	"12TH": {37.8034, -122.2711},
	"16TH": {37.7648, -122.4095},
	"19TH": {37.8081, -122.2690},
	"24TH": {37.7527, -122.4184},
	"ASHB": {37.8531, -122.2701},
	"BALB": {37.7217, -122.4474},
	"CIVC": {37.7795, -122.4136},
	"COLM": {37.6847, -122.4661},
	"DALY": {37.7061, -122.4694},
	"EMBR": {37.7928, -122.3968},
	"GLEN": {37.7329, -122.4340},
	"MONT": {37.7894, -122.4014},
	"POWL": {37.7844, -122.4079},
}
