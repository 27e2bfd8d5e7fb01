package departures

// Typed structures for the upstream departure JSON. Raw payload access
// stops at this boundary; everything downstream works on vehicle records.

type etdResponse struct {
	Root etdRoot `json:"root"`
}

type etdRoot struct {
	Stations []etdStation `json:"station"`
}

type etdStation struct {
	Name string    `json:"name"`
	Abbr string    `json:"abbr"`
	ETD  []etdLine `json:"etd"`
}

// etdLine groups the estimates for one destination served from a station.
type etdLine struct {
	Destination  string        `json:"destination"`
	Abbreviation string        `json:"abbreviation"`
	Estimates    []etdEstimate `json:"estimate"`
}

type etdEstimate struct {
	// Minutes is a stringly-typed count ("7") or the sentinel "Leaving".
	Minutes   string `json:"minutes"`
	Platform  string `json:"platform"`
	Direction string `json:"direction"`
	Color     string `json:"color"`
}

// departingNow is the sentinel estimate for a train already leaving the
// platform; such entries have no meaningful position to simulate.
const departingNow = "Leaving"
