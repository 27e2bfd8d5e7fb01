package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// RegionalFeedConfig configures the multi-agency GTFS-Realtime
// vehicle-positions feed.
type RegionalFeedConfig struct {
	BaseURL string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey  string `yaml:"apiKey"`
	// Agencies are the operator codes queried in one fetch, each as its own
	// isolated sub-feed request.
	Agencies []string `yaml:"agencies"`
	// HomeAgency identifies the operator whose records take precedence over
	// aggregate-feed duplicates.
	HomeAgency string `yaml:"homeAgency"`
	// AggregateAgency is the code for the feed's "all agencies" mode, whose
	// route values may carry an embedded sub-agency prefix.
	AggregateAgency string `yaml:"aggregateAgency"`
	TimeoutMS       int    `yaml:"timeoutMS" validate:"gte=0"`
}

// DepartureFeedConfig configures the station-departure feed whose vehicle
// positions are synthesized.
type DepartureFeedConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey    string `yaml:"apiKey"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// FetchConfig controls the broadcast cycle cadence.
type FetchConfig struct {
	IntervalMS int `yaml:"intervalMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig        `yaml:"server" validate:"required"`
	Regional   RegionalFeedConfig  `yaml:"regional"`
	Departures DepartureFeedConfig `yaml:"departures"`
	Fetch      FetchConfig         `yaml:"fetch"`
}
