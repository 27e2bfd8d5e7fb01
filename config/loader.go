package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied after loading. URLs follow the upstream API conventions;
// intervals and timeouts are milliseconds.
const (
	DefaultPort               = 8080
	DefaultFetchIntervalMS    = 30000
	DefaultRegionalBaseURL    = "http://api.511.org/transit/vehiclepositions"
	DefaultRegionalTimeoutMS  = 15000
	DefaultDepartureBaseURL   = "https://api.bart.gov/api/etd.aspx"
	DefaultDepartureTimeoutMS = 10000
)

// IsPlaceholder reports whether an API credential is the "not configured"
// sentinel. A placeholder disables the feed client entirely, which is
// distinct from a configured credential that is failing.
func IsPlaceholder(key string) bool {
	return key == "" || strings.HasPrefix(key, "YOUR_")
}

// LoadAppConfig loads and validates configuration from the given path, or
// from config.yml in the working directory when path is empty.
func LoadAppConfig(path string) (*AppConfig, error) {
	paths := []string{"config.yml", "./config/config.yml"}
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Fetch.IntervalMS == 0 {
		cfg.Fetch.IntervalMS = DefaultFetchIntervalMS
	}
	if cfg.Regional.BaseURL == "" {
		cfg.Regional.BaseURL = DefaultRegionalBaseURL
	}
	if cfg.Regional.TimeoutMS == 0 {
		cfg.Regional.TimeoutMS = DefaultRegionalTimeoutMS
	}
	if len(cfg.Regional.Agencies) == 0 {
		cfg.Regional.Agencies = []string{"SF", "GG", "AC", "RG"}
	}
	if cfg.Regional.HomeAgency == "" {
		cfg.Regional.HomeAgency = "SF"
	}
	if cfg.Regional.AggregateAgency == "" {
		cfg.Regional.AggregateAgency = "RG"
	}
	if cfg.Departures.BaseURL == "" {
		cfg.Departures.BaseURL = DefaultDepartureBaseURL
	}
	if cfg.Departures.TimeoutMS == 0 {
		cfg.Departures.TimeoutMS = DefaultDepartureTimeoutMS
	}
}

// applyEnvOverrides lets deployments supply credentials without editing the
// config file.
func applyEnvOverrides(cfg *AppConfig) {
	if key := os.Getenv("REGIONAL_API_KEY"); key != "" {
		cfg.Regional.APIKey = key
	}
	if key := os.Getenv("DEPARTURES_API_KEY"); key != "" {
		cfg.Departures.APIKey = key
	}
}
