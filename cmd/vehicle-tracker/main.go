package main

import (
	"flag"
	"log"

	tracker "github.com/bayarea-transit/vehicle-tracker"
	"github.com/bayarea-transit/vehicle-tracker/config"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: ./config.yml)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	intervalMS := flag.Int("intervalMS", 0, "fetch interval in milliseconds (overrides config)")
	flag.Parse()

	tracker.InitLogging()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *intervalMS > 0 {
		cfg.Fetch.IntervalMS = *intervalMS
	}

	app := tracker.NewApp(cfg)
	srv := app.StartServer()
	app.HandleGracefulShutdown(srv)
}
