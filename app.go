// Package tracker wires the feed clients, fetch orchestrator, snapshot
// store, subscriber hub and broadcast scheduler into one HTTP service.
package tracker

import (
	"strings"
	"time"

	"github.com/bayarea-transit/vehicle-tracker/config"
	"github.com/bayarea-transit/vehicle-tracker/departures"
	"github.com/bayarea-transit/vehicle-tracker/fetch"
	"github.com/bayarea-transit/vehicle-tracker/gtfsrt"
	"github.com/bayarea-transit/vehicle-tracker/hub"
	"github.com/bayarea-transit/vehicle-tracker/scheduler"
	"github.com/bayarea-transit/vehicle-tracker/store"
)

// App owns the component lifecycle. Everything is constructed here and
// injected explicitly; there is no ambient global state.
type App struct {
	cfg       *config.AppConfig
	store     *store.Store
	hub       *hub.Hub
	scheduler *scheduler.Scheduler
	startedAt time.Time
}

func NewApp(cfg *config.AppConfig) *App {
	st := store.New()

	sources := []fetch.Source{
		// Covers the per-agency feeds and the aggregate; the dedup pass below
		// removes the aggregate's duplicates of home-agency vehicles.
		gtfsrt.NewClient(cfg.Regional),
		departures.NewClient(cfg.Departures),
	}
	dedup := fetch.Deduplicator{
		Trusted:         []string{strings.ToLower(cfg.Regional.HomeAgency)},
		AggregatePrefix: strings.ToLower(cfg.Regional.AggregateAgency),
	}
	orch := fetch.NewOrchestrator(sources, st, dedup)

	registry := hub.NewRegistry()
	h := hub.New(registry, func() (hub.UpdatePayload, bool) {
		snap := st.Read()
		if snap.LastUpdate.IsZero() {
			return hub.UpdatePayload{}, false
		}
		return hub.UpdateFrom(snap), true
	})

	sched := scheduler.New(orch, h, time.Duration(cfg.Fetch.IntervalMS)*time.Millisecond)
	registry.SetListener(sched)

	return &App{
		cfg:       cfg,
		store:     st,
		hub:       h,
		scheduler: sched,
		startedAt: time.Now(),
	}
}

// Scheduler exposes the broadcast scheduler, for forced updates.
func (a *App) Scheduler() *scheduler.Scheduler { return a.scheduler }
