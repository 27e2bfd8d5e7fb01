package fetch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bayarea-transit/vehicle-tracker/store"
	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

// Orchestrator drives one fetch-normalize-merge-store cycle across every
// configured source.
type Orchestrator struct {
	sources []Source
	store   *store.Store
	dedup   Deduplicator
}

func NewOrchestrator(sources []Source, st *store.Store, dedup Deduplicator) *Orchestrator {
	return &Orchestrator{sources: sources, store: st, dedup: dedup}
}

// RunCycle fetches all sources concurrently, merges and deduplicates their
// records, and publishes the result as the new snapshot. The returned error
// reports a degraded cycle (every source failed, or an unexpected panic)
// for the error broadcast; the snapshot is valid either way and the caller
// keeps ticking.
func (o *Orchestrator) RunCycle(ctx context.Context) (snap store.Snapshot, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("fetch: cycle panic recovered: %v", r)
			snap = o.store.Read()
			err = fmt.Errorf("cycle failure: %v", r)
		}
	}()

	results := make([][]vehicle.Record, len(o.sources))
	errs := make([]error, len(o.sources))
	var wg sync.WaitGroup
	for i, src := range o.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i], errs[i] = src.Fetch(ctx)
		}(i, src)
	}
	wg.Wait()

	failed := 0
	merged := make(map[string]vehicle.Record)
	for i, src := range o.sources {
		if errs[i] != nil {
			failed++
			log.Printf("fetch: source %s failed: %v", src.Name(), errs[i])
		}
		// Partial results still count; merge is last-writer-wins by ID in
		// source order, with the dedup pass resolving cross-source overlap.
		for _, rec := range results[i] {
			merged[rec.ID] = rec
		}
	}
	o.dedup.Apply(merged)

	snap = o.store.Replace(merged, time.Since(start))
	log.Printf("fetch: cycle complete, %d vehicles in %.0fms", len(snap.Records), snap.FetchMillis)

	if len(o.sources) > 0 && failed == len(o.sources) {
		err = fmt.Errorf("all %d sources failed", failed)
	}
	return snap, err
}
