package fetch

import (
	"testing"

	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

func testDedup() Deduplicator {
	return Deduplicator{Trusted: []string{"sf"}, AggregatePrefix: "rg"}
}

func recordsByID(ids ...string) map[string]vehicle.Record {
	m := make(map[string]vehicle.Record, len(ids))
	for _, id := range ids {
		m[id] = vehicle.Record{ID: id}
	}
	return m
}

func TestDedupHomeAgencyWins(t *testing.T) {
	// The same physical vehicle reported by both the home feed and the
	// aggregate feed: exactly the home-prefixed record survives.
	records := recordsByID("sf-V1", "rg-V1")

	testDedup().Apply(records)

	if len(records) != 1 {
		t.Fatalf("expected 1 record after dedup, got %d", len(records))
	}
	if _, ok := records["sf-V1"]; !ok {
		t.Error("expected home-agency record sf-V1 to survive")
	}
}

func TestDedupKeepsDistinctVehicles(t *testing.T) {
	records := recordsByID("sf-V1", "rg-V2", "bart-EMBR-Richmond-0", "gg-77")

	testDedup().Apply(records)

	if len(records) != 4 {
		t.Errorf("expected all 4 distinct records kept, got %d", len(records))
	}
}

func TestDedupIdempotent(t *testing.T) {
	records := recordsByID("sf-V1", "rg-V1", "rg-V2")

	d := testDedup()
	d.Apply(records)
	first := len(records)
	d.Apply(records)

	if len(records) != first {
		t.Errorf("second pass changed the map: %d -> %d", first, len(records))
	}
	if _, ok := records["rg-V2"]; !ok {
		t.Error("unrelated aggregate record rg-V2 should survive both passes")
	}
}

func TestDedupMultipleTrustedPrefixes(t *testing.T) {
	// Generalized precedence: any trusted source shadows the aggregate.
	d := Deduplicator{Trusted: []string{"sf", "gg"}, AggregatePrefix: "rg"}
	records := recordsByID("sf-V1", "gg-V2", "rg-V1", "rg-V2", "rg-V3")

	d.Apply(records)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for _, id := range []string{"sf-V1", "gg-V2", "rg-V3"} {
		if _, ok := records[id]; !ok {
			t.Errorf("expected %s to survive", id)
		}
	}
}

func TestDedupDisabledWithoutConfig(t *testing.T) {
	records := recordsByID("sf-V1", "rg-V1")
	Deduplicator{}.Apply(records)
	if len(records) != 2 {
		t.Errorf("unconfigured dedup should be a no-op, got %d records", len(records))
	}
}
