package gtfsrt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/bayarea-transit/vehicle-tracker/config"
	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

func feedBytes(t *testing.T, entities ...*gtfs.FeedEntity) []byte {
	t.Helper()
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: entities,
	}
	data, err := proto.Marshal(feed)
	if err != nil {
		t.Fatalf("Failed to marshal feed: %v", err)
	}
	return data
}

func entity(id string, vp *gtfs.VehiclePosition) *gtfs.FeedEntity {
	return &gtfs.FeedEntity{Id: proto.String(id), Vehicle: vp}
}

func position(lat, lng float32) *gtfs.Position {
	return &gtfs.Position{Latitude: proto.Float32(lat), Longitude: proto.Float32(lng)}
}

func newTestClient(t *testing.T, agencies []string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.RegionalFeedConfig{
		BaseURL:         srv.URL,
		APIKey:          "test-key",
		Agencies:        agencies,
		AggregateAgency: "RG",
		TimeoutMS:       2000,
	})
}

func TestFetchParsesVehicles(t *testing.T) {
	body := feedBytes(t,
		entity("1", &gtfs.VehiclePosition{
			Trip:     &gtfs.TripDescriptor{RouteId: proto.String("J")},
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("1024")},
			Position: position(37.77, -122.41),
		}),
	)
	c := newTestClient(t, []string{"SF"}, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("missing api_key parameter")
		}
		_, _ = w.Write(body)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	v := recs[0]
	if v.ID != "sf-1024" {
		t.Errorf("expected id sf-1024, got %s", v.ID)
	}
	if v.Kind != vehicle.KindLightRail {
		t.Errorf("expected light-rail for route J, got %s", v.Kind)
	}
	if v.Agency != "SFMTA" {
		t.Errorf("expected SFMTA, got %s", v.Agency)
	}
	if v.Speed != vehicle.DefaultSpeedMPH {
		t.Errorf("expected default speed, got %f", v.Speed)
	}
}

func TestFetchSkipsIncompleteEntities(t *testing.T) {
	body := feedBytes(t,
		// No position.
		entity("1", &gtfs.VehiclePosition{Vehicle: &gtfs.VehicleDescriptor{Id: proto.String("a")}}),
		// No identity.
		entity("2", &gtfs.VehiclePosition{Position: position(37.7, -122.4)}),
		// Empty id.
		entity("3", &gtfs.VehiclePosition{
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("")},
			Position: position(37.7, -122.4),
		}),
		// Complete.
		entity("4", &gtfs.VehiclePosition{
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("ok")},
			Position: position(37.7, -122.4),
		}),
	)
	c := newTestClient(t, []string{"SF"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "sf-ok" {
		t.Fatalf("expected only the complete entity, got %v", recs)
	}
}

func TestFetchDropsInvalidPositions(t *testing.T) {
	body := feedBytes(t,
		entity("1", &gtfs.VehiclePosition{
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("bad")},
			Position: position(91.0, -122.4),
		}),
	)
	c := newTestClient(t, []string{"SF"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected invalid position to be dropped, got %d records", len(recs))
	}
}

func TestRouteFallbackChain(t *testing.T) {
	body := feedBytes(t,
		// Label fallback when trip linkage is missing.
		entity("1", &gtfs.VehiclePosition{
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("123"), Label: proto.String("9")},
			Position: position(37.7, -122.4),
		}),
		// Native id fallback when label is missing too.
		entity("2", &gtfs.VehiclePosition{
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("777")},
			Position: position(37.7, -122.4),
		}),
	)
	c := newTestClient(t, []string{"SF"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Route != "9" || recs[0].Kind != vehicle.KindMuniBus {
		t.Errorf("expected label-fallback muni-bus route 9, got %s/%s", recs[0].Route, recs[0].Kind)
	}
	if recs[1].Route != "777" {
		t.Errorf("expected native-id fallback route 777, got %s", recs[1].Route)
	}
}

func TestAggregateModeSplitsAgencyPrefix(t *testing.T) {
	body := feedBytes(t,
		entity("1", &gtfs.VehiclePosition{
			Trip:     &gtfs.TripDescriptor{RouteId: proto.String("GG:Larkspur Ferry")},
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("f1")},
			Position: position(37.86, -122.49),
		}),
		// Unprefixed value attributed to the nominal agency.
		entity("2", &gtfs.VehiclePosition{
			Trip:     &gtfs.TripDescriptor{RouteId: proto.String("J")},
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("v2")},
			Position: position(37.76, -122.42),
		}),
	)
	c := newTestClient(t, []string{"RG"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "rg-f1" {
		t.Errorf("aggregate records keep the aggregate prefix, got %s", recs[0].ID)
	}
	if recs[0].Agency != "Golden Gate" {
		t.Errorf("expected sub-agency recovered from route prefix, got %s", recs[0].Agency)
	}
	if recs[0].Kind != vehicle.KindFerry {
		t.Errorf("expected ferry from route text, got %s", recs[0].Kind)
	}
	if recs[1].Kind != vehicle.KindLightRail {
		t.Errorf("fixed route set applies to unprefixed aggregate values, got %s", recs[1].Kind)
	}
}

func TestFetchIsolatesFailingAgency(t *testing.T) {
	good := feedBytes(t,
		entity("1", &gtfs.VehiclePosition{
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("ok")},
			Position: position(37.7, -122.4),
		}),
	)
	c := newTestClient(t, []string{"SF", "GG"}, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("agency") == "GG" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(good)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("one failing sub-feed must not fail the fetch: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected surviving agency's records, got %d", len(recs))
	}
}

func TestFetchAllAgenciesFail(t *testing.T) {
	c := newTestClient(t, []string{"SF", "GG"}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Fetch(context.Background())
	if err == nil {
		t.Error("expected error when every sub-feed fails")
	}
}

func TestFetchDecodeFailureIsolated(t *testing.T) {
	good := feedBytes(t,
		entity("1", &gtfs.VehiclePosition{
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("ok")},
			Position: position(37.7, -122.4),
		}),
	)
	c := newTestClient(t, []string{"SF", "GG"}, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("agency") == "GG" {
			_, _ = w.Write([]byte("\xff\xfe not protobuf"))
			return
		}
		_, _ = w.Write(good)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("decode failure in one sub-feed must not fail the fetch: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 record, got %d", len(recs))
	}
}

func TestFetchPlaceholderKeyIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(config.RegionalFeedConfig{
		BaseURL:  srv.URL,
		APIKey:   "YOUR_511_API_KEY",
		Agencies: []string{"SF"},
	})
	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("placeholder key must not error: %v", err)
	}
	if recs != nil || called {
		t.Error("placeholder key must short-circuit without hitting the upstream")
	}
}

func TestFetchRetriesTransientFailure(t *testing.T) {
	good := feedBytes(t,
		entity("1", &gtfs.VehiclePosition{
			Vehicle:  &gtfs.VehicleDescriptor{Id: proto.String("ok")},
			Position: position(37.7, -122.4),
		}),
	)
	attempts := 0
	c := newTestClient(t, []string{"SF"}, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(good)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 record after retry, got %d", len(recs))
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestObservedAtFromFeedTimestamp(t *testing.T) {
	ts := time.Now().Add(-time.Minute).Unix()
	body := feedBytes(t,
		entity("1", &gtfs.VehiclePosition{
			Vehicle:   &gtfs.VehicleDescriptor{Id: proto.String("v")},
			Position:  position(37.7, -122.4),
			Timestamp: proto.Uint64(uint64(ts)),
		}),
	)
	c := newTestClient(t, []string{"SF"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	})

	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	want := time.Unix(ts, 0).UTC().Format(time.RFC3339)
	if recs[0].ObservedAt != want {
		t.Errorf("expected upstream observation time %s, got %s", want, recs[0].ObservedAt)
	}
}
