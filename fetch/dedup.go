package fetch

import (
	"strings"

	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

// Deduplicator removes aggregate-feed duplicates of vehicles already
// reported by a trusted source. The same physical vehicle can appear once
// under its home-agency feed and again under the regional "all agencies"
// feed with a different source prefix; trusted-source records always win.
//
// Trusted is an ordered list of source prefixes (without the trailing
// separator) whose records take precedence; the single-home-agency case is
// just a one-element list.
type Deduplicator struct {
	Trusted         []string
	AggregatePrefix string
}

// Apply deletes, in place, every aggregate-prefixed record whose native ID
// is also present under a trusted prefix. One O(n) post-pass over the
// merged map against a native-ID set, not a pairwise comparison.
// Idempotent: a second pass over an already-deduplicated map is a no-op.
func (d Deduplicator) Apply(records map[string]vehicle.Record) {
	if d.AggregatePrefix == "" || len(d.Trusted) == 0 {
		return
	}
	native := make(map[string]struct{})
	for id := range records {
		for _, prefix := range d.Trusted {
			if n, ok := nativeID(id, prefix); ok {
				native[n] = struct{}{}
				break
			}
		}
	}
	for id := range records {
		n, ok := nativeID(id, d.AggregatePrefix)
		if !ok {
			continue
		}
		if _, dup := native[n]; dup {
			delete(records, id)
		}
	}
}

// nativeID strips a source prefix from a record ID, returning the upstream
// vehicle identifier.
func nativeID(id, prefix string) (string, bool) {
	return strings.CutPrefix(id, strings.ToLower(prefix)+"-")
}
