package fetch

import (
	"context"

	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

// Source is one upstream feed client. Fetch returns whatever partial set of
// normalized records succeeded; the error is non-nil only when the source
// produced nothing useful (every sub-feed failed). A source that is not
// configured returns (nil, nil).
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]vehicle.Record, error)
}
