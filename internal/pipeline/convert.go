package pipeline

import (
	"fmt"
	"time"

	"tripload/internal/models"
)

// Converter rewrites naive wall-clock timestamps as UTC instants using the
// rules of a single named source zone.
type Converter struct {
	loc *time.Location
}

// NewConverter resolves the named zone once, up front. An unresolvable zone
// name is a structural failure for the whole run.
func NewConverter(zoneName string) (*Converter, error) {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve timezone %q: %w", zoneName, err)
	}
	return &Converter{loc: loc}, nil
}

// Convert replaces the pickup and dropoff times of every record, in place,
// with the UTC instant the source zone's rules assign to that wall-clock
// value. DST transitions resolve to whatever the zone rules say; a time in
// the skipped or repeated hour gets a single deterministic instant. Never
// fails per record.
func (c *Converter) Convert(records []*models.TripRecord) {
	for _, record := range records {
		if record.PickupTime != nil {
			utc := c.toUTC(*record.PickupTime)
			record.PickupTime = &utc
		}
		if record.DropoffTime != nil {
			utc := c.toUTC(*record.DropoffTime)
			record.DropoffTime = &utc
		}
	}
}

// toUTC reinterprets the clock fields of t in the source zone and returns
// the equivalent UTC instant.
func (c *Converter) toUTC(t time.Time) time.Time {
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.loc)
	return local.UTC()
}

// Location exposes the resolved zone, mainly so callers can round-trip
// instants back to source-local time.
func (c *Converter) Location() *time.Location {
	return c.loc
}
