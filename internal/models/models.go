package models

import "time"

// TripRecord is one parsed row from a trip file. Fields are pointers so a
// missing or unparseable cell is distinguishable from a zero value; the
// completeness filter is what turns "maybe present" into "present".
//
// PickupTime and DropoffTime hold naive wall-clock values until the timezone
// converter rewrites them as UTC instants.
type TripRecord struct {
	PickupTime      *time.Time `json:"pickup_time,omitempty"`
	DropoffTime     *time.Time `json:"dropoff_time,omitempty"`
	PassengerCount  *int       `json:"passenger_count,omitempty"`
	TripDistance    *float64   `json:"trip_distance,omitempty"`
	StoreAndFwdFlag *string    `json:"store_and_fwd_flag,omitempty"`
	PULocationID    *int       `json:"pu_location_id,omitempty"`
	DOLocationID    *int       `json:"do_location_id,omitempty"`
	FareAmount      *float64   `json:"fare_amount,omitempty"`
	TipAmount       *float64   `json:"tip_amount,omitempty"`

	// Raw keeps the original cells so duplicates can be written back out in
	// the same column shape they arrived in.
	Raw []string `json:"-"`

	// Line is the 1-based line number in the source file, for reporting.
	Line int `json:"-"`
}

// Complete reports whether every required field is present. The
// store-and-forward flag is exempt: an absent flag is data we tolerate, not
// a reason to drop the row.
func (r *TripRecord) Complete() bool {
	return r.PickupTime != nil &&
		r.DropoffTime != nil &&
		r.PassengerCount != nil &&
		r.TripDistance != nil &&
		r.PULocationID != nil &&
		r.DOLocationID != nil &&
		r.FareAmount != nil &&
		r.TipAmount != nil
}

// DedupKey identifies a logical trip: two rows with the same pickup time,
// dropoff time and passenger count are the same trip. Keys are computed on
// local, pre-conversion timestamps.
type DedupKey struct {
	Pickup     int64
	Dropoff    int64
	Passengers int
}

// Key derives the dedup key for a complete record.
func (r *TripRecord) Key() DedupKey {
	return DedupKey{
		Pickup:     r.PickupTime.UnixNano(),
		Dropoff:    r.DropoffTime.UnixNano(),
		Passengers: *r.PassengerCount,
	}
}

// RunReport carries the per-stage counts of one pipeline run.
type RunReport struct {
	Parsed            int           `json:"parsed"`
	BadRows           int           `json:"bad_rows"`
	DroppedIncomplete int           `json:"dropped_incomplete"`
	Duplicates        int           `json:"duplicates"`
	Unique            int           `json:"unique"`
	SourceChecksum    string        `json:"source_checksum,omitempty"`
	Duration          time.Duration `json:"duration_ns,omitempty"`
}

// ZoneStats is the aggregate served by the read API for one pickup zone.
type ZoneStats struct {
	PULocationID int     `json:"pu_location_id"`
	TripCount    int64   `json:"trip_count"`
	TotalFares   float64 `json:"total_fares"`
	MeanTip      float64 `json:"mean_tip"`
}
