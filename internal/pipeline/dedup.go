package pipeline

import "tripload/internal/models"

// Dedup splits records into first-seen-unique and duplicate sequences with a
// single left-to-right scan over a seen-set of dedup keys. The first record
// carrying a key always wins, no matter what its other fields look like;
// every later record with the same key lands in duplicates. Both outputs
// keep input order.
//
// Keys are computed on local, pre-conversion timestamps, so Dedup must run
// before the timezone converter.
func Dedup(records []*models.TripRecord) (unique, duplicates []*models.TripRecord) {
	unique = make([]*models.TripRecord, 0, len(records))
	duplicates = make([]*models.TripRecord, 0)
	seen := make(map[models.DedupKey]bool, len(records))

	for _, record := range records {
		key := record.Key()
		if seen[key] {
			duplicates = append(duplicates, record)
			continue
		}
		seen[key] = true
		unique = append(unique, record)
	}

	return unique, duplicates
}
