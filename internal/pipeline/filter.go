package pipeline

import "tripload/internal/models"

// FilterComplete keeps only records with every required field present, in
// input order, and reports how many were dropped. The store-and-forward flag
// does not count against a record.
func FilterComplete(records []*models.TripRecord) ([]*models.TripRecord, int) {
	complete := make([]*models.TripRecord, 0, len(records))
	for _, record := range records {
		if record.Complete() {
			complete = append(complete, record)
		}
	}
	return complete, len(records) - len(complete)
}
