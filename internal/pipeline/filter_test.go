package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripload/internal/models"
)

func TestFilterCompleteDropsRecordsMissingAnyRequiredField(t *testing.T) {
	withMissing := func(mutate func(*models.TripRecord)) *models.TripRecord {
		record := newTrip("2024-01-15 10:00:00", "2024-01-15 10:20:00", 1)
		mutate(record)
		return record
	}

	incomplete := []*models.TripRecord{
		withMissing(func(r *models.TripRecord) { r.PickupTime = nil }),
		withMissing(func(r *models.TripRecord) { r.DropoffTime = nil }),
		withMissing(func(r *models.TripRecord) { r.PassengerCount = nil }),
		withMissing(func(r *models.TripRecord) { r.TripDistance = nil }),
		withMissing(func(r *models.TripRecord) { r.PULocationID = nil }),
		withMissing(func(r *models.TripRecord) { r.DOLocationID = nil }),
		withMissing(func(r *models.TripRecord) { r.FareAmount = nil }),
		withMissing(func(r *models.TripRecord) { r.TipAmount = nil }),
	}

	complete, dropped := FilterComplete(incomplete)
	assert.Empty(t, complete)
	assert.Equal(t, 8, dropped)
}

func TestFilterCompleteFlagIsExempt(t *testing.T) {
	record := newTrip("2024-01-15 10:00:00", "2024-01-15 10:20:00", 1)
	record.StoreAndFwdFlag = nil

	complete, dropped := FilterComplete([]*models.TripRecord{record})
	require.Len(t, complete, 1)
	assert.Equal(t, 0, dropped)
}

func TestFilterCompletePreservesOrder(t *testing.T) {
	a := newTrip("2024-01-15 08:00:00", "2024-01-15 08:10:00", 1)
	bad := newTrip("2024-01-15 08:30:00", "2024-01-15 08:40:00", 1)
	bad.FareAmount = nil
	b := newTrip("2024-01-15 09:00:00", "2024-01-15 09:10:00", 2)
	c := newTrip("2024-01-15 10:00:00", "2024-01-15 10:10:00", 3)

	complete, dropped := FilterComplete([]*models.TripRecord{a, bad, b, c})
	require.Len(t, complete, 3)
	assert.Equal(t, 1, dropped)
	assert.Same(t, a, complete[0])
	assert.Same(t, b, complete[1])
	assert.Same(t, c, complete[2])
}
