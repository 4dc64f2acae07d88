package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripload/internal/models"
)

func TestConvertStandardTime(t *testing.T) {
	converter, err := NewConverter("America/New_York")
	require.NoError(t, err)

	// January is EST, UTC-5.
	record := newTrip("2024-01-15 08:00:00", "2024-01-15 08:30:00", 1)
	converter.Convert([]*models.TripRecord{record})

	assert.Equal(t, time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC), *record.PickupTime)
	assert.Equal(t, time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC), *record.DropoffTime)
}

func TestConvertDaylightTime(t *testing.T) {
	converter, err := NewConverter("America/New_York")
	require.NoError(t, err)

	// July is EDT, UTC-4.
	record := newTrip("2024-07-15 08:00:00", "2024-07-15 08:30:00", 1)
	converter.Convert([]*models.TripRecord{record})

	assert.Equal(t, time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC), *record.PickupTime)
	assert.Equal(t, time.Date(2024, 7, 15, 12, 30, 0, 0, time.UTC), *record.DropoffTime)
}

func TestConvertRoundTripsToLocalWallClock(t *testing.T) {
	converter, err := NewConverter("America/New_York")
	require.NoError(t, err)

	record := newTrip("2024-11-20 17:45:30", "2024-11-20 18:05:00", 1)
	converter.Convert([]*models.TripRecord{record})

	local := record.PickupTime.In(converter.Location())
	assert.Equal(t, "2024-11-20 17:45:30", local.Format("2006-01-02 15:04:05"))
}

func TestConvertSpringForwardGapIsDeterministic(t *testing.T) {
	converter, err := NewConverter("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 02:30 does not exist in New York; the zone rules must give
	// one instant, the same one every time.
	first := newTrip("2024-03-10 02:30:00", "2024-03-10 03:00:00", 1)
	second := newTrip("2024-03-10 02:30:00", "2024-03-10 03:00:00", 1)
	converter.Convert([]*models.TripRecord{first})
	converter.Convert([]*models.TripRecord{second})

	assert.Equal(t, *first.PickupTime, *second.PickupTime)

	// Whichever side of the gap the rules pick, the instant is bounded by
	// the pre-transition (UTC-5) and post-transition (UTC-4) readings.
	earliest := time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)
	latest := time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)
	assert.False(t, first.PickupTime.Before(earliest))
	assert.False(t, first.PickupTime.After(latest))
}

func TestConvertFallBackRepeatedHourIsDeterministic(t *testing.T) {
	converter, err := NewConverter("America/New_York")
	require.NoError(t, err)

	// 2024-11-03 01:30 happens twice in New York. The zone rules pick one
	// offset; both readings are valid, the pick just has to be stable.
	first := newTrip("2024-11-03 01:30:00", "2024-11-03 02:00:00", 1)
	second := newTrip("2024-11-03 01:30:00", "2024-11-03 02:00:00", 1)
	converter.Convert([]*models.TripRecord{first})
	converter.Convert([]*models.TripRecord{second})

	assert.Equal(t, *first.PickupTime, *second.PickupTime)

	edtReading := time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC)
	estReading := time.Date(2024, 11, 3, 6, 30, 0, 0, time.UTC)
	assert.True(t, first.PickupTime.Equal(edtReading) || first.PickupTime.Equal(estReading))
}

func TestConvertLeavesNilTimestampsAlone(t *testing.T) {
	converter, err := NewConverter("America/New_York")
	require.NoError(t, err)

	record := newTrip("2024-01-15 08:00:00", "2024-01-15 08:30:00", 1)
	record.DropoffTime = nil

	converter.Convert([]*models.TripRecord{record})
	assert.Nil(t, record.DropoffTime)
	assert.Equal(t, time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC), *record.PickupTime)
}

func TestNewConverterRejectsUnknownZone(t *testing.T) {
	_, err := NewConverter("Not/A_Zone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot resolve timezone "Not/A_Zone"`)
}
