package handlers

import (
	"testing"
	"time"

	"calendary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAvailabilityUnifiedShape(t *testing.T) {
	body := []byte(`{
		"timezone": "UTC",
		"weeklySchedule": {
			"1": [{"start": 540, "end": 720}, {"start": 780, "end": 1020}]
		}
	}`)

	av, err := decodeAvailability(body)
	require.NoError(t, err)
	assert.Equal(t, "UTC", av.Timezone)
	assert.Equal(t, []models.TimeInterval{{Start: 540, End: 720}, {Start: 780, End: 1020}}, av.WeeklySchedule[time.Monday])
}

func TestDecodeAvailabilityLegacyShape(t *testing.T) {
	body := []byte(`{
		"days": ["Monday", "Friday"],
		"hours": {"start": "09:00", "end": "17:00"},
		"timezone": "Europe/Berlin"
	}`)

	av, err := decodeAvailability(body)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", av.Timezone)
	assert.Equal(t, []models.TimeInterval{{Start: 540, End: 1020}}, av.WeeklySchedule[time.Monday])
	assert.Equal(t, []models.TimeInterval{{Start: 540, End: 1020}}, av.WeeklySchedule[time.Friday])
	assert.Nil(t, av.WeeklySchedule[time.Saturday])
}

func TestDecodeAvailabilityRejectsUnknownFields(t *testing.T) {
	body := []byte(`{"timezone": "UTC", "weeklySchedule": {}, "color": "blue"}`)
	_, err := decodeAvailability(body)
	assert.Error(t, err)
}

func TestDecodeAvailabilityRejectsInvalidSchedule(t *testing.T) {
	body := []byte(`{
		"timezone": "UTC",
		"weeklySchedule": {"1": [{"start": 720, "end": 540}]}
	}`)
	_, err := decodeAvailability(body)
	assert.Error(t, err)
}

func TestDecodeAvailabilityRejectsMalformedJSON(t *testing.T) {
	_, err := decodeAvailability([]byte(`{"timezone": `))
	assert.Error(t, err)
}
