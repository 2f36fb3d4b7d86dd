package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtracker/internal/dateonly"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want Bucket
	}{
		{"yesterday is overdue", "2024-03-09", BucketOverdue},
		{"far in the past is still overdue", "2023-11-01", BucketOverdue},
		{"same day", "2024-03-10", BucketToday},
		{"next day", "2024-03-11", BucketTomorrow},
		{"two days out", "2024-03-12", BucketNone},
		{"next month", "2024-04-10", BucketNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := dateonly.Parse(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Classify(date, now))
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	date, err := dateonly.Parse("2024-03-10")
	require.NoError(t, err)

	early := time.Date(2024, time.March, 10, 0, 0, 1, 0, time.UTC)
	late := time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, BucketToday, Classify(date, early))
	assert.Equal(t, BucketToday, Classify(date, late))
}
