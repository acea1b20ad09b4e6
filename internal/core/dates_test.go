package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain add", date(2024, time.January, 15), 6, date(2024, time.July, 15)},
		{"year rollover", date(2024, time.October, 10), 4, date(2025, time.February, 10)},
		{"clamp to leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamp to short february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamp to 30-day month", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"zero months", date(2024, time.May, 20), 0, date(2024, time.May, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, addMonths(tt.in, tt.n))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	from := date(2024, time.July, 1)

	assert.Equal(t, 0, daysUntil(from, from), "same instant is zero")
	assert.Equal(t, 0, daysUntil(from, date(2024, time.June, 30)), "past dates are zero")
	assert.Equal(t, 14, daysUntil(from, date(2024, time.July, 15)))

	// Partial days round up.
	assert.Equal(t, 1, daysUntil(from, from.Add(2*time.Hour)))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 157.50, round2(157.5))
	assert.Equal(t, 10.35, round2(10.346))
	assert.Equal(t, 0.33, round2(1.0/3.0))
	assert.Equal(t, 102.38, round2(97.5*1.05))
}
