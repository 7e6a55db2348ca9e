package invoice_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billmaker/internal/invoice"
)

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		count int
		want  string
	}{
		{
			name:  "first invoice of the day",
			date:  time.Date(2026, time.August, 28, 14, 30, 0, 0, time.UTC),
			count: 0,
			want:  "28082026-0001",
		},
		{
			name:  "mid-day sequence",
			date:  time.Date(2026, time.August, 28, 14, 30, 0, 0, time.UTC),
			count: 41,
			want:  "28082026-0042",
		},
		{
			name:  "single-digit day and month are zero padded",
			date:  time.Date(2027, time.January, 2, 9, 0, 0, 0, time.UTC),
			count: 0,
			want:  "02012027-0001",
		},
		{
			name:  "last four-digit suffix",
			date:  time.Date(2026, time.August, 28, 23, 59, 0, 0, time.UTC),
			count: 9998,
			want:  "28082026-9999",
		},
		{
			name:  "suffix grows past 9999 instead of failing",
			date:  time.Date(2026, time.August, 28, 23, 59, 0, 0, time.UTC),
			count: 9999,
			want:  "28082026-10000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoice.NextNumber(tt.date, tt.count))
		})
	}
}

func TestNextNumberStrictlyIncreasing(t *testing.T) {
	day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	prev := invoice.NextNumber(day, 0)
	for count := 1; count < 50; count++ {
		next := invoice.NextNumber(day, count)
		assert.Greater(t, next, prev, "suffix must increase with the daily count")
		assert.Equal(t, fmt.Sprintf("15032026-%04d", count+1), next)
		prev = next
	}
}
