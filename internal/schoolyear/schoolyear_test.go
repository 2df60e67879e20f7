package schoolyear_test

import (
	"testing"
	"time"

	"school-hris/internal/schoolyear"

	"github.com/stretchr/testify/assert"
)

func TestForDate(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"march belongs to previous start year", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2023-2024"},
		{"july belongs to current start year", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"june 1 opens the new year", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"may 31 closes the old year", time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC), "2023-2024"},
		{"december", time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{"january", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "2025-2026"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schoolyear.ForDate(tc.date))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		start, err := schoolyear.Parse("2024-2025")
		assert.NoError(t, err)
		assert.Equal(t, 2024, start)
	})

	t.Run("negative non-consecutive years", func(t *testing.T) {
		_, err := schoolyear.Parse("2024-2026")
		assert.Error(t, err)
	})

	t.Run("negative garbage", func(t *testing.T) {
		_, err := schoolyear.Parse("not-a-year")
		assert.Error(t, err)
	})
}

func TestNext(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		next, err := schoolyear.Next("2025-2026")
		assert.NoError(t, err)
		assert.Equal(t, "2026-2027", next)
	})

	t.Run("negative invalid label", func(t *testing.T) {
		_, err := schoolyear.Next("2025/2026")
		assert.Error(t, err)
	})
}

func TestPrevious(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		prev, err := schoolyear.Previous("2025-2026")
		assert.NoError(t, err)
		assert.Equal(t, "2024-2025", prev)
	})

	t.Run("negative invalid label", func(t *testing.T) {
		_, err := schoolyear.Previous("2025")
		assert.Error(t, err)
	})
}
