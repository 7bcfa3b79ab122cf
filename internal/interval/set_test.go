package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pricing"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func rng(t *testing.T, start, end int) daterange.Range {
	t.Helper()
	r, err := daterange.New(day(start), day(end))
	require.NoError(t, err)
	return r
}

func open(t *testing.T, s *Set, start, end int, price float64) *Interval {
	t.Helper()
	iv := &Interval{Start: day(start), End: day(end), PricePerDay: price}
	require.NoError(t, s.Add(iv))
	return iv
}

func TestAdd(t *testing.T) {
	t.Run("rejects inverted range", func(t *testing.T) {
		s := NewSet("v1", nil)
		err := s.Add(&Interval{Start: day(10), End: day(5), PricePerDay: 500})
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})

	t.Run("rejects overlap regardless of status", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 10, 500)

		err := s.Add(&Interval{Start: day(10), End: day(15), PricePerDay: 500})
		assert.ErrorIs(t, err, ErrOverlap)

		// Overlapping a booked interval is just as forbidden.
		require.NoError(t, s.SetStatus(s.Items()[0].ID, StatusBooked))
		err = s.Add(&Interval{Start: day(5), End: day(6), PricePerDay: 500})
		assert.ErrorIs(t, err, ErrOverlap)
	})

	t.Run("keeps items ordered by start date", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 20, 25, 500)
		open(t, s, 1, 5, 500)
		open(t, s, 10, 15, 500)

		starts := make([]time.Time, 0, 3)
		for _, iv := range s.Items() {
			starts = append(starts, iv.Start)
		}
		assert.Equal(t, []time.Time{day(1), day(10), day(20)}, starts)
	})

	t.Run("assigns id and defaults status", func(t *testing.T) {
		s := NewSet("v1", nil)
		iv := open(t, s, 1, 5, 500)
		assert.NotEmpty(t, iv.ID)
		assert.Equal(t, StatusAvailable, iv.Status)
		assert.Equal(t, "v1", iv.VehicleID)
	})
}

func TestRemove(t *testing.T) {
	s := NewSet("v1", nil)
	iv := open(t, s, 1, 10, 500)

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, s.Remove("missing"), ErrNotFound)
	})

	t.Run("booked interval is protected", func(t *testing.T) {
		require.NoError(t, s.SetStatus(iv.ID, StatusBooked))
		assert.ErrorIs(t, s.Remove(iv.ID), ErrConflict)
	})

	t.Run("available interval is removable", func(t *testing.T) {
		require.NoError(t, s.SetStatus(iv.ID, StatusAvailable))
		require.NoError(t, s.Remove(iv.ID))
		assert.Empty(t, s.Items())
	})
}

func TestSetStatusIdempotent(t *testing.T) {
	s := NewSet("v1", nil)
	iv := open(t, s, 1, 10, 500)

	require.NoError(t, s.SetStatus(iv.ID, StatusAvailable))
	assert.Equal(t, StatusAvailable, iv.Status)

	require.NoError(t, s.SetStatus(iv.ID, StatusBooked))
	require.NoError(t, s.SetStatus(iv.ID, StatusBooked))
	assert.Equal(t, StatusBooked, iv.Status)

	assert.ErrorIs(t, s.SetStatus("missing", StatusBooked), ErrNotFound)
}

func TestFindOverlapping(t *testing.T) {
	s := NewSet("v1", nil)
	a := open(t, s, 1, 5, 500)
	b := open(t, s, 10, 15, 500)
	open(t, s, 20, 25, 500)

	var got []*Interval
	for iv := range s.FindOverlapping(rng(t, 4, 12)) {
		got = append(got, iv)
	}
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)

	// The sequence is restartable.
	count := 0
	seq := s.FindOverlapping(rng(t, 4, 12))
	for range seq {
		count++
	}
	for range seq {
		count++
	}
	assert.Equal(t, 4, count)
}

func TestIsRangeFree(t *testing.T) {
	s := NewSet("v1", nil)
	open(t, s, 1, 10, 500)

	assert.True(t, s.IsRangeFree(rng(t, 1, 10)))
	assert.True(t, s.IsRangeFree(rng(t, 3, 7)))

	t.Run("unlisted days are not free", func(t *testing.T) {
		assert.False(t, s.IsRangeFree(rng(t, 5, 12)))
		assert.False(t, s.IsRangeFree(rng(t, 15, 20)))
	})

	t.Run("booked days are not free", func(t *testing.T) {
		_, _, err := s.Claim(rng(t, 4, 6), "bk1", time.Now().UTC())
		require.NoError(t, err)
		assert.False(t, s.IsRangeFree(rng(t, 3, 5)))
		assert.False(t, s.IsRangeFree(rng(t, 6, 8)))
		assert.True(t, s.IsRangeFree(rng(t, 1, 3)))
		assert.True(t, s.IsRangeFree(rng(t, 7, 10)))
	})
}

func TestDayStatus(t *testing.T) {
	s := NewSet("v1", nil)
	open(t, s, 1, 5, 500)
	_, _, err := s.Claim(rng(t, 4, 5), "bk1", time.Now().UTC())
	require.NoError(t, err)

	days := s.DayStatus(rng(t, 1, 7))
	assert.Equal(t, StatusAvailable, days["2024-06-01"])
	assert.Equal(t, StatusAvailable, days["2024-06-03"])
	assert.Equal(t, StatusBooked, days["2024-06-04"])
	assert.Equal(t, StatusBooked, days["2024-06-05"])

	_, listed := days["2024-06-06"]
	assert.False(t, listed, "unlisted day must be absent")
}

func TestClaim(t *testing.T) {
	now := time.Now().UTC()

	t.Run("exact cover flips in place", func(t *testing.T) {
		s := NewSet("v1", nil)
		iv := open(t, s, 1, 10, 500)

		diff, spans, err := s.Claim(rng(t, 1, 10), "bk1", now)
		require.NoError(t, err)
		assert.Empty(t, diff.Create)
		assert.Empty(t, diff.Delete)
		require.Len(t, diff.Update, 1)
		assert.Equal(t, iv.ID, diff.Update[0].ID)
		assert.Equal(t, StatusBooked, diff.Update[0].Status)
		assert.Equal(t, "bk1", diff.Update[0].BookingID)

		require.Len(t, spans, 1)
		assert.Equal(t, 5000.0, pricing.Quote(spans))
	})

	t.Run("middle claim leaves head and tail", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 10, 500)

		diff, _, err := s.Claim(rng(t, 4, 6), "bk1", now)
		require.NoError(t, err)
		assert.Len(t, diff.Delete, 1)
		require.Len(t, diff.Create, 3)

		items := s.Items()
		require.Len(t, items, 3)
		assert.Equal(t, StatusAvailable, items[0].Status)
		assert.Equal(t, day(1), items[0].Start)
		assert.Equal(t, day(3), items[0].End)
		assert.Equal(t, StatusBooked, items[1].Status)
		assert.Equal(t, day(4), items[1].Start)
		assert.Equal(t, day(6), items[1].End)
		assert.Equal(t, StatusAvailable, items[2].Status)
		assert.Equal(t, day(7), items[2].Start)
		assert.Equal(t, day(10), items[2].End)
	})

	t.Run("claim spanning two periods prices each", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 5, 500)
		open(t, s, 6, 10, 800)

		_, spans, err := s.Claim(rng(t, 4, 7), "bk1", now)
		require.NoError(t, err)
		require.Len(t, spans, 2)
		// Days 4-5 at 500, days 6-7 at 800.
		assert.Equal(t, 2*500.0+2*800.0, pricing.Quote(spans))
	})

	t.Run("claim over booked days fails", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 10, 500)
		_, _, err := s.Claim(rng(t, 3, 5), "bk1", now)
		require.NoError(t, err)

		_, _, err = s.Claim(rng(t, 5, 8), "bk2", now)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("claim over unlisted days fails", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 10, 500)
		_, _, err := s.Claim(rng(t, 8, 12), "bk1", now)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestRelease(t *testing.T) {
	now := time.Now().UTC()

	t.Run("unknown booking", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 10, 500)
		_, err := s.Release("missing", now)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("merges the split back together", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 10, 500)
		_, _, err := s.Claim(rng(t, 4, 6), "bk1", now)
		require.NoError(t, err)
		require.Len(t, s.Items(), 3)

		diff, err := s.Release("bk1", now)
		require.NoError(t, err)

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, day(1), items[0].Start)
		assert.Equal(t, day(10), items[0].End)
		assert.Equal(t, StatusAvailable, items[0].Status)
		assert.Empty(t, items[0].BookingID)

		assert.Len(t, diff.Delete, 3)
		assert.Len(t, diff.Create, 1)
	})

	t.Run("does not merge across different prices", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 5, 500)
		open(t, s, 6, 10, 800)
		_, _, err := s.Claim(rng(t, 6, 10), "bk1", now)
		require.NoError(t, err)

		_, err = s.Release("bk1", now)
		require.NoError(t, err)
		assert.Len(t, s.Items(), 2, "neighbors with different prices stay separate")
	})

	t.Run("release without adjacent neighbors is an update", func(t *testing.T) {
		s := NewSet("v1", nil)
		open(t, s, 1, 10, 500)
		_, _, err := s.Claim(rng(t, 1, 10), "bk1", now)
		require.NoError(t, err)

		diff, err := s.Release("bk1", now)
		require.NoError(t, err)
		require.Len(t, diff.Update, 1)
		assert.Empty(t, diff.Create)
		assert.Empty(t, diff.Delete)
		assert.Equal(t, StatusAvailable, s.Items()[0].Status)
	})
}
