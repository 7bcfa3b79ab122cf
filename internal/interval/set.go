package interval

import (
	"iter"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pricing"
)

// Set is one vehicle's interval collection, ordered by start date with ties
// broken by id. All mutations validate the no-overlap invariant and report
// their effect as a Diff so a repository can persist them as one unit.
// A Set is not safe for concurrent use; callers serialize access through the
// per-vehicle lock.
type Set struct {
	vehicleID string
	items     []*Interval
}

// NewSet builds a set over the given intervals. The slice is copied.
func NewSet(vehicleID string, items []*Interval) *Set {
	s := &Set{vehicleID: vehicleID, items: make([]*Interval, len(items))}
	copy(s.items, items)
	s.sort()
	return s
}

func (s *Set) sort() {
	sort.Slice(s.items, func(i, j int) bool {
		if s.items[i].Start.Equal(s.items[j].Start) {
			return s.items[i].ID < s.items[j].ID
		}
		return s.items[i].Start.Before(s.items[j].Start)
	})
}

// Items returns the intervals in order.
func (s *Set) Items() []*Interval {
	return s.items
}

// Get returns the interval with the given id.
func (s *Set) Get(id string) (*Interval, bool) {
	for _, iv := range s.items {
		if iv.ID == id {
			return iv, true
		}
	}
	return nil, false
}

// Add inserts a new interval. The exclusivity policy is total: the new range
// may not intersect any existing interval, whatever its status. An empty ID
// is assigned, an empty status defaults to available.
func (s *Set) Add(iv *Interval) error {
	r, err := daterange.New(iv.Start, iv.End)
	if err != nil {
		return err
	}
	for _, existing := range s.items {
		if existing.Range().Overlaps(r) {
			return ErrOverlap
		}
	}

	iv.VehicleID = s.vehicleID
	iv.Start = r.Start
	iv.End = r.End
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	if iv.Status == "" {
		iv.Status = StatusAvailable
	}
	s.items = append(s.items, iv)
	s.sort()
	return nil
}

// Remove deletes the interval with the given id. A booked interval cannot be
// removed; its booking must be cancelled first.
func (s *Set) Remove(id string) error {
	for i, iv := range s.items {
		if iv.ID != id {
			continue
		}
		if iv.Status == StatusBooked {
			return ErrConflict
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return nil
	}
	return ErrNotFound
}

// SetStatus updates an interval's status. Idempotent: setting the current
// status is a no-op.
func (s *Set) SetStatus(id string, status Status) error {
	iv, ok := s.Get(id)
	if !ok {
		return ErrNotFound
	}
	if iv.Status == status {
		return nil
	}
	iv.Status = status
	if status == StatusAvailable {
		iv.BookingID = ""
	}
	return nil
}

// FindOverlapping yields, in order, every interval whose range intersects r.
// The sequence is finite and restartable.
func (s *Set) FindOverlapping(r daterange.Range) iter.Seq[*Interval] {
	return func(yield func(*Interval) bool) {
		for _, iv := range s.items {
			if iv.Range().Overlaps(r) {
				if !yield(iv) {
					return
				}
			}
		}
	}
}

// DayStatus projects the window [r.Start, r.End] onto a day -> status map.
// Days no interval covers are absent. Should two intervals transiently cover
// the same day, booked wins.
func (s *Set) DayStatus(r daterange.Range) map[string]Status {
	out := make(map[string]Status)
	for iv := range s.FindOverlapping(r) {
		sub, ok := iv.Range().Intersect(r)
		if !ok {
			continue
		}
		status := iv.Status
		sub.EachDay(func(d time.Time) {
			key := d.Format(daterange.DayFormat)
			if out[key] != StatusBooked {
				out[key] = status
			}
		})
	}
	return out
}

// IsRangeFree reports whether every day of r is open for booking: covered by
// an available interval and touched by no booked one. Days the owner never
// opened are not free.
func (s *Set) IsRangeFree(r daterange.Range) bool {
	days := s.DayStatus(r)
	free := true
	r.EachDay(func(d time.Time) {
		if days[d.Format(daterange.DayFormat)] != StatusAvailable {
			free = false
		}
	})
	return free
}

// Claim marks the days of r as booked by bookingID, splitting the covering
// available intervals so that uncovered remainders stay available. It returns
// the resulting diff and the priced spans of the claim.
func (s *Set) Claim(r daterange.Range, bookingID string, now time.Time) (Diff, []pricing.Span, error) {
	if !s.IsRangeFree(r) {
		return Diff{}, nil, ErrUnavailable
	}

	var diff Diff
	var spans []pricing.Span
	next := make([]*Interval, 0, len(s.items))

	for _, iv := range s.items {
		if iv.Status != StatusAvailable || !iv.Range().Overlaps(r) {
			next = append(next, iv)
			continue
		}

		sub, _ := iv.Range().Intersect(r)
		spans = append(spans, pricing.Span{Range: sub, PricePerDay: iv.PricePerDay})

		if sub == iv.Range() {
			// Exact cover: flip in place, keeping the interval's identity.
			iv.Status = StatusBooked
			iv.BookingID = bookingID
			iv.UpdatedAt = now
			diff.Update = append(diff.Update, iv)
			next = append(next, iv)
			continue
		}

		diff.Delete = append(diff.Delete, iv.ID)

		if iv.Range().Start.Before(sub.Start) {
			head := s.newPiece(iv, iv.Range().Start, sub.Start.AddDate(0, 0, -1), StatusAvailable, "", now)
			diff.Create = append(diff.Create, head)
			next = append(next, head)
		}

		booked := s.newPiece(iv, sub.Start, sub.End, StatusBooked, bookingID, now)
		diff.Create = append(diff.Create, booked)
		next = append(next, booked)

		if iv.Range().End.After(sub.End) {
			tail := s.newPiece(iv, sub.End.AddDate(0, 0, 1), iv.Range().End, StatusAvailable, "", now)
			diff.Create = append(diff.Create, tail)
			next = append(next, tail)
		}
	}

	s.items = next
	s.sort()
	return diff, spans, nil
}

func (s *Set) newPiece(src *Interval, start, end time.Time, status Status, bookingID string, now time.Time) *Interval {
	return &Interval{
		ID:          uuid.NewString(),
		VehicleID:   s.vehicleID,
		Start:       start,
		End:         end,
		PricePerDay: src.PricePerDay,
		Status:      status,
		BookingID:   bookingID,
		Description: src.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Release flips the intervals claimed by bookingID back to available and
// merges them with adjacent available neighbors of equal price, undoing the
// fragmentation the claim introduced.
func (s *Set) Release(bookingID string, now time.Time) (Diff, error) {
	flipped := make(map[string]bool)
	for _, iv := range s.items {
		if iv.Status == StatusBooked && iv.BookingID == bookingID {
			iv.Status = StatusAvailable
			iv.BookingID = ""
			iv.UpdatedAt = now
			flipped[iv.ID] = true
		}
	}
	if len(flipped) == 0 {
		return Diff{}, ErrNotFound
	}

	var diff Diff
	next := make([]*Interval, 0, len(s.items))
	i := 0
	for i < len(s.items) {
		iv := s.items[i]
		if iv.Status != StatusAvailable {
			next = append(next, iv)
			i++
			continue
		}

		// Collect the chain of same-price adjacent available neighbors.
		group := []*Interval{iv}
		merged := iv.Range()
		j := i + 1
		for j < len(s.items) {
			nx := s.items[j]
			if nx.Status != StatusAvailable || nx.PricePerDay != iv.PricePerDay || !merged.Adjacent(nx.Range()) {
				break
			}
			merged, _ = merged.Merge(nx.Range())
			group = append(group, nx)
			j++
		}

		touchesRelease := false
		for _, g := range group {
			if flipped[g.ID] {
				touchesRelease = true
			}
		}

		if len(group) > 1 && touchesRelease {
			// Replace the whole chain with one interval. Pre-existing
			// fragmentation not touched by this release is left alone.
			for _, g := range group {
				diff.Delete = append(diff.Delete, g.ID)
			}
			union := s.newPiece(iv, merged.Start, merged.End, StatusAvailable, "", now)
			diff.Create = append(diff.Create, union)
			next = append(next, union)
		} else {
			for _, g := range group {
				if flipped[g.ID] {
					diff.Update = append(diff.Update, g)
				}
				next = append(next, g)
			}
		}
		i = j
	}

	s.items = next
	s.sort()
	return diff, nil
}
