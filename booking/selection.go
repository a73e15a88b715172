package booking

import "busx-cli/model"

// DefaultMaxSeats caps how many seats one booking may select when no
// explicit limit is configured.
const DefaultMaxSeats = 4

// Selection is the ordered set of seat numbers chosen by the traveler.
// Insertion order is significant: it determines which passenger record is
// assigned to which seat. Selection never mutates the underlying grid.
type Selection struct {
	grid  *SeatGrid
	limit int
	seats []int
}

// NewSelection creates an empty selection over a grid. A non-positive
// limit falls back to DefaultMaxSeats.
func NewSelection(grid *SeatGrid, limit int) *Selection {
	if limit <= 0 {
		limit = DefaultMaxSeats
	}
	return &Selection{grid: grid, limit: limit}
}

// Limit returns the maximum number of selectable seats.
func (s *Selection) Limit() int { return s.limit }

// Seats returns the selected seat numbers in selection order. The slice is
// a copy; callers cannot mutate the selection through it.
func (s *Selection) Seats() []int {
	out := make([]int, len(s.seats))
	copy(out, s.seats)
	return out
}

// Len returns the current selection size.
func (s *Selection) Len() int { return len(s.seats) }

// Contains reports whether a seat number is currently selected.
func (s *Selection) Contains(no int) bool {
	for _, seat := range s.seats {
		if seat == no {
			return true
		}
	}
	return false
}

// Toggle flips a seat in or out of the selection and reports whether the
// selection changed. Taken, unavailable and unknown seats are ignored, as
// is any attempt to grow past the limit. Removal preserves the relative
// order of the remaining seats.
func (s *Selection) Toggle(no int) bool {
	seat, ok := s.grid.SeatByNumber(no)
	if !ok || seat.Status != model.SeatEmpty {
		return false
	}

	for i, selected := range s.seats {
		if selected == no {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			return true
		}
	}

	if len(s.seats) >= s.limit {
		return false
	}
	s.seats = append(s.seats, no)
	return true
}

// Reset empties the selection. Called whenever a new seat map loads; a
// selection never survives a trip change.
func (s *Selection) Reset() {
	s.seats = s.seats[:0]
}

// Total computes the booking price for a selection at the given unit
// price. Pure; recomputed on every selection or trip change.
func Total(seats []int, unitPrice float64) float64 {
	return float64(len(seats)) * unitPrice
}
