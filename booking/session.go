package booking

import (
	"errors"
	"strings"

	"busx-cli/model"
)

// Step identifies one stage of the booking pipeline.
type Step int

const (
	StepSearch Step = iota
	StepSeatSelection
	StepPassengerEntry
	StepSummary
	StepPurchasing
	StepPurchased
)

func (s Step) String() string {
	switch s {
	case StepSearch:
		return "search"
	case StepSeatSelection:
		return "seat selection"
	case StepPassengerEntry:
		return "passenger entry"
	case StepSummary:
		return "summary"
	case StepPurchasing:
		return "purchasing"
	case StepPurchased:
		return "purchased"
	default:
		return "unknown"
	}
}

var (
	// ErrNoTrip rejects starting a seat selection without a trip id.
	ErrNoTrip = errors.New("booking: trip id is required")
	// ErrEmptySelection rejects confirming passengers with no seats chosen.
	ErrEmptySelection = errors.New("booking: no seats selected")
	// ErrRosterMismatch rejects confirming without one passenger per seat.
	ErrRosterMismatch = errors.New("booking: one passenger per selected seat is required")
	// ErrNoSnapshot rejects purchasing before passenger entry was confirmed.
	ErrNoSnapshot = errors.New("booking: no booking snapshot")
)

// Session is the single owner of all mutable booking state: the current
// step, the seat selection, the passenger roster and the frozen snapshot.
// All mutations happen in response to one event at a time; a selection
// change propagates to the roster and the total before the method returns,
// so observers never see a torn intermediate state.
type Session struct {
	limit int

	step      Step
	tripID    string
	unitPrice float64
	grid      *SeatGrid
	selection *Selection
	roster    []model.Passenger
	contact   model.ContactInfo
	snapshot  *model.TicketSaleRequest
	total     float64
	purchase  Purchase
}

// NewSession creates a session at the search step. A non-positive limit
// falls back to DefaultMaxSeats.
func NewSession(limit int) *Session {
	if limit <= 0 {
		limit = DefaultMaxSeats
	}
	return &Session{limit: limit, step: StepSearch}
}

// Step returns the current pipeline stage.
func (s *Session) Step() Step { return s.step }

// TripID returns the trip the session is booking, if any.
func (s *Session) TripID() string { return s.tripID }

// UnitPrice returns the per-seat price of the loaded trip.
func (s *Session) UnitPrice() float64 { return s.unitPrice }

// Grid returns the seat grid of the loaded trip, or nil at the search step.
func (s *Session) Grid() *SeatGrid { return s.grid }

// SeatLimit returns the maximum number of selectable seats.
func (s *Session) SeatLimit() int { return s.limit }

// StartTrip loads a freshly fetched seat map and enters seat selection.
// Selection, roster and snapshot never survive a trip change. A schema
// that fails validation leaves the previous state untouched, so a bad
// fetch cannot corrupt an earlier successful trip view.
func (s *Session) StartTrip(seatMap model.SeatMap) error {
	if strings.TrimSpace(seatMap.TripID) == "" {
		return ErrNoTrip
	}
	grid, err := NewSeatGrid(seatMap)
	if err != nil {
		return err
	}

	s.tripID = seatMap.TripID
	s.unitPrice = seatMap.UnitPrice
	s.grid = grid
	s.selection = NewSelection(grid, s.limit)
	s.roster = nil
	s.contact = model.ContactInfo{}
	s.snapshot = nil
	s.total = 0
	s.purchase = Purchase{}
	s.step = StepSeatSelection
	return nil
}

// Toggle flips one seat and synchronously propagates the change: the
// roster is re-synced and the total recomputed before Toggle returns.
// Reports whether the selection changed.
func (s *Session) Toggle(no int) bool {
	if s.selection == nil {
		return false
	}
	if !s.selection.Toggle(no) {
		return false
	}
	seats := s.selection.Seats()
	s.roster = SyncRoster(s.roster, seats)
	s.total = Total(seats, s.unitPrice)
	return true
}

// Selection returns the chosen seat numbers in selection order.
func (s *Session) Selection() []int {
	if s.selection == nil {
		return nil
	}
	return s.selection.Seats()
}

// Roster returns a copy of the passenger roster, one record per selected
// seat, positionally aligned to the selection.
func (s *Session) Roster() []model.Passenger {
	out := make([]model.Passenger, len(s.roster))
	copy(out, s.roster)
	return out
}

// SetRosterEntry stores edited personal fields for the passenger at the
// given index. The seat binding is owned by the selection and cannot be
// changed here.
func (s *Session) SetRosterEntry(i int, p model.Passenger) {
	if i < 0 || i >= len(s.roster) {
		return
	}
	p.Seat = s.roster[i].Seat
	s.roster[i] = p
}

// Contact returns the booking-wide contact record.
func (s *Session) Contact() model.ContactInfo { return s.contact }

// SetContact stores the contact record as the traveler types it.
func (s *Session) SetContact(c model.ContactInfo) { s.contact = c }

// TotalPrice returns len(selection) * unitPrice for the loaded trip.
func (s *Session) TotalPrice() float64 { return s.total }

// ConfirmPassengers validates the passenger form and freezes the booking
// snapshot. Each passenger's seat is forced to the selection entry at the
// same index regardless of what the form held, so snapshot and selection
// can never disagree. On success the session moves to the summary step.
func (s *Session) ConfirmPassengers(contact model.ContactInfo, passengers []model.Passenger) error {
	if s.grid == nil || s.tripID == "" {
		return ErrNoTrip
	}
	seats := s.selection.Seats()
	if len(seats) == 0 {
		return ErrEmptySelection
	}
	if len(passengers) != len(seats) {
		return ErrRosterMismatch
	}
	if err := ValidatePassengerForm(contact, passengers); err != nil {
		return err
	}

	frozen := make([]model.Passenger, len(seats))
	for i := range seats {
		frozen[i] = passengers[i]
		frozen[i].Seat = seats[i]
	}

	s.contact = contact
	s.roster = SyncRoster(frozen, seats)
	s.snapshot = &model.TicketSaleRequest{
		TripID:     s.tripID,
		Seats:      seats,
		Contact:    contact,
		Passengers: frozen,
	}
	s.total = Total(seats, s.unitPrice)
	s.purchase = Purchase{}
	s.step = StepSummary
	return nil
}

// Snapshot returns a copy of the frozen booking payload, if one exists.
func (s *Session) Snapshot() (model.TicketSaleRequest, bool) {
	if s.snapshot == nil {
		return model.TicketSaleRequest{}, false
	}
	snap := *s.snapshot
	snap.Seats = append([]int(nil), s.snapshot.Seats...)
	snap.Passengers = append([]model.Passenger(nil), s.snapshot.Passengers...)
	return snap, true
}

// Enter moves the session to the requested step when its upstream context
// exists. A step entered without its prerequisites resolves to the search
// step instead of erroring, mirroring how a missing navigation state
// redirects rather than crashes.
func (s *Session) Enter(step Step) Step {
	switch step {
	case StepSearch:
		s.Reset()
	case StepSeatSelection:
		if s.grid == nil {
			s.Reset()
			return s.step
		}
		s.step = step
	case StepPassengerEntry:
		if s.grid == nil || s.selection.Len() == 0 {
			s.Reset()
			return s.step
		}
		s.step = step
	case StepSummary, StepPurchasing, StepPurchased:
		if s.snapshot == nil {
			s.Reset()
			return s.step
		}
		s.step = step
	}
	return s.step
}

// BackToSeats returns from passenger entry to the seat map, keeping the
// selection and the roster. The snapshot, being downstream, is discarded.
func (s *Session) BackToSeats() {
	if s.grid == nil {
		s.Reset()
		return
	}
	s.snapshot = nil
	s.purchase = Purchase{}
	s.step = StepSeatSelection
}

// BackToPassengerEntry returns from the summary to the form. Entered data
// is kept; the frozen snapshot is discarded and rebuilt on resubmit.
func (s *Session) BackToPassengerEntry() {
	if s.grid == nil || s.selection.Len() == 0 {
		s.Reset()
		return
	}
	s.snapshot = nil
	s.purchase = Purchase{}
	s.step = StepPassengerEntry
}

// Reset abandons the booking and returns to the search step.
func (s *Session) Reset() {
	s.step = StepSearch
	s.tripID = ""
	s.unitPrice = 0
	s.grid = nil
	s.selection = nil
	s.roster = nil
	s.contact = model.ContactInfo{}
	s.snapshot = nil
	s.total = 0
	s.purchase = Purchase{}
}

// BeginPurchase starts submitting the frozen snapshot. It fails locally
// when the snapshot is missing, a submission is already in flight, or a
// successful purchase was already recorded.
func (s *Session) BeginPurchase() error {
	if s.snapshot == nil {
		return ErrNoSnapshot
	}
	if err := s.purchase.Begin(*s.snapshot); err != nil {
		return err
	}
	s.step = StepPurchasing
	return nil
}

// FinishPurchase records the remote result. A confirmed sale is terminal;
// a domain rejection returns the session to the summary for retry.
func (s *Session) FinishPurchase(res model.TicketSaleResponse) {
	s.purchase.Resolve(res)
	if s.purchase.Status() == PurchaseSucceeded {
		s.step = StepPurchased
		return
	}
	s.step = StepSummary
}

// FailPurchase records a transport-level failure and returns the session
// to the summary for retry.
func (s *Session) FailPurchase(err error) {
	s.purchase.Fail(err)
	s.step = StepSummary
}

// Purchase exposes the submission controller state for rendering.
func (s *Session) Purchase() *Purchase { return &s.purchase }
