package model

// Gender values accepted on passenger records.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// ContactInfo is the single contact record for a booking, independent of
// how many seats were selected.
type ContactInfo struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}

// Passenger holds the per-seat traveler details. Records are positionally
// aligned to the seat selection order.
type Passenger struct {
	Seat       int    `json:"seat" validate:"required,gt=0"`
	FirstName  string `json:"firstName" validate:"required,min=2"`
	LastName   string `json:"lastName" validate:"required,min=2"`
	NationalID string `json:"idNo" validate:"required,len=11,numeric"`
	Gender     string `json:"gender" validate:"oneof=male female"`
}

// TicketSaleRequest is the payload for POST /tickets/sell. Once built from
// a confirmed passenger form it is treated as an immutable snapshot.
type TicketSaleRequest struct {
	TripID     string      `json:"tripId" validate:"required"`
	Seats      []int       `json:"seats" validate:"min=1,dive,gt=0"`
	Contact    ContactInfo `json:"contact" validate:"required"`
	Passengers []Passenger `json:"passengers" validate:"min=1,dive"`
}

// TicketSaleResponse is the purchase result. OK=false carries a
// human-readable message and no PNR.
type TicketSaleResponse struct {
	OK      bool   `json:"ok"`
	PNR     string `json:"pnr,omitempty"`
	Message string `json:"message"`
}
