package model

// CellType describes one cell of the bus layout matrix. Wire values come
// from the seat schema endpoint; anything unrecognized renders as an
// ordinary cell.
type CellType int

const (
	CellOrdinary CellType = 0
	CellCorridor CellType = 2
	CellDoor     CellType = 3
)

// SeatStatus is the occupancy state reported by the seat schema. Selection
// is tracked client-side and never written back into fetched seats.
type SeatStatus string

const (
	SeatEmpty       SeatStatus = "empty"
	SeatTaken       SeatStatus = "taken"
	SeatUnavailable SeatStatus = "unavailable"
)

// Seat is one sellable seat. Row and Col are 1-based indices into the
// layout matrix and must point at an ordinary cell.
type Seat struct {
	No     int        `json:"no"`
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Status SeatStatus `json:"status"`
}

// SeatLayout is the rectangular cell matrix of the bus.
type SeatLayout struct {
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	Cells [][]CellType `json:"cells"`
}

// SeatMap is the full seat schema for one trip.
type SeatMap struct {
	TripID    string     `json:"tripId"`
	Layout    SeatLayout `json:"layout"`
	Seats     []Seat     `json:"seats"`
	UnitPrice float64    `json:"unitPrice"`
}
