package booking

import (
	"testing"

	"busx-cli/model"
)

// testSeatMap mirrors the top rows of the standard 2+1 coach layout: a
// corridor in column 2 and a door cell at row 2 column 1.
func testSeatMap() model.SeatMap {
	return model.SeatMap{
		TripID: "TRIP-1001",
		Layout: model.SeatLayout{
			Rows: 3,
			Cols: 5,
			Cells: [][]model.CellType{
				{0, 2, 0, 0, 0},
				{3, 2, 0, 0, 0},
				{0, 2, 0, 0, 0},
			},
		},
		Seats: []model.Seat{
			{No: 1, Row: 1, Col: 1, Status: model.SeatEmpty},
			{No: 2, Row: 1, Col: 3, Status: model.SeatTaken},
			{No: 3, Row: 1, Col: 4, Status: model.SeatEmpty},
			{No: 4, Row: 1, Col: 5, Status: model.SeatEmpty},
			{No: 5, Row: 2, Col: 3, Status: model.SeatEmpty},
			{No: 6, Row: 2, Col: 4, Status: model.SeatUnavailable},
			{No: 7, Row: 2, Col: 5, Status: model.SeatEmpty},
			{No: 8, Row: 3, Col: 1, Status: model.SeatEmpty},
			{No: 9, Row: 3, Col: 3, Status: model.SeatEmpty},
		},
		UnitPrice: 695,
	}
}

func mustGrid(t *testing.T) *SeatGrid {
	t.Helper()
	grid, err := NewSeatGrid(testSeatMap())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return grid
}

func TestNewSeatGrid_Lookups(t *testing.T) {
	grid := mustGrid(t)

	if grid.Rows() != 3 || grid.Cols() != 5 {
		t.Fatalf("unexpected dimensions: %dx%d", grid.Rows(), grid.Cols())
	}
	if got := grid.CellAt(1, 2); got != model.CellCorridor {
		t.Fatalf("expected corridor at (1,2), got %d", got)
	}
	if got := grid.CellAt(2, 1); got != model.CellDoor {
		t.Fatalf("expected door at (2,1), got %d", got)
	}
	if got := grid.CellAt(1, 1); got != model.CellOrdinary {
		t.Fatalf("expected ordinary cell at (1,1), got %d", got)
	}

	seat, ok := grid.SeatAt(1, 3)
	if !ok || seat.No != 2 {
		t.Fatalf("expected seat 2 at (1,3), got %+v ok=%v", seat, ok)
	}
	if _, ok := grid.SeatAt(1, 2); ok {
		t.Fatal("expected no seat on the corridor cell")
	}

	seat, ok = grid.SeatByNumber(7)
	if !ok || seat.Row != 2 || seat.Col != 5 {
		t.Fatalf("unexpected seat 7: %+v ok=%v", seat, ok)
	}
	if _, ok := grid.SeatByNumber(99); ok {
		t.Fatal("expected seat 99 to be unknown")
	}
	if grid.SeatCount() != 9 {
		t.Fatalf("expected 9 seats, got %d", grid.SeatCount())
	}
}

func TestNewSeatGrid_OutOfBoundsPosition(t *testing.T) {
	t.Parallel()
	seatMap := testSeatMap()
	seatMap.Seats = append(seatMap.Seats, model.Seat{No: 40, Row: 4, Col: 1, Status: model.SeatEmpty})
	if _, err := NewSeatGrid(seatMap); err == nil {
		t.Fatal("expected error for seat outside the layout")
	}
}

func TestNewSeatGrid_SeatOnCorridor(t *testing.T) {
	t.Parallel()
	seatMap := testSeatMap()
	seatMap.Seats = append(seatMap.Seats, model.Seat{No: 40, Row: 1, Col: 2, Status: model.SeatEmpty})
	if _, err := NewSeatGrid(seatMap); err == nil {
		t.Fatal("expected error for seat on a corridor cell")
	}
}

func TestNewSeatGrid_SeatOnDoor(t *testing.T) {
	t.Parallel()
	seatMap := testSeatMap()
	seatMap.Seats = append(seatMap.Seats, model.Seat{No: 40, Row: 2, Col: 1, Status: model.SeatEmpty})
	if _, err := NewSeatGrid(seatMap); err == nil {
		t.Fatal("expected error for seat on a door cell")
	}
}

func TestNewSeatGrid_DuplicateCell(t *testing.T) {
	t.Parallel()
	seatMap := testSeatMap()
	seatMap.Seats = append(seatMap.Seats, model.Seat{No: 40, Row: 1, Col: 1, Status: model.SeatEmpty})
	if _, err := NewSeatGrid(seatMap); err == nil {
		t.Fatal("expected error for two seats on one cell")
	}
}

func TestNewSeatGrid_DuplicateNumber(t *testing.T) {
	t.Parallel()
	seatMap := testSeatMap()
	seatMap.Seats = append(seatMap.Seats, model.Seat{No: 1, Row: 3, Col: 4, Status: model.SeatEmpty})
	if _, err := NewSeatGrid(seatMap); err == nil {
		t.Fatal("expected error for duplicate seat number")
	}
}

func TestNewSeatGrid_RaggedLayout(t *testing.T) {
	t.Parallel()
	seatMap := testSeatMap()
	seatMap.Layout.Cells[1] = seatMap.Layout.Cells[1][:3]
	if _, err := NewSeatGrid(seatMap); err == nil {
		t.Fatal("expected error for ragged cell matrix")
	}
}

func TestMaxSeatNumber_SparseNumbering(t *testing.T) {
	t.Parallel()
	seatMap := testSeatMap()
	seatMap.Seats[8].No = 120
	grid, err := NewSeatGrid(seatMap)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if grid.SeatCount() != 9 {
		t.Fatalf("expected 9 seats, got %d", grid.SeatCount())
	}
	if grid.MaxSeatNumber() != 120 {
		t.Fatalf("expected max seat number 120, got %d", grid.MaxSeatNumber())
	}
}
