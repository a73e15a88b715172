package booking

import (
	"fmt"

	"busx-cli/model"
)

type gridKey struct {
	row int
	col int
}

// SeatGrid indexes a trip's seat schema for constant-time lookups by
// position and by seat number. It is immutable after construction.
type SeatGrid struct {
	layout model.SeatLayout
	byPos  map[gridKey]model.Seat
	byNo   map[int]model.Seat
}

// NewSeatGrid validates the schema and builds the lookup structure. It
// fails without partially building when a seat falls outside the matrix,
// lands on a non-ordinary cell, shares a cell with another seat, or reuses
// a seat number.
func NewSeatGrid(seatMap model.SeatMap) (*SeatGrid, error) {
	layout := seatMap.Layout
	if layout.Rows <= 0 || layout.Cols <= 0 {
		return nil, fmt.Errorf("seat grid: layout is %dx%d", layout.Rows, layout.Cols)
	}
	if len(layout.Cells) != layout.Rows {
		return nil, fmt.Errorf("seat grid: expected %d cell rows, got %d", layout.Rows, len(layout.Cells))
	}
	for i, row := range layout.Cells {
		if len(row) != layout.Cols {
			return nil, fmt.Errorf("seat grid: row %d has %d cells, expected %d", i+1, len(row), layout.Cols)
		}
	}

	byPos := make(map[gridKey]model.Seat, len(seatMap.Seats))
	byNo := make(map[int]model.Seat, len(seatMap.Seats))
	for _, seat := range seatMap.Seats {
		if seat.No <= 0 {
			return nil, fmt.Errorf("seat grid: invalid seat number %d", seat.No)
		}
		if seat.Row < 1 || seat.Row > layout.Rows || seat.Col < 1 || seat.Col > layout.Cols {
			return nil, fmt.Errorf("seat grid: seat %d at (%d,%d) is outside the %dx%d layout", seat.No, seat.Row, seat.Col, layout.Rows, layout.Cols)
		}
		if cell := cellAt(layout, seat.Row, seat.Col); cell != model.CellOrdinary {
			return nil, fmt.Errorf("seat grid: seat %d at (%d,%d) references a non-ordinary cell (%d)", seat.No, seat.Row, seat.Col, cell)
		}
		key := gridKey{row: seat.Row, col: seat.Col}
		if other, ok := byPos[key]; ok {
			return nil, fmt.Errorf("seat grid: seats %d and %d share cell (%d,%d)", other.No, seat.No, seat.Row, seat.Col)
		}
		if _, ok := byNo[seat.No]; ok {
			return nil, fmt.Errorf("seat grid: duplicate seat number %d", seat.No)
		}
		byPos[key] = seat
		byNo[seat.No] = seat
	}

	return &SeatGrid{layout: layout, byPos: byPos, byNo: byNo}, nil
}

// Rows returns the number of layout rows.
func (g *SeatGrid) Rows() int { return g.layout.Rows }

// Cols returns the number of layout columns.
func (g *SeatGrid) Cols() int { return g.layout.Cols }

// CellAt returns the cell type at a 1-based (row, col). Positions outside
// the matrix report a corridor so callers can treat them as dead space.
func (g *SeatGrid) CellAt(row int, col int) model.CellType {
	if row < 1 || row > g.layout.Rows || col < 1 || col > g.layout.Cols {
		return model.CellCorridor
	}
	return cellAt(g.layout, row, col)
}

// SeatAt returns the seat occupying a 1-based (row, col), if any.
func (g *SeatGrid) SeatAt(row int, col int) (model.Seat, bool) {
	seat, ok := g.byPos[gridKey{row: row, col: col}]
	return seat, ok
}

// SeatByNumber returns the seat with the given number, if any.
func (g *SeatGrid) SeatByNumber(no int) (model.Seat, bool) {
	seat, ok := g.byNo[no]
	return seat, ok
}

// SeatCount returns the number of seats in the schema.
func (g *SeatGrid) SeatCount() int { return len(g.byNo) }

// MaxSeatNumber returns the highest seat number in the schema, or zero
// when the schema has no seats. Numbering need not be dense, so this can
// exceed SeatCount.
func (g *SeatGrid) MaxSeatNumber() int {
	max := 0
	for no := range g.byNo {
		if no > max {
			max = no
		}
	}
	return max
}

func cellAt(layout model.SeatLayout, row int, col int) model.CellType {
	switch cell := layout.Cells[row-1][col-1]; cell {
	case model.CellCorridor, model.CellDoor:
		return cell
	default:
		return model.CellOrdinary
	}
}
