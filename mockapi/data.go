package mockapi

import (
	"time"

	"busx-cli/model"
)

var agencies = []model.Agency{
	{ID: "ist-alibeykoy", Name: "İstanbul – Alibeyköy"},
	{ID: "ist-bayrampasa", Name: "İstanbul – Bayrampaşa"},
	{ID: "ank-astim", Name: "Ankara – AŞTİ"},
	{ID: "bursa-otogar", Name: "Bursa – Otogar"},
}

// tripTemplate describes a trip that runs every day on a fixed clock. The
// handler rebases departure and arrival onto the requested calendar day, so
// the server stays useful no matter when it is queried.
type tripTemplate struct {
	ID             string
	Company        string
	FromID         string
	ToID           string
	DepartureHour  int
	DepartureMin   int
	DurationMin    int
	Price          float64
	AvailableSeats int
}

var tripTemplates = []tripTemplate{
	{
		ID:             "TRIP-1001",
		Company:        "Atlas Lines",
		FromID:         "ist-alibeykoy",
		ToID:           "ank-astim",
		DepartureHour:  8,
		DepartureMin:   30,
		DurationMin:    285,
		Price:          695,
		AvailableSeats: 18,
	},
	{
		ID:             "TRIP-1002",
		Company:        "Metro Express",
		FromID:         "ist-bayrampasa",
		ToID:           "ank-astim",
		DepartureHour:  9,
		DepartureMin:   15,
		DurationMin:    290,
		Price:          720,
		AvailableSeats: 12,
	},
	{
		ID:             "TRIP-1003",
		Company:        "Düzce Güven",
		FromID:         "ist-bayrampasa",
		ToID:           "ank-astim",
		DepartureHour:  12,
		DepartureMin:   15,
		DurationMin:    290,
		Price:          750,
		AvailableSeats: 10,
	},
}

func (t tripTemplate) schedule(day time.Time, agencyNames map[string]string) model.Schedule {
	departure := time.Date(day.Year(), day.Month(), day.Day(), t.DepartureHour, t.DepartureMin, 0, 0, day.Location())
	return model.Schedule{
		ID:             t.ID,
		Company:        t.Company,
		From:           agencyNames[t.FromID],
		To:             agencyNames[t.ToID],
		Departure:      departure,
		Arrival:        departure.Add(time.Duration(t.DurationMin) * time.Minute),
		Price:          t.Price,
		AvailableSeats: t.AvailableSeats,
	}
}

// busLayout is a 10x5 coach: two seats left of the corridor, two on the
// right, doors at rows 2 and 9, a full bench across the back row.
var busLayout = model.SeatLayout{
	Rows: 10,
	Cols: 5,
	Cells: [][]model.CellType{
		{0, 2, 0, 0, 0},
		{3, 2, 0, 0, 0},
		{0, 2, 0, 0, 0},
		{0, 2, 0, 0, 0},
		{0, 2, 0, 0, 0},
		{0, 2, 0, 0, 0},
		{0, 2, 0, 0, 0},
		{0, 2, 0, 0, 0},
		{3, 2, 0, 0, 0},
		{0, 0, 0, 0, 0},
	},
}

func busSeats(taken map[int]bool) []model.Seat {
	seats := make([]model.Seat, 0, 39)
	no := 1
	for row := 1; row <= busLayout.Rows; row++ {
		for col := 1; col <= busLayout.Cols; col++ {
			if busLayout.Cells[row-1][col-1] != model.CellOrdinary {
				continue
			}
			status := model.SeatEmpty
			if taken[no] {
				status = model.SeatTaken
			}
			seats = append(seats, model.Seat{No: no, Row: row, Col: col, Status: status})
			no++
		}
	}
	return seats
}

func seatSchemas() map[string]model.SeatMap {
	schemas := map[string]model.SeatMap{}
	occupancy := map[string]map[int]bool{
		"TRIP-1001": {2: true, 6: true, 10: true, 12: true, 24: true},
		"TRIP-1002": {1: true, 4: true, 5: true, 17: true, 18: true, 30: true},
		"TRIP-1003": {8: true, 9: true, 22: true},
	}
	for _, t := range tripTemplates {
		schemas[t.ID] = model.SeatMap{
			TripID:    t.ID,
			Layout:    busLayout,
			Seats:     busSeats(occupancy[t.ID]),
			UnitPrice: t.Price,
		}
	}
	return schemas
}
