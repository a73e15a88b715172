package model

import "time"

// Agency is a bus agency/terminal used as a departure or arrival point.
// The list is static reference data, fetched once and cached.
type Agency struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Schedule is a single bus trip returned by the schedule search.
type Schedule struct {
	ID             string    `json:"id"`
	Company        string    `json:"company"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Departure      time.Time `json:"departure"`
	Arrival        time.Time `json:"arrival"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"availableSeats"`
}
