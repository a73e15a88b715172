package mockapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"busx-cli/model"
	"busx-cli/service"
)

func testClient(t *testing.T) (*service.Client, func()) {
	t.Helper()
	server := httptest.NewServer(New().Handler())
	return service.NewClient(server.Client(), server.URL+"/api"), server.Close
}

func TestListAgencies(t *testing.T) {
	client, done := testClient(t)
	defer done()

	agencies, err := client.GetAgencies(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(agencies) != 4 {
		t.Fatalf("expected 4 agencies, got %d", len(agencies))
	}
}

func TestSearchSchedules_RebasesOntoRequestedDay(t *testing.T) {
	client, done := testClient(t)
	defer done()

	day := time.Now().AddDate(0, 0, 3)
	schedules, err := client.GetSchedules(context.Background(), "ist-bayrampasa", "ank-astim", day)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("expected 2 trips on the route, got %d", len(schedules))
	}
	for _, sched := range schedules {
		y1, m1, d1 := sched.Departure.Date()
		y2, m2, d2 := day.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			t.Fatalf("expected departure on requested day, got %v", sched.Departure)
		}
	}
}

func TestSearchSchedules_NoTripsOnRoute(t *testing.T) {
	client, done := testClient(t)
	defer done()

	schedules, err := client.GetSchedules(context.Background(), "bursa-otogar", "ist-alibeykoy", time.Now())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(schedules) != 0 {
		t.Fatalf("expected no trips, got %+v", schedules)
	}
}

func TestSearchSchedules_BadDate(t *testing.T) {
	server := httptest.NewServer(New().Handler())
	defer server.Close()

	res, err := server.Client().Get(server.URL + "/api/schedules?from=a&to=b&date=not-a-date")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestGetSeatSchema(t *testing.T) {
	client, done := testClient(t)
	defer done()

	seatMap, err := client.GetSeatMap(context.Background(), "TRIP-1001")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if seatMap.Layout.Rows != 10 || seatMap.Layout.Cols != 5 {
		t.Fatalf("unexpected layout: %+v", seatMap.Layout)
	}
	if len(seatMap.Seats) != 39 {
		t.Fatalf("expected 39 seats, got %d", len(seatMap.Seats))
	}
	if seatMap.UnitPrice != 695 {
		t.Fatalf("unexpected unit price %v", seatMap.UnitPrice)
	}

	_, err = client.GetSeatMap(context.Background(), "TRIP-9999")
	if !service.IsNotFound(err) {
		t.Fatalf("expected not found for unknown trip, got %v", err)
	}
}

func TestSellTickets_IssuesPNR(t *testing.T) {
	client, done := testClient(t)
	defer done()

	res, err := client.SellTickets(context.Background(), model.TicketSaleRequest{
		TripID:  "TRIP-1001",
		Seats:   []int{3, 4},
		Contact: model.ContactInfo{Email: "a@b.com", Phone: "5551234567"},
		Passengers: []model.Passenger{
			{Seat: 3, FirstName: "Ayse", LastName: "Demir", NationalID: "12345678901", Gender: model.GenderFemale},
			{Seat: 4, FirstName: "Mehmet", LastName: "Kaya", NationalID: "98765432109", Gender: model.GenderMale},
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.OK {
		t.Fatalf("expected ok, got %+v", res)
	}
	if matched := regexp.MustCompile(`^AT-\d{8}-[0-9A-F]{4}$`).MatchString(res.PNR); !matched {
		t.Fatalf("unexpected pnr format %q", res.PNR)
	}
}

func TestSellTickets_TakenSeatIsRejected(t *testing.T) {
	client, done := testClient(t)
	defer done()

	// Seat 2 on TRIP-1001 ships as taken.
	res, err := client.SellTickets(context.Background(), model.TicketSaleRequest{
		TripID:  "TRIP-1001",
		Seats:   []int{2},
		Contact: model.ContactInfo{Email: "a@b.com", Phone: "5551234567"},
		Passengers: []model.Passenger{
			{Seat: 2, FirstName: "Ayse", LastName: "Demir", NationalID: "12345678901", Gender: model.GenderFemale},
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.OK {
		t.Fatal("expected domain rejection for a taken seat")
	}
	if res.PNR != "" {
		t.Fatalf("expected no pnr, got %q", res.PNR)
	}
}

func TestSellTickets_MissingFields(t *testing.T) {
	server := httptest.NewServer(New().Handler())
	defer server.Close()

	res, err := server.Client().Post(server.URL+"/api/tickets/sell", "application/json", nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestSellTickets_RequiresContactAndPassengers(t *testing.T) {
	client, done := testClient(t)
	defer done()

	// Seats alone are not a sellable payload.
	_, err := client.SellTickets(context.Background(), model.TicketSaleRequest{
		TripID: "TRIP-1001",
		Seats:  []int{3},
	})
	var apiErr *service.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an API error, got %v", err)
	}
	if apiErr.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", apiErr.StatusCode)
	}
}
