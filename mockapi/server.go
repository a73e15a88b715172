package mockapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"busx-cli/model"
)

// Server is an in-process BusX API double backed by canned coach data. It
// serves the same endpoints the real backend would, which makes it usable
// both for demos and as a test fixture.
type Server struct {
	echo    *echo.Echo
	schemas map[string]model.SeatMap
	names   map[string]string
}

func New() *Server {
	names := map[string]string{}
	for _, a := range agencies {
		names[a.ID] = a.Name
	}

	s := &Server{
		echo:    echo.New(),
		schemas: seatSchemas(),
		names:   names,
	}
	s.echo.HideBanner = true
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())

	api := s.echo.Group("/api")
	api.GET("/reference/agencies", s.listAgencies)
	api.GET("/schedules", s.searchSchedules)
	api.GET("/seatSchemas/:tripId", s.getSeatSchema)
	api.POST("/tickets/sell", s.sellTickets)
	return s
}

// Start blocks serving HTTP on the given address.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the underlying mux for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) listAgencies(c echo.Context) error {
	return c.JSON(http.StatusOK, agencies)
}

func (s *Server) searchSchedules(c echo.Context) error {
	fromID := c.QueryParam("from")
	toID := c.QueryParam("to")
	date := c.QueryParam("date")
	if fromID == "" || toID == "" || date == "" {
		return c.String(http.StatusBadRequest, "Missing required search parameters (from, to, date).")
	}

	day, err := time.ParseInLocation(time.DateOnly, date, time.Local)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid date format provided.")
	}

	results := []model.Schedule{}
	for _, t := range tripTemplates {
		if t.FromID == fromID && t.ToID == toID {
			results = append(results, t.schedule(day, s.names))
		}
	}
	return c.JSON(http.StatusOK, results)
}

func (s *Server) getSeatSchema(c echo.Context) error {
	tripID := c.Param("tripId")
	schema, ok := s.schemas[tripID]
	if !ok {
		return c.String(http.StatusNotFound, fmt.Sprintf("Seat schema not found for trip: %s", tripID))
	}
	return c.JSON(http.StatusOK, schema)
}

func (s *Server) sellTickets(c echo.Context) error {
	var req model.TicketSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid sale data structure or missing required fields.")
	}
	if req.TripID == "" || len(req.Seats) == 0 || len(req.Passengers) == 0 ||
		req.Contact.Email == "" || req.Contact.Phone == "" {
		return c.String(http.StatusBadRequest, "Invalid sale data structure or missing required fields.")
	}

	// Selling a seat that is already taken is a domain rejection, not a
	// protocol error.
	if schema, ok := s.schemas[req.TripID]; ok {
		taken := map[int]bool{}
		for _, seat := range schema.Seats {
			if seat.Status != model.SeatEmpty {
				taken[seat.No] = true
			}
		}
		for _, no := range req.Seats {
			if taken[no] {
				return c.JSON(http.StatusOK, model.TicketSaleResponse{
					OK:      false,
					Message: fmt.Sprintf("Seat %d is no longer available.", no),
				})
			}
		}
	}

	return c.JSON(http.StatusOK, model.TicketSaleResponse{
		OK:      true,
		PNR:     newPNR(time.Now()),
		Message: "Payment step mocked.",
	})
}

func newPNR(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("AT-%s-%s", now.Format("20060102"), suffix)
}
