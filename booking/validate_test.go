package booking

import (
	"strings"
	"testing"

	"busx-cli/model"
)

func validContact() model.ContactInfo {
	return model.ContactInfo{Email: "traveler@example.com", Phone: "5551234567"}
}

func validPassenger(seat int) model.Passenger {
	return model.Passenger{
		Seat:       seat,
		FirstName:  "Ayse",
		LastName:   "Demir",
		NationalID: "12345678901",
		Gender:     model.GenderFemale,
	}
}

func TestValidatePassengerForm_OK(t *testing.T) {
	t.Parallel()
	err := ValidatePassengerForm(validContact(), []model.Passenger{validPassenger(3)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidatePassengerForm_Rejections(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		contact    model.ContactInfo
		passengers []model.Passenger
		wantField  string
	}{
		{
			name:       "bad email",
			contact:    model.ContactInfo{Email: "not-an-email", Phone: "5551234567"},
			passengers: []model.Passenger{validPassenger(3)},
			wantField:  "Email",
		},
		{
			name:       "short phone",
			contact:    model.ContactInfo{Email: "a@b.com", Phone: "555"},
			passengers: []model.Passenger{validPassenger(3)},
			wantField:  "Phone",
		},
		{
			name:       "phone with letters",
			contact:    model.ContactInfo{Email: "a@b.com", Phone: "55512345ab"},
			passengers: []model.Passenger{validPassenger(3)},
			wantField:  "Phone",
		},
		{
			name:    "short first name",
			contact: validContact(),
			passengers: func() []model.Passenger {
				p := validPassenger(3)
				p.FirstName = "A"
				return []model.Passenger{p}
			}(),
			wantField: "FirstName",
		},
		{
			name:    "national id wrong length",
			contact: validContact(),
			passengers: func() []model.Passenger {
				p := validPassenger(3)
				p.NationalID = "123"
				return []model.Passenger{p}
			}(),
			wantField: "NationalID",
		},
		{
			name:    "unknown gender",
			contact: validContact(),
			passengers: func() []model.Passenger {
				p := validPassenger(3)
				p.Gender = "other"
				return []model.Passenger{p}
			}(),
			wantField: "Gender",
		},
		{
			name:       "no passengers",
			contact:    validContact(),
			passengers: nil,
			wantField:  "Passengers",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassengerForm(tc.contact, tc.passengers)
			if err == nil {
				t.Fatal("expected error")
			}
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			found := false
			for _, fe := range ve.Fields {
				if strings.Contains(fe.Field, tc.wantField) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a failure on %s, got %+v", tc.wantField, ve.Fields)
			}
		})
	}
}

func TestValidateSaleRequest(t *testing.T) {
	t.Parallel()
	req := model.TicketSaleRequest{
		TripID:     "TRIP-1001",
		Seats:      []int{3, 4},
		Contact:    validContact(),
		Passengers: []model.Passenger{validPassenger(3), validPassenger(4)},
	}
	if err := ValidateSaleRequest(req); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	req.TripID = ""
	if err := ValidateSaleRequest(req); err == nil {
		t.Fatal("expected error for missing trip id")
	}

	req.TripID = "TRIP-1001"
	req.Seats = nil
	if err := ValidateSaleRequest(req); err == nil {
		t.Fatal("expected error for empty seats")
	}
}
