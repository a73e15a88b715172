package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"busx-cli/model"
)

func formModel(t *testing.T, seats ...int) appModel {
	t.Helper()
	m := seatMapModel(t)
	for _, no := range seats {
		if !m.session.Toggle(no) {
			t.Fatalf("expected seat %d to toggle", no)
		}
	}
	got, _, _ := m.openPassengerForm()
	if got.state != statePassengerForm {
		t.Fatalf("expected passenger form, got %d", got.state)
	}
	return got
}

func (f *bookingForm) fillValid() {
	f.email.SetValue("traveler@example.com")
	f.phone.SetValue("5551234567")
	for i := range f.rows {
		f.rows[i].first.SetValue("Ayse")
		f.rows[i].last.SetValue("Demir")
		f.rows[i].id.SetValue("12345678901")
		f.rows[i].gender = model.GenderFemale
	}
}

func TestBookingForm_TabOrder(t *testing.T) {
	m := formModel(t, 1, 3)

	if got := m.form.fieldCount(); got != 10 {
		t.Fatalf("expected 10 fields for 2 passengers, got %d", got)
	}
	if m.form.isGenderField(0) || m.form.isGenderField(2) {
		t.Fatal("contact and first-name fields must not be gender fields")
	}
	if !m.form.isGenderField(5) || !m.form.isGenderField(9) {
		t.Fatal("expected gender fields at the end of each passenger block")
	}

	// Wraps around in both directions.
	m.form.focusField(9)
	m.form.focusField(m.form.focus + 1)
	if m.form.focus != 0 {
		t.Fatalf("expected wrap to first field, got %d", m.form.focus)
	}
	m.form.focusField(m.form.focus - 1)
	if m.form.focus != 9 {
		t.Fatalf("expected wrap to last field, got %d", m.form.focus)
	}
}

func TestBookingForm_GenderToggle(t *testing.T) {
	m := formModel(t, 1)

	m.form.focusField(5)
	m.form.toggleGender()
	if m.form.rows[0].gender != model.GenderFemale {
		t.Fatalf("expected female after toggle, got %s", m.form.rows[0].gender)
	}
	m.form.toggleGender()
	if m.form.rows[0].gender != model.GenderMale {
		t.Fatalf("expected male after second toggle, got %s", m.form.rows[0].gender)
	}
}

func TestSubmitForm_Valid(t *testing.T) {
	m := formModel(t, 1)
	m.form.fillValid()

	next, _ := m.submitForm()
	got := next.(appModel)
	if got.state != stateSummary {
		t.Fatalf("expected summary state, got %d", got.state)
	}
	snap, ok := got.session.Snapshot()
	if !ok {
		t.Fatal("expected a frozen snapshot")
	}
	if len(snap.Passengers) != 1 || snap.Passengers[0].Seat != 1 {
		t.Fatalf("unexpected snapshot passengers %+v", snap.Passengers)
	}
}

func TestSubmitForm_InvalidShowsFieldErrors(t *testing.T) {
	m := formModel(t, 1)
	m.form.fillValid()
	m.form.email.SetValue("not-an-email")
	m.form.rows[0].id.SetValue("123")

	next, _ := m.submitForm()
	got := next.(appModel)
	if got.state != statePassengerForm {
		t.Fatalf("expected to stay on the form, got %d", got.state)
	}
	if got.form.errs == nil {
		t.Fatal("expected validation errors")
	}
	if got.form.errFor("Contact.Email") == "" {
		t.Fatal("expected an email error")
	}
	if got.form.errFor("Passengers[0].NationalID") == "" {
		t.Fatal("expected a national id error")
	}
	if _, ok := got.session.Snapshot(); ok {
		t.Fatal("expected no snapshot after a rejected submit")
	}
}

func TestUpdateForm_EscKeepsTypedData(t *testing.T) {
	m := formModel(t, 1)
	m.form.rows[0].first.SetValue("Mehmet")

	next, _ := m.updateForm(tea.KeyMsg{Type: tea.KeyEsc})
	got := next.(appModel)
	if got.state != stateSeatMap {
		t.Fatalf("expected seat map, got %d", got.state)
	}
	roster := got.session.Roster()
	if len(roster) != 1 || roster[0].FirstName != "Mehmet" {
		t.Fatalf("expected typed data kept in the roster, got %+v", roster)
	}
}

func TestUpdateForm_TypingReachesFocusedInput(t *testing.T) {
	m := formModel(t, 1)

	next, _ := m.updateForm(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	got := next.(appModel)
	if got.form.email.Value() != "a" {
		t.Fatalf("expected rune routed to the email field, got %q", got.form.email.Value())
	}
}
