package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"busx-cli/booking"
	"busx-cli/model"
)

// fieldsPerPassenger counts first name, last name, national id and the
// gender toggle. Contact adds two fields at the top of the tab order.
const fieldsPerPassenger = 4

type formRow struct {
	seat   int
	first  textinput.Model
	last   textinput.Model
	id     textinput.Model
	gender string
}

type bookingForm struct {
	email textinput.Model
	phone textinput.Model
	rows  []formRow
	focus int
	errs  *booking.ValidationError
}

func newTextInput(placeholder string, limit int, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 32
	in.SetValue(value)
	return in
}

func newBookingForm(contact model.ContactInfo, roster []model.Passenger, width int) bookingForm {
	f := bookingForm{
		email: newTextInput("traveler@example.com", 64, contact.Email),
		phone: newTextInput("5551234567", 10, contact.Phone),
	}
	for _, p := range roster {
		gender := p.Gender
		if gender == "" {
			gender = model.GenderMale
		}
		f.rows = append(f.rows, formRow{
			seat:   p.Seat,
			first:  newTextInput("First name", 40, p.FirstName),
			last:   newTextInput("Last name", 40, p.LastName),
			id:     newTextInput("11-digit national id", 11, p.NationalID),
			gender: gender,
		})
	}
	f.focusField(0)
	return f
}

func (f bookingForm) fieldCount() int {
	return 2 + fieldsPerPassenger*len(f.rows)
}

// isGenderField reports whether the tab-order index lands on a passenger's
// gender toggle rather than a text input.
func (f bookingForm) isGenderField(i int) bool {
	if i < 2 {
		return false
	}
	return (i-2)%fieldsPerPassenger == 3
}

func (f *bookingForm) inputAt(i int) *textinput.Model {
	switch {
	case i == 0:
		return &f.email
	case i == 1:
		return &f.phone
	}
	row := (i - 2) / fieldsPerPassenger
	if row < 0 || row >= len(f.rows) {
		return nil
	}
	switch (i - 2) % fieldsPerPassenger {
	case 0:
		return &f.rows[row].first
	case 1:
		return &f.rows[row].last
	case 2:
		return &f.rows[row].id
	default:
		return nil
	}
}

func (f *bookingForm) focusField(i int) {
	count := f.fieldCount()
	if count == 0 {
		return
	}
	if i < 0 {
		i = count - 1
	}
	if i >= count {
		i = 0
	}
	f.focus = i
	for j := 0; j < count; j++ {
		if in := f.inputAt(j); in != nil {
			if j == i {
				in.Focus()
			} else {
				in.Blur()
			}
		}
	}
}

func (f *bookingForm) toggleGender() {
	if !f.isGenderField(f.focus) {
		return
	}
	row := (f.focus - 2) / fieldsPerPassenger
	if f.rows[row].gender == model.GenderFemale {
		f.rows[row].gender = model.GenderMale
	} else {
		f.rows[row].gender = model.GenderFemale
	}
}

func (f bookingForm) contact() model.ContactInfo {
	return model.ContactInfo{
		Email: strings.TrimSpace(f.email.Value()),
		Phone: strings.TrimSpace(f.phone.Value()),
	}
}

func (f bookingForm) passengers() []model.Passenger {
	out := make([]model.Passenger, len(f.rows))
	for i, row := range f.rows {
		out[i] = model.Passenger{
			Seat:       row.seat,
			FirstName:  strings.TrimSpace(row.first.Value()),
			LastName:   strings.TrimSpace(row.last.Value()),
			NationalID: strings.TrimSpace(row.id.Value()),
			Gender:     row.gender,
		}
	}
	return out
}

// errFor returns the first validation message whose field path contains the
// given fragment, e.g. "Contact.Email" or "Passengers[0].FirstName".
func (f bookingForm) errFor(fragment string) string {
	if f.errs == nil {
		return ""
	}
	for _, fe := range f.errs.Fields {
		if strings.Contains(fe.Field, fragment) {
			return fe.Message
		}
	}
	return ""
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.syncFormIntoSession()
		m.session.BackToSeats()
		m.state = stateSeatMap
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "tab", "down":
		m.form.focusField(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.focusField(m.form.focus - 1)
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		if m.form.focus == m.form.fieldCount()-1 {
			return m.submitForm()
		}
		m.form.focusField(m.form.focus + 1)
		return m, nil
	}

	if m.form.isGenderField(m.form.focus) {
		switch msg.String() {
		case "left", "right", " ", "m", "f":
			switch msg.String() {
			case "m":
				m.form.rows[(m.form.focus-2)/fieldsPerPassenger].gender = model.GenderMale
			case "f":
				m.form.rows[(m.form.focus-2)/fieldsPerPassenger].gender = model.GenderFemale
			default:
				m.form.toggleGender()
			}
		}
		return m, nil
	}

	if in := m.form.inputAt(m.form.focus); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	m.syncFormIntoSession()
	err := m.session.ConfirmPassengers(m.form.contact(), m.form.passengers())
	if err == nil {
		m.form.errs = nil
		m.state = stateSummary
		return m, nil
	}
	if ve, ok := booking.AsValidationError(err); ok {
		m.form.errs = ve
		return m, nil
	}
	return m, errCmd(err)
}

// syncFormIntoSession stores the typed values so they survive back
// navigation to the seat map and the roster re-sync that follows.
func (m *appModel) syncFormIntoSession() {
	m.session.SetContact(m.form.contact())
	for i, p := range m.form.passengers() {
		m.session.SetRosterEntry(i, p)
	}
}

func (f bookingForm) view() string {
	label := lipgloss.NewStyle().Faint(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	section := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(section.Render("Contact"))
	b.WriteString("\n")
	writeField(&b, label, "Email:", f.email.View(), errStyle, f.errFor("Contact.Email"))
	writeField(&b, label, "Phone:", f.phone.View(), errStyle, f.errFor("Contact.Phone"))

	for i, row := range f.rows {
		b.WriteString("\n")
		b.WriteString(section.Render(fmt.Sprintf("Passenger • Seat %d", row.seat)))
		b.WriteString("\n")
		prefix := fmt.Sprintf("Passengers[%d].", i)
		writeField(&b, label, "First name:", row.first.View(), errStyle, f.errFor(prefix+"FirstName"))
		writeField(&b, label, "Last name:", row.last.View(), errStyle, f.errFor(prefix+"LastName"))
		writeField(&b, label, "National id:", row.id.View(), errStyle, f.errFor(prefix+"NationalID"))

		genderLine := renderGender(row.gender, f.isGenderField(f.focus) && (f.focus-2)/fieldsPerPassenger == i)
		writeField(&b, label, "Gender:", genderLine, errStyle, f.errFor(prefix+"Gender"))
	}

	if msg := f.errFor("Passengers"); msg != "" && len(f.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(msg))
		b.WriteString("\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, labelStyle lipgloss.Style, label string, value string, errStyle lipgloss.Style, errText string) {
	b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-14s", label)) + " " + value + "\n")
	if errText != "" {
		b.WriteString("  " + errStyle.Render("✗ "+errText) + "\n")
	}
}

func renderGender(gender string, focused bool) string {
	male := "( ) male"
	female := "( ) female"
	if gender == model.GenderFemale {
		female = "(x) female"
	} else {
		male = "(x) male"
	}
	line := male + "  " + female
	if focused {
		return lipgloss.NewStyle().Bold(true).Render("› " + line)
	}
	return "  " + line
}
