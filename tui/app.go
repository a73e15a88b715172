package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"busx-cli/booking"
	"busx-cli/model"
	"busx-cli/service"
	"busx-cli/store"
)

type appState int

const (
	stateLoadingAgencies appState = iota
	stateSelectFrom
	stateSelectTo
	stateSelectDate
	stateLoadingSchedules
	stateSelectSchedule
	stateLoadingSeatMap
	stateSeatMap
	statePassengerForm
	stateSummary
	statePurchasing
	statePurchased
	stateError
)

type appModel struct {
	client  *service.Client
	session *booking.Session

	state     appState
	lastState appState
	err       error

	width  int
	height int

	agencies  []model.Agency
	from      model.Agency
	to        model.Agency
	date      time.Time
	schedules []model.Schedule
	schedule  model.Schedule

	fromList     list.Model
	toList       list.Model
	dateList     list.Model
	scheduleList list.Model

	spinner spinner.Model

	cursorRow int
	cursorCol int
	notice    string

	form bookingForm

	// Fetches are tagged with a sequence number so a response that arrives
	// after the user moved on is discarded instead of clobbering state.
	scheduleSeq int
	seatMapSeq  int
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type agenciesMsg struct {
	agencies []model.Agency
	err      error
}

type schedulesMsg struct {
	seq       int
	schedules []model.Schedule
	err       error
}

type seatMapMsg struct {
	seq     int
	seatMap model.SeatMap
	err     error
}

type purchaseMsg struct {
	res model.TicketSaleResponse
	err error
}

// Options configures the program. Zero values fall back to the BUSX_API_URL
// and BUSX_MAX_SEATS environment variables and their defaults.
type Options struct {
	Client   *service.Client
	MaxSeats int
}

func New(opts Options) tea.Model {
	client := opts.Client
	if client == nil {
		client = service.NewClient(nil, os.Getenv("BUSX_API_URL"))
	}

	m := appModel{
		client:  client,
		session: booking.NewSession(opts.MaxSeats),
		state:   stateLoadingAgencies,
		date:    truncateDate(time.Now()),
	}

	m.fromList = newList("Departure Agency")
	m.toList = newList("Arrival Agency")
	m.dateList = newList("Travel Date")
	m.scheduleList = newList("Trips")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchAgenciesCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.state == statePassengerForm {
			return m.updateForm(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case agenciesMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.agencies = msg.agencies
		m.fromList.SetItems(buildAgencyItems(msg.agencies, recentFromIDs(), ""))
		m.state = stateSelectFrom
		return m, nil

	case schedulesMsg:
		if msg.seq != m.scheduleSeq {
			return m, nil
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectDate)
		}
		if len(msg.schedules) == 0 {
			return m, errWithOptionsCmd(
				fmt.Errorf("no trips found from %s to %s on %s", m.from.Name, m.to.Name, m.date.Format(time.DateOnly)),
				stateSelectDate,
			)
		}
		m.schedules = msg.schedules
		m.scheduleList.Title = fmt.Sprintf("Trips • %s → %s", m.from.Name, m.to.Name)
		m.scheduleList.SetItems(buildScheduleItems(msg.schedules))
		m.scheduleList.Select(0)
		m.state = stateSelectSchedule
		return m, nil

	case seatMapMsg:
		if msg.seq != m.seatMapSeq {
			return m, nil
		}
		if msg.err != nil {
			if service.IsNotFound(msg.err) {
				return m, errWithOptionsCmd(
					fmt.Errorf("no seat schema available for trip %s", m.schedule.ID),
					stateSelectSchedule,
				)
			}
			return m, errWithOptionsCmd(msg.err, stateSelectSchedule)
		}
		if err := m.session.StartTrip(msg.seatMap); err != nil {
			return m, errWithOptionsCmd(err, stateSelectSchedule)
		}
		m.cursorRow, m.cursorCol = firstSeatPosition(m.session.Grid())
		m.notice = ""
		m.state = stateSeatMap
		return m, nil

	case purchaseMsg:
		if m.session.Step() != booking.StepPurchasing {
			return m, nil
		}
		if msg.err != nil {
			m.session.FailPurchase(msg.err)
			m.state = stateSummary
			return m, nil
		}
		m.session.FinishPurchase(msg.res)
		if m.session.Step() == booking.StepPurchased {
			m.state = statePurchased
		} else {
			m.state = stateSummary
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectFrom:
		m.fromList, cmd = m.fromList.Update(msg)
	case stateSelectTo:
		m.toList, cmd = m.toList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	case stateSelectSchedule:
		m.scheduleList, cmd = m.scheduleList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingAgencies, stateLoadingSchedules, stateLoadingSeatMap:
		return header + "\n\n" + m.loadingView()
	case stateSelectFrom:
		return header + "\n\n" + m.fromList.View()
	case stateSelectTo:
		return header + "\n\n" + m.toList.View()
	case stateSelectDate:
		return header + "\n\n" + m.dateList.View()
	case stateSelectSchedule:
		return header + "\n\n" + m.scheduleList.View()
	case stateSeatMap:
		return header + "\n\n" + m.renderSeatMap()
	case statePassengerForm:
		return header + "\n\n" + m.form.view()
	case stateSummary:
		return header + "\n\n" + m.summaryView()
	case statePurchasing:
		return header + "\n\n" + m.purchasingView()
	case statePurchased:
		return header + "\n\n" + m.purchasedView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("BusX")
	sub := []string{}
	if m.from.Name != "" {
		route := m.from.Name
		if m.to.Name != "" {
			route += " → " + m.to.Name
		}
		sub = append(sub, route)
	}
	if !m.date.IsZero() && m.state != stateSelectFrom && m.state != stateSelectTo && m.state != stateLoadingAgencies {
		sub = append(sub, fmt.Sprintf("Date: %s", m.date.Format(time.DateOnly)))
	}
	if m.schedule.ID != "" && m.state >= stateSeatMap && m.state != stateError {
		sub = append(sub, fmt.Sprintf("%s %s", m.schedule.Company, m.schedule.Departure.Format("15:04")))
	}
	if seats := m.session.Selection(); len(seats) > 0 && m.state >= stateSeatMap && m.state != stateError {
		sub = append(sub, fmt.Sprintf("Seats: %s • %s", joinSeats(seats), formatPrice(m.session.TotalPrice())))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back • type to filter"
	switch m.state {
	case stateSelectDate:
		hints = "ctrl+c quit • esc back • enter select date"
	case stateSeatMap:
		hints = "ctrl+c quit • esc back • arrows move • enter/space toggle seat • c continue"
	case statePassengerForm:
		hints = "ctrl+c quit • esc back to seats • tab/shift+tab fields • enter next • ctrl+s submit"
	case stateSummary:
		hints = "ctrl+c quit • esc edit passengers • enter confirm purchase"
	case statePurchasing:
		hints = "submitting, please wait"
	case statePurchased:
		hints = "enter new search • ctrl+c quit"
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		return m.goBack()
	case "up", "k":
		if m.state == stateSeatMap {
			m.moveCursor(-1, 0)
			return m, nil, true
		}
	case "down", "j":
		if m.state == stateSeatMap {
			m.moveCursor(1, 0)
			return m, nil, true
		}
	case "left", "h":
		if m.state == stateSeatMap {
			m.moveCursor(0, -1)
			return m, nil, true
		}
	case "right", "l":
		if m.state == stateSeatMap {
			m.moveCursor(0, 1)
			return m, nil, true
		}
	case " ":
		if m.state == stateSeatMap {
			m.toggleSeatUnderCursor()
			return m, nil, true
		}
	case "c":
		if m.state == stateSeatMap {
			return m.openPassengerForm()
		}
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateSelectFrom:
			item, ok := m.fromList.SelectedItem().(agencyItem)
			if !ok {
				return m, nil, true
			}
			m.from = item.agency
			m.to = model.Agency{}
			m.toList.SetItems(buildAgencyItems(m.agencies, recentToIDs(m.from.ID), m.from.ID))
			m.toList.Select(0)
			m.state = stateSelectTo
			return m, nil, true
		case stateSelectTo:
			item, ok := m.toList.SelectedItem().(agencyItem)
			if !ok {
				return m, nil, true
			}
			m.to = item.agency
			m.dateList.SetItems(buildDateItems(truncateDate(time.Now())))
			m.dateList.Select(0)
			m.state = stateSelectDate
			return m, nil, true
		case stateSelectDate:
			item, ok := m.dateList.SelectedItem().(dateItem)
			if !ok {
				return m, nil, true
			}
			m.date = item.date
			_ = store.RememberRoute(m.from, m.to)
			m.scheduleSeq++
			m.state = stateLoadingSchedules
			return m, tea.Batch(m.fetchSchedulesCmd(m.scheduleSeq, m.from.ID, m.to.ID, m.date), m.spinner.Tick), true
		case stateSelectSchedule:
			item, ok := m.scheduleList.SelectedItem().(scheduleItem)
			if !ok {
				return m, nil, true
			}
			m.schedule = item.schedule
			m.seatMapSeq++
			m.state = stateLoadingSeatMap
			return m, tea.Batch(m.fetchSeatMapCmd(m.seatMapSeq, m.schedule.ID), m.spinner.Tick), true
		case stateSeatMap:
			m.toggleSeatUnderCursor()
			return m, nil, true
		case stateSummary:
			return m.beginPurchase()
		case statePurchased:
			return m.startOver()
		case stateError:
			return m.recoverFromError()
		}
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateSelectTo:
		m.state = stateSelectFrom
	case stateSelectDate:
		m.state = stateSelectTo
	case stateSelectSchedule:
		m.state = stateSelectDate
	case stateSeatMap:
		// Leaving the seat map abandons the trip. Selection and roster do
		// not survive a trip change anyway.
		m.session.Reset()
		m.schedule = model.Schedule{}
		m.state = stateSelectSchedule
	case statePassengerForm:
		m.syncFormIntoSession()
		m.session.BackToSeats()
		m.state = stateSeatMap
	case stateSummary:
		m.session.BackToPassengerEntry()
		m.form = newBookingForm(m.session.Contact(), m.session.Roster(), m.width)
		m.state = statePassengerForm
	case statePurchasing:
		// A submission is in flight; there is nothing safe to go back to.
		return m, nil, true
	case statePurchased:
		return m.startOver()
	case stateError:
		return m.recoverFromError()
	default:
		return m, nil, true
	}
	return m, nil, true
}

// recoverFromError leaves the error screen. When the failure happened
// before the agency list ever loaded there is no list to return to, so
// the fetch is re-issued instead.
func (m appModel) recoverFromError() (appModel, tea.Cmd, bool) {
	if m.lastState == stateSelectFrom && len(m.agencies) == 0 {
		m.state = stateLoadingAgencies
		return m, tea.Batch(m.fetchAgenciesCmd(), m.spinner.Tick), true
	}
	m.state = m.lastState
	return m, nil, true
}

func (m appModel) startOver() (appModel, tea.Cmd, bool) {
	m.session.Reset()
	m.schedule = model.Schedule{}
	m.schedules = nil
	m.to = model.Agency{}
	m.notice = ""
	if len(m.agencies) == 0 {
		m.state = stateLoadingAgencies
		return m, tea.Batch(m.fetchAgenciesCmd(), m.spinner.Tick), true
	}
	m.fromList.SetItems(buildAgencyItems(m.agencies, recentFromIDs(), ""))
	m.state = stateSelectFrom
	return m, nil, true
}

func (m *appModel) toggleSeatUnderCursor() {
	grid := m.session.Grid()
	if grid == nil {
		return
	}
	seat, ok := grid.SeatAt(m.cursorRow, m.cursorCol)
	if !ok {
		return
	}
	if seat.Status != model.SeatEmpty {
		m.notice = fmt.Sprintf("Seat %d is not available.", seat.No)
		return
	}
	if m.session.Toggle(seat.No) {
		m.notice = ""
		return
	}
	m.notice = fmt.Sprintf("You can select at most %d seats. Deselect one first.", m.session.SeatLimit())
}

func (m *appModel) moveCursor(dr int, dc int) {
	grid := m.session.Grid()
	if grid == nil {
		return
	}
	row, col := m.cursorRow, m.cursorCol
	for {
		row += dr
		col += dc
		if row < 1 || row > grid.Rows() || col < 1 || col > grid.Cols() {
			return
		}
		if _, ok := grid.SeatAt(row, col); ok {
			m.cursorRow, m.cursorCol = row, col
			return
		}
		// Vertical moves may pass a door cell; keep scanning in the same
		// column. Horizontal moves skip the corridor the same way.
	}
}

func (m appModel) openPassengerForm() (appModel, tea.Cmd, bool) {
	if len(m.session.Selection()) == 0 {
		m.notice = "Select at least one seat first."
		return m, nil, true
	}
	if m.session.Enter(booking.StepPassengerEntry) != booking.StepPassengerEntry {
		// Missing prerequisites resolve to the search step.
		return m.startOver()
	}
	m.form = newBookingForm(m.session.Contact(), m.session.Roster(), m.width)
	m.notice = ""
	m.state = statePassengerForm
	return m, nil, true
}

func (m appModel) beginPurchase() (appModel, tea.Cmd, bool) {
	snap, ok := m.session.Snapshot()
	if !ok {
		return m, errCmd(booking.ErrNoSnapshot), true
	}
	if err := m.session.BeginPurchase(); err != nil {
		if errors.Is(err, booking.ErrPurchaseInFlight) || errors.Is(err, booking.ErrAlreadyPurchased) {
			return m, nil, true
		}
		return m, errCmd(err), true
	}
	m.state = statePurchasing
	return m, tea.Batch(m.purchaseCmd(snap), m.spinner.Tick), true
}

func (m appModel) summaryView() string {
	snap, ok := m.session.Snapshot()
	if !ok {
		return "No booking to summarize."
	}

	label := lipgloss.NewStyle().Faint(true)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Booking Summary"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s → %s\n", label.Render("Route:"), m.from.Name, m.to.Name))
	b.WriteString(fmt.Sprintf("%s %s • %s → %s\n", label.Render("Trip:"), m.schedule.Company, m.schedule.Departure.Format("15:04"), m.schedule.Arrival.Format("15:04")))
	b.WriteString(fmt.Sprintf("%s %s\n", label.Render("Seats:"), joinSeats(snap.Seats)))
	b.WriteString("\n")
	for _, p := range snap.Passengers {
		b.WriteString(fmt.Sprintf("  Seat %-3d %s %s • %s\n", p.Seat, p.FirstName, p.LastName, p.Gender))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s • %s\n", label.Render("Contact:"), snap.Contact.Email, snap.Contact.Phone))
	b.WriteString(fmt.Sprintf("%s %d x %s = %s\n", label.Render("Total:"), len(snap.Seats), formatPrice(m.session.UnitPrice()), formatPrice(m.session.TotalPrice())))

	purchase := m.session.Purchase()
	if msg := purchase.FailureMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("Purchase failed: " + msg))
		b.WriteString("\n")
		b.WriteString(hint("Press enter to try again."))
	}
	return b.String()
}

func (m appModel) purchasingView() string {
	return fmt.Sprintf("%s Submitting purchase\n\n%s", m.spinner.View(), hint("Talking to the booking service..."))
}

func (m appModel) purchasedView() string {
	res, ok := m.session.Purchase().Result()
	if !ok {
		return "No purchase recorded."
	}

	chip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("2")).
		Padding(0, 2)
	pnr := lipgloss.NewStyle().Bold(true).Render(res.PNR)

	content := strings.Join([]string{
		chip.Render("Tickets Issued"),
		"",
		fmt.Sprintf("PNR: %s", pnr),
		res.Message,
		"",
		hint("Press enter to start a new search."),
	}, "\n")

	panel := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("2")).
		MarginTop(1).
		Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectFrom:
		return &m.fromList
	case stateSelectTo:
		return &m.toList
	case stateSelectSchedule:
		return &m.scheduleList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingAgencies ||
		m.state == stateLoadingSchedules ||
		m.state == stateLoadingSeatMap ||
		m.state == statePurchasing
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingAgencies:
		title = "Loading agencies"
	case stateLoadingSchedules:
		title = "Searching trips"
	case stateLoadingSeatMap:
		title = "Loading seat map"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.fromList.SetSize(m.width, h)
	m.toList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
	m.scheduleList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithOptionsCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    returnState,
			returnStateSet: true,
		}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingAgencies:
		return stateSelectFrom
	case stateLoadingSchedules:
		return stateSelectDate
	case stateLoadingSeatMap:
		return stateSelectSchedule
	case statePurchasing:
		return stateSummary
	default:
		return state
	}
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func (m appModel) fetchAgenciesCmd() tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadAgencyCache(); err == nil && fresh && len(cached) > 0 {
			return agenciesMsg{agencies: cached}
		}
		ctx := context.Background()
		agencies, err := m.client.GetAgencies(ctx)
		if err == nil && len(agencies) > 0 {
			_ = store.SaveAgencyCache(agencies)
		}
		return agenciesMsg{agencies: agencies, err: err}
	}
}

func (m appModel) fetchSchedulesCmd(seq int, fromID string, toID string, date time.Time) tea.Cmd {
	return func() tea.Msg {
		dateKey := date.Format(time.DateOnly)
		if cached, fresh, err := store.LoadScheduleCache(fromID, toID, dateKey); err == nil && fresh && len(cached) > 0 {
			return schedulesMsg{seq: seq, schedules: cached}
		}
		ctx := context.Background()
		schedules, err := m.client.GetSchedules(ctx, fromID, toID, date)
		if err == nil && len(schedules) > 0 {
			_ = store.SaveScheduleCache(fromID, toID, dateKey, schedules)
		}
		return schedulesMsg{seq: seq, schedules: schedules, err: err}
	}
}

func (m appModel) fetchSeatMapCmd(seq int, tripID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		seatMap, err := m.client.GetSeatMap(ctx, tripID)
		return seatMapMsg{seq: seq, seatMap: seatMap, err: err}
	}
}

func (m appModel) purchaseCmd(req model.TicketSaleRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		res, err := m.client.SellTickets(ctx, req)
		return purchaseMsg{res: res, err: err}
	}
}

type agencyItem struct {
	agency model.Agency
	recent bool
}

func (a agencyItem) Title() string {
	return a.agency.Name
}

func (a agencyItem) Description() string {
	if a.recent {
		return "Recent"
	}
	return a.agency.ID
}

func (a agencyItem) FilterValue() string {
	return strings.ToLower(a.agency.Name + " " + a.agency.ID)
}

func buildAgencyItems(agencies []model.Agency, recent map[string]bool, excludeID string) []list.Item {
	var items []list.Item
	for _, agency := range agencies {
		if agency.ID == excludeID {
			continue
		}
		if recent[agency.ID] {
			items = append(items, agencyItem{agency: agency, recent: true})
		}
	}
	for _, agency := range agencies {
		if agency.ID == excludeID || recent[agency.ID] {
			continue
		}
		items = append(items, agencyItem{agency: agency})
	}
	return items
}

func recentFromIDs() map[string]bool {
	routes, err := store.LoadRecentRoutes()
	if err != nil {
		return nil
	}
	ids := map[string]bool{}
	for _, route := range routes {
		if route.FromID != "" {
			ids[route.FromID] = true
		}
	}
	return ids
}

func recentToIDs(fromID string) map[string]bool {
	routes, err := store.LoadRecentRoutes()
	if err != nil {
		return nil
	}
	ids := map[string]bool{}
	for _, route := range routes {
		if route.FromID == fromID && route.ToID != "" {
			ids[route.ToID] = true
		}
	}
	return ids
}

type scheduleItem struct {
	schedule model.Schedule
}

func (s scheduleItem) Title() string {
	return fmt.Sprintf("%s → %s • %s",
		s.schedule.Departure.Format("15:04"),
		s.schedule.Arrival.Format("15:04"),
		s.schedule.Company,
	)
}

func (s scheduleItem) Description() string {
	return fmt.Sprintf("%s • %d seats available", formatPrice(s.schedule.Price), s.schedule.AvailableSeats)
}

func (s scheduleItem) FilterValue() string {
	return strings.ToLower(s.schedule.Company + " " + s.schedule.ID)
}

func buildScheduleItems(schedules []model.Schedule) []list.Item {
	items := make([]list.Item, 0, len(schedules))
	for _, schedule := range schedules {
		items = append(items, scheduleItem{schedule: schedule})
	}
	return items
}

type dateItem struct {
	date time.Time
}

func (d dateItem) Title() string {
	if isSameDay(d.date, time.Now()) {
		return fmt.Sprintf("%s • %s (Today)", d.date.Format("Mon"), d.date.Format("02/01"))
	}
	return fmt.Sprintf("%s • %s", d.date.Format("Mon"), d.date.Format("02/01"))
}

func (d dateItem) Description() string {
	return d.date.Format(time.DateOnly)
}

func (d dateItem) FilterValue() string {
	return d.Title()
}

func buildDateItems(base time.Time) []list.Item {
	start := truncateDate(base)
	items := make([]list.Item, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, dateItem{date: start.AddDate(0, 0, i)})
	}
	return items
}

func isSameDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func joinSeats(seats []int) string {
	parts := make([]string, len(seats))
	for i, no := range seats {
		parts[i] = fmt.Sprintf("%d", no)
	}
	return strings.Join(parts, ", ")
}

func formatPrice(price float64) string {
	if price <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f TL", price)
}
