package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"busx-cli/booking"
	"busx-cli/model"
)

func firstSeatPosition(grid *booking.SeatGrid) (int, int) {
	if grid == nil {
		return 1, 1
	}
	for row := 1; row <= grid.Rows(); row++ {
		for col := 1; col <= grid.Cols(); col++ {
			if _, ok := grid.SeatAt(row, col); ok {
				return row, col
			}
		}
	}
	return 1, 1
}

func (m appModel) renderSeatMap() string {
	grid := m.session.Grid()
	if grid == nil {
		return "No seat map data."
	}

	selected := map[int]bool{}
	for _, no := range m.session.Selection() {
		selected[no] = true
	}

	cellWidth := 2
	if grid.MaxSeatNumber() >= 100 {
		cellWidth = 3
	}

	styleEmpty := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleTaken := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleBlocked := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("5")).Bold(true)
	styleCursor := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	styleDoor := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder

	driver := driverBarBlock((grid.Cols())*(cellWidth+1)-1, "DRIVER")
	b.WriteString("   ")
	b.WriteString(styleDoor.Render(driver.top))
	b.WriteString("\n   ")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Render(driver.mid))
	b.WriteString("\n   ")
	b.WriteString(styleDoor.Render(driver.bot))
	b.WriteString("\n\n")

	for row := 1; row <= grid.Rows(); row++ {
		b.WriteString(fmt.Sprintf("%2d ", row))
		for col := 1; col <= grid.Cols(); col++ {
			var rendered string
			if seat, ok := grid.SeatAt(row, col); ok {
				text := padCell(fmt.Sprintf("%d", seat.No), cellWidth)
				underCursor := row == m.cursorRow && col == m.cursorCol
				switch {
				case underCursor:
					rendered = styleCursor.Render(text)
				case selected[seat.No]:
					rendered = styleSelected.Render(text)
				case seat.Status == model.SeatTaken:
					rendered = styleTaken.Render(padCell("XX", cellWidth))
				case seat.Status == model.SeatUnavailable:
					rendered = styleBlocked.Render(padCell("##", cellWidth))
				default:
					rendered = styleEmpty.Render(text)
				}
			} else {
				switch grid.CellAt(row, col) {
				case model.CellDoor:
					rendered = styleDoor.Render(padCell("==", cellWidth))
				default:
					rendered = strings.Repeat(" ", cellWidth)
				}
			}
			b.WriteString(rendered)
			if col < grid.Cols() {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	seats := m.session.Selection()
	legend := "Legend: number available • XX taken • ## unavailable • == door • highlighted selected"
	status := fmt.Sprintf(
		"Selected: %s (%d/%d) • Total: %s",
		orDash(joinSeats(seats)),
		len(seats),
		m.session.SeatLimit(),
		formatPrice(m.session.TotalPrice()),
	)

	out := b.String() + "\n" + hint(legend) + "\n" + hint(status)
	if m.notice != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.notice)
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type driverBlock struct {
	top string
	mid string
	bot string
}

func driverBarBlock(width int, label string) driverBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	top := "╭" + strings.Repeat("─", width-2) + "╮"
	bot := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return driverBlock{top: top, mid: mid, bot: bot}
}
