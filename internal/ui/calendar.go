package ui

import (
	"fmt"
	"strings"

	"tennisoath/internal/engine"
)

var weekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderCalendar draws a Monday-first month grid, coloring days by who signed.
func RenderCalendar(cal engine.CalendarMonth) string {
	var b strings.Builder
	b.WriteString(H2.Render(cal.Title()))
	b.WriteString("\n")
	for _, h := range weekdayHeaders {
		b.WriteString(Muted.Render(fmt.Sprintf("%4s", h)))
	}
	b.WriteString("\n")

	col := 0
	for i := 0; i < cal.Leading; i++ {
		b.WriteString("    ")
		col++
	}
	for _, d := range cal.Days {
		b.WriteString(renderDay(d))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func renderDay(d engine.CalendarDay) string {
	label := fmt.Sprintf("%d", d.Day)
	switch d.Visit {
	case engine.VisitBoth:
		return CellBoth.Render(label)
	case engine.VisitParent:
		return CellParent.Render(label)
	case engine.VisitPlayer:
		return CellPlayer.Render(label)
	case engine.VisitNone:
		if d.Today {
			return CellToday.Render(label)
		}
	}
	return fmt.Sprintf("%4s", label)
}

// CalendarLegend explains the cell colors.
func CalendarLegend() string {
	return strings.Join([]string{
		CellPlayer.Render("P") + " player",
		CellParent.Render("G") + " parent",
		CellBoth.Render("B") + " both",
	}, "  ")
}
