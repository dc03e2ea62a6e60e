package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"netshow/model"
)

func (m Model) View() string {
	if m.width == 0 {
		return "initializing…"
	}
	if m.page == pageDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteByte('\n')
	b.WriteString(m.renderMetrics())
	b.WriteByte('\n')
	b.WriteString(m.renderFilterLine())
	b.WriteByte('\n')
	b.WriteString(m.renderTable())
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderTitle() string {
	return titleStyle.Width(m.width).Render("netshow — TCP connections")
}

// renderMetrics draws the strip above the table: connection counts plus
// the bandwidth of the selected interface.
func (m Model) renderMetrics() string {
	var total, established, listening int
	total = len(m.rows)
	for _, r := range m.rows {
		switch r.Record.Status {
		case model.StatusEstablished:
			established++
		case model.StatusListen:
			listening++
		}
	}

	iface := m.iface()
	bwText := fmt.Sprintf("%s ▼ %s/s ▲ %s/s", iface,
		humanize.Bytes(uint64(m.bw.RxRate)), humanize.Bytes(uint64(m.bw.TxRate)))
	if m.bw.Aggregate && iface != "all" {
		// Interface vanished; rates come from the aggregate counter.
		bwText += " (all)"
	}

	cells := []string{
		metricStyle.Render(fmt.Sprintf("Connections %d", total)),
		metricStyle.Render(fmt.Sprintf("Established %d", established)),
		metricStyle.Render(fmt.Sprintf("Listening %d", listening)),
		metricStyle.Render(bwText),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) renderFilterLine() string {
	line := filterLabel.Render("Filter ") + m.filterInput.View()
	if m.filter.Err != nil {
		line += "  " + filterErrText.Render(m.filter.Err.Error())
	}
	return line
}

type column struct {
	title string
	width int
}

func (m Model) columns() []column {
	// Fixed widths for the narrow columns; the two address columns split
	// whatever remains.
	pid, status := 7, 14
	name := 22
	proc := 16
	rest := m.width - pid - status - name - proc - 5
	if rest < 20 {
		rest = 20
	}
	addr := rest / 2
	return []column{
		{"PID", pid},
		{"Service", name},
		{"Process", proc},
		{"Local Address", addr},
		{"Remote Address", addr},
		{"Status", status},
	}
}

func (m Model) renderTable() string {
	cols := m.columns()

	var b strings.Builder
	var header strings.Builder
	for _, c := range cols {
		header.WriteString(pad(c.title, c.width))
		header.WriteByte(' ')
	}
	b.WriteString(headerStyle.Width(m.width).Render(header.String()))
	b.WriteByte('\n')

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], cols, i == m.cursor))
		b.WriteByte('\n')
	}
	for i := end - m.offset; i < visible; i++ {
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderRow(row model.ViewRow, cols []column, selected bool) string {
	rec := row.Record

	pid := "-"
	if rec.PID > 0 {
		pid = fmt.Sprintf("%d", rec.PID)
	}
	status := string(rec.Status)
	if m.showEmoji {
		status = statusIcon(rec.Status) + " " + status
	}

	cells := []string{pid, row.Name, rec.ProcessName, rec.LocalAddr, rec.RemoteAddr, status}
	var b strings.Builder
	for i, c := range cols[:len(cols)-1] {
		b.WriteString(pad(cells[i], c.width))
		b.WriteByte(' ')
	}
	statusCell := pad(cells[5], cols[5].width)

	if selected {
		return cursorStyle.Width(m.width).Render(b.String() + statusCell)
	}
	return rowStyle.Render(b.String()) + statusStyle(string(rec.Status)).Render(statusCell)
}

func (m Model) renderStatusBar() string {
	parts := []string{
		fmt.Sprintf("Connections: %d", len(m.rows)),
		"Source: " + m.source.Kind().Label(),
		"Sort: " + m.sortKey.String(),
		fmt.Sprintf("Every %.1fs", m.opts.Interval.Seconds()),
	}
	line := strings.Join(parts, " | ")
	if m.stale {
		line += " | " + staleStyle.Render("STALE")
	}
	if m.failures >= staleLimit {
		line += " " + warnStyle.Render(fmt.Sprintf("collection failing (%d cycles): %s", m.failures, m.lastErr))
	}
	help := dimStyle.Render("  ↑/↓ move · enter detail · / filter · s/p sort · i iface · e emoji · ctrl+r refresh · q quit")
	return statusBar.Width(m.width).Render(line + help)
}

// pad truncates or right-pads s to exactly w runes.
func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		if w > 1 {
			return string(r[:w-1]) + "…"
		}
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}
