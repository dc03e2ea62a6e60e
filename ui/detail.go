package ui

import (
	"fmt"
	"strings"
	"time"
)

// viewDetail renders the drill-down screen for the focused row. Data comes
// from a one-shot CollectDetail query; periodic refresh is suspended while
// this screen is open.
func (m Model) viewDetail() string {
	var b strings.Builder

	// Everything on this screen describes the row captured at open time;
	// snapshots applied underneath never change it.
	rec := m.focused.Record

	title := "Connection Details: " + m.focused.Name
	if m.showEmoji {
		title = "🔗 " + title
	}
	b.WriteString(detailTitle.Width(m.width).Render(title))
	b.WriteByte('\n')

	b.WriteString(detailSection.Render(m.icon("🌐 ") + "Connection Info"))
	b.WriteByte('\n')
	pid := "-"
	if rec.PID > 0 {
		pid = fmt.Sprintf("%d", rec.PID)
	}
	items := []string{
		m.icon("🆔 ") + "PID: " + pid,
		m.icon("⚙️ ") + "Process: " + rec.ProcessName,
		m.icon("🏷️ ") + "Friendly Name: " + m.focused.Name,
		m.icon("🏠 ") + "Local Address: " + rec.LocalAddr,
		m.icon("🌐 ") + "Remote Address: " + rec.RemoteAddr,
	}
	status := "Status: " + string(rec.Status)
	if m.showEmoji {
		status = statusIcon(rec.Status) + " " + status
	}
	for _, it := range items {
		b.WriteString(detailItem.Render(it))
		b.WriteByte('\n')
	}
	b.WriteString(detailItem.Foreground(statusStyle(string(rec.Status)).GetForeground()).Render(status))
	b.WriteByte('\n')

	switch {
	case m.detail == nil:
		b.WriteByte('\n')
		b.WriteString(detailItem.Render("Loading process information…"))
		b.WriteByte('\n')
	case m.detail.Gone:
		b.WriteByte('\n')
		b.WriteString(goneStyle.Render("Process no longer running"))
		b.WriteByte('\n')
	default:
		d := m.detail
		b.WriteString(detailSection.Render(m.icon("🔧 ") + "Process Details"))
		b.WriteByte('\n')
		items := []string{
			m.icon("📁 ") + "Executable: " + orNA(d.Exe),
			m.icon("💻 ") + "Command Line: " + orNA(d.Cmdline),
			m.icon("📊 ") + "Status: " + orNA(d.Status),
			m.icon("👤 ") + "User: " + orNA(d.Username),
			m.icon("📂 ") + "Working Directory: " + orNA(d.Cwd),
			m.icon("🧵 ") + fmt.Sprintf("Threads: %d", d.Threads),
			fmt.Sprintf("Open Files: %d", d.OpenFiles),
		}
		if !d.CreatedAt.IsZero() {
			items = append(items, "Started: "+d.CreatedAt.Format(time.DateTime))
		}
		cpu := fmt.Sprintf("CPU Usage: %.1f%%", d.CPUPct)
		mem := fmt.Sprintf("Memory Usage: %.2f%%", d.MemoryPct)
		if m.showEmoji {
			cpu = cpuIcon(d.CPUPct) + " " + cpu
			mem = memIcon(d.MemoryPct) + " " + mem
		}
		items = append(items, cpu, mem)
		if n := len(d.Connections); n > 0 {
			items = append(items, m.icon("🌐 ")+fmt.Sprintf("Active Connections: %d", n))
		}
		for _, it := range items {
			b.WriteString(detailItem.Render(it))
			b.WriteByte('\n')
		}
		for i, c := range d.Connections {
			if i >= 10 {
				b.WriteString(detailItem.Render(dimStyle.Render(fmt.Sprintf("  … and %d more", len(d.Connections)-i))))
				b.WriteByte('\n')
				break
			}
			line := fmt.Sprintf("  %s -> %s %s", c.LocalAddr, c.RemoteAddr, c.Status)
			if c.RemoteAddr == "" {
				line = fmt.Sprintf("  %s %s", c.LocalAddr, c.Status)
			}
			b.WriteString(detailItem.Render(dimStyle.Render(line)))
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	b.WriteString(statusBar.Width(m.width).Render("esc/← back · ctrl+c quit"))
	return b.String()
}

func (m Model) icon(s string) string {
	if m.showEmoji {
		return s
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
