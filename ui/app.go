package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"netshow/collector"
	"netshow/engine"
	"netshow/model"
)

const (
	// filterDebounce is how long filter edits settle before committing.
	filterDebounce = 250 * time.Millisecond
	// staleLimit is how many consecutive failed cycles escalate the stale
	// marker into a visible warning.
	staleLimit = 3
	// chrome line budget of the list screen: title, metrics strip, filter
	// line, table header, status bar.
	listChrome = 7
	// tableTop is the Y coordinate of the first table row, for mouse hits.
	tableTop = 6
)

// Options carries the runtime configuration from the command line down
// into the program. Session-lifetime flags (emoji, interface, sort) live
// on the Model itself, owned by the update loop.
type Options struct {
	Interval time.Duration
	NoColors bool
}

type page int

const (
	pageList page = iota
	pageDetail
)

type tickMsg struct{ seq int }

type snapshotMsg struct {
	seq     int
	records []model.ConnectionRecord
	err     error
}

type interfacesMsg struct{ names []string }

type bandwidthMsg struct {
	sample model.BandwidthSample
	err    error
}

type detailMsg struct{ detail model.ProcessDetail }

type filterDebounceMsg struct{ seq int }

// Model is the bubbletea model and the single owner of all mutable state.
type Model struct {
	opts    Options
	source  collector.Source
	engine  *engine.Reconciler
	sampler *collector.BandwidthSampler

	// Data
	lastRecords []model.ConnectionRecord
	rows        []model.ViewRow
	diff        model.RowDiff

	// Navigation
	page   page
	cursor int
	offset int
	// focused is the row the detail screen was opened on. Captured at
	// open time so a snapshot landing underneath cannot swap the
	// connection the screen describes.
	focused model.ViewRow
	detail  *model.ProcessDetail

	// Filter / sort
	filterInput textinput.Model
	filter      model.FilterState
	filterSeq   int
	sortKey     model.SortKey

	// Bandwidth strip
	ifaces   []string
	ifaceIdx int
	bw       model.BandwidthSample

	// Refresh loop
	tickSeq    int
	collectSeq int
	collecting bool
	stale      bool
	failures   int
	lastErr    string
	lastOK     time.Time

	showEmoji bool

	width  int
	height int
}

// NewModel builds the program model around an already selected source.
func NewModel(src collector.Source, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "filter (regex)"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	return Model{
		opts:        opts,
		source:      src,
		engine:      engine.New(),
		sampler:     collector.NewBandwidthSampler(),
		filterInput: ti,
		ifaces:      []string{collector.AllInterfaces},
		// Init always schedules collection number 1, so the in-flight
		// guard starts held.
		collectSeq: 1,
		collecting: true,
		// Emoji render as garbage on terminals forced to ASCII.
		showEmoji: !opts.NoColors,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tick(m.opts.Interval, m.tickSeq),
		collectCmd(m.source, m.collectBudget(), m.collectSeq),
		sampleCmd(m.sampler, m.iface()),
		listInterfacesCmd(),
	)
}

func tick(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{seq: seq} })
}

// collectBudget is the implicit per-cycle timeout: one interval, floored
// so very fast refresh rates still give the source a chance.
func (m Model) collectBudget() time.Duration {
	if m.opts.Interval < time.Second {
		return time.Second
	}
	return m.opts.Interval
}

func (m Model) iface() string {
	return m.ifaces[m.ifaceIdx]
}

func collectCmd(src collector.Source, budget time.Duration, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), budget)
		defer cancel()
		records, err := src.Collect(ctx)
		return snapshotMsg{seq: seq, records: records, err: err}
	}
}

func sampleCmd(s *collector.BandwidthSampler, iface string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		sample, err := s.Sample(ctx, iface)
		return bandwidthMsg{sample: sample, err: err}
	}
}

func listInterfacesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		names, err := collector.Interfaces(ctx)
		if err != nil || len(names) == 0 {
			names = []string{collector.AllInterfaces}
		}
		return interfacesMsg{names: names}
	}
}

func detailCmd(pid int32) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return detailMsg{detail: collector.CollectDetail(ctx, pid)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampViewport()

	case tickMsg:
		if msg.seq != m.tickSeq {
			return m, nil // superseded chain
		}
		if m.page == pageDetail {
			// Refresh is fully suspended while the detail screen is
			// open; closing it starts a fresh chain.
			return m, nil
		}
		cmds := []tea.Cmd{tick(m.opts.Interval, m.tickSeq), sampleCmd(m.sampler, m.iface())}
		if !m.collecting {
			// At most one collection in flight; missed ticks coalesce.
			m.collecting = true
			m.collectSeq++
			cmds = append(cmds, collectCmd(m.source, m.collectBudget(), m.collectSeq))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		if msg.seq != m.collectSeq {
			// Completion of a superseded collection; the current one is
			// still in flight, so the guard stays held.
			return m, nil
		}
		m.collecting = false
		if msg.err != nil {
			// Retain the previous snapshot and mark it stale; escalate
			// only after repeated consecutive failures.
			m.stale = true
			m.failures++
			if errors.Is(msg.err, context.DeadlineExceeded) {
				m.lastErr = "collection timed out"
			} else {
				m.lastErr = msg.err.Error()
			}
			return m, nil
		}
		m.failures = 0
		m.stale = false
		m.lastErr = ""
		m.lastOK = time.Now()
		m.lastRecords = msg.records
		m.applySnapshot()
		return m, nil

	case interfacesMsg:
		m.ifaces = msg.names
		if m.ifaceIdx >= len(m.ifaces) {
			m.ifaceIdx = 0
		}

	case bandwidthMsg:
		if msg.err == nil {
			m.bw = msg.sample
		}

	case detailMsg:
		d := msg.detail
		m.detail = &d

	case filterDebounceMsg:
		if msg.seq != m.filterSeq {
			return m, nil // superseded by a newer edit
		}
		m.commitFilter()
	}
	return m, nil
}

// applySnapshot reruns reconciliation against the latest raw records.
func (m *Model) applySnapshot() {
	prev := m.rows
	m.rows, m.diff = m.engine.Reconcile(prev, m.lastRecords, m.filter, m.sortKey)
	m.cursor = engine.NextCursor(prev, m.rows, m.cursor)
	m.clampViewport()
}

func (m *Model) commitFilter() {
	m.filter = engine.CompileFilter(m.filterInput.Value())
	m.applySnapshot()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.page == pageDetail {
		switch msg.String() {
		case "esc", "left", "q":
			return m.closeDetail()
		}
		return m, nil
	}

	if m.filterInput.Focused() {
		switch msg.String() {
		case "esc":
			m.filterInput.Blur()
			return m, nil
		case "enter":
			m.filterInput.Blur()
			m.filterSeq++ // cancel any pending debounce
			m.commitFilter()
			return m, nil
		}
		before := m.filterInput.Value()
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		if m.filterInput.Value() != before {
			// Each edit cancels the pending commit and schedules a new
			// one after the debounce delay.
			m.filterSeq++
			seq := m.filterSeq
			debounce := tea.Tick(filterDebounce, func(time.Time) tea.Msg {
				return filterDebounceMsg{seq: seq}
			})
			return m, tea.Batch(cmd, debounce)
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampViewport()
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.clampViewport()
	case "enter":
		return m.openDetail()
	case "ctrl+r":
		if !m.collecting {
			m.collecting = true
			m.collectSeq++
			return m, collectCmd(m.source, m.collectBudget(), m.collectSeq)
		}
	case "f", "/":
		m.filterInput.Focus()
		return m, textinput.Blink
	case "s":
		m.sortKey = model.SortByStatus
		m.applySnapshot()
	case "p":
		m.sortKey = model.SortByProcess
		m.applySnapshot()
	case "e":
		m.showEmoji = !m.showEmoji
	case "i":
		if len(m.ifaces) > 0 {
			m.ifaceIdx = (m.ifaceIdx + 1) % len(m.ifaces)
			// The sampler resets its baseline on interface change, so a
			// mid-cycle switch never produces a cross-counter delta.
			return m, sampleCmd(m.sampler, m.iface())
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.page != pageList || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row := m.offset + (msg.Y - tableTop)
	if row >= 0 && row < len(m.rows) {
		m.cursor = row
		return m.openDetail()
	}
	return m, nil
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return m, nil
	}
	m.page = pageDetail
	m.detail = nil
	// The screen renders from this copy, not from m.rows, so a snapshot
	// from an in-flight collection cannot change which connection is
	// being described.
	m.focused = m.rows[m.cursor]
	return m, detailCmd(m.focused.Record.PID)
}

func (m Model) closeDetail() (tea.Model, tea.Cmd) {
	m.page = pageList
	m.detail = nil
	// Resume the suspended refresh loop and force an immediate refresh.
	m.tickSeq++
	cmds := []tea.Cmd{tick(m.opts.Interval, m.tickSeq)}
	if !m.collecting {
		m.collecting = true
		m.collectSeq++
		cmds = append(cmds, collectCmd(m.source, m.collectBudget(), m.collectSeq))
	}
	return m, tea.Batch(cmds...)
}

// visibleRows is how many table rows fit the current terminal height.
func (m Model) visibleRows() int {
	n := m.height - listChrome
	if n < 1 {
		n = 1
	}
	return n
}

// clampViewport keeps the cursor inside the scrolled window.
func (m *Model) clampViewport() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
