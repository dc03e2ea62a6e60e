package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"netshow/collector"
	"netshow/model"
)

// fakeSource counts Collect calls and serves a fixed record set.
type fakeSource struct {
	calls   int
	records []model.ConnectionRecord
}

func (s *fakeSource) Kind() collector.SourceKind { return collector.SourceLsof }

func (s *fakeSource) Collect(context.Context) ([]model.ConnectionRecord, error) {
	s.calls++
	return s.records, nil
}

// drainCmd executes a command tree synchronously and returns the messages
// it produces, flattening batches.
func drainCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drainCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func countSnapshots(msgs []tea.Msg) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(snapshotMsg); ok {
			n++
		}
	}
	return n
}

func testRecord(pid int32, laddr string) model.ConnectionRecord {
	r := model.ConnectionRecord{
		PID:         pid,
		ProcessName: "proc",
		LocalAddr:   laddr,
		Status:      model.StatusEstablished,
		Protocol:    model.ProtoTCP,
	}
	r.Key = model.RecordKey(pid, laddr, "", model.ProtoTCP)
	return r
}

func TestTickWhileCollectionInFlightStartsNothing(t *testing.T) {
	src := &fakeSource{}
	m := NewModel(src, Options{Interval: time.Millisecond})

	// Init schedules the first collection, so the guard must already be
	// held before any message arrives.
	if !m.collecting {
		t.Fatal("guard not held while the initial collection is in flight")
	}

	got, cmd := m.Update(tickMsg{seq: 0})
	m = got.(Model)
	if n := countSnapshots(drainCmd(cmd)); n != 0 {
		t.Errorf("tick started %d collections while one was in flight, want 0", n)
	}
	if src.calls != 0 {
		t.Errorf("source collected %d times, want 0", src.calls)
	}

	// Once the in-flight collection completes, the next tick collects
	// again.
	got, _ = m.Update(snapshotMsg{seq: 1})
	m = got.(Model)
	_, cmd = m.Update(tickMsg{seq: 0})
	if n := countSnapshots(drainCmd(cmd)); n != 1 {
		t.Errorf("tick after completion started %d collections, want 1", n)
	}
	if src.calls != 1 {
		t.Errorf("source collected %d times, want 1", src.calls)
	}
}

func TestStaleSnapshotKeepsGuardHeld(t *testing.T) {
	src := &fakeSource{}
	m := NewModel(src, Options{Interval: time.Second})

	// Collection 1 is in flight. A completion stamped with an older
	// sequence must neither release the guard nor touch the rows.
	got, _ := m.Update(snapshotMsg{seq: 0, records: []model.ConnectionRecord{testRecord(1, "10.0.0.1:80")}})
	m = got.(Model)
	if !m.collecting {
		t.Error("superseded completion released the in-flight guard")
	}
	if len(m.rows) != 0 {
		t.Errorf("superseded completion applied %d rows, want 0", len(m.rows))
	}

	got, _ = m.Update(snapshotMsg{seq: 1, records: []model.ConnectionRecord{testRecord(1, "10.0.0.1:80")}})
	m = got.(Model)
	if m.collecting {
		t.Error("current completion did not release the guard")
	}
	if len(m.rows) != 1 {
		t.Errorf("current completion applied %d rows, want 1", len(m.rows))
	}
}

func TestDetailScreenKeepsFocusedConnection(t *testing.T) {
	src := &fakeSource{}
	m := NewModel(src, Options{Interval: time.Second})

	got, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = got.(Model)
	got, _ = m.Update(snapshotMsg{seq: 1, records: []model.ConnectionRecord{testRecord(100, "10.0.0.1:80")}})
	m = got.(Model)

	// Start a refresh, then drill into the row while it is in flight.
	got, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = got.(Model)
	got, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = got.(Model)
	if m.page != pageDetail {
		t.Fatal("enter did not open the detail screen")
	}

	// The refresh lands with a completely different record set. The open
	// detail screen must keep describing the connection it was opened on.
	got, _ = m.Update(snapshotMsg{seq: 2, records: []model.ConnectionRecord{testRecord(200, "192.168.9.9:443")}})
	m = got.(Model)

	view := m.View()
	if !strings.Contains(view, "10.0.0.1:80") {
		t.Error("detail screen lost the connection it was opened on")
	}
	if strings.Contains(view, "192.168.9.9:443") {
		t.Error("detail screen switched to a connection the user never selected")
	}
}
