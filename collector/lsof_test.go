package collector

import (
	"testing"

	"netshow/model"
)

func TestParseLsofLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		ok     bool
		proc   string
		pid    int32
		laddr  string
		raddr  string
		status model.SocketStatus
	}{
		{
			name:   "established",
			line:   "chrome    4242 alice   45u  IPv4 0x12ab      0t0  TCP 10.0.0.2:54321->142.250.64.78:443 (ESTABLISHED)",
			ok:     true,
			proc:   "chrome",
			pid:    4242,
			laddr:  "10.0.0.2:54321",
			raddr:  "142.250.64.78:443",
			status: model.StatusEstablished,
		},
		{
			name:   "listen without remote",
			line:   "postgres   812 postgres  7u  IPv6 0xbeef      0t0  TCP [::1]:5432 (LISTEN)",
			ok:     true,
			proc:   "postgres",
			pid:    812,
			laddr:  "[::1]:5432",
			raddr:  "",
			status: model.StatusListen,
		},
		{
			name:   "unparseable status text maps to unknown",
			line:   "weird     9001 bob     3u  IPv4 0x00        0t0  TCP 10.0.0.2:1234->10.0.0.3:80 (SOMETHING_ODD)",
			ok:     true,
			proc:   "weird",
			pid:    9001,
			laddr:  "10.0.0.2:1234",
			raddr:  "10.0.0.3:80",
			status: model.StatusUnknown,
		},
		{
			name:   "missing status maps to unknown",
			line:   "nc        3333 bob     3u  IPv4 0x00        0t0  TCP *:8000",
			ok:     true,
			proc:   "nc",
			pid:    3333,
			laddr:  "*:8000",
			status: model.StatusUnknown,
		},
		{name: "truncated line skipped", line: "chrome 4242 alice 45u", ok: false},
		{name: "non-tcp node skipped", line: "chrome 4242 alice 45u IPv4 0x12 0t0 UDP 10.0.0.2:5353", ok: false},
		{name: "garbage pid skipped", line: "chrome abc alice 45u IPv4 0x12 0t0 TCP 1.2.3.4:1->5.6.7.8:2 (ESTABLISHED)", ok: false},
		{name: "empty line skipped", line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLsofLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.ProcessName != tt.proc {
				t.Errorf("proc = %q, want %q", got.ProcessName, tt.proc)
			}
			if got.PID != tt.pid {
				t.Errorf("pid = %d, want %d", got.PID, tt.pid)
			}
			if got.LocalAddr != tt.laddr || got.RemoteAddr != tt.raddr {
				t.Errorf("addrs = %q -> %q, want %q -> %q", got.LocalAddr, got.RemoteAddr, tt.laddr, tt.raddr)
			}
			if got.Status != tt.status {
				t.Errorf("status = %s, want %s", got.Status, tt.status)
			}
			if got.Key == "" {
				t.Error("record key must not be empty")
			}
		})
	}
}

func TestDedupRecords(t *testing.T) {
	a := model.ConnectionRecord{Key: "a"}
	b := model.ConnectionRecord{Key: "b"}
	got := dedupRecords([]model.ConnectionRecord{a, b, a, b, a})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Key != "a" || got[1].Key != "b" {
		t.Errorf("order = [%s %s], want first occurrences kept in order", got[0].Key, got[1].Key)
	}
}
