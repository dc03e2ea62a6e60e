package model

import "testing"

func TestParseSocketStatus(t *testing.T) {
	tests := []struct {
		in   string
		want SocketStatus
	}{
		{"ESTABLISHED", StatusEstablished},
		{"established", StatusEstablished},
		{"  listen  ", StatusListen},
		{"FIN_WAIT_1", StatusFinWait1},
		{"FIN_WAIT1", StatusFinWait1},
		{"CLOSED", StatusClose},
		{"SOMETHING_ODD", StatusUnknown},
		{"", StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseSocketStatus(tt.in); got != tt.want {
				t.Errorf("ParseSocketStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecordKeyStable(t *testing.T) {
	a := RecordKey(42, "127.0.0.1:8080", "10.0.0.1:5432", ProtoTCP)
	b := RecordKey(42, "127.0.0.1:8080", "10.0.0.1:5432", ProtoTCP)
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
	if c := RecordKey(43, "127.0.0.1:8080", "10.0.0.1:5432", ProtoTCP); c == a {
		t.Error("different pid must produce a different key")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		rec  ConnectionRecord
		want string
	}{
		{"friendly wins", ConnectionRecord{ProcessName: "com.docker.backend", FriendlyName: "Docker Desktop"}, "Docker Desktop"},
		{"raw fallback", ConnectionRecord{ProcessName: "nginx"}, "nginx"},
		{"nothing known", ConnectionRecord{}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
