package model

import (
	"fmt"
	"strings"
)

// Protocol identifies the transport protocol of a connection.
type Protocol string

const (
	ProtoTCP Protocol = "tcp"
	ProtoUDP Protocol = "udp"
)

// SocketStatus is the TCP state of a connection as reported by the
// collection source. Sources that cannot classify an entry report
// StatusUnknown.
type SocketStatus string

const (
	StatusEstablished SocketStatus = "ESTABLISHED"
	StatusSynSent     SocketStatus = "SYN_SENT"
	StatusSynRecv     SocketStatus = "SYN_RECV"
	StatusFinWait1    SocketStatus = "FIN_WAIT1"
	StatusFinWait2    SocketStatus = "FIN_WAIT2"
	StatusTimeWait    SocketStatus = "TIME_WAIT"
	StatusClose       SocketStatus = "CLOSE"
	StatusCloseWait   SocketStatus = "CLOSE_WAIT"
	StatusLastAck     SocketStatus = "LAST_ACK"
	StatusListen      SocketStatus = "LISTEN"
	StatusClosing     SocketStatus = "CLOSING"
	StatusUnknown     SocketStatus = "UNKNOWN"
)

var knownStatuses = map[string]SocketStatus{
	"ESTABLISHED": StatusEstablished,
	"SYN_SENT":    StatusSynSent,
	"SYN_RECV":    StatusSynRecv,
	"FIN_WAIT1":   StatusFinWait1,
	"FIN_WAIT_1":  StatusFinWait1,
	"FIN_WAIT2":   StatusFinWait2,
	"FIN_WAIT_2":  StatusFinWait2,
	"TIME_WAIT":   StatusTimeWait,
	"CLOSE":       StatusClose,
	"CLOSED":      StatusClose,
	"CLOSE_WAIT":  StatusCloseWait,
	"LAST_ACK":    StatusLastAck,
	"LISTEN":      StatusListen,
	"CLOSING":     StatusClosing,
}

// ParseSocketStatus maps source-reported status text to a SocketStatus.
// Text the source cannot classify maps to StatusUnknown rather than
// failing the record.
func ParseSocketStatus(s string) SocketStatus {
	if st, ok := knownStatuses[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return st
	}
	return StatusUnknown
}

// ConnectionRecord identifies one observed socket. Records are built fresh
// each collection cycle and never mutated in place; cycles are compared by
// Key to infer add/remove/update.
type ConnectionRecord struct {
	Key          string
	PID          int32
	ProcessName  string
	Cmdline      string
	FriendlyName string
	LocalAddr    string
	RemoteAddr   string
	Status       SocketStatus
	Protocol     Protocol
}

// RecordKey derives the stable identity of a connection. It is unique
// within a snapshot and stable across snapshots for as long as the OS
// keeps the socket open.
func RecordKey(pid int32, laddr, raddr string, proto Protocol) string {
	return fmt.Sprintf("%d|%s|%s|%s", pid, laddr, raddr, proto)
}

// DisplayName returns the friendly name when one resolved, otherwise the
// raw process name.
func (r ConnectionRecord) DisplayName() string {
	if r.FriendlyName != "" {
		return r.FriendlyName
	}
	if r.ProcessName != "" {
		return r.ProcessName
	}
	return "-"
}
