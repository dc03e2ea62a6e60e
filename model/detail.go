package model

import "time"

// ProcessDetail is the expanded view of one process, built lazily when the
// user drills into a row and discarded when the detail screen closes.
// Fields are best-effort: anything the platform refuses to report stays at
// its zero value.
type ProcessDetail struct {
	PID         int32
	Name        string
	Exe         string
	Cmdline     string
	Cwd         string
	Username    string
	Status      string
	CreatedAt   time.Time
	Threads     int32
	CPUPct      float64
	MemoryPct   float32
	OpenFiles   int
	Connections []ConnectionRecord

	// Gone is set when the pid exited between list render and drill-down.
	Gone bool
}
