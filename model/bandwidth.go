package model

import "time"

// BandwidthSample is one rate-of-change observation of an interface's byte
// counters.
type BandwidthSample struct {
	Interface string
	RxDelta   uint64
	TxDelta   uint64
	Elapsed   time.Duration

	// Rates in bytes per second, derived from the deltas. Zero on the
	// first sample for a fresh baseline.
	RxRate float64
	TxRate float64

	// Aggregate is set when the requested interface disappeared and the
	// sample fell back to the all-interfaces counter.
	Aggregate bool
}
