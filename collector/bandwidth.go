package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"

	"netshow/model"
	"netshow/util"
)

// AllInterfaces is the pseudo-interface name for the aggregate counter.
const AllInterfaces = "all"

// BandwidthSampler reads per-interface byte counters and computes
// rate-of-change between consecutive samples. The first sample for a fresh
// baseline is zero-rate; switching interfaces (or falling back to the
// aggregate counter) resets the baseline instead of computing a delta
// across unrelated counters.
type BandwidthSampler struct {
	counters func(ctx context.Context) ([]gnet.IOCountersStat, error)
	now      func() time.Time

	baseline  string // interface the stored counters belong to ("" = none)
	aggregate bool
	prevRx    uint64
	prevTx    uint64
	prevAt    time.Time
}

// NewBandwidthSampler returns a sampler backed by the OS counters.
func NewBandwidthSampler() *BandwidthSampler {
	return &BandwidthSampler{
		counters: func(ctx context.Context) ([]gnet.IOCountersStat, error) {
			return gnet.IOCountersWithContext(ctx, true)
		},
		now: time.Now,
	}
}

// Sample reads the counters for iface and returns the rate since the
// previous sample. When the interface is missing (unplugged, renamed, or
// iface is AllInterfaces) the aggregate counter is used and the sample is
// flagged so the UI can indicate degraded accuracy.
func (s *BandwidthSampler) Sample(ctx context.Context, iface string) (model.BandwidthSample, error) {
	stats, err := s.counters(ctx)
	if err != nil {
		return model.BandwidthSample{}, fmt.Errorf("read interface counters: %w", err)
	}

	rx, tx, aggregate := sumCounters(stats, iface)
	now := s.now()

	sample := model.BandwidthSample{Interface: iface, Aggregate: aggregate}
	if s.baseline == iface && s.aggregate == aggregate {
		dt := now.Sub(s.prevAt)
		sample.RxDelta = util.Delta(s.prevRx, rx)
		sample.TxDelta = util.Delta(s.prevTx, tx)
		sample.Elapsed = dt
		sample.RxRate = util.Rate(s.prevRx, rx, dt)
		sample.TxRate = util.Rate(s.prevTx, tx, dt)
	}

	s.baseline = iface
	s.aggregate = aggregate
	s.prevRx = rx
	s.prevTx = tx
	s.prevAt = now
	return sample, nil
}

// Interfaces lists selectable interface names: the aggregate
// pseudo-interface first, then real interfaces sorted, loopback excluded.
func Interfaces(ctx context.Context) ([]string, error) {
	stats, err := gnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	names := []string{AllInterfaces}
	var real []string
	for _, st := range stats {
		if st.Name == "lo" || st.Name == "lo0" {
			continue
		}
		real = append(real, st.Name)
	}
	sort.Strings(real)
	return append(names, real...), nil
}

func sumCounters(stats []gnet.IOCountersStat, iface string) (rx, tx uint64, aggregate bool) {
	if iface != AllInterfaces {
		for _, st := range stats {
			if st.Name == iface {
				return st.BytesRecv, st.BytesSent, false
			}
		}
	}
	for _, st := range stats {
		rx += st.BytesRecv
		tx += st.BytesSent
	}
	return rx, tx, true
}

