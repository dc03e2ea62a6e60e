package collector

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"netshow/model"
)

// SourceKind identifies which collection path produced a snapshot.
type SourceKind string

const (
	// SourceGopsutil is the privileged path: system-wide socket
	// enumeration with full status and owning pid.
	SourceGopsutil SourceKind = "gopsutil"
	// SourceLsof is the unprivileged fallback: parsing lsof output.
	SourceLsof SourceKind = "lsof"
)

// Label is the status-bar form of the source name.
func (k SourceKind) Label() string {
	if k == SourceGopsutil {
		return "gopsutil (root)"
	}
	return string(k)
}

// Source produces one point-in-time list of connection records. Collect
// must honor ctx so a slow cycle can be abandoned.
type Source interface {
	Kind() SourceKind
	Collect(ctx context.Context) ([]model.ConnectionRecord, error)
}

var (
	// ErrPermission marks a collection failure caused by missing
	// privileges.
	ErrPermission = errors.New("permission denied")
	// ErrNoSource means no collection path works at all; startup is the
	// only place this is fatal.
	ErrNoSource = errors.New("no usable connection source (need root or lsof in PATH)")
)

// Select picks the collection source once at startup. The privileged path
// is probed only when running as root; on failure the process falls back
// permanently to lsof, so later cycles never repeat the permission check.
func Select(ctx context.Context) (Source, error) {
	if os.Geteuid() == 0 {
		s := NewGopsutilSource()
		if _, err := s.Collect(ctx); err == nil {
			return s, nil
		}
	}
	if _, err := exec.LookPath("lsof"); err == nil {
		return NewLsofSource(), nil
	}
	return nil, ErrNoSource
}

// dedupRecords drops records whose key was already seen, preserving input
// order. Sources can report the same socket more than once (dup fds,
// threads); keys must be unique within a snapshot.
func dedupRecords(recs []model.ConnectionRecord) []model.ConnectionRecord {
	seen := make(map[string]bool, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		out = append(out, r)
	}
	return out
}
