package collector

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"netshow/model"
	"netshow/util"
)

// LsofSource shells out to lsof and parses its table output. Status may be
// UNKNOWN for entries lsof cannot classify, and individual malformed lines
// are skipped rather than failing the cycle.
type LsofSource struct {
	procs map[int32]procInfo
}

// NewLsofSource returns the unprivileged fallback source.
func NewLsofSource() *LsofSource {
	return &LsofSource{procs: make(map[int32]procInfo)}
}

func (s *LsofSource) Kind() SourceKind { return SourceLsof }

func (s *LsofSource) Collect(ctx context.Context) ([]model.ConnectionRecord, error) {
	out, err := exec.CommandContext(ctx, "lsof", "-nP", "-iTCP").Output()
	if err != nil {
		// lsof exits 1 when some files could not be listed but still
		// prints what it saw; only a fully empty output is a failure.
		if len(out) == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return nil, cerr
			}
			return nil, fmt.Errorf("run lsof: %w", err)
		}
	}

	lines := strings.Split(string(out), "\n")
	seen := make(map[int32]bool)
	var recs []model.ConnectionRecord
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue // header
		}
		rec, ok := parseLsofLine(line)
		if !ok {
			continue
		}
		info := s.lookup(ctx, rec.PID)
		seen[rec.PID] = true
		rec.Cmdline = info.cmdline
		recs = append(recs, rec)
	}

	for pid := range s.procs {
		if !seen[pid] {
			delete(s.procs, pid)
		}
	}
	return dedupRecords(recs), nil
}

// lookup fills command lines the same way the privileged source does; lsof
// only reports the (possibly truncated) command name.
func (s *LsofSource) lookup(ctx context.Context, pid int32) procInfo {
	if info, ok := s.procs[pid]; ok {
		return info
	}
	info := procInfo{}
	if p, err := process.NewProcessWithContext(ctx, pid); err == nil {
		if cmd, err := p.CmdlineWithContext(ctx); err == nil {
			info.cmdline = cmd
		}
	}
	s.procs[pid] = info
	return info
}

// parseLsofLine parses one body line of `lsof -nP -iTCP` output:
//
//	COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME
//	chrome  4242 alice 45u IPv4 0x1234    0t0 TCP 10.0.0.2:54321->1.2.3.4:443 (ESTABLISHED)
//
// The state suffix is optional; when missing or unrecognized the record
// gets StatusUnknown.
func parseLsofLine(line string) (model.ConnectionRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) < 9 || fields[7] != "TCP" {
		return model.ConnectionRecord{}, false
	}
	pid := int32(util.ParseInt(fields[1]))
	if pid <= 0 {
		return model.ConnectionRecord{}, false
	}

	status := model.StatusUnknown
	if last := fields[len(fields)-1]; strings.HasPrefix(last, "(") && strings.HasSuffix(last, ")") {
		status = model.ParseSocketStatus(strings.Trim(last, "()"))
	}

	laddr, raddr := splitConn(fields[8])
	if laddr == "" {
		return model.ConnectionRecord{}, false
	}

	rec := model.ConnectionRecord{
		PID:         pid,
		ProcessName: fields[0],
		LocalAddr:   laddr,
		RemoteAddr:  raddr,
		Status:      status,
		Protocol:    model.ProtoTCP,
	}
	rec.Key = model.RecordKey(pid, laddr, raddr, model.ProtoTCP)
	return rec, true
}

// splitConn splits lsof's NAME field "local->remote" into its halves; a
// listening socket has no remote half.
func splitConn(addr string) (laddr, raddr string) {
	parts := strings.SplitN(addr, "->", 2)
	laddr = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		raddr = strings.TrimSpace(parts[1])
	}
	return laddr, raddr
}
