package collector

import (
	"context"
	"fmt"
	"os"
	"strings"

	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"netshow/model"
)

type procInfo struct {
	name    string
	cmdline string
}

// GopsutilSource enumerates all TCP sockets system-wide via gopsutil.
// Process names and command lines are cached per pid across cycles; stale
// entries are pruned when the pid stops appearing.
type GopsutilSource struct {
	procs map[int32]procInfo
}

// NewGopsutilSource returns the privileged source.
func NewGopsutilSource() *GopsutilSource {
	return &GopsutilSource{procs: make(map[int32]procInfo)}
}

func (s *GopsutilSource) Kind() SourceKind { return SourceGopsutil }

func (s *GopsutilSource) Collect(ctx context.Context) ([]model.ConnectionRecord, error) {
	conns, err := gnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		if isPermission(err) {
			return nil, fmt.Errorf("enumerate connections: %w", ErrPermission)
		}
		return nil, fmt.Errorf("enumerate connections: %w", err)
	}

	seen := make(map[int32]bool, len(conns))
	recs := make([]model.ConnectionRecord, 0, len(conns))
	for _, c := range conns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info := s.lookup(ctx, c.Pid)
		seen[c.Pid] = true

		laddr := formatAddr(c.Laddr.IP, c.Laddr.Port)
		raddr := formatAddr(c.Raddr.IP, c.Raddr.Port)
		recs = append(recs, model.ConnectionRecord{
			Key:         model.RecordKey(c.Pid, laddr, raddr, model.ProtoTCP),
			PID:         c.Pid,
			ProcessName: info.name,
			Cmdline:     info.cmdline,
			LocalAddr:   laddr,
			RemoteAddr:  raddr,
			Status:      model.ParseSocketStatus(c.Status),
			Protocol:    model.ProtoTCP,
		})
	}

	for pid := range s.procs {
		if !seen[pid] {
			delete(s.procs, pid)
		}
	}
	return dedupRecords(recs), nil
}

func (s *GopsutilSource) lookup(ctx context.Context, pid int32) procInfo {
	if pid <= 0 {
		return procInfo{name: "-"}
	}
	if info, ok := s.procs[pid]; ok {
		return info
	}
	info := procInfo{name: "-"}
	if p, err := process.NewProcessWithContext(ctx, pid); err == nil {
		if name, err := p.NameWithContext(ctx); err == nil && name != "" {
			info.name = name
		}
		if cmd, err := p.CmdlineWithContext(ctx); err == nil {
			info.cmdline = cmd
		}
	}
	s.procs[pid] = info
	return info
}

// formatAddr renders ip:port, bracketing IPv6 literals. Unbound addresses
// render empty.
func formatAddr(ip string, port uint32) string {
	if ip == "" && port == 0 {
		return ""
	}
	if strings.Contains(ip, ":") {
		return fmt.Sprintf("[%s]:%d", ip, port)
	}
	return fmt.Sprintf("%s:%d", ip, port)
}

func isPermission(err error) bool {
	return os.IsPermission(err) || strings.Contains(strings.ToLower(err.Error()), "permission denied")
}
