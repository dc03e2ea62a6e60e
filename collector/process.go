package collector

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"netshow/model"
)

// CollectDetail builds the expanded view of one process for the detail
// screen. Every field is best-effort; a pid that exited between list
// render and drill-down yields a detail with Gone set instead of an error.
func CollectDetail(ctx context.Context, pid int32) model.ProcessDetail {
	d := model.ProcessDetail{PID: pid}
	if pid <= 0 {
		d.Gone = true
		return d
	}
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		d.Gone = true
		return d
	}

	if name, err := p.NameWithContext(ctx); err == nil {
		d.Name = name
	} else {
		// The pid vanished mid-query.
		d.Gone = true
		return d
	}
	if exe, err := p.ExeWithContext(ctx); err == nil {
		d.Exe = exe
	}
	if cmd, err := p.CmdlineWithContext(ctx); err == nil {
		d.Cmdline = cmd
	}
	if cwd, err := p.CwdWithContext(ctx); err == nil {
		d.Cwd = cwd
	}
	if user, err := p.UsernameWithContext(ctx); err == nil {
		d.Username = user
	}
	if st, err := p.StatusWithContext(ctx); err == nil {
		d.Status = strings.Join(st, ",")
	}
	if created, err := p.CreateTimeWithContext(ctx); err == nil {
		d.CreatedAt = time.UnixMilli(created)
	}
	if threads, err := p.NumThreadsWithContext(ctx); err == nil {
		d.Threads = threads
	}
	if cpu, err := p.PercentWithContext(ctx, 100*time.Millisecond); err == nil {
		d.CPUPct = cpu
	}
	if mem, err := p.MemoryPercentWithContext(ctx); err == nil {
		d.MemoryPct = mem
	}
	if files, err := p.OpenFilesWithContext(ctx); err == nil {
		d.OpenFiles = len(files)
	}
	if conns, err := p.ConnectionsWithContext(ctx); err == nil {
		for _, c := range conns {
			laddr := formatAddr(c.Laddr.IP, c.Laddr.Port)
			raddr := formatAddr(c.Raddr.IP, c.Raddr.Port)
			d.Connections = append(d.Connections, model.ConnectionRecord{
				Key:         model.RecordKey(pid, laddr, raddr, model.ProtoTCP),
				PID:         pid,
				ProcessName: d.Name,
				LocalAddr:   laddr,
				RemoteAddr:  raddr,
				Status:      model.ParseSocketStatus(c.Status),
				Protocol:    model.ProtoTCP,
			})
		}
	}
	return d
}
