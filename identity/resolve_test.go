package identity

import "testing"

func noContainers() map[string]string { return nil }

func TestResolveStaticNames(t *testing.T) {
	r := newResolverWithContainers(noContainers)
	tests := []struct {
		proc string
		want string
	}{
		{"rapportd", "Handoff Sync Process"},
		{"IPNExtension", "Tailscale"},
		{"Code H", "VSCode"},
		{"Adobe H", "Adobe"},
	}
	for _, tt := range tests {
		t.Run(tt.proc, func(t *testing.T) {
			if got := r.Resolve(tt.proc, 123, ""); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.proc, got, tt.want)
			}
		})
	}
}

func TestResolvePlex(t *testing.T) {
	r := newResolverWithContainers(noContainers)
	for _, proc := range []string{"PlexMediaServer", "plex-something"} {
		if got := r.Resolve(proc, 789, ""); got != "Plex Media Server" {
			t.Errorf("Resolve(%q) = %q, want Plex Media Server", proc, got)
		}
	}
	if got := r.Resolve("notplex", 1, ""); got == "Plex Media Server" {
		t.Error("plex rule must anchor at the start of the name")
	}
}

func TestResolveDockerDesktop(t *testing.T) {
	tests := []struct {
		name       string
		containers map[string]string
		want       string
	}{
		{"no containers", nil, "Docker Desktop"},
		{"with containers", map[string]string{"abc123": "web", "def456": "db"}, "Docker Desktop (2 containers)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolverWithContainers(func() map[string]string { return tt.containers })
			if got := r.Resolve("com.docker.backend", 42, ""); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveContainerFromCmdline(t *testing.T) {
	r := newResolverWithContainers(func() map[string]string {
		return map[string]string{"abc123": "redis-cache"}
	})
	got := r.Resolve("containerd-shim", 99, "/usr/bin/containerd-shim-runc-v2 -id abc123 -namespace moby")
	if got != "Docker: redis-cache" {
		t.Errorf("Resolve = %q, want Docker: redis-cache", got)
	}
}

func TestResolveFallbackIsEmpty(t *testing.T) {
	r := newResolverWithContainers(noContainers)
	if got := r.Resolve("unknown_process", 161718, ""); got != "" {
		t.Errorf("Resolve = %q, want empty for unmatched process", got)
	}
}

func TestResolveCachesByPidAndName(t *testing.T) {
	calls := 0
	r := newResolverWithContainers(func() map[string]string {
		calls++
		return map[string]string{"abc123": "web"}
	})

	for i := 0; i < 5; i++ {
		r.Resolve("some-shim", 7, "run abc123")
	}
	if calls != 1 {
		t.Errorf("container lookup ran %d times for a cached identity, want 1", calls)
	}

	r.Forget(7, "some-shim")
	r.Resolve("some-shim", 7, "run abc123")
	if calls != 2 {
		t.Errorf("lookup after Forget ran %d times total, want 2", calls)
	}
}
