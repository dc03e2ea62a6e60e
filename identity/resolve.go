// Package identity maps raw process names to the human-friendly service
// names shown in the table. Resolution is cached per process so repeated
// snapshots of a long-lived connection never repeat the work.
package identity

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"
)

// staticNames are exact process-name matches with a well-known identity.
var staticNames = map[string]string{
	"rapportd":     "Handoff Sync Process",
	"IPNExtension": "Tailscale",
	"Code H":       "VSCode",
	"Adobe H":      "Adobe",
}

// patternRules match on a case-insensitive prefix of the process name.
var patternRules = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)^com\.docker`), "Docker Desktop"},
	{regexp.MustCompile(`(?i)^plex`), "Plex Media Server"},
}

// Resolver resolves friendly names and caches the result per pid+name.
// Entries are evicted through Forget when the owning connection goes
// away, so the cache tracks the live set rather than growing unbounded.
type Resolver struct {
	containers func() map[string]string

	mu    sync.Mutex
	cache map[string]string
}

// NewResolver returns a resolver backed by the local docker CLI for
// container identification.
func NewResolver() *Resolver {
	return newResolverWithContainers(dockerContainers)
}

func newResolverWithContainers(containers func() map[string]string) *Resolver {
	return &Resolver{
		containers: containers,
		cache:      make(map[string]string),
	}
}

// Resolve returns the friendly name for a process, or "" when no rule
// applies and the raw name should be displayed as-is.
func (r *Resolver) Resolve(name string, pid int32, cmdline string) string {
	key := cacheKey(pid, name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if friendly, ok := r.cache[key]; ok {
		return friendly
	}
	friendly := r.resolve(name, cmdline)
	r.cache[key] = friendly
	return friendly
}

// Forget drops the cached resolution for a process. Called when the last
// connection owned by that process disappears.
func (r *Resolver) Forget(pid int32, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, cacheKey(pid, name))
}

func (r *Resolver) resolve(name, cmdline string) string {
	if friendly, ok := staticNames[name]; ok {
		return friendly
	}
	for _, rule := range patternRules {
		if !rule.re.MatchString(name) {
			continue
		}
		if rule.name == "Docker Desktop" {
			if n := len(r.containers()); n > 0 {
				return fmt.Sprintf("Docker Desktop (%d containers)", n)
			}
		}
		return rule.name
	}
	if cmdline != "" {
		for id, cname := range r.containers() {
			if strings.Contains(cmdline, id) {
				return "Docker: " + cname
			}
		}
	}
	return ""
}

func cacheKey(pid int32, name string) string {
	return fmt.Sprintf("%d|%s", pid, name)
}

var (
	dockerOnce sync.Once
	dockerMap  map[string]string
)

// dockerContainers lists running containers by id. The docker CLI is
// invoked at most once per run; a missing or failing docker binary just
// yields an empty map.
func dockerContainers() map[string]string {
	dockerOnce.Do(func() {
		dockerMap = map[string]string{}
		out, err := exec.Command("docker", "ps", "--format", "{{.ID}} {{.Names}}").Output()
		if err != nil {
			return
		}
		for _, line := range strings.Split(string(out), "\n") {
			fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
			if len(fields) == 2 {
				dockerMap[fields[0]] = fields[1]
			}
		}
	})
	return dockerMap
}
