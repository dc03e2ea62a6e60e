package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"netshow/collector"
	"netshow/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `netshow v%s — live TCP connection monitor with friendly service names

Usage:
  netshow [OPTIONS]

Options:
  -interval N       Refresh interval in seconds (float, default: 3.0)
  -no-colors        Disable ANSI color output
  -version          Print version and exit

Keys:
  up/down           Move cursor
  enter / click     Open detail for the focused row
  esc / left        Close detail
  f or /            Focus the filter input (regex)
  s                 Sort by status
  p                 Sort by process name
  i                 Cycle bandwidth interface
  e                 Toggle emoji
  ctrl+r            Force an immediate refresh
  q                 Quit
  ctrl+c            Force quit

Runs with full socket visibility as root (gopsutil); otherwise falls back
to parsing lsof output for the lifetime of the process.
`, Version)
}

// Run parses flags, selects a collection source, and starts the TUI.
func Run() error {
	var intervalSec float64
	var noColors, showVersion bool

	flag.Float64Var(&intervalSec, "interval", 3.0, "Refresh interval in seconds")
	flag.BoolVar(&noColors, "no-colors", false, "Disable ANSI color output")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("netshow v%s\n", Version)
		return nil
	}

	if intervalSec <= 0 {
		return fmt.Errorf("interval must be positive, got %v", intervalSec)
	}
	opts := ui.Options{
		Interval: time.Duration(intervalSec * float64(time.Second)),
		NoColors: noColors,
	}
	if noColors {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The source is chosen once for the process lifetime; a permission
	// failure here means every later cycle uses the unprivileged path
	// without re-probing.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	src, err := collector.Select(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	p := tea.NewProgram(ui.NewModel(src, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
