package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// ProgressBar represents a terminal progress bar
type ProgressBar struct {
	mu         sync.Mutex
	total      int
	current    int
	width      int
	prefix     string
	writer     io.Writer
	startTime  time.Time
	lastUpdate time.Time
	updateRate time.Duration
	finished   bool
	isTerminal bool
}

// NewProgressBar creates a new progress bar sized to the terminal
func NewProgressBar(total int, prefix string) *ProgressBar {
	writer := os.Stderr
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))

	width := 50
	if isTerminal {
		if termWidth, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil {
			width = termWidth * 6 / 10
			if width < 20 {
				width = 20
			}
			if width > 80 {
				width = 80
			}
		}
	}

	return &ProgressBar{
		total:      total,
		width:      width,
		prefix:     prefix,
		writer:     writer,
		startTime:  time.Now(),
		lastUpdate: time.Now(),
		updateRate: 100 * time.Millisecond,
		isTerminal: isTerminal,
	}
}

// Set moves the bar to an absolute position
func (pb *ProgressBar) Set(current int) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	pb.current = current
	if pb.current > pb.total {
		pb.current = pb.total
	}

	// Rate limit redraws
	now := time.Now()
	if now.Sub(pb.lastUpdate) >= pb.updateRate || pb.current == pb.total {
		pb.render()
		pb.lastUpdate = now
	}
}

// Increment advances the bar by one
func (pb *ProgressBar) Increment() {
	pb.mu.Lock()
	current := pb.current + 1
	pb.mu.Unlock()
	pb.Set(current)
}

// Finish completes the progress bar
func (pb *ProgressBar) Finish() {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if pb.finished {
		return
	}

	pb.current = pb.total
	pb.finished = true
	pb.render()

	if pb.isTerminal {
		fmt.Fprint(pb.writer, "\n")
	}
}

// render draws the progress bar
func (pb *ProgressBar) render() {
	if pb.total == 0 {
		return
	}

	if !pb.isTerminal {
		// Periodic line updates when output is redirected
		if pb.current%10 == 0 || pb.current == pb.total {
			percentage := float64(pb.current) / float64(pb.total) * 100
			fmt.Fprintf(pb.writer, "%s: %d/%d (%.1f%%)\n", pb.prefix, pb.current, pb.total, percentage)
		}
		return
	}

	percentage := float64(pb.current) / float64(pb.total) * 100
	filledWidth := pb.width * pb.current / pb.total
	bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", pb.width-filledWidth)

	elapsed := time.Since(pb.startTime)
	var eta string
	if pb.current > 0 && pb.current < pb.total {
		remaining := time.Duration(float64(elapsed) * float64(pb.total-pb.current) / float64(pb.current))
		eta = fmt.Sprintf(" ETA: %s", formatDuration(remaining))
	} else if pb.current == pb.total {
		eta = fmt.Sprintf(" Completed in %s", formatDuration(elapsed))
	}

	fmt.Fprintf(pb.writer, "\r\033[K%s [%s] %d/%d (%.1f%%)%s",
		pb.prefix, bar, pb.current, pb.total, percentage, eta)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm%.0fs", d.Minutes(), d.Seconds()-60*d.Minutes())
	}
	return fmt.Sprintf("%.0fh%.0fm", d.Hours(), d.Minutes()-60*d.Hours())
}
