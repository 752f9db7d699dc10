// Package output provides terminal output for paclog.
//
// Events are rendered one per line in the same shape pacman logs them, minus
// the [ALPM] tag:
//
//	[2024-03-01 10:00] upgraded vim (9.0.1 -> 9.0.2)
//
// ANSI colors are only emitted when the caller enables them, which the CLI
// does when stdout is a terminal. With colors off the output is plain text
// suitable for pipes and scripts.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/paclog/internal/paclog"
)

// ANSI escape sequences used by the renderer.
const (
	colorReset    = "\033[0m"
	colorDimWhite = "\033[2;37m"
	colorRed      = "\033[31m"
	colorGreen    = "\033[32m"
	colorMagenta  = "\033[35m"
	colorCyan     = "\033[36m"
	colorBoldName = "\033[1;93m"
)

var actionColors = map[paclog.Action]string{
	paclog.Installed:  colorGreen,
	paclog.Upgraded:   colorCyan,
	paclog.Downgraded: colorMagenta,
	paclog.Removed:    colorRed,
}

// IsColorEnabled returns true if ANSI color codes should be emitted on f.
// It checks that f is a terminal and that the NO_COLOR env var is not set.
func IsColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Renderer writes events to an output stream.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer returns a renderer writing to w. color is decided once by the
// caller, usually with IsColorEnabled.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

// Render writes one event followed by a newline. The whole line is handed to
// the writer in a single Write call.
func (r *Renderer) Render(ev *paclog.Event) error {
	if _, err := io.WriteString(r.w, r.Format(ev)); err != nil {
		return fmt.Errorf("failed to write event for %s: %w", ev.Name(), err)
	}
	return nil
}

// Format returns the rendered line for ev, including the trailing newline.
func (r *Renderer) Format(ev *paclog.Event) string {
	var sb strings.Builder

	sb.WriteString(r.colorize(colorDimWhite, "["+ev.Timestamp().String()+"]"))
	sb.WriteString(r.colorize(actionColors[ev.Action()], " "+ev.Action().String()+" "))
	sb.WriteString(r.colorize(colorBoldName, ev.Name()))
	sb.WriteString(" (")

	prev, hasPrev := ev.PreviousVersion()
	cur, hasCur := ev.CurrentVersion()
	if hasPrev {
		sb.WriteString(r.colorize(colorMagenta, prev))
	}
	if hasPrev && hasCur {
		sb.WriteString(" -> ")
	}
	if hasCur {
		sb.WriteString(r.colorize(colorCyan, cur))
	}

	sb.WriteString(")\n")
	return sb.String()
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func (r *Renderer) colorize(color, text string) string {
	if r.color {
		return color + text + colorReset
	}
	return text
}
