// Package logging provides the leveled console reporter used by the batch.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TimeLayout renders timestamps as [dd-mm-yyyy hh:mm:ss]
const TimeLayout = "02-01-2006 15:04:05"

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// String returns the label printed in front of a log line
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configuration value (debug, info, warn, error) to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Reporter is what the batch needs from a logger
type Reporter interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Criticalf(format string, args ...any)
}

// Console writes timestamped, leveled lines to a writer. Level badges are
// coloured when the writer is a terminal.
type Console struct {
	logger *log.Logger
	level  Level
	now    func() time.Time
	styles map[Level]lipgloss.Style
	time   lipgloss.Style
}

// NewConsole creates a Console that drops lines below level
func NewConsole(w io.Writer, level Level) *Console {
	r := lipgloss.NewRenderer(w)
	badge := r.NewStyle().Bold(true).Width(len("CRITICAL"))
	return &Console{
		logger: log.New(w, "", 0),
		level:  level,
		now:    time.Now,
		styles: map[Level]lipgloss.Style{
			LevelDebug:    badge.Foreground(lipgloss.Color("8")),
			LevelInfo:     badge.Foreground(lipgloss.Color("4")),
			LevelWarning:  badge.Foreground(lipgloss.Color("3")),
			LevelError:    badge.Foreground(lipgloss.Color("1")),
			LevelCritical: badge.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
		},
		time: r.NewStyle().Faint(true),
	}
}

// Enabled reports whether lines at level are written
func (c *Console) Enabled(level Level) bool {
	return level >= c.level
}

// Log writes one line at level
func (c *Console) Log(level Level, format string, args ...any) {
	if !c.Enabled(level) {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	stamp := c.time.Render("[" + c.now().Format(TimeLayout) + "]")
	c.logger.Printf("%s %s %s", stamp, c.styles[level].Render(level.String()), msg)
}

// Debugf logs at debug level
func (c *Console) Debugf(format string, args ...any) { c.Log(LevelDebug, format, args...) }

// Infof logs at info level
func (c *Console) Infof(format string, args ...any) { c.Log(LevelInfo, format, args...) }

// Warningf logs at warning level
func (c *Console) Warningf(format string, args ...any) { c.Log(LevelWarning, format, args...) }

// Criticalf logs at critical level
func (c *Console) Criticalf(format string, args ...any) { c.Log(LevelCritical, format, args...) }

// Discard is a Reporter that drops everything
type Discard struct{}

func (Discard) Debugf(string, ...any)    {}
func (Discard) Infof(string, ...any)     {}
func (Discard) Warningf(string, ...any)  {}
func (Discard) Criticalf(string, ...any) {}
