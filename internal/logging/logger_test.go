package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(level Level) (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	c := NewConsole(&buf, level)
	c.now = func() time.Time {
		return time.Date(2024, time.March, 9, 14, 5, 7, 0, time.UTC)
	}
	return c, &buf
}

func TestConsole_Format(t *testing.T) {
	c, buf := newTestConsole(LevelInfo)

	c.Infof("Aggiornato file '%s'", "output.xlsx")

	line := strings.TrimRight(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(line, "[09-03-2024 14:05:07] "), line)
	assert.Contains(t, line, "INFO")
	assert.True(t, strings.HasSuffix(line, "Aggiornato file 'output.xlsx'"), line)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestConsole_LevelFilter(t *testing.T) {
	c, buf := newTestConsole(LevelWarning)

	c.Debugf("debug")
	c.Infof("info")
	c.Warningf("warning")
	c.Log(LevelError, "error")
	c.Criticalf("critical")

	out := buf.String()
	assert.NotContains(t, out, "debug")
	assert.NotContains(t, out, "info")
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "CRITICAL")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestConsole_TrimsTrailingNewline(t *testing.T) {
	c, buf := newTestConsole(LevelDebug)
	c.Debugf("line\n\n")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warn", want: LevelWarning},
		{in: "warning", want: LevelWarning},
		{in: "error", want: LevelError},
		{in: "critical", want: LevelCritical},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "WARNING", LevelWarning.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}
