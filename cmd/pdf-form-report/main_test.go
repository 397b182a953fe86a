package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-form-report/internal/batch"
	"github.com/a3tai/pdf-form-report/internal/config"
	"github.com/a3tai/pdf-form-report/internal/console"
	"github.com/a3tai/pdf-form-report/internal/logging"
	"github.com/a3tai/pdf-form-report/internal/pdf/pdftest"
)

const testVersion = "1.2.3"

func newTestApp(t *testing.T, stdin string) (*app, *bytes.Buffer, *bytes.Buffer, string) {
	t.Helper()
	base := t.TempDir()
	var stdout, stderr bytes.Buffer
	a := &app{
		stdin:    strings.NewReader(stdin),
		stdout:   &stdout,
		stderr:   &stderr,
		defaults: config.DefaultConfigAt(base),
	}
	return a, &stdout, &stderr, base
}

func execute(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd := a.rootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	version, buildTime, gitCommit = testVersion, "2024-03-09_10:30:00", "abc123"
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	}()

	a, stdout, _, _ := newTestApp(t, "")
	require.NoError(t, execute(t, a, "version"))

	for _, expected := range []string{
		"PDF Form Report",
		"Version: " + testVersion,
		"Build Time: 2024-03-09_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	} {
		assert.Contains(t, stdout.String(), expected)
	}
}

func TestRun_MissingDataFolder(t *testing.T) {
	a, _, stderr, base := newTestApp(t, "\n")

	require.NoError(t, execute(t, a))

	assert.Equal(t, exitFailed, a.exitCode)
	assert.Contains(t, stderr.String(), "CRITICAL")
	assert.Contains(t, stderr.String(), filepath.Join(base, "data"))
	assert.Contains(t, stderr.String(), console.DefaultPrompt)
	assert.NoFileExists(t, filepath.Join(base, "output.xlsx"))
}

func TestRun_WritesSpreadsheet(t *testing.T) {
	a, _, stderr, base := newTestApp(t, "")
	data := filepath.Join(base, "data")
	require.NoError(t, os.Mkdir(data, 0o750))
	require.NoError(t, pdftest.WriteFile(filepath.Join(data, "roma.pdf"),
		pdftest.Text("01.Congregazione", "roma nord"),
		pdftest.Text("06.Num_Procl", "42"),
	))
	require.NoError(t, pdftest.WriteFile(filepath.Join(data, "vuoto.pdf"),
		pdftest.Text("06.Num_Procl", "42"),
	))

	require.NoError(t, execute(t, a, "--no-pause", "--report", filepath.Join(base, "run.yaml")))

	assert.Equal(t, exitOK, a.exitCode, stderr.String())
	assert.FileExists(t, filepath.Join(base, "output.xlsx"))
	assert.FileExists(t, filepath.Join(base, "run.yaml"))
	assert.Contains(t, stderr.String(), "WARNING")
	assert.Contains(t, stderr.String(), "vuoto.pdf")
	assert.Contains(t, stderr.String(), "Trovati 1 file non validi")
	assert.NotContains(t, stderr.String(), console.DefaultPrompt)
}

func TestRun_InvalidConfiguration(t *testing.T) {
	a, _, stderr, _ := newTestApp(t, "")

	require.NoError(t, execute(t, a, "--loglevel", "chatty", "--no-pause"))

	assert.Equal(t, exitFailed, a.exitCode)
	assert.Contains(t, stderr.String(), "Configurazione non valida")
}

func TestExecute_ReportsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"extra argument", []string{"extra"}, "unknown command"},
		{"unknown flag", []string{"--bogus"}, "unknown flag: --bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, stderr, _ := newTestApp(t, "")
			a.args = tt.args

			assert.Equal(t, exitFailed, a.execute(context.Background()))
			assert.Contains(t, stderr.String(), "Errore: ")
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

type panickingRunner struct{}

func (panickingRunner) Run(context.Context, string, string) (*batch.Summary, bool) {
	panic("xlsx writer exploded")
}

func TestRun_PanicInBatch(t *testing.T) {
	a, _, stderr, _ := newTestApp(t, "\n")
	a.args = []string{}
	a.newRunner = func(*config.Config, *logging.Console) batchRunner {
		return panickingRunner{}
	}

	code := a.execute(context.Background())

	assert.Equal(t, exitCrashed, code)
	out := stderr.String()
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "Eccezione inaspettata nella funzione main: xlsx writer exploded")
	assert.Contains(t, out, "goroutine", "stack trace is logged")
	assert.Contains(t, out, console.DefaultPrompt, "a crash still waits for the user")
}
