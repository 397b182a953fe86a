package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/a3tai/pdf-form-report/internal/pdf/pdftest"
)

func writeForm(t *testing.T, fields ...pdftest.Field) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.pdf")
	require.NoError(t, pdftest.WriteFile(path, fields...))
	return path
}

func TestRun_TextOutput(t *testing.T) {
	path := writeForm(t,
		pdftest.Text("01.Congregazione", "roma nord"),
		pdftest.Text("06.Num_Procl", "42"),
		pdftest.Checkbox("Pullman", true),
		pdftest.Text("Note", "libero"),
	)

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Extracted 4 form fields")
	assert.Contains(t, out, "* 01.Congregazione")
	assert.Contains(t, out, `Value: "roma nord"`)
	assert.Contains(t, out, `Value: "/1"`)
	assert.Contains(t, out, "  Note")
	assert.NotContains(t, out, "* Note")
	assert.Contains(t, out, "02.Circoscrizione")
	assert.Contains(t, out, "Form is usable for the report")
}

func TestRun_ReportsSkippedForm(t *testing.T) {
	path := writeForm(t,
		pdftest.Text("01.Congregazione", "roma nord"),
		pdftest.Text("06.Num_Procl", "molti"),
	)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Form would be skipped")
	assert.Contains(t, stdout.String(), "06.Num_Procl")
}

func TestRun_StructuredFormats(t *testing.T) {
	path := writeForm(t,
		pdftest.Text("01.Congregazione", "roma nord"),
		pdftest.Text("06.Num_Procl", "42"),
	)

	t.Run("json", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.Equal(t, 0, run([]string{"--format", "json", path}, &stdout, &stderr))

		var result FormExtractionResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.True(t, result.Success)
		assert.True(t, result.Valid)
		assert.Equal(t, 2, result.FieldCount)
		assert.Len(t, result.MissingFields, 20)
	})

	t.Run("yaml", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.Equal(t, 0, run([]string{"-f", "yaml", path}, &stdout, &stderr))

		var result FormExtractionResult
		require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &result))
		assert.True(t, result.Valid)
		require.Len(t, result.Fields, 2)
		assert.Equal(t, "01.Congregazione", result.Fields[0].Name)
		assert.True(t, result.Fields[0].Known)
	})
}

func TestRun_UnreadablePageTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swapped.pdf")
	data := pdftest.SwapXRef(pdftest.Build(pdftest.Text("01.Congregazione", "roma nord")), 2, 3)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	var stdout, stderr bytes.Buffer
	var code int
	require.NotPanics(t, func() {
		code = run([]string{path}, &stdout, &stderr)
	})

	assert.Equal(t, 0, code, stderr.String())
	assert.NotContains(t, stdout.String(), "Page Count")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no file", nil, "exactly one PDF file path required"},
		{"missing file", []string{filepath.Join(t.TempDir(), "none.pdf")}, "File not found"},
		{"bad format", []string{"--format", "xml", writeForm(t, pdftest.Text("A", "b"))}, "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, 1, run(tt.args, &stdout, &stderr))
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "USAGE:")
}
