package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-form-report/internal/pdf/pdftest"
)

func TestValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.pdf")
	require.NoError(t, pdftest.WriteFile(valid, pdftest.Text("01.Congregazione", "Roma Nord")))

	upper := filepath.Join(dir, "UPPER.PDF")
	require.NoError(t, pdftest.WriteFile(upper))

	empty := filepath.Join(dir, "empty.pdf")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	notPDF := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("just some text"), 0o600))

	wrongExt := filepath.Join(dir, "valid.txt")
	require.NoError(t, os.WriteFile(wrongExt, pdftest.Build(), 0o600))

	subdir := filepath.Join(dir, "folder.pdf")
	require.NoError(t, os.Mkdir(subdir, 0o750))

	tests := []struct {
		name      string
		path      string
		maxSize   int64
		expectErr string
	}{
		{name: "valid pdf", path: valid, maxSize: 1 << 20},
		{name: "upper case extension", path: upper, maxSize: 1 << 20},
		{name: "no size limit", path: valid, maxSize: 0},
		{name: "empty path", path: "", maxSize: 1 << 20, expectErr: "path cannot be empty"},
		{name: "non-existent file", path: filepath.Join(dir, "nope.pdf"), maxSize: 1 << 20, expectErr: "does not exist"},
		{name: "empty file", path: empty, maxSize: 1 << 20, expectErr: "file is empty"},
		{name: "missing header", path: notPDF, maxSize: 1 << 20, expectErr: "missing PDF header"},
		{name: "wrong extension", path: wrongExt, maxSize: 1 << 20, expectErr: "not a PDF"},
		{name: "directory", path: subdir, maxSize: 1 << 20, expectErr: "is a directory"},
		{name: "too large", path: valid, maxSize: 10, expectErr: "file too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidator(tt.maxSize).ValidateFile(tt.path)
			if tt.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}

func TestHasPDFExtension(t *testing.T) {
	assert.True(t, HasPDFExtension("a.pdf"))
	assert.True(t, HasPDFExtension("dir/b.PDF"))
	assert.True(t, HasPDFExtension("c.Pdf"))
	assert.False(t, HasPDFExtension("d.pdf.bak"))
	assert.False(t, HasPDFExtension("pdf"))
	assert.False(t, HasPDFExtension("e.xlsx"))
}

func TestValidator_PageCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.pdf")
	require.NoError(t, pdftest.WriteFile(path, pdftest.Text("01.Congregazione", "Roma Nord")))

	n, err := NewValidator(0).PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = NewValidator(0).PageCount(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestValidator_PageCountMalformedXRef(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swapped.pdf")
	data := pdftest.SwapXRef(pdftest.Build(pdftest.Text("01.Congregazione", "Roma Nord")), 2, 3)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	var n int
	var err error
	assert.NotPanics(t, func() {
		n, err = NewValidator(0).PageCount(path)
	})
	assert.Error(t, err)
	assert.Zero(t, n)
}
