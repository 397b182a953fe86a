// Package batch turns a folder of report forms into one spreadsheet.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/a3tai/pdf-form-report/internal/logging"
	"github.com/a3tai/pdf-form-report/internal/pdf"
	pdferrors "github.com/a3tai/pdf-form-report/internal/pdf/errors"
	"github.com/a3tai/pdf-form-report/internal/pdf/extraction"
	"github.com/a3tai/pdf-form-report/internal/pdf/security"
	"github.com/a3tai/pdf-form-report/internal/report"
	"github.com/a3tai/pdf-form-report/internal/schema"
)

// FormReader decodes the form fields of one PDF file
type FormReader interface {
	ExtractFieldsFromFile(path string) (extraction.Fields, error)
}

// FileValidator rejects files that are not worth decoding
type FileValidator interface {
	ValidateFile(path string) error
	PageCount(path string) (int, error)
}

// FileResult is the outcome of one input file: a row or an error, never both
type FileResult struct {
	Path string
	Row  *report.Row
	Err  *pdferrors.ExtractionError
}

// OK reports whether the file produced a row
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Aggregator runs the batch. It is not safe for concurrent use.
type Aggregator struct {
	reader     FormReader
	validator  FileValidator
	log        logging.Reporter
	sheetName  string
	reportFile string
	now        func() time.Time
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithSheetName sets the worksheet name of the output
func WithSheetName(name string) Option {
	return func(a *Aggregator) { a.sheetName = name }
}

// WithReportFile makes Run store its Summary as YAML at path
func WithReportFile(path string) Option {
	return func(a *Aggregator) { a.reportFile = path }
}

// NewAggregator creates an Aggregator. A nil validator accepts every file.
func NewAggregator(reader FormReader, validator FileValidator, log logging.Reporter, opts ...Option) *Aggregator {
	if log == nil {
		log = logging.Discard{}
	}
	a := &Aggregator{
		reader:    reader,
		validator: validator,
		log:       log,
		sheetName: report.DefaultSheetName,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run processes every PDF in inputFolder and writes the rows to outputFile.
// It returns false when the folder is missing, holds no PDF, or the output
// cannot be written; files that fail individually are skipped and logged.
func (a *Aggregator) Run(ctx context.Context, inputFolder, outputFile string) (*Summary, bool) {
	summary := newSummary(inputFolder, outputFile, a.now())
	a.log.Debugf("Run %s started", summary.RunID)

	ok := a.run(ctx, summary, inputFolder, outputFile)
	summary.Success = ok
	summary.FinishedAt = a.now()

	if a.reportFile != "" {
		if err := summary.WriteYAML(a.reportFile); err != nil {
			a.log.Warningf("Impossibile salvare il riepilogo: %v", err)
		} else {
			a.log.Debugf("Run summary written to '%s'", a.reportFile)
		}
	}
	a.log.Debugf("Run %s finished", summary.RunID)

	return summary, ok
}

func (a *Aggregator) run(ctx context.Context, summary *Summary, inputFolder, outputFile string) bool {
	info, err := os.Stat(inputFolder)
	if err != nil || !info.IsDir() {
		summary.Failure = fmt.Sprintf("input folder %s does not exist", inputFolder)
		a.log.Criticalf("Cartella '%s' inesistente. Crearla e riprovare.", inputFolder)
		return false
	}

	files, err := Discover(inputFolder)
	if err != nil {
		summary.Failure = err.Error()
		a.log.Criticalf("Impossibile leggere la cartella '%s': %v", inputFolder, err)
		return false
	}
	summary.Discovered = len(files)
	if len(files) == 0 {
		summary.Failure = "no PDF files found"
		a.log.Criticalf("Nessun file PDF trovato nella cartella '%s'", inputFolder)
		return false
	}

	guard, err := security.NewPathValidator(inputFolder)
	if err != nil {
		summary.Failure = err.Error()
		a.log.Criticalf("Impossibile risolvere la cartella '%s': %v", inputFolder, err)
		return false
	}

	rows := make([]report.Row, 0, len(files))
	for _, file := range files {
		if ctx.Err() != nil {
			summary.Cancelled = true
			a.log.Warningf("Esecuzione interrotta, %d file non elaborati", len(files)-len(rows)-len(summary.Skipped))
			break
		}

		res := a.processFile(guard, file)
		if !res.OK() {
			a.log.Warningf("Formato file '%s' non valido: %v", file, res.Err.Message)
			summary.skip(res.Err)
			continue
		}
		rows = append(rows, *res.Row)
	}

	if n := len(summary.Skipped); n > 0 {
		a.log.Infof("Trovati %d file non validi. Procedere manualmente", n)
	}

	a.log.Debugf("Inizio salvataggio di %d righe", len(rows))
	if err := report.WriteXLSX(outputFile, a.sheetName, rows); err != nil {
		summary.Failure = err.Error()
		a.log.Criticalf("Impossibile salvare '%s': %v", outputFile, err)
		return false
	}
	summary.Written = len(rows)
	a.log.Infof("Aggiornato file '%s'", outputFile)

	return true
}

// processFile takes one file through checks, decoding and extraction.
// A panic anywhere in between becomes an ErrorTypeUnexpected result.
func (a *Aggregator) processFile(guard *security.PathValidator, path string) (res FileResult) {
	res.Path = path
	defer func() {
		if r := recover(); r != nil {
			res.Row = nil
			res.Err = pdferrors.NewExtractionError(pdferrors.ErrorTypeUnexpected, path, fmt.Sprintf("panic: %v", r)).
				WithStack(debug.Stack())
		}
	}()

	if err := guard.ValidatePath(path); err != nil {
		res.Err = pdferrors.WrapError(pdferrors.ErrorTypePathEscape, path, err)
		return res
	}

	if a.validator != nil {
		if err := a.validator.ValidateFile(path); err != nil {
			res.Err = pdferrors.WrapError(pdferrors.ErrorTypeInvalidFile, path, err)
			return res
		}
		if pages, err := a.validator.PageCount(path); err == nil {
			a.log.Debugf("'%s' has %d page(s)", filepath.Base(path), pages)
		} else {
			a.log.Debugf("'%s' page count unavailable: %v", filepath.Base(path), err)
		}
	}

	fields, err := a.reader.ExtractFieldsFromFile(path)
	if err != nil {
		res.Err = pdferrors.WrapError(pdferrors.ErrorTypeDecode, path, err)
		return res
	}

	rec, err := schema.Extract(fields)
	if err != nil {
		errType := pdferrors.ErrorTypeUnexpected
		var malformed *schema.MalformedInputError
		if errors.As(err, &malformed) {
			errType = pdferrors.ErrorTypeMalformedInput
		}
		res.Err = pdferrors.WrapError(errType, path, err)
		return res
	}

	row := report.NewRow(rec)
	res.Row = &row
	return res
}

// Discover lists the PDF files directly inside folder, in directory order
func Discover(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !pdf.HasPDFExtension(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(folder, entry.Name()))
	}
	return files, nil
}
