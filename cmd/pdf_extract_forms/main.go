package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/a3tai/pdf-form-report/internal/config"
	"github.com/a3tai/pdf-form-report/internal/logging"
	"github.com/a3tai/pdf-form-report/internal/pdf"
	"github.com/a3tai/pdf-form-report/internal/pdf/extraction"
	"github.com/a3tai/pdf-form-report/internal/schema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line
type options struct {
	diagnostic bool
	format     string
	help       bool
	path       string
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("pdf_extract_forms", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVarP(&opts.diagnostic, "diagnostic", "d", false, "Log every field while walking the form tree")
	fs.StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, yaml")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show help message")
	fs.Usage = func() { printHelp(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.help {
		return opts, nil
	}
	if fs.NArg() != 1 {
		return nil, errors.New("exactly one PDF file path required")
	}
	opts.path = fs.Arg(0)
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n\n", err)
			printUsage(stderr)
		}
		return 1
	}
	if opts.help {
		printHelp(stdout)
		return 0
	}

	if _, err := os.Stat(opts.path); err != nil {
		fmt.Fprintf(stderr, "Error: File not found: %s\n", opts.path)
		return 1
	}

	var debugger extraction.Debugger
	if opts.diagnostic {
		debugger = logging.NewConsole(stderr, logging.LevelDebug)
	}

	result, err := inspect(opts.path, debugger)
	if err != nil {
		fmt.Fprintf(stderr, "Error extracting forms: %v\n", err)
		return 1
	}

	if err := outputResults(stdout, opts.format, result); err != nil {
		fmt.Fprintf(stderr, "Error outputting results: %v\n", err)
		return 1
	}
	return 0
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "PDF Extract Forms - Show the form fields of a report PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Lists every AcroForm field with its raw value and checks the form")
	fmt.Fprintln(w, "against the fields the report spreadsheet needs.")
	fmt.Fprintln(w)
	printUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprintln(w, "  -d, --diagnostic    Log every field while walking the form tree")
	fmt.Fprintln(w, "  -f, --format        Output format: text (default), json, yaml")
	fmt.Fprintln(w, "  -h, --help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  pdf_extract_forms data/roma-nord.pdf")
	fmt.Fprintln(w, "  pdf_extract_forms --format json data/roma-nord.pdf")
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  pdf_extract_forms [OPTIONS] <pdf_file>")
}

// FieldReport is one AcroForm field as found in the file
type FieldReport struct {
	extraction.FormField `yaml:",inline"`
	Known                bool   `json:"known" yaml:"known"`
	Kind                 string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// FormExtractionResult represents the complete result of form extraction
type FormExtractionResult struct {
	FilePath       string        `json:"file_path" yaml:"file_path"`
	Success        bool          `json:"success" yaml:"success"`
	PageCount      int           `json:"page_count,omitempty" yaml:"page_count,omitempty"`
	FieldCount     int           `json:"field_count" yaml:"field_count"`
	Fields         []FieldReport `json:"fields" yaml:"fields"`
	MissingFields  []string      `json:"missing_fields,omitempty" yaml:"missing_fields,omitempty"`
	Valid          bool          `json:"valid" yaml:"valid"`
	Problem        string        `json:"problem,omitempty" yaml:"problem,omitempty"`
	Error          string        `json:"error,omitempty" yaml:"error,omitempty"`
	ExtractionTime string        `json:"extraction_time,omitempty" yaml:"extraction_time,omitempty"`
}

func inspect(pdfPath string, debugger extraction.Debugger) (*FormExtractionResult, error) {
	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	result := &FormExtractionResult{FilePath: absPath}

	// Page count is informational, a file it cannot open may still have a form
	if pages, err := pdf.NewValidator(config.DefaultMaxFileSize).PageCount(absPath); err == nil {
		result.PageCount = pages
	}

	start := time.Now()
	fields, err := extraction.NewPDFCPUFormExtractor(debugger).ExtractFieldsFromFile(absPath)
	result.ExtractionTime = time.Since(start).Round(time.Microsecond).String()
	if err != nil {
		result.Error = err.Error()
		return result, nil // Don't fail, return error in result
	}

	result.Success = true
	result.FieldCount = len(fields)

	known := make(map[string]schema.Field, len(schema.AllFields()))
	for _, f := range schema.AllFields() {
		known[f.Name()] = f
		if _, ok := fields.Lookup(f.Name()); !ok {
			result.MissingFields = append(result.MissingFields, f.Name())
		}
	}

	for _, name := range fields.Names() {
		field, _ := fields.Lookup(name)
		fr := FieldReport{FormField: field}
		if f, ok := known[name]; ok {
			fr.Known = true
			fr.Kind = f.Kind().String()
		}
		result.Fields = append(result.Fields, fr)
	}

	if _, err := schema.Extract(fields); err != nil {
		result.Problem = err.Error()
	} else {
		result.Valid = true
	}

	return result, nil
}

func outputResults(w io.Writer, format string, result *FormExtractionResult) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return err
		}
		return encoder.Close()
	case "text":
		outputText(w, result)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func outputText(w io.Writer, result *FormExtractionResult) {
	if !result.Success {
		fmt.Fprintf(w, "Form extraction failed: %s\n", result.Error)
		return
	}

	if result.FieldCount == 0 {
		fmt.Fprintln(w, "No form fields detected in the PDF")
	} else {
		fmt.Fprintf(w, "Extracted %d form fields in %s\n\n", result.FieldCount, result.ExtractionTime)
	}

	for i, field := range result.Fields {
		marker := " "
		if field.Known {
			marker = "*"
		}
		fmt.Fprintf(w, "[%d]%s %s\n", i+1, marker, field.Name)
		fmt.Fprintf(w, "    Type: %s\n", field.Type)
		if field.Known {
			fmt.Fprintf(w, "    Read as: %s\n", field.Kind)
		}
		if field.HasValue {
			fmt.Fprintf(w, "    Value: %q\n", field.Value)
		}

		properties := []string{}
		if field.Required {
			properties = append(properties, "Required")
		}
		if field.ReadOnly {
			properties = append(properties, "ReadOnly")
		}
		if len(properties) > 0 {
			fmt.Fprintf(w, "    Properties: %v\n", properties)
		}
		fmt.Fprintln(w)
	}

	if result.PageCount > 0 {
		fmt.Fprintf(w, "Page Count: %d\n", result.PageCount)
	}
	if len(result.MissingFields) > 0 {
		fmt.Fprintln(w, "Report fields not present in the form:")
		for _, name := range result.MissingFields {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if result.Valid {
		fmt.Fprintln(w, "Form is usable for the report")
	} else {
		fmt.Fprintf(w, "Form would be skipped: %s\n", result.Problem)
	}
}
