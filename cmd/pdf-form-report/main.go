package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/a3tai/pdf-form-report/internal/batch"
	"github.com/a3tai/pdf-form-report/internal/config"
	"github.com/a3tai/pdf-form-report/internal/console"
	"github.com/a3tai/pdf-form-report/internal/logging"
	"github.com/a3tai/pdf-form-report/internal/pdf"
	"github.com/a3tai/pdf-form-report/internal/pdf/extraction"
)

// Process exit codes
const (
	exitOK      = 0
	exitFailed  = 1
	exitCrashed = 2
)

// batchRunner is the part of *batch.Aggregator the command drives
type batchRunner interface {
	Run(ctx context.Context, inputFolder, outputFile string) (*batch.Summary, bool)
}

// app carries the process streams so the command can be driven from tests
type app struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	defaults *config.Config
	args     []string // nil means os.Args[1:]
	exitCode int

	// newRunner builds the batch; nil uses newAggregator
	newRunner func(cfg *config.Config, logger *logging.Console) batchRunner
}

func main() {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, defaults: config.DefaultConfig()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := a.execute(ctx)
	stop()

	os.Exit(code)
}

// execute runs the command line and returns the process exit code. Usage
// errors reported by cobra are printed since the command silences them.
func (a *app) execute(ctx context.Context) int {
	cmd := a.rootCommand()
	if a.args != nil {
		cmd.SetArgs(a.args)
	}
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.stderr, "Errore: %v\n", err)
		fmt.Fprintf(a.stderr, "Usa '%s --help' per l'elenco delle opzioni\n", cmd.CommandPath())
		return exitFailed
	}
	return a.exitCode
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf-form-report",
		Short: "Collect filled PDF report forms into one spreadsheet",
		Long: `pdf-form-report reads every PDF form in the data folder, extracts the
attendance and transport figures of each congregation and writes them as
one row per form to a spreadsheet. Forms that are not filled in correctly
are skipped and listed in the log.

Every flag can also be set through an environment variable prefixed with
PDF_REPORT_, e.g. PDF_REPORT_DATA, or through a --config file.`,
		Example: `  pdf-form-report
  pdf-form-report --data ./moduli --output ./riepilogo.xlsx
  pdf-form-report --no-pause --report run.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.exitCode = a.run(cmd)
			return nil
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	config.DefineFlags(cmd.Flags(), a.defaults)
	cmd.AddCommand(versionCommand())
	return cmd
}

// run loads the configuration, runs the batch and waits for the user.
// A panic escaping the batch is logged with its stack and still pauses.
func (a *app) run(cmd *cobra.Command) int {
	cfg, err := config.LoadWithDefaults(cmd.Flags(), a.defaults)
	if err != nil {
		fmt.Fprintf(a.stderr, "Configurazione non valida: %v\n", err)
		if noPause, _ := cmd.Flags().GetBool(config.KeyNoPause); !noPause {
			a.pause()
		}
		return exitFailed
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewConsole(a.stderr, level)
	if cfg.IsDebug() {
		logger.Debugf("Starting with configuration: %s", cfg.String())
	}

	code := a.runBatch(cmd.Context(), cfg, logger)

	if cfg.Pause {
		a.pause()
	}
	return code
}

func (a *app) runBatch(ctx context.Context, cfg *config.Config, logger *logging.Console) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Criticalf("Eccezione inaspettata nella funzione main: %v\n%s", r, debug.Stack())
			code = exitCrashed
		}
	}()

	newRunner := a.newRunner
	if newRunner == nil {
		newRunner = newAggregator
	}

	if _, ok := newRunner(cfg, logger).Run(ctx, cfg.DataDir, cfg.OutputFile); !ok {
		return exitFailed
	}
	return exitOK
}

// newAggregator wires the pdfcpu decoder and the file validator into a batch
func newAggregator(cfg *config.Config, logger *logging.Console) batchRunner {
	opts := []batch.Option{batch.WithSheetName(cfg.SheetName)}
	if cfg.ReportFile != "" {
		opts = append(opts, batch.WithReportFile(cfg.ReportFile))
	}

	var debugger extraction.Debugger
	if cfg.IsDebug() {
		debugger = logger
	}

	return batch.NewAggregator(
		extraction.NewPDFCPUFormExtractor(debugger),
		pdf.NewValidator(cfg.MaxFileSize),
		logger,
		opts...,
	)
}

func (a *app) pause() {
	if err := console.NewPauser(a.stdin, a.stderr).Wait(); err != nil {
		fmt.Fprintf(a.stderr, "Errore in attesa di input: %v\n", err)
	}
}
