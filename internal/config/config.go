package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. PDF_REPORT_DATA
	EnvPrefix = "PDF_REPORT"

	// Default values
	DefaultDataDirName    = "data"
	DefaultOutputFileName = "output.xlsx"
	DefaultSheetName      = "Sheet1"
	DefaultLogLevel       = "info"
	DefaultMaxFileSize    = 100 * 1024 * 1024 // 100MB

	// maxSheetNameLength is the spreadsheet limit on sheet names
	maxSheetNameLength = 31
)

// Flag and configuration keys
const (
	KeyData        = "data"
	KeyOutput      = "output"
	KeySheet       = "sheet"
	KeyReport      = "report"
	KeyLogLevel    = "loglevel"
	KeyMaxFileSize = "maxfilesize"
	KeyNoPause     = "no-pause"
	KeyConfig      = "config"
)

// Config holds all configuration for a report run
type Config struct {
	// Input and output
	DataDir    string
	OutputFile string
	SheetName  string
	ReportFile string // optional YAML run summary

	// Application configuration
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
	Pause       bool  // wait for a key before exiting
	ConfigFile  string
}

// ApplicationDir returns the directory holding the running executable, so
// data/ and output.xlsx are found next to it wherever it is launched from
func ApplicationDir() string {
	exe, err := os.Executable()
	if err != nil {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return DefaultConfigAt(ApplicationDir())
}

// DefaultConfigAt returns the defaults with data and output under baseDir
func DefaultConfigAt(baseDir string) *Config {
	return &Config{
		DataDir:     filepath.Join(baseDir, DefaultDataDirName),
		OutputFile:  filepath.Join(baseDir, DefaultOutputFileName),
		SheetName:   DefaultSheetName,
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
		Pause:       true,
	}
}

// DefineFlags registers the configuration flags on fs
func DefineFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.String(KeyData, cfg.DataDir, "Directory containing the PDF forms")
	fs.String(KeyOutput, cfg.OutputFile, "Spreadsheet file to write (overwritten)")
	fs.String(KeySheet, cfg.SheetName, "Name of the worksheet")
	fs.String(KeyReport, cfg.ReportFile, "Optional YAML file receiving a run summary")
	fs.String(KeyLogLevel, cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.Int64(KeyMaxFileSize, cfg.MaxFileSize, "Maximum PDF file size in bytes")
	fs.Bool(KeyNoPause, !cfg.Pause, "Exit without waiting for a key press")
	fs.String(KeyConfig, cfg.ConfigFile, "Optional configuration file (yaml, toml or json)")
}

// LoadWithDefaults layers flags over environment over config file over the
// given defaults. fs must already be parsed.
func LoadWithDefaults(fs *pflag.FlagSet, cfg *Config) (*Config, error) {
	v := viper.New()
	setupViperEnvironment(v, cfg)

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	populateConfigFromViper(v, cfg)

	for _, p := range []*string{&cfg.DataDir, &cfg.OutputFile, &cfg.ReportFile} {
		if *p == "" {
			continue
		}
		if abs, err := filepath.Abs(*p); err == nil {
			*p = abs
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyData, cfg.DataDir)
	v.SetDefault(KeyOutput, cfg.OutputFile)
	v.SetDefault(KeySheet, cfg.SheetName)
	v.SetDefault(KeyReport, cfg.ReportFile)
	v.SetDefault(KeyLogLevel, cfg.LogLevel)
	v.SetDefault(KeyMaxFileSize, cfg.MaxFileSize)
	v.SetDefault(KeyNoPause, !cfg.Pause)
	v.SetDefault(KeyConfig, cfg.ConfigFile)
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.DataDir = v.GetString(KeyData)
	cfg.OutputFile = v.GetString(KeyOutput)
	cfg.SheetName = v.GetString(KeySheet)
	cfg.ReportFile = v.GetString(KeyReport)
	cfg.LogLevel = strings.ToLower(v.GetString(KeyLogLevel))
	cfg.MaxFileSize = v.GetInt64(KeyMaxFileSize)
	cfg.Pause = !v.GetBool(KeyNoPause)
	cfg.ConfigFile = v.GetString(KeyConfig)
}

// Validate checks if the configuration is valid. The data directory is not
// required to exist here; a missing folder is reported by the batch itself.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data directory cannot be empty")
	}

	if c.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}

	if c.SheetName == "" || len([]rune(c.SheetName)) > maxSheetNameLength {
		return fmt.Errorf("sheet name must be 1 to %d characters", maxSheetNameLength)
	}
	if strings.ContainsAny(c.SheetName, `:\/?*[]`) {
		return fmt.Errorf("sheet name %q contains a character not allowed in worksheet names", c.SheetName)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{DataDir: %s, OutputFile: %s, SheetName: %s, ReportFile: %s, LogLevel: %s, MaxFileSize: %d, Pause: %t}",
		c.DataDir, c.OutputFile, c.SheetName, c.ReportFile, c.LogLevel, c.MaxFileSize, c.Pause)
}
