// Package config loads the configuration of the fin tool.
package config

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"strconv"

	"github.com/etnz/finance"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

//go:embed default.toml
var defaultConfig []byte

// Config represents the application configuration.
type Config struct {
	Ledger     LedgerConfig     `toml:"ledger"`
	History    HistoryConfig    `toml:"history"`
	Benchmarks BenchmarksConfig `toml:"benchmarks"`
	Logging    LoggingConfig    `toml:"logging"`
	Assist     AssistConfig     `toml:"assist"`
	Accounts   []AccountConfig  `toml:"accounts"`
}

// Ledger backends.
const (
	Sheets = "sheets"
	SQLite = "sqlite"
	Memory = "memory"
	None   = "none"
)

// LedgerConfig selects where ledger fields are read and written.
type LedgerConfig struct {
	Backend       string `toml:"backend"`
	SpreadsheetID string `toml:"spreadsheet_id"`
	Credentials   string `toml:"credentials"` // service account key file.
	Path          string `toml:"path"`        // sqlite database file.
}

// HistoryConfig selects where the ratio history is read.
type HistoryConfig struct {
	Backend string `toml:"backend"`
	Range   string `toml:"range"` // A1 range of the history table, for the sheets backend.
	Window  int    `toml:"window"`
}

// BenchmarksConfig holds the benchmarks, or where to find them.
type BenchmarksConfig struct {
	Values map[string]float64 `toml:"values"`
	Source string             `toml:"source"` // JSON document, file or URL.
	Paths  map[string]string  `toml:"paths"`  // JSONPath per ratio in Source.
	Sheet  string             `toml:"sheet"`  // A1 range of a two column table in the spreadsheet.
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// AssistConfig contains the settings of the assist command.
type AssistConfig struct {
	Model string `toml:"model"`
}

// AccountConfig describes one ledger account and where it lives in the
// spreadsheet.
type AccountConfig struct {
	Key       string `toml:"key"`
	Name      string `toml:"name"`
	Statement string `toml:"statement"`
	Sheet     string `toml:"sheet"`
	Cell      string `toml:"cell"`
	Min       int64  `toml:"min"`
	Max       int64  `toml:"max"`
	Prompted  bool   `toml:"prompted"`
}

// Range returns the A1 notation of the account cell, e.g. "profit_and_loss!B5".
func (a AccountConfig) Range() string {
	if a.Sheet == "" {
		return a.Cell
	}
	return a.Sheet + "!" + a.Cell
}

// NewDefaultConfig returns the configuration embedded in the binary.
func NewDefaultConfig() *Config {
	config := new(Config)
	if err := toml.Unmarshal(defaultConfig, config); err != nil {
		panic(fmt.Sprintf("invalid embedded configuration: %v", err))
	}
	return config
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. An accounts table in a file replaces
// the whole table, benchmark values and paths are merged per ratio.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := merge(config, data); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// a missing .env is not an error.
	_ = godotenv.Load()
	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// merge decodes data on top of config.
func merge(config *Config, data []byte) error {
	accounts, values, paths := config.Accounts, config.Benchmarks.Values, config.Benchmarks.Paths
	config.Accounts, config.Benchmarks.Values, config.Benchmarks.Paths = nil, nil, nil

	if err := toml.Unmarshal(data, config); err != nil {
		return err
	}

	if config.Accounts == nil {
		config.Accounts = accounts
	}
	config.Benchmarks.Values = mergeMap(values, config.Benchmarks.Values)
	config.Benchmarks.Paths = mergeMap(paths, config.Benchmarks.Paths)
	return nil
}

func mergeMap[V any](base, override map[string]V) map[string]V {
	if base == nil && override == nil {
		return nil
	}
	res := make(map[string]V, len(base)+len(override))
	maps.Copy(res, base)
	maps.Copy(res, override)
	return res
}

// applyEnvOverrides applies FIN_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if backend := os.Getenv("FIN_LEDGER_BACKEND"); backend != "" {
		config.Ledger.Backend = backend
	}
	if id := os.Getenv("FIN_SPREADSHEET_ID"); id != "" {
		config.Ledger.SpreadsheetID = id
	}
	if creds := os.Getenv("FIN_CREDENTIALS"); creds != "" {
		config.Ledger.Credentials = creds
	}
	if path := os.Getenv("FIN_SQLITE_PATH"); path != "" {
		config.Ledger.Path = path
	}
	if backend := os.Getenv("FIN_HISTORY_BACKEND"); backend != "" {
		config.History.Backend = backend
	}
	if window := os.Getenv("FIN_HISTORY_WINDOW"); window != "" {
		if w, err := strconv.Atoi(window); err == nil {
			config.History.Window = w
		}
	}
	if source := os.Getenv("FIN_BENCHMARKS_SOURCE"); source != "" {
		config.Benchmarks.Source = source
	}
	if level := os.Getenv("FIN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if pretty := os.Getenv("FIN_LOG_PRETTY"); pretty != "" {
		if p, err := strconv.ParseBool(pretty); err == nil {
			config.Logging.Pretty = p
		}
	}
	if model := os.Getenv("FIN_ASSIST_MODEL"); model != "" {
		config.Assist.Model = model
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, verbose bool) {
	if verbose {
		config.Logging.Level = "debug"
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.Ledger.Backend {
	case Sheets, SQLite, Memory:
	default:
		return fmt.Errorf("unknown ledger backend %q", c.Ledger.Backend)
	}
	switch c.History.Backend {
	case Sheets, SQLite, None:
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}
	if c.History.Window < 2 {
		return fmt.Errorf("history window must be at least 2, got %d", c.History.Window)
	}
	accounts, err := c.FinanceAccounts()
	if err != nil {
		return err
	}
	for _, s := range []finance.Statement{finance.ProfitAndLossStatement, finance.BalanceSheetStatement} {
		for _, key := range finance.StatementKeys(s) {
			if _, ok := accounts.Lookup(key); !ok {
				return fmt.Errorf("missing account %q", key)
			}
		}
	}
	return nil
}

// FinanceAccounts converts the accounts table.
func (c *Config) FinanceAccounts() (finance.Accounts, error) {
	res := make(finance.Accounts, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		s, err := finance.ParseStatement(a.Statement)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Key, err)
		}
		name := a.Name
		if name == "" {
			name = a.Key
		}
		res = append(res, finance.Account{Key: a.Key, Name: name, Statement: s, Min: a.Min, Max: a.Max, Prompted: a.Prompted})
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// Cells returns the A1 range of each account, by key.
func (c *Config) Cells() map[string]string {
	res := make(map[string]string, len(c.Accounts))
	for _, a := range c.Accounts {
		res[a.Key] = a.Range()
	}
	return res
}

// StaticBenchmarks converts the inline benchmark values. It returns nil when
// there are none.
func (c *Config) StaticBenchmarks() (finance.StaticBenchmarks, error) {
	if len(c.Benchmarks.Values) == 0 {
		return nil, nil
	}
	res := make(finance.StaticBenchmarks, len(c.Benchmarks.Values))
	for name, v := range c.Benchmarks.Values {
		r, err := finance.ParseRatio(name)
		if err != nil {
			return nil, fmt.Errorf("benchmarks: %w", err)
		}
		res[r] = decimal.NewFromFloat(v)
	}
	return res, nil
}

// JSONBenchmarks returns the JSON benchmark source. It returns nil when no
// source is configured.
func (c *Config) JSONBenchmarks() (*finance.JSONBenchmarks, error) {
	if c.Benchmarks.Source == "" {
		return nil, nil
	}
	src := &finance.JSONBenchmarks{Location: c.Benchmarks.Source, Paths: make(map[finance.Ratio]string)}
	for name, path := range c.Benchmarks.Paths {
		r, err := finance.ParseRatio(name)
		if err != nil {
			return nil, fmt.Errorf("benchmark paths: %w", err)
		}
		src.Paths[r] = path
	}
	return src, nil
}
