package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fin.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, Sheets, cfg.Ledger.Backend)
	assert.Equal(t, "creds.json", cfg.Ledger.Credentials)
	assert.Equal(t, 4, cfg.History.Window)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Len(t, cfg.Accounts, 19)
	require.NoError(t, cfg.Validate())

	cells := cfg.Cells()
	assert.Equal(t, "profit_and_loss!B5", cells[finance.SalesRevenue])
	assert.Equal(t, "profit_and_loss!B25", cells[finance.InterestExpenses])
	assert.Equal(t, "balance_sheet!B8", cells[finance.Cash])
	assert.Equal(t, "balance_sheet!B20", cells[finance.ShortTermLoans])
}

func TestDefaultAccountsMatchFinance(t *testing.T) {
	got, err := NewDefaultConfig().FinanceAccounts()
	require.NoError(t, err)
	assert.Equal(t, finance.DefaultAccounts(), got)
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, Sheets, cfg.Ledger.Backend)
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	path := writeConfig(t, `
[ledger]
backend = "sqlite"
path = "/tmp/ledger.db"

[history]
window = 6

[benchmarks.values]
debt_to_equity = 45.5

[logging]
level = "debug"
pretty = false
`)

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, SQLite, cfg.Ledger.Backend)
	assert.Equal(t, "/tmp/ledger.db", cfg.Ledger.Path)
	assert.Equal(t, 6, cfg.History.Window)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Pretty)
	// accounts and other benchmarks are kept from the defaults.
	assert.Len(t, cfg.Accounts, 19)
	assert.Equal(t, 45.5, cfg.Benchmarks.Values["debt_to_equity"])
	assert.Equal(t, 1.5, cfg.Benchmarks.Values["current_ratio"])

	bench, err := cfg.StaticBenchmarks()
	require.NoError(t, err)
	require.NoError(t, finance.Benchmarks(bench).Validate())
	assert.Equal(t, "45.5", bench[finance.DebtToEquity].String())
}

func TestLoadFromFiles_AccountsReplaceTable(t *testing.T) {
	path := writeConfig(t, `
[[accounts]]
key = "rent"
name = "Rent"
statement = "pl"
min = 1
max = 2
prompted = true
`)

	_, err := LoadFromFiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing account")
}

func TestLoadFromFiles_Invalid(t *testing.T) {
	testCases := map[string]string{
		"bad toml":        `[ledger`,
		"unknown backend": "[ledger]\nbackend = \"excel\"",
		"short window":    "[history]\nwindow = 1",
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromFiles(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIN_LEDGER_BACKEND", "memory")
	t.Setenv("FIN_SPREADSHEET_ID", "sheet-123")
	t.Setenv("FIN_HISTORY_WINDOW", "8")
	t.Setenv("FIN_BENCHMARKS_SOURCE", "https://example.com/industry.json")
	t.Setenv("FIN_LOG_PRETTY", "false")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, Memory, cfg.Ledger.Backend)
	assert.Equal(t, "sheet-123", cfg.Ledger.SpreadsheetID)
	assert.Equal(t, 8, cfg.History.Window)
	assert.False(t, cfg.Logging.Pretty)

	src, err := cfg.JSONBenchmarks()
	require.NoError(t, err)
	require.NotNil(t, src)
	assert.Equal(t, "https://example.com/industry.json", src.Location)
}

func TestJSONBenchmarks_Paths(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Benchmarks.Source = "industry.json"
	cfg.Benchmarks.Paths = map[string]string{"current_ratio": "$.retail.current"}

	src, err := cfg.JSONBenchmarks()
	require.NoError(t, err)
	assert.Equal(t, "$.retail.current", src.Paths[finance.CurrentRatio])

	cfg.Benchmarks.Paths = map[string]string{"ebitda": "$.x"}
	_, err = cfg.JSONBenchmarks()
	assert.Error(t, err)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, true)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
