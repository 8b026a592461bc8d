package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/fifotax"
	"github.com/etnz/fifotax/config"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerContent = `{"date":"2024-03-10","type":"buy","asset":"BTC","amount":1,"unitPrice":1000,"totalValue":1000,"fee":10}
{"date":"2024-06-01","type":"sell","asset":"BTC","amount":0.5,"unitPrice":3000,"totalValue":1500,"fee":0}
`

// setup isolates the test from the environment and returns its directory.
func setup(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"CGT_FISCAL_START_MONTH", "CGT_FISCAL_START_DAY", "CGT_CURRENCY", "CGT_EPSILON", "CGT_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	*configFile = filepath.Join(dir, "cgt.toml")
	*raw = true
	*logLevel = ""
	t.Cleanup(func() {
		*configFile = config.DefaultPath
		*raw = false
		*logLevel = ""
	})
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the command line args and returns the exit status, stdout and stderr.
func run(t *testing.T, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	var out, errs bytes.Buffer
	stdout, stderr = &out, &errs
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	fs := flag.NewFlagSet("cgt", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "cgt")
	Register(commander)
	require.NoError(t, fs.Parse(args))
	status := commander.Execute(context.Background())
	return status, out.String(), errs.String()
}

func TestGains(t *testing.T) {
	dir := setup(t)
	ledger := writeFile(t, dir, "btc.jsonl", ledgerContent)

	status, out, errs := run(t, "gains", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	assert.Contains(t, out, "# Capital Gains")
	assert.Contains(t, out, "| 2024/2025 |")
	assert.Contains(t, out, fifotax.M(995, "ZAR").SignedString())
	assert.Contains(t, out, "## Holdings")
}

func TestGains_TaxYear(t *testing.T) {
	dir := setup(t)
	ledger := writeFile(t, dir, "btc.jsonl", ledgerContent)

	status, out, errs := run(t, "gains", "-y", "2024/2025", "-details", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	assert.Contains(t, out, "# Tax Year 2024/2025")
	assert.Contains(t, out, "### 2024-06-01 dispose 0.5 BTC")
	assert.Contains(t, out, "| 2024-03-10 | 0.5 | 83 |")
}

func TestGains_Errors(t *testing.T) {
	dir := setup(t)
	ledger := writeFile(t, dir, "btc.jsonl", ledgerContent)

	testCases := []struct {
		name       string
		args       []string
		wantStatus subcommands.ExitStatus
		wantErr    string
	}{
		{"details without year", []string{"gains", "-details", ledger}, subcommands.ExitUsageError, "-details requires -y"},
		{"unknown year", []string{"gains", "-y", "1999/2000", ledger}, subcommands.ExitFailure, "not covered"},
		{"missing ledger", []string{"gains", filepath.Join(dir, "missing.jsonl")}, subcommands.ExitFailure, "could not open ledger"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, errs := run(t, tc.args...)
			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, errs, tc.wantErr)
		})
	}
}

func TestGains_SeveralLedgers(t *testing.T) {
	dir := setup(t)
	first := writeFile(t, dir, "first.jsonl", ledgerContent)
	second := writeFile(t, dir, "second.jsonl", `{"date":"2023-01-05","type":"acquire","asset":"ETH","amount":2,"unitPrice":100,"totalValue":200,"fee":0}`+"\n")

	status, out, errs := run(t, "gains", first, second)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	i, j := strings.Index(out, "Ledger `"+first+"`"), strings.Index(out, "Ledger `"+second+"`")
	require.NotEqual(t, -1, i)
	require.NotEqual(t, -1, j)
	assert.Less(t, i, j, "ledgers must be reported in command line order")
	assert.Contains(t, out, "| 2022/2023 |")
}

func TestLotsAndYears(t *testing.T) {
	dir := setup(t)
	ledger := writeFile(t, dir, "btc.jsonl", ledgerContent)

	status, out, errs := run(t, "lots", "-a", "btc", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	assert.Contains(t, out, "## BTC")
	assert.Contains(t, out, "| 2024-03-10 | 1 | 0.5 |")

	status, out, errs = run(t, "years", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	assert.Contains(t, out, "| 2024/2025 | 2024-03-01 | 2025-02-28 | 365 | 2 | 1 |")
}

func TestState(t *testing.T) {
	dir := setup(t)
	ledger := writeFile(t, dir, "btc.jsonl", ledgerContent)

	status, out, errs := run(t, "state", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)

	var state map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, "ZAR", state["currency"])
	for _, key := range []string{"lots", "transactions", "taxYearSummaries", "fiscalYears", "currentBalances", "warnings"} {
		assert.Contains(t, state, key)
	}

	status, out, errs = run(t, "state", "-q", "$.currentBalances.BTC", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	assert.Equal(t, "0.5\n", out)

	status, _, _ = run(t, "state", ledger, ledger)
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestState_Config(t *testing.T) {
	dir := setup(t)
	ledger := writeFile(t, dir, "btc.jsonl", ledgerContent)
	writeFile(t, dir, "cgt.toml", "[engine]\ncurrency = \"USD\"\n\n[fiscal]\nstart_month = 1\nstart_day = 1\n")

	status, out, errs := run(t, "state", "-q", "$.taxYearSummaries[*].label", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	var labels []string
	require.NoError(t, json.Unmarshal([]byte(out), &labels))
	assert.Equal(t, []string{"2024"}, labels)

	status, out, errs = run(t, "state", "-q", "$.currency", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	assert.Equal(t, "\"USD\"\n", out)
}

func TestCheck(t *testing.T) {
	dir := setup(t)

	testCases := []struct {
		name       string
		content    string
		wantStatus subcommands.ExitStatus
		wantOut    []string
	}{
		{
			name:       "clean",
			content:    ledgerContent,
			wantStatus: subcommands.ExitSuccess,
			wantOut:    []string{"No warnings."},
		},
		{
			name:       "shortfall",
			content:    ledgerContent + `{"date":"2024-07-01","type":"dispose","asset":"BTC","amount":2,"unitPrice":3000,"totalValue":6000,"fee":0}` + "\n",
			wantStatus: subcommands.ExitFailure,
			wantOut:    []string{"# Warnings", "| 2024-07-01 | BTC | shortfall | 2 | 0.5 | 1.5 |"},
		},
		{
			name:       "invalid",
			content:    ledgerContent + `{"date":"2024-07-01","type":"dispose","asset":"BTC","amount":-1,"unitPrice":3000,"totalValue":-3000,"fee":0}` + "\n",
			wantStatus: subcommands.ExitFailure,
			wantOut:    []string{"# Invalid Transactions", "transaction #3", "amount must be positive", "No warnings."},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := writeFile(t, dir, tc.name+".jsonl", tc.content)
			status, out, _ := run(t, "check", ledger)
			assert.Equal(t, tc.wantStatus, status)
			for _, want := range tc.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestReportsRejectInvalidLedger(t *testing.T) {
	dir := setup(t)
	ledger := writeFile(t, dir, "bad.jsonl", `{"date":"2024-07-01","type":"buy","asset":"btc","amount":1,"unitPrice":1,"totalValue":1,"fee":0}`+"\n")

	status, _, errs := run(t, "gains", ledger)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errs, "is not canonical")
}

func TestFmt(t *testing.T) {
	dir := setup(t)
	unsorted := `{"date":"2024-06-01","type":"SELL","asset":"BTC","amount":0.5,"unitPrice":3000,"totalValue":1500}

{"date":"2024-03-10T09:30:00Z","type":"buy","asset":"BTC","amount":"1","unitPrice":1000,"totalValue":1000,"fee":10,"notes":"first"}
`
	want := `{"date":"2024-03-10","type":"acquire","asset":"BTC","amount":1,"unitPrice":1000,"totalValue":1000,"fee":10,"notes":"first"}
{"date":"2024-06-01","type":"dispose","asset":"BTC","amount":0.5,"unitPrice":3000,"totalValue":1500,"fee":0}
`
	ledger := writeFile(t, dir, "btc.jsonl", unsorted)

	status, out, errs := run(t, "fmt", "-n", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	assert.Equal(t, want, out)
	content, err := os.ReadFile(ledger)
	require.NoError(t, err)
	assert.Equal(t, unsorted, string(content), "-n must not modify the ledger")

	status, _, errs = run(t, "fmt", ledger)
	require.Equal(t, subcommands.ExitSuccess, status, errs)
	content, err = os.ReadFile(ledger)
	require.NoError(t, err)
	assert.Equal(t, want, string(content))
}

func TestFmt_Invalid(t *testing.T) {
	dir := setup(t)
	content := `{"date":"2024-06-01","type":"buy","asset":"BTC","amount":0,"unitPrice":3000,"totalValue":0}` + "\n"
	ledger := writeFile(t, dir, "btc.jsonl", content)

	status, _, errs := run(t, "fmt", ledger)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errs, "amount must be positive")

	got, err := os.ReadFile(ledger)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestLogLevel(t *testing.T) {
	dir := setup(t)
	ledger := writeFile(t, dir, "btc.jsonl", ledgerContent)

	status, _, errs := run(t, "years", ledger)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.NotContains(t, errs, "portfolio state built")

	*logLevel = "debug"
	status, _, errs = run(t, "years", ledger)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, errs, "portfolio state built")

	*logLevel = "loud"
	status, _, errs = run(t, "years", ledger)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errs, "logging:")
}

func TestCompletion(t *testing.T) {
	c := completion()
	var names []string
	for name := range c.Sub {
		names = append(names, name)
	}
	for _, want := range []string{"gains", "lots", "years", "state", "check", "fmt", "topic"} {
		assert.Contains(t, names, want)
	}
}

func TestTopic(t *testing.T) {
	setup(t)

	status, out, _ := run(t, "topic")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "* fifo:")

	status, out, _ = run(t, "topic", "fifo")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# FIFO matching")

	status, _, errs := run(t, "topic", "nope")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errs, "not found")
}
