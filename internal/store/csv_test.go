package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-insights/internal/ledger"
)

func sampleLedger() []ledger.Transaction {
	return []ledger.Transaction{
		{
			ID:          "tx-1",
			Date:        ledger.NewDate(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)),
			Description: "POS Grocery Mart",
			Withdrawals: decimal.RequireFromString("45.67"),
			Deposits:    decimal.Zero,
			Balance:     decimal.RequireFromString("1000.00"),
			Amount:      decimal.RequireFromString("45.67"),
			Type:        ledger.TypeWithdrawal,
			Category:    "groceries",
			Month:       "2024-03",
			Week:        "2024-W09",
			Year:        2024,
			DayOfWeek:   "Saturday",
			SourceFile:  "stmt.pdf",
		},
		{
			ID:          "tx-2",
			Date:        ledger.NewDate(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)),
			Description: "Payroll Deposit",
			Withdrawals: decimal.Zero,
			Deposits:    decimal.RequireFromString("2000.00"),
			Balance:     decimal.RequireFromString("2954.33"),
			Amount:      decimal.RequireFromString("2000.00"),
			Type:        ledger.TypeDeposit,
			Category:    "income",
			Month:       "2024-03",
			Week:        "2024-W09",
			Year:        2024,
			DayOfWeek:   "Sunday",
			SourceFile:  "stmt.pdf",
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed", "transactions.csv")

	require.NoError(t, Save(path, sampleLedger()))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	want := sampleLedger()
	for i := range want {
		assert.Equal(t, want[i].Date.Time, got[i].Date.Time)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.True(t, want[i].Withdrawals.Equal(got[i].Withdrawals))
		assert.True(t, want[i].Deposits.Equal(got[i].Deposits))
		assert.True(t, want[i].Balance.Equal(got[i].Balance))
		assert.Equal(t, want[i].Type, got[i].Type)
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.Equal(t, want[i].SourceFile, got[i].SourceFile)
	}
}

func TestSave_ColumnHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")

	require.NoError(t, Save(path, sampleLedger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	header := strings.SplitN(string(data), "\n", 2)[0]
	for _, col := range []string{"Date", "Description", "Withdrawals ($)", "Deposits ($)", "Balance ($)"} {
		assert.Contains(t, header, col)
	}
}

func TestSave_DateRendering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")

	require.NoError(t, Save(path, sampleLedger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Mar 02, 2024")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.csv")

	assert.False(t, Exists(path))
	assert.False(t, Exists(dir), "a directory is not a ledger file")

	require.NoError(t, os.WriteFile(path, []byte("Date\n"), 0o644))
	assert.True(t, Exists(path))
}
