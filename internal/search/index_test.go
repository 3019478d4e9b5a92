package search

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-insights/internal/ledger"
)

func indexedLedger(t *testing.T) *Index {
	t.Helper()

	idx, err := NewIndex("")
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	txns := []ledger.Transaction{
		{
			ID:          "tx-1",
			Date:        ledger.NewDate(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)),
			Description: "POS Grocery Mart",
			Withdrawals: decimal.RequireFromString("45.67"),
			Balance:     decimal.RequireFromString("1000.00"),
			Type:        ledger.TypeWithdrawal,
			Category:    "groceries",
			DayOfWeek:   "Saturday",
		},
		{
			ID:          "tx-2",
			Date:        ledger.NewDate(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)),
			Description: "Payroll Deposit",
			Deposits:    decimal.RequireFromString("2000.00"),
			Balance:     decimal.RequireFromString("2954.33"),
			Type:        ledger.TypeDeposit,
			Category:    "income",
			DayOfWeek:   "Sunday",
		},
	}
	require.NoError(t, idx.IndexTransactions(txns))
	return idx
}

func TestSearch_FindsRelevantTransaction(t *testing.T) {
	idx := indexedLedger(t)

	got, err := idx.Search("grocery", 5)
	require.NoError(t, err)

	assert.Contains(t, got, "**Relevant transactions:**")
	assert.Contains(t, got, "Grocery Mart")
	assert.Contains(t, got, "You spent $45.67")
}

func TestIndexTransactions_ReopenedIndexOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx")

	txns := []ledger.Transaction{{
		ID:          "tx-1",
		Date:        ledger.NewDate(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)),
		Description: "POS Grocery Mart",
		Withdrawals: decimal.RequireFromString("45.67"),
		Balance:     decimal.RequireFromString("1000.00"),
		Type:        ledger.TypeWithdrawal,
		Category:    "groceries",
		DayOfWeek:   "Saturday",
	}}

	idx, err := NewIndex(path)
	require.NoError(t, err)
	require.NoError(t, idx.IndexTransactions(txns))
	require.NoError(t, idx.Close())

	// a second run reopens the persisted index and indexes the same ledger;
	// stable row IDs must overwrite, not accumulate
	idx, err = NewIndex(path)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	require.NoError(t, idx.IndexTransactions(txns))

	got, err := idx.Search("grocery", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(got, "Grocery Mart"), "reindexed row must appear once:\n%s", got)
}

func TestSearch_NoMatch(t *testing.T) {
	idx := indexedLedger(t)

	got, err := idx.Search("zxqvblt", 5)
	require.NoError(t, err)
	assert.Equal(t, "No matching transactions found.", got)
}

func TestSearch_DefaultLimit(t *testing.T) {
	idx := indexedLedger(t)

	got, err := idx.Search("transaction", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestRenderDocument(t *testing.T) {
	tx := ledger.Transaction{
		Date:        ledger.NewDate(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)),
		Description: "POS Grocery Mart",
		Withdrawals: decimal.RequireFromString("45.67"),
		Balance:     decimal.RequireFromString("1000.00"),
		Type:        ledger.TypeWithdrawal,
		Category:    "groceries",
		DayOfWeek:   "Saturday",
	}

	doc := renderDocument(tx)

	assert.Contains(t, doc.Content, "Transaction on March 02, 2024 (Saturday):")
	assert.Contains(t, doc.Content, "You spent $45.67 at POS Grocery Mart.")
	assert.Contains(t, doc.Content, "Category: groceries")
	assert.Contains(t, doc.Content, "Balance after transaction: $1000.00")
	assert.Equal(t, "2024-03-02", doc.Date)
}

func TestRenderDocument_Deposit(t *testing.T) {
	tx := ledger.Transaction{
		Date:        ledger.NewDate(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)),
		Description: "Payroll Deposit",
		Deposits:    decimal.RequireFromString("2000.00"),
		Type:        ledger.TypeDeposit,
		Category:    "income",
		DayOfWeek:   "Sunday",
	}

	doc := renderDocument(tx)
	assert.Contains(t, doc.Content, "You received $2000.00 at Payroll Deposit.")
}
