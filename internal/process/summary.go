package process

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/ledger"
)

// Summary holds headline statistics over a ledger table.
type Summary struct {
	TotalTransactions int             `json:"totalTransactions"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	TotalReceived     decimal.Decimal `json:"totalReceived"`
	Net               decimal.Decimal `json:"net"`
	DateRange         string          `json:"dateRange"`
	Categories        map[string]int  `json:"categories"`
}

// Summarize computes summary statistics. txns may be in any order.
func Summarize(txns []ledger.Transaction) Summary {
	s := Summary{
		TotalSpent:    decimal.Zero,
		TotalReceived: decimal.Zero,
		Net:           decimal.Zero,
		DateRange:     "No data",
		Categories:    map[string]int{},
	}
	if len(txns) == 0 {
		return s
	}

	minDate, maxDate := txns[0].Date, txns[0].Date
	for _, tx := range txns {
		s.TotalSpent = s.TotalSpent.Add(tx.Withdrawals)
		s.TotalReceived = s.TotalReceived.Add(tx.Deposits)
		s.Categories[tx.Category]++
		if tx.Date.Before(minDate.Time) {
			minDate = tx.Date
		}
		if tx.Date.After(maxDate.Time) {
			maxDate = tx.Date
		}
	}

	s.TotalTransactions = len(txns)
	s.Net = s.TotalReceived.Sub(s.TotalSpent)
	s.DateRange = fmt.Sprintf("%s to %s",
		minDate.Format(ledger.DateLayout), maxDate.Format(ledger.DateLayout))
	return s
}
