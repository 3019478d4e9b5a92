package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/ledger"
)

// Formatter output is a presentational contract with downstream consumers
// (the chat layer renders it verbatim): markdown emphasis, "•" bullets,
// "Jan 02, 2006" dates, and "$1,234.56" currency.

func (e *Engine) formatTotal(q string, txns []ledger.Transaction, f filterState) string {
	totalSpent := sumWithdrawals(txns)
	totalReceived := sumDeposits(txns)
	count := len(txns)

	var b strings.Builder
	b.WriteString("💰 **Summary " + f.windowLabel)
	if f.category != "" {
		b.WriteString(" for " + f.category)
	}
	b.WriteString(":**\n\n")

	switch {
	case strings.Contains(q, "spent") || strings.Contains(q, "withdrawal") || f.category != "":
		fmt.Fprintf(&b, "Total spent: %s\n", currency(totalSpent))
		fmt.Fprintf(&b, "Number of transactions: %d\n", count)
		avg := totalSpent.Div(decimal.NewFromInt(int64(count))).Round(2)
		fmt.Fprintf(&b, "Average per transaction: %s\n\n", currency(avg))
	case strings.Contains(q, "deposit") || strings.Contains(q, "received"):
		fmt.Fprintf(&b, "Total received: %s\n", currency(totalReceived))
		fmt.Fprintf(&b, "Number of transactions: %d\n\n", count)
	default:
		fmt.Fprintf(&b, "Total spent: %s\n", currency(totalSpent))
		fmt.Fprintf(&b, "Total received: %s\n", currency(totalReceived))
		fmt.Fprintf(&b, "Net: %s\n", currency(totalReceived.Sub(totalSpent)))
		fmt.Fprintf(&b, "Number of transactions: %d\n\n", count)
	}

	b.WriteString("**Top transactions:**\n")
	for _, tx := range topByAmount(txns, 5) {
		fmt.Fprintf(&b, "• %s: %s at %s\n",
			tx.Date.Format(ledger.DateLayout), currency(tx.Amount), tx.Description)
	}
	return b.String()
}

func (e *Engine) formatAverage(_ string, txns []ledger.Transaction, f filterState) string {
	avg := sumWithdrawals(txns).Div(decimal.NewFromInt(int64(len(txns)))).Round(2)
	msg := "Average spent " + f.windowLabel
	if f.category != "" {
		msg += " on " + f.category
	}
	return msg + ": " + currency(avg)
}

func (e *Engine) formatLargest(_ string, txns []ledger.Transaction, f filterState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Largest transactions %s:**\n\n", f.windowLabel)
	for _, tx := range topByAmount(txns, 5) {
		fmt.Fprintf(&b, "• %s: %s at %s\n",
			tx.Date.Format(ledger.DateLayout), currency(tx.Amount), tx.Description)
	}
	return b.String()
}

func (e *Engine) formatSmallest(_ string, txns []ledger.Transaction, f filterState) string {
	positive := make([]ledger.Transaction, 0, len(txns))
	for _, tx := range txns {
		if tx.Amount.IsPositive() {
			positive = append(positive, tx)
		}
	}
	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Amount.LessThan(positive[j].Amount)
	})
	if len(positive) > 5 {
		positive = positive[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Smallest transactions %s:**\n\n", f.windowLabel)
	for _, tx := range positive {
		fmt.Fprintf(&b, "• %s: %s at %s\n",
			tx.Date.Format(ledger.DateLayout), currency(tx.Amount), tx.Description)
	}
	return b.String()
}

func (e *Engine) formatCount(_ string, txns []ledger.Transaction, f filterState) string {
	msg := fmt.Sprintf("You made %d transactions %s", len(txns), f.windowLabel)
	if f.category != "" {
		msg += fmt.Sprintf(" in the %s category", f.category)
	}
	return msg
}

func (e *Engine) formatBreakdown(_ string, txns []ledger.Transaction, f filterState) string {
	totals := map[string]decimal.Decimal{}
	var order []string
	for _, tx := range txns {
		if _, ok := totals[tx.Category]; !ok {
			order = append(order, tx.Category)
			totals[tx.Category] = decimal.Zero
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Withdrawals)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].GreaterThan(totals[order[j]])
	})

	total := sumWithdrawals(txns)

	var b strings.Builder
	fmt.Fprintf(&b, "**Category breakdown %s:**\n\n", f.windowLabel)
	for _, cat := range order {
		amount := totals[cat]
		pct := 0.0
		if total.IsPositive() {
			pct, _ = amount.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}
		fmt.Fprintf(&b, "• %s: %s (%.1f%%)\n", titleCase(cat), currency(amount), pct)
	}
	return b.String()
}

func (e *Engine) formatRecent(_ string, txns []ledger.Transaction, f filterState) string {
	var b strings.Builder
	b.WriteString("**Recent transactions " + f.windowLabel)
	if f.category != "" {
		b.WriteString(" - " + f.category)
	}
	b.WriteString(":**\n\n")

	recent := txns
	if len(recent) > 10 {
		recent = recent[:10]
	}
	for _, tx := range recent {
		fmt.Fprintf(&b, "• %s: %s at %s (Balance: %s)\n",
			tx.Date.Format(ledger.DateLayout), currency(tx.Amount), tx.Description, currency(tx.Balance))
	}
	return b.String()
}

// currency renders a decimal dollar value as "$1,234.56".
func currency(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// topByAmount returns up to n rows with the largest Amount, stable so
// same-amount rows keep their table order.
func topByAmount(txns []ledger.Transaction, n int) []ledger.Transaction {
	out := make([]ledger.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
