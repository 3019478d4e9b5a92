// Package query answers aggregation-style questions against the normalized
// ledger: it infers a time window, a category, and a transaction-type
// restriction from keyword cues, then dispatches to one formatter.
//
// Cue handling is an ordered table of (cues, action) pairs per stage, so
// the priority order is auditable and testable on its own.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/insightdelivered/statement-insights/internal/categorize"
	"github.com/insightdelivered/statement-insights/internal/ledger"
)

// Engine answers free-form questions. It always returns text; data-quality
// problems never surface as errors on this path.
type Engine struct {
	classifier *categorize.Classifier
	now        func() time.Time
}

// NewEngine builds an Engine sharing the ledger's category classifier so
// category inference in questions agrees with the table's labels.
func NewEngine(classifier *categorize.Classifier) *Engine {
	return &Engine{classifier: classifier, now: time.Now}
}

// windowRule pairs time-window cues with the date predicate they select.
// Rolling windows serve relative recency ("last week"); calendar windows
// serve named periods ("this month"). The mix is deliberate.
type windowRule struct {
	cues  []string
	label string
	match func(now, date time.Time) bool
}

var windowRules = []windowRule{
	{
		cues:  []string{"last week", "past week"},
		label: "last week",
		match: func(now, date time.Time) bool { return !date.Before(now.AddDate(0, 0, -7)) },
	},
	{
		cues:  []string{"last month", "past month"},
		label: "last month",
		match: func(now, date time.Time) bool { return !date.Before(now.AddDate(0, 0, -30)) },
	},
	{
		cues:  []string{"this month", "current month"},
		label: "this month",
		match: func(now, date time.Time) bool {
			return date.Year() == now.Year() && date.Month() == now.Month()
		},
	},
	{
		cues:  []string{"this year", "current year"},
		label: "this year",
		match: func(now, date time.Time) bool { return date.Year() == now.Year() },
	},
	{
		cues:  []string{"last year"},
		label: "last year",
		match: func(now, date time.Time) bool { return date.Year() == now.Year()-1 },
	},
}

// filterState is the per-query filter set: built once, applied once,
// discarded.
type filterState struct {
	windowLabel string
	window      func(now, date time.Time) bool
	category    string
	txType      ledger.Type
}

// aggRule pairs aggregation cues with the formatter they select.
type aggRule struct {
	cues   []string
	format func(e *Engine, q string, txns []ledger.Transaction, f filterState) string
}

var aggRules = []aggRule{
	{cues: []string{"total", "sum", "how much", "amount"}, format: (*Engine).formatTotal},
	{cues: []string{"average", "mean"}, format: (*Engine).formatAverage},
	{cues: []string{"largest", "biggest", "most expensive", "highest"}, format: (*Engine).formatLargest},
	{cues: []string{"smallest", "lowest"}, format: (*Engine).formatSmallest},
	{cues: []string{"count", "how many", "number"}, format: (*Engine).formatCount},
	{cues: []string{"breakdown", "category", "categories"}, format: (*Engine).formatBreakdown},
}

// Answer runs the full inference pipeline over question and returns the
// formatted response.
func (e *Engine) Answer(question string, txns []ledger.Transaction) string {
	q := strings.ToLower(question)
	f := e.inferFilters(q)
	filtered := applyFilters(txns, f, e.now())

	if len(filtered) == 0 {
		msg := fmt.Sprintf("No transactions found %s", f.windowLabel)
		if f.category != "" {
			msg += fmt.Sprintf(" for %s", f.category)
		}
		return msg
	}

	for _, rule := range aggRules {
		if containsAny(q, rule.cues) {
			return rule.format(e, q, filtered, f)
		}
	}
	return e.formatRecent(q, filtered, f)
}

// inferFilters builds the filter state from keyword cues. Each stage is
// first-match-wins and independent of the others.
func (e *Engine) inferFilters(q string) filterState {
	f := filterState{windowLabel: "in your records"}

	for _, rule := range windowRules {
		if containsAny(q, rule.cues) {
			f.windowLabel = rule.label
			f.window = rule.match
			break
		}
	}

	if cat, ok := e.classifier.FirstMatch(q); ok {
		f.category = cat
	}

	if containsAny(q, []string{"withdrawal", "spent", "paid"}) {
		f.txType = ledger.TypeWithdrawal
	} else if containsAny(q, []string{"deposit", "received", "income"}) {
		f.txType = ledger.TypeDeposit
	}

	return f
}

// applyFilters intersects the window, category, and type restrictions.
func applyFilters(txns []ledger.Transaction, f filterState, now time.Time) []ledger.Transaction {
	var out []ledger.Transaction
	for _, tx := range txns {
		if f.window != nil && !f.window(now, tx.Date.Time) {
			continue
		}
		if f.category != "" && tx.Category != f.category {
			continue
		}
		switch f.txType {
		case ledger.TypeWithdrawal:
			if !tx.Withdrawals.IsPositive() {
				continue
			}
		case ledger.TypeDeposit:
			if !tx.Deposits.IsPositive() {
				continue
			}
		}
		out = append(out, tx)
	}
	return out
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}
