// Package process turns raw statement tuples into the typed, enriched,
// date-sorted ledger table.
package process

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/categorize"
	"github.com/insightdelivered/statement-insights/internal/ledger"
)

// Normalizer enriches raw tuples: typed dates and amounts, derived Amount
// and Type, calendar buckets, and a category label per row.
type Normalizer struct {
	classifier *categorize.Classifier
}

// NewNormalizer builds a Normalizer around the given category classifier.
func NewNormalizer(classifier *categorize.Classifier) *Normalizer {
	return &Normalizer{classifier: classifier}
}

// Normalize converts raw tuples into ledger rows sorted by date descending.
// Rows whose date cannot be parsed are dropped; the count of dropped rows is
// returned alongside the table.
func (n *Normalizer) Normalize(raw []ledger.RawTransaction) ([]ledger.Transaction, int) {
	out := make([]ledger.Transaction, 0, len(raw))
	dropped := 0

	for _, r := range raw {
		date, err := time.Parse(ledger.DateLayout, r.Date)
		if err != nil {
			dropped++
			continue
		}

		tx := ledger.Transaction{
			Date:        ledger.NewDate(date),
			Description: r.Description,
			Withdrawals: coerceAmount(r.Withdrawal),
			Deposits:    coerceAmount(r.Deposit),
			Balance:     coerceBalance(r.Balance),
			SourceFile:  r.SourceFile,
		}
		n.enrich(&tx)
		out = append(out, tx)
	}

	sortByDateDesc(out)
	assignIDs(out)
	return out, dropped
}

// Renormalize recomputes every derived column of an already-typed table and
// re-sorts it. Running it on its own output is a no-op, which is what makes
// the ledger CSV safe to reload across runs.
func (n *Normalizer) Renormalize(txns []ledger.Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(txns))
	for _, tx := range txns {
		if tx.Date.IsZero() {
			continue
		}
		n.enrich(&tx)
		out = append(out, tx)
	}
	sortByDateDesc(out)
	assignIDs(out)
	return out
}

// idNamespace scopes the deterministic row IDs.
var idNamespace = uuid.MustParse("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d")

// assignIDs gives every row a deterministic ID derived from its content.
// The ID column is not persisted, so it must come out identical on every
// run over the same ledger; collaborators keyed by it (the semantic index)
// then overwrite rather than accumulate when they re-index. Duplicate rows
// get an occurrence suffix so each keeps a distinct ID.
func assignIDs(txns []ledger.Transaction) {
	seen := make(map[string]int, len(txns))
	for i := range txns {
		tx := &txns[i]
		key := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
			tx.Date.Format(ledger.DateLayout), tx.Description,
			tx.Withdrawals.String(), tx.Deposits.String(),
			tx.Balance.String(), tx.SourceFile)
		seq := seen[key]
		seen[key]++
		tx.ID = uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s|%d", key, seq))).String()
	}
}

func (n *Normalizer) enrich(tx *ledger.Transaction) {
	tx.Amount = tx.Withdrawals.Add(tx.Deposits)
	if tx.Deposits.IsPositive() {
		tx.Type = ledger.TypeDeposit
	} else {
		tx.Type = ledger.TypeWithdrawal
	}

	y, w := tx.Date.ISOWeek()
	tx.Month = tx.Date.Format("2006-01")
	tx.Week = fmt.Sprintf("%d-W%02d", y, w)
	tx.Year = tx.Date.Year()
	tx.DayOfWeek = tx.Date.Weekday().String()
	tx.Category = n.classifier.Category(tx.Description)
}

// coerceAmount parses a currency-like string into a non-negative decimal.
// Withdrawals and deposits are magnitudes; direction lives in the column.
// Anything unparseable, including an absent field, coerces to zero.
func coerceAmount(s string) decimal.Decimal {
	return coerceBalance(s).Abs()
}

// coerceBalance parses a currency-like string keeping its sign, so an
// overdrawn balance stays negative.
func coerceBalance(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	for _, cut := range []string{"$", "£", "€", ","} {
		s = strings.ReplaceAll(s, cut, "")
	}
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// sortByDateDesc sorts newest first, stable for same-day rows.
func sortByDateDesc(txns []ledger.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date.Time)
	})
}
