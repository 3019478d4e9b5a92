package statement

import (
	"regexp"
	"strings"
	"time"

	"github.com/insightdelivered/statement-insights/internal/ledger"
	"github.com/insightdelivered/statement-insights/internal/segment"
)

var monthAbbrevs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// decimalTokenPattern matches a bare numeric token (optionally with cents).
// Tokens of this shape between the date and the amount columns are column
// bleed, not description text.
var decimalTokenPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// alphaTokenPattern matches a purely alphabetic token. A trailing one of
// these on a transaction line is a content-type tag, not a value.
var alphaTokenPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// dayTokenPattern matches a 1-2 digit day-of-month token.
var dayTokenPattern = regexp.MustCompile(`^\d{1,2}$`)

// dateParseLayouts accept the month-abbreviation date with the resolved year
// appended, with or without a zero-padded day ("Mar022024", "Mar22024").
var dateParseLayouts = []string{"Jan022006", "Jan22006"}

// PageResult is what the classifier recovered from one page of text.
type PageResult struct {
	Transactions []ledger.RawTransaction
	// Skipped counts transaction-start lines dropped because their date
	// could not be parsed. Reconstruction is lossy by design; this is the
	// observability signal for how lossy.
	Skipped int
}

// LineClassifier turns the text lines of one statement page into raw
// transaction tuples.
//
// It is a two-state machine: a line opening with a month abbreviation starts
// a new record; every other non-blank line extends the description of the
// record in progress. Word-segmentation repairs merchant text the PDF
// extraction concatenated.
type LineClassifier struct {
	seg      *segment.Segmenter
	triggers map[string]struct{}
}

// NewLineClassifier builds a classifier. depositTriggers are the tokens
// whose presence on a line marks its amount as incoming funds.
func NewLineClassifier(seg *segment.Segmenter, depositTriggers []string) *LineClassifier {
	triggers := make(map[string]struct{}, len(depositTriggers))
	for _, t := range depositTriggers {
		triggers[t] = struct{}{}
	}
	return &LineClassifier{seg: seg, triggers: triggers}
}

// ParsePage classifies each line of a page. year is the resolved statement
// year ("" when no page so far carried one); without it dates pass through
// unparsed and the normalizer drops them later.
func (lc *LineClassifier) ParsePage(lines []string, year string) PageResult {
	var res PageResult

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !startsWithMonth(line) {
			// continuation: wrapped description text belongs to the record
			// in progress
			if n := len(res.Transactions); n > 0 {
				last := &res.Transactions[n-1]
				last.Description += " " + lc.seg.Text(line)
			}
			continue
		}

		tx, ok := lc.parseStartLine(line, year)
		if !ok {
			res.Skipped++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}

	return res
}

// parseStartLine extracts one raw tuple from a transaction-start line.
func (lc *LineClassifier) parseStartLine(line, year string) (ledger.RawTransaction, bool) {
	parts := strings.Fields(line)

	// a trailing alphabetic token is a content-type tag; discard it
	// unconditionally, even when it happens to spell a month abbreviation
	if len(parts) > 1 && alphaTokenPattern.MatchString(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return ledger.RawTransaction{}, false
	}

	// the date is the first token; a bare month abbreviation fuses with the
	// day token that follows it
	descStart := 1
	rawDate := parts[0]
	if isMonthAbbrev(rawDate) && len(parts) > 1 && dayTokenPattern.MatchString(parts[1]) {
		rawDate += parts[1]
		descStart = 2
	}

	// need at least the amount and balance columns beyond the date
	if len(parts) < descStart+2 {
		return ledger.RawTransaction{}, false
	}

	date := rawDate
	if year != "" {
		parsed, ok := parseMonthDay(rawDate + year)
		if !ok {
			return ledger.RawTransaction{}, false
		}
		date = parsed.Format(ledger.DateLayout)
	}

	balance := parts[len(parts)-1]
	amount := parts[len(parts)-2]

	tx := ledger.RawTransaction{
		Date:    date,
		Balance: balance,
	}
	if lc.hasDepositTrigger(parts) {
		tx.Deposit = amount
	} else {
		tx.Withdrawal = amount
	}

	var desc []string
	for _, p := range parts[descStart : len(parts)-2] {
		if decimalTokenPattern.MatchString(p) {
			continue
		}
		desc = append(desc, p)
	}
	tx.Description = lc.seg.Text(strings.Join(desc, " "))

	return tx, true
}

// hasDepositTrigger reports whether any token on the line is a configured
// deposit trigger. Exact token match; position on the line does not matter.
func (lc *LineClassifier) hasDepositTrigger(parts []string) bool {
	for _, p := range parts {
		if _, ok := lc.triggers[p]; ok {
			return true
		}
	}
	return false
}

func parseMonthDay(s string) (time.Time, bool) {
	for _, layout := range dateParseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startsWithMonth(line string) bool {
	for _, m := range monthAbbrevs {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}

func isMonthAbbrev(tok string) bool {
	for _, m := range monthAbbrevs {
		if tok == m {
			return true
		}
	}
	return false
}
