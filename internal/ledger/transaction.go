package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date rendering used across the ledger:
// in the CSV artifact, in query responses, and in the statement parser.
const DateLayout = "Jan 02, 2006"

// Type marks the direction of a transaction.
type Type string

const (
	TypeDeposit    Type = "Deposit"
	TypeWithdrawal Type = "Withdrawal"
)

// RawTransaction is one field tuple as reconstructed from statement text,
// before any type coercion. Exactly one of Withdrawal/Deposit is set.
type RawTransaction struct {
	Date        string
	Description string
	Withdrawal  string
	Deposit     string
	Balance     string
	SourceFile  string
}

// Date wraps time.Time so the CSV round-trip keeps the "Jan 02, 2006"
// rendering the ledger file has always used.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to the calendar day.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalCSV() (string, error) {
	return d.Format(DateLayout), nil
}

func (d *Date) UnmarshalCSV(s string) error {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Transaction is one row of the normalized ledger. Rows are immutable once
// the normalizer returns them; Withdrawals and Deposits are never both
// positive.
type Transaction struct {
	ID          string          `csv:"-" json:"id"`
	Date        Date            `csv:"Date" json:"date"`
	Description string          `csv:"Description" json:"description"`
	Withdrawals decimal.Decimal `csv:"Withdrawals ($)" json:"withdrawals"`
	Deposits    decimal.Decimal `csv:"Deposits ($)" json:"deposits"`
	Balance     decimal.Decimal `csv:"Balance ($)" json:"balance"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount"`
	Type        Type            `csv:"Type" json:"type"`
	Category    string          `csv:"Category" json:"category"`
	Month       string          `csv:"Month" json:"month"`
	Week        string          `csv:"Week" json:"week"`
	Year        int             `csv:"Year" json:"year"`
	DayOfWeek   string          `csv:"DayOfWeek" json:"dayOfWeek"`
	SourceFile  string          `csv:"SourceFile" json:"sourceFile,omitempty"`
}

// IsDeposit reports whether the row's positive side is the deposit column.
func (t Transaction) IsDeposit() bool {
	return t.Deposits.IsPositive()
}
