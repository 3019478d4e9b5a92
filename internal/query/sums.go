package query

import (
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/ledger"
)

func sumWithdrawals(txns []ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txns {
		total = total.Add(tx.Withdrawals)
	}
	return total
}

func sumDeposits(txns []ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txns {
		total = total.Add(tx.Deposits)
	}
	return total
}
