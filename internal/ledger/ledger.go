// Package ledger holds the credit arithmetic for worker balances. It has no
// persistence of its own; the assignment workflow applies its results.
package ledger

// Credit returns the balance increased by amount. Negative amounts are
// ignored: rewards are never debits.
func Credit(balance, amount int) int {
	if amount < 0 {
		return balance
	}
	return balance + amount
}

// Penalize returns the balance decreased by amount, floored at zero. The
// balance never goes negative regardless of how large the penalty is.
func Penalize(balance, amount int) int {
	if amount < 0 {
		return balance
	}
	if amount >= balance {
		return 0
	}
	return balance - amount
}
