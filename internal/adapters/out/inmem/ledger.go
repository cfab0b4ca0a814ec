package inmem

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Ledger is a single-balance economy ledger. The planner consults it before
// committing to a plan and charges transport costs through it.
type Ledger struct {
	balance float64
}

// NewLedger creates a ledger with the given starting balance.
func NewLedger(balance float64) *Ledger {
	return &Ledger{balance: balance}
}

// Balance returns the current balance.
func (l *Ledger) Balance() float64 {
	return l.balance
}

// CanAfford reports whether the balance covers the given amount.
func (l *Ledger) CanAfford(amount float64) bool {
	return amount <= l.balance
}

// Credit deposits the amount into the balance.
func (l *Ledger) Credit(amount float64) {
	l.balance += amount
}

// Debit withdraws the amount from the balance. Overdrafts are refused.
func (l *Ledger) Debit(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidError("amount")
	}
	if amount > l.balance {
		return errs.NewDomainError(
			errs.CodeInvalidArgument,
			fmt.Sprintf("balance %.2f cannot cover %.2f", l.balance, amount),
		)
	}
	l.balance -= amount
	return nil
}
