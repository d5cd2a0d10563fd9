// Package finance provides an in-memory campaign account implementing
// supply.Finance.
package finance

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/quartermaster/supply"
)

// CategoryStartingFunds marks the opening balance entry.
const CategoryStartingFunds supply.Category = "starting_funds"

// =============================================================================
// TRANSACTION - Append-only journal entry
// =============================================================================

type Transaction struct {
	ID       string
	Date     time.Time
	Category supply.Category
	Amount   decimal.Decimal // positive = credit, negative = debit
	Memo     string
}

// =============================================================================
// ACCOUNT
// =============================================================================

// Account is an append-only journal. The balance is always the sum of the
// journal; debits that would take it below zero are refused.
type Account struct {
	mu           sync.RWMutex
	transactions []Transaction
	balance      decimal.Decimal
	now          func() time.Time
}

// NewAccount creates an account with an opening balance. A zero opening
// balance writes no journal entry.
func NewAccount(opening decimal.Decimal) *Account {
	a := &Account{now: func() time.Time { return time.Now().UTC() }}
	if !opening.IsZero() {
		a.appendLocked(opening, CategoryStartingFunds, "Starting funds")
	}
	return a
}

// SetClock makes journal dates follow the campaign calendar.
func (a *Account) SetClock(now func() time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.now = now
}

// Debit implements supply.Finance.
func (a *Account) Debit(amount decimal.Decimal, category supply.Category, memo string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.IsNegative() || a.balance.LessThan(amount) {
		return false
	}
	if amount.IsZero() {
		return true
	}
	a.appendLocked(amount.Neg(), category, memo)
	return true
}

// Credit implements supply.Finance.
func (a *Account) Credit(amount decimal.Decimal, category supply.Category, memo string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.IsZero() {
		return
	}
	a.appendLocked(amount, category, memo)
}

// CanAfford implements supply.AffordabilityChecker.
func (a *Account) CanAfford(amount decimal.Decimal) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return !a.balance.LessThan(amount)
}

func (a *Account) appendLocked(amount decimal.Decimal, category supply.Category, memo string) {
	a.transactions = append(a.transactions, Transaction{
		ID:       uuid.NewString(),
		Date:     a.now(),
		Category: category,
		Amount:   amount,
		Memo:     memo,
	})
	a.balance = a.balance.Add(amount)
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Transactions returns a copy of the journal in insertion order.
func (a *Account) Transactions() []Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Restore replaces the journal with one loaded from a snapshot and
// recomputes the balance from it.
func (a *Account) Restore(txs []Transaction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transactions = append([]Transaction(nil), txs...)
	a.balance = decimal.Zero
	for _, tx := range a.transactions {
		a.balance = a.balance.Add(tx.Amount)
	}
}

var (
	_ supply.Finance              = (*Account)(nil)
	_ supply.AffordabilityChecker = (*Account)(nil)
)
