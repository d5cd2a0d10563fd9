package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/quartermaster/supply"
	"github.com/warp/quartermaster/supply/finance"
)

func TestAccount_OpeningBalance(t *testing.T) {
	a := finance.NewAccount(decimal.NewFromInt(1000))

	assert.True(t, a.Balance().Equal(decimal.NewFromInt(1000)))
	txs := a.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, finance.CategoryStartingFunds, txs[0].Category)

	assert.Empty(t, finance.NewAccount(decimal.Zero).Transactions())
}

func TestAccount_Debit(t *testing.T) {
	// GIVEN: an account holding 100
	// WHEN: debiting 60 twice
	// THEN: the first succeeds, the second is refused and leaves no entry

	a := finance.NewAccount(decimal.NewFromInt(100))

	assert.True(t, a.Debit(decimal.NewFromInt(60), supply.CategoryEquipmentPurchase, "first"))
	assert.False(t, a.Debit(decimal.NewFromInt(60), supply.CategoryEquipmentPurchase, "second"))

	assert.True(t, a.Balance().Equal(decimal.NewFromInt(40)))
	txs := a.Transactions()
	require.Len(t, txs, 2)
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(-60)))
	assert.Equal(t, "first", txs[1].Memo)
}

func TestAccount_DebitEdgeCases(t *testing.T) {
	a := finance.NewAccount(decimal.NewFromInt(100))

	assert.True(t, a.Debit(decimal.Zero, supply.CategoryRefurbishment, "free"))
	assert.False(t, a.Debit(decimal.NewFromInt(-5), supply.CategoryRefurbishment, "negative"))
	assert.True(t, a.Debit(decimal.NewFromInt(100), supply.CategoryUnitPurchase, "exact"))

	assert.True(t, a.Balance().IsZero())
	assert.Len(t, a.Transactions(), 2)
}

func TestAccount_Credit(t *testing.T) {
	a := finance.NewAccount(decimal.Zero)

	a.Credit(decimal.NewFromInt(250), supply.CategoryUnitSale, "sold")
	a.Credit(decimal.Zero, supply.CategoryUnitSale, "nothing")

	assert.True(t, a.Balance().Equal(decimal.NewFromInt(250)))
	assert.Len(t, a.Transactions(), 1)
	assert.True(t, a.CanAfford(decimal.NewFromInt(250)))
	assert.False(t, a.CanAfford(decimal.NewFromInt(251)))
}

func TestAccount_ClockAndRestore(t *testing.T) {
	day := time.Date(3025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := finance.NewAccount(decimal.Zero)
	a.SetClock(func() time.Time { return day })

	a.Credit(decimal.NewFromInt(10), supply.CategoryEquipmentSale, "scrap")
	txs := a.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, day, txs[0].Date)

	b := finance.NewAccount(decimal.NewFromInt(999))
	b.Restore(append(txs, finance.Transaction{ID: "x", Amount: decimal.NewFromInt(-4)}))
	assert.True(t, b.Balance().Equal(decimal.NewFromInt(6)))
	assert.Len(t, b.Transactions(), 2)
}
