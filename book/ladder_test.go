package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ladderPrices(l *Ladder) []float64 {
	var out []float64
	l.Walk(func(lvl *Level) bool {
		out = append(out, lvl.Price.Float64())
		return true
	})
	return out
}

func TestLadderBidIterationDescends(t *testing.T) {
	l := NewLadder(Buy, true)
	for i, p := range []float64{99.50, 100.00, 98.00, 100.25} {
		require.NoError(t, l.AddOrder(buy(p, 10, uint64(i+1))))
	}
	assert.Equal(t, []float64{100.25, 100.00, 99.50, 98.00}, ladderPrices(l))
}

func TestLadderAskIterationAscends(t *testing.T) {
	l := NewLadder(Sell, true)
	for i, p := range []float64{101.00, 100.50, 102.00} {
		require.NoError(t, l.AddOrder(sell(p, 10, uint64(i+1))))
	}
	assert.Equal(t, []float64{100.50, 101.00, 102.00}, ladderPrices(l))
}

func TestLadderTop(t *testing.T) {
	bids := NewLadder(Buy, true)
	assert.Nil(t, bids.Top())

	require.NoError(t, bids.AddOrder(buy(99, 10, 1)))
	require.NoError(t, bids.AddOrder(buy(100, 5, 2)))
	require.NotNil(t, bids.Top())
	assert.True(t, bids.Top().Price.Eq(px(100)))

	asks := NewLadder(Sell, true)
	require.NoError(t, asks.AddOrder(sell(102, 10, 1)))
	require.NoError(t, asks.AddOrder(sell(101, 5, 2)))
	assert.True(t, asks.Top().Price.Eq(px(101)))
}

func TestLadderDuplicateIDAcrossLevels(t *testing.T) {
	l := NewLadder(Buy, true)
	require.NoError(t, l.AddOrder(buy(100, 10, 1)))
	assert.ErrorIs(t, l.AddOrder(buy(99, 10, 1)), ErrOrderAlreadyExists)
}

func TestLadderRepriceLosesQueuePriority(t *testing.T) {
	l := NewLadder(Buy, true)
	require.NoError(t, l.AddOrder(buy(100, 10, 1)))
	require.NoError(t, l.AddOrder(buy(99, 5, 2)))
	require.NoError(t, l.AddOrder(buy(99, 7, 3)))

	// Move order 1 down to 99: it must join the tail behind 2 and 3.
	require.NoError(t, l.UpdateOrder(buy(99, 10, 1)))
	assert.Equal(t, 1, l.Len())

	orders := l.Top().Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, uint64(2), orders[0].ID)
	assert.Equal(t, uint64(3), orders[1].ID)
	assert.Equal(t, uint64(1), orders[2].ID)
}

func TestLadderUpdateSamePriceKeepsPriority(t *testing.T) {
	l := NewLadder(Buy, true)
	require.NoError(t, l.AddOrder(buy(100, 10, 1)))
	require.NoError(t, l.AddOrder(buy(100, 5, 2)))

	require.NoError(t, l.UpdateOrder(buy(100, 2, 1)))
	orders := l.Top().Orders()
	assert.Equal(t, uint64(1), orders[0].ID)
	assert.True(t, orders[0].Size.Eq(qty(2)))
}

func TestLadderUpdateUnknownOrder(t *testing.T) {
	l := NewLadder(Buy, true)
	assert.ErrorIs(t, l.UpdateOrder(buy(100, 10, 42)), ErrOrderNotFound)
}

func TestLadderZeroSizeUpdateDeletes(t *testing.T) {
	l := NewLadder(Buy, true)
	require.NoError(t, l.AddOrder(buy(100, 10, 1)))
	require.NoError(t, l.UpdateOrder(buy(100, 0, 1)))
	assert.Equal(t, 0, l.Len())

	// The id is free again after the implicit delete.
	assert.NoError(t, l.AddOrder(buy(100, 3, 1)))
}

func TestLadderDeleteUnknownOrderNeverSilent(t *testing.T) {
	l := NewLadder(Sell, true)
	assert.ErrorIs(t, l.DeleteOrder(sell(100, 10, 7)), ErrOrderNotFound)
}

func TestLadderDeletePrunesEmptyLevel(t *testing.T) {
	l := NewLadder(Sell, true)
	require.NoError(t, l.AddOrder(sell(101, 10, 1)))
	require.NoError(t, l.DeleteOrder(sell(101, 0, 1)))
	assert.Equal(t, 0, l.Len())
}

func TestLadderDeleteByPriceWithoutIndex(t *testing.T) {
	l := NewLadder(Buy, false)
	l.ReplaceLevel(buy(100, 10, 1))
	require.NoError(t, l.DeleteOrder(buy(100, 0, 1)))
	assert.Equal(t, 0, l.Len())
}

func TestLadderClearDropsIndex(t *testing.T) {
	l := NewLadder(Buy, true)
	require.NoError(t, l.AddOrder(buy(100, 10, 1)))
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.NoError(t, l.AddOrder(buy(100, 10, 1)))
}

func TestLadderReplaceLevelOverwritesAggregate(t *testing.T) {
	l := NewLadder(Buy, false)
	l.ReplaceLevel(buy(100, 10, 1))
	l.ReplaceLevel(buy(100, 25, 1))
	require.Equal(t, 1, l.Len())
	assert.True(t, l.Top().Size().Eq(qty(25)))
	assert.Equal(t, 1, l.Top().Len())
}

func TestLadderLevelsAreDeepCopies(t *testing.T) {
	l := NewLadder(Buy, true)
	require.NoError(t, l.AddOrder(buy(100, 10, 1)))

	snap := l.Levels()
	require.NoError(t, l.UpdateOrder(buy(100, 1, 1)))
	assert.True(t, snap[0].Size().Eq(qty(10)))
}
