package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestL3FIFOSimulateFills(t *testing.T) {
	b := New(instrument, L3MBO)
	require.NoError(t, b.Add(buy(100.00, 10, 1), 0, 1, 1))
	require.NoError(t, b.Add(buy(100.00, 5, 2), 0, 2, 2))

	fills := b.SimulateFills(sell(100.00, 12, 99))
	require.Len(t, fills, 2)
	assert.True(t, fills[0].Price.Eq(px(100.00)))
	assert.True(t, fills[0].Size.Eq(qty(10)))
	assert.True(t, fills[1].Price.Eq(px(100.00)))
	assert.True(t, fills[1].Size.Eq(qty(2)))

	// Simulation never mutates: order 2 still rests with its full size.
	lvl := b.BidLevels()[0]
	got, ok := lvl.Get(2)
	require.True(t, ok)
	assert.True(t, got.Size.Eq(qty(5)))
}

func TestSimulateFillsRespectsLimit(t *testing.T) {
	b := New(instrument, L3MBO)
	require.NoError(t, b.Add(buy(100.00, 10, 1), 0, 1, 1))
	require.NoError(t, b.Add(buy(99.00, 20, 2), 0, 2, 2))

	// A sell limited at 100.00 cannot walk down to the 99.00 bids.
	fills := b.SimulateFills(sell(100.00, 50, 99))
	require.Len(t, fills, 1)
	assert.True(t, fills[0].Size.Eq(qty(10)))
}

func TestSimulateFillsEmptyBook(t *testing.T) {
	b := New(instrument, L3MBO)
	assert.Empty(t, b.SimulateFills(buy(100.00, 10, 1)))
}

func TestVWAPPartialFill(t *testing.T) {
	// Only 15 available at 101; the VWAP of the available portion is
	// 101, never padded with a synthetic price.
	b := seedBook(t, L2MBP)
	assert.InDelta(t, 101.00, b.GetAvgPxForQuantity(qty(20), Buy), 1e-9)
}

func TestVWAPAcrossLevels(t *testing.T) {
	b := New(instrument, L2MBP)
	require.NoError(t, b.Add(sell(101.00, 10, 1), 0, 1, 1))
	require.NoError(t, b.Add(sell(102.00, 10, 2), 0, 2, 2))

	// 10@101 + 5@102 = 1520 notional over 15.
	assert.InDelta(t, 1520.0/15.0, b.GetAvgPxForQuantity(qty(15), Buy), 1e-9)
}

func TestVWAPZeroLiquidity(t *testing.T) {
	b := New(instrument, L2MBP)
	assert.Equal(t, 0.0, b.GetAvgPxForQuantity(qty(10), Buy))
}

func TestVWAPMonotonicity(t *testing.T) {
	b := New(instrument, L2MBP)
	require.NoError(t, b.Add(sell(101.00, 15, 1), 0, 1, 1))
	require.NoError(t, b.Add(sell(102.00, 20, 2), 0, 2, 2))
	require.NoError(t, b.Add(sell(103.00, 5, 3), 0, 3, 3))

	// A buyer sweeping further only pays more.
	prev := 0.0
	for _, q := range []float64{1, 5, 15, 20, 35, 40, 100} {
		avg := b.GetAvgPxForQuantity(qty(q), Buy)
		assert.GreaterOrEqual(t, avg, prev, "VWAP must not decrease with quantity")
		prev = avg
	}
}

func TestQuantityForPrice(t *testing.T) {
	b := New(instrument, L2MBP)
	require.NoError(t, b.Add(sell(101.00, 15, 1), 0, 1, 1))
	require.NoError(t, b.Add(sell(102.00, 20, 2), 0, 2, 2))
	require.NoError(t, b.Add(buy(100.00, 10, 3), 0, 3, 3))
	require.NoError(t, b.Add(buy(99.00, 30, 4), 0, 4, 4))

	assert.InDelta(t, 15.0, b.GetQuantityForPrice(px(101.00), Buy), 1e-9)
	assert.InDelta(t, 35.0, b.GetQuantityForPrice(px(102.00), Buy), 1e-9)
	assert.InDelta(t, 0.0, b.GetQuantityForPrice(px(100.50), Buy), 1e-9)
	assert.InDelta(t, 10.0, b.GetQuantityForPrice(px(100.00), Sell), 1e-9)
	assert.InDelta(t, 40.0, b.GetQuantityForPrice(px(99.00), Sell), 1e-9)
}

func TestAvgPxQtyForExposure(t *testing.T) {
	b := New(instrument, L2MBP)
	require.NoError(t, b.Add(sell(101.00, 15, 1), 0, 1, 1))
	require.NoError(t, b.Add(sell(102.00, 20, 2), 0, 2, 2))

	avg, filled, last := b.GetAvgPxQtyForExposure(1010.0, Buy)
	assert.InDelta(t, 101.00, avg, 1e-9)
	assert.InDelta(t, 10.0, filled, 1e-9)
	assert.InDelta(t, 101.00, last, 1e-9)

	// Budget beyond the first level walks into the second.
	avg, filled, last = b.GetAvgPxQtyForExposure(101.0*15+102.0*10, Buy)
	assert.InDelta(t, 25.0, filled, 1e-9)
	assert.InDelta(t, (101.0*15+102.0*10)/25.0, avg, 1e-9)
	assert.InDelta(t, 102.00, last, 1e-9)

	// More budget than liquidity fills what exists.
	_, filled, _ = b.GetAvgPxQtyForExposure(1e9, Buy)
	assert.InDelta(t, 35.0, filled, 1e-9)
}

func TestImbalanceRatio(t *testing.T) {
	b := New(instrument, L2MBP)
	_, ok := b.ImbalanceRatio()
	assert.False(t, ok)

	require.NoError(t, b.Add(buy(100.00, 10, 1), 0, 1, 1))
	_, ok = b.ImbalanceRatio()
	assert.False(t, ok, "one-sided book has no imbalance ratio")

	require.NoError(t, b.Add(sell(101.00, 15, 2), 0, 2, 2))
	ratio, ok := b.ImbalanceRatio()
	require.True(t, ok)
	assert.InDelta(t, 10.0/15.0, ratio, 1e-9)

	// Symmetric book is perfectly balanced.
	require.NoError(t, b.Update(sell(101.00, 10, 2), 0, 3, 3))
	ratio, _ = b.ImbalanceRatio()
	assert.InDelta(t, 1.0, ratio, 1e-9)
}
