package book

import (
	"lob/fixed"
)

// Fill is one partial fill yielded by SimulateFills.
type Fill struct {
	Price fixed.Price
	Size  fixed.Qty
}

// GetQuantityForPrice returns the total size, in display units, that a
// market order of the given side would consume sweeping to the given price:
// a buy consumes asks priced at or below it, a sell consumes bids priced at
// or above it. The walk stops at the first level outside the bound.
func (b *Book) GetQuantityForPrice(price fixed.Price, side Side) float64 {
	var total uint64
	b.ladder(side.Opposite()).Walk(func(lvl *Level) bool {
		if side == Buy && lvl.Price.Gt(price) {
			return false
		}
		if side == Sell && lvl.Price.Lt(price) {
			return false
		}
		total += lvl.Size().Raw()
		return true
	})
	return float64(total) / float64(fixed.Scalar)
}

// GetAvgPxForQuantity returns the volume-weighted average price to fill qty
// against the opposite side in priority order. When the book cannot supply
// qty it returns the VWAP of the available portion; it never pads with a
// synthetic price. Returns 0.0 iff there is no liquidity at all.
func (b *Book) GetAvgPxForQuantity(qty fixed.Qty, side Side) float64 {
	remaining := qty.Raw()
	var cost float64
	var filled uint64
	b.ladder(side.Opposite()).Walk(func(lvl *Level) bool {
		if remaining == 0 {
			return false
		}
		take := lvl.Size().Raw()
		if take > remaining {
			take = remaining
		}
		cost += lvl.Price.Float64() * (float64(take) / float64(fixed.Scalar))
		filled += take
		remaining -= take
		return remaining > 0
	})
	if filled == 0 {
		return 0.0
	}
	return cost / (float64(filled) / float64(fixed.Scalar))
}

// GetAvgPxQtyForExposure walks the opposite side against a notional budget
// in display units. It returns the volume-weighted average price, the
// quantity filled, and the last price the walk touched.
func (b *Book) GetAvgPxQtyForExposure(exposure float64, side Side) (avgPx, qtyFilled, lastPx float64) {
	budget := exposure
	var cost float64
	b.ladder(side.Opposite()).Walk(func(lvl *Level) bool {
		if budget <= 0 {
			return false
		}
		px := lvl.Price.Float64()
		if px <= 0 {
			return false
		}
		size := lvl.Size().Float64()
		affordable := budget / px
		if affordable > size {
			affordable = size
		}
		cost += affordable * px
		qtyFilled += affordable
		budget -= affordable * px
		lastPx = px
		return budget > 0
	})
	if qtyFilled > 0 {
		avgPx = cost / qtyFilled
	}
	return avgPx, qtyFilled, lastPx
}

// SimulateFills yields the partial fills a hypothetical marketable order
// would receive walking the opposite side in price-time priority. The
// order's limit price caps the walk. The book is not mutated.
func (b *Book) SimulateFills(o Order) []Fill {
	var fills []Fill
	remaining := o.Size.Raw()
	precision := o.Size.Precision()
	b.ladder(o.Side.Opposite()).Walk(func(lvl *Level) bool {
		if remaining == 0 {
			return false
		}
		if o.Side == Buy && lvl.Price.Gt(o.Price) {
			return false
		}
		if o.Side == Sell && lvl.Price.Lt(o.Price) {
			return false
		}
		for _, resting := range lvl.orders {
			if remaining == 0 {
				return false
			}
			take := resting.Size.Raw()
			if take > remaining {
				take = remaining
			}
			fills = append(fills, Fill{Price: lvl.Price, Size: fixed.QtyFromRaw(take, precision)})
			remaining -= take
		}
		return remaining > 0
	})
	return fills
}

// ImbalanceRatio is min(best bid size, best ask size) over the max of the
// two: near 1.0 the book is balanced, near 0.0 it is one-sided. Undefined
// (ok=false) when either side is empty.
func (b *Book) ImbalanceRatio() (float64, bool) {
	bidTop := b.bids.Top()
	askTop := b.asks.Top()
	if bidTop == nil || askTop == nil {
		return 0, false
	}
	bid := bidTop.Size().Raw()
	ask := askTop.Size().Raw()
	if bid == 0 || ask == 0 {
		return 0, false
	}
	if bid < ask {
		return float64(bid) / float64(ask), true
	}
	return float64(ask) / float64(bid), true
}
