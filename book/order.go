package book

import (
	"fmt"

	"lob/fixed"
)

type Side uint8

const (
	NoSide Side = iota
	Buy
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "none"
	}
}

// Opposite returns the side a marketable order of side s consumes.
func (s Side) Opposite() Side {
	switch s {
	case Buy:
		return Sell
	case Sell:
		return Buy
	default:
		panic("book: no opposite for NoSide")
	}
}

type BookType uint8

const (
	// L1MBP holds market-by-price top-of-book only: at most one level per side.
	L1MBP BookType = iota + 1
	// L2MBP holds market-by-price aggregated depth: one synthetic order per level.
	L2MBP
	// L3MBO holds market-by-order full depth: order identity is meaningful.
	L3MBO
)

func (t BookType) String() string {
	switch t {
	case L1MBP:
		return "L1_MBP"
	case L2MBP:
		return "L2_MBP"
	case L3MBO:
		return "L3_MBO"
	default:
		return "unknown"
	}
}

// Order is a single resting order. Identity is ID alone: two orders with the
// same ID are the same order regardless of their other fields.
type Order struct {
	Side  Side
	Price fixed.Price
	Size  fixed.Qty
	ID    uint64
}

// SignedSize returns +size for buys and -size for sells, in display units.
// Calling it on a NoSide order is a programmer error.
func (o Order) SignedSize() float64 {
	switch o.Side {
	case Buy:
		return o.Size.Float64()
	case Sell:
		return -o.Size.Float64()
	default:
		panic("book: signed size of order without side")
	}
}

// Exposure returns price times size in display units.
func (o Order) Exposure() float64 {
	return o.Price.Float64() * o.Size.Float64()
}

func (o Order) String() string {
	return fmt.Sprintf("Order{side=%s price=%s size=%s id=%d}", o.Side, o.Price, o.Size, o.ID)
}
