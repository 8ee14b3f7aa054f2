// Package feed adapts decoded market-data records onto the book's primitive
// mutations. Records arrive fully parsed and validated; wire decoding is an
// external collaborator.
package feed

import (
	"lob/book"
	"lob/fixed"
)

// FlagLast marks the final delta of a batch. Integrity assertions are only
// legal at this boundary; the book may transiently cross inside a batch.
const FlagLast uint8 = 1

// Delta is a single book mutation record.
type Delta struct {
	InstrumentID string
	Action       book.Action
	Order        book.Order
	Flags        uint8
	Sequence     uint64
	TsEvent      int64
	TsInit       int64
}

// IsLast reports whether this delta closes its batch.
func (d Delta) IsLast() bool { return d.Flags&FlagLast != 0 }

// Depth10 carries an aggregated top-10 snapshot of both sides. Trailing
// slots with zero size are padding.
type Depth10 struct {
	InstrumentID string
	Bids         [10]book.Order
	Asks         [10]book.Order
	BidCounts    [10]uint32
	AskCounts    [10]uint32
	Flags        uint8
	Sequence     uint64
	TsEvent      int64
	TsInit       int64
}

// Quote is a top-of-book quote, liftable into an L1 book.
type Quote struct {
	InstrumentID string
	BidPrice     fixed.Price
	AskPrice     fixed.Price
	BidSize      fixed.Qty
	AskSize      fixed.Qty
	TsEvent      int64
	TsInit       int64
}

// Trade is a last-trade record, liftable into an L1 book.
type Trade struct {
	InstrumentID  string
	Price         fixed.Price
	Size          fixed.Qty
	AggressorSide book.Side
	TradeID       string
	TsEvent       int64
	TsInit        int64
}
