package book

import (
	"fmt"

	"lob/fixed"
)

// Action is the mutation kind carried by a delta record.
type Action uint8

const (
	ActionAdd Action = iota + 1
	ActionUpdate
	ActionDelete
	ActionClear
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Book is the order book for one instrument. It is single-writer and
// deterministic; see the package doc for the concurrency contract.
type Book struct {
	instrumentID string
	bookType     BookType
	bids         *Ladder
	asks         *Ladder

	sequence    uint64
	tsLast      int64
	updateCount uint64
}

// New creates an empty book of the given type. The type is fixed for the
// lifetime of the book; Reset empties it without changing the type.
func New(instrumentID string, bookType BookType) *Book {
	keepIndex := bookType == L3MBO
	return &Book{
		instrumentID: instrumentID,
		bookType:     bookType,
		bids:         NewLadder(Buy, keepIndex),
		asks:         NewLadder(Sell, keepIndex),
	}
}

func (b *Book) InstrumentID() string { return b.instrumentID }
func (b *Book) Type() BookType       { return b.bookType }
func (b *Book) Sequence() uint64     { return b.sequence }
func (b *Book) TsLast() int64        { return b.tsLast }
func (b *Book) UpdateCount() uint64  { return b.updateCount }

func (b *Book) ladder(side Side) *Ladder {
	switch side {
	case Buy:
		return b.bids
	case Sell:
		return b.asks
	default:
		panic("book: mutation without side")
	}
}

// applied records the bookkeeping every successful mutation shares. Failed
// operations are complete no-ops and never reach here.
func (b *Book) applied(sequence uint64, tsEvent int64) {
	b.updateCount++
	if tsEvent > b.tsLast {
		b.tsLast = tsEvent
	}
	if sequence != 0 {
		b.sequence = sequence
	}
}

// syntheticID is the stable pseudo order id carried by aggregate levels on
// market-by-price books, derived from the level price. Callers never
// observe it; it exists so level invariants hold for synthetic orders too.
func syntheticID(price fixed.Price) uint64 {
	return uint64(price.Raw())
}

// Add inserts a new resting order. On L1 the order replaces the side's
// top-of-book; on L2 the order id is ignored and the aggregate at the price
// is overwritten; on L3 the order joins the FIFO at its price.
func (b *Book) Add(o Order, flags uint8, sequence uint64, tsEvent int64) error {
	if o.Size.IsZero() {
		return fmt.Errorf("%w: id %d", ErrZeroSizeAdd, o.ID)
	}
	side := b.ladder(o.Side)
	switch b.bookType {
	case L1MBP:
		o.ID = uint64(o.Side)
		side.Clear()
		side.ReplaceLevel(o)
	case L2MBP:
		o.ID = syntheticID(o.Price)
		side.ReplaceLevel(o)
	default:
		if err := side.AddOrder(o); err != nil {
			return err
		}
	}
	b.applied(sequence, tsEvent)
	return nil
}

// Update alters the size of a resting order. A zero size is an implicit
// delete. On L3 a changed price reprices the order, losing queue priority.
func (b *Book) Update(o Order, flags uint8, sequence uint64, tsEvent int64) error {
	if o.Size.IsZero() {
		return b.Delete(o, flags, sequence, tsEvent)
	}
	side := b.ladder(o.Side)
	switch b.bookType {
	case L1MBP:
		o.ID = uint64(o.Side)
		side.Clear()
		side.ReplaceLevel(o)
	case L2MBP:
		o.ID = syntheticID(o.Price)
		side.ReplaceLevel(o)
	default:
		if err := side.UpdateOrder(o); err != nil {
			return err
		}
	}
	b.applied(sequence, tsEvent)
	return nil
}

// Delete removes a resting order: by id on L3, by price on L2, and the
// side's single level on L1.
func (b *Book) Delete(o Order, flags uint8, sequence uint64, tsEvent int64) error {
	side := b.ladder(o.Side)
	switch b.bookType {
	case L1MBP:
		if side.Top() == nil {
			return fmt.Errorf("%w: %s side empty", ErrOrderNotFound, o.Side)
		}
		side.Clear()
	case L2MBP:
		if err := side.RemoveLevel(o.Price); err != nil {
			return err
		}
	default:
		if err := side.DeleteOrder(o); err != nil {
			return err
		}
	}
	b.applied(sequence, tsEvent)
	return nil
}

// Clear empties both sides.
func (b *Book) Clear(sequence uint64, tsEvent int64) {
	b.bids.Clear()
	b.asks.Clear()
	b.applied(sequence, tsEvent)
}

// ClearBids empties the bid side.
func (b *Book) ClearBids(sequence uint64, tsEvent int64) {
	b.bids.Clear()
	b.applied(sequence, tsEvent)
}

// ClearAsks empties the ask side.
func (b *Book) ClearAsks(sequence uint64, tsEvent int64) {
	b.asks.Clear()
	b.applied(sequence, tsEvent)
}

// Reset returns the book to the empty-but-typed state.
func (b *Book) Reset() {
	b.bids.Clear()
	b.asks.Clear()
	b.sequence = 0
	b.tsLast = 0
	b.updateCount = 0
}

// ApplyDelta dispatches one delta action onto the book.
func (b *Book) ApplyDelta(action Action, o Order, flags uint8, sequence uint64, tsEvent int64) error {
	switch action {
	case ActionAdd:
		return b.Add(o, flags, sequence, tsEvent)
	case ActionUpdate:
		return b.Update(o, flags, sequence, tsEvent)
	case ActionDelete:
		return b.Delete(o, flags, sequence, tsEvent)
	case ActionClear:
		b.Clear(sequence, tsEvent)
		return nil
	default:
		return fmt.Errorf("book: unknown delta action %d", action)
	}
}

// ApplyDepth10 replaces the whole book with a top-10 snapshot: clear both
// sides, then place every non-zero slot. Trailing zero-size slots are
// skipped. The book may not be read mid-application; single-writer
// sequencing makes the replacement atomic to every legal reader.
func (b *Book) ApplyDepth10(bids, asks []Order, sequence uint64, tsEvent int64) error {
	b.bids.Clear()
	b.asks.Clear()
	place := func(side *Ladder, o Order) error {
		switch b.bookType {
		case L1MBP:
			if side.Top() != nil {
				return nil // top-of-book only keeps the first slot
			}
			o.ID = uint64(o.Side)
			side.ReplaceLevel(o)
		case L2MBP:
			o.ID = syntheticID(o.Price)
			side.ReplaceLevel(o)
		default:
			return side.AddOrder(o)
		}
		return nil
	}
	for _, o := range bids {
		if o.Size.IsZero() {
			continue
		}
		if err := place(b.bids, o); err != nil {
			return err
		}
	}
	for _, o := range asks {
		if o.Size.IsZero() {
			continue
		}
		if err := place(b.asks, o); err != nil {
			return err
		}
	}
	b.applied(sequence, tsEvent)
	return nil
}

// UpdateQuote lifts a top-of-book quote into two L1 replace operations.
// Only L1 books accept quotes.
func (b *Book) UpdateQuote(bidPrice, askPrice fixed.Price, bidSize, askSize fixed.Qty, sequence uint64, tsEvent int64) error {
	if b.bookType != L1MBP {
		return fmt.Errorf("%w: quote on %s book", ErrWrongBookType, b.bookType)
	}
	b.bids.Clear()
	b.bids.ReplaceLevel(Order{Side: Buy, Price: bidPrice, Size: bidSize, ID: uint64(Buy)})
	b.asks.Clear()
	b.asks.ReplaceLevel(Order{Side: Sell, Price: askPrice, Size: askSize, ID: uint64(Sell)})
	b.applied(sequence, tsEvent)
	return nil
}

// UpdateTrade lifts a last-trade record into the book: both sides collapse
// to a single level at the trade price with the trade size. This is how
// last-trade-only feeds enter the book abstraction. Only L1 books accept
// trades.
func (b *Book) UpdateTrade(price fixed.Price, size fixed.Qty, sequence uint64, tsEvent int64) error {
	if b.bookType != L1MBP {
		return fmt.Errorf("%w: trade on %s book", ErrWrongBookType, b.bookType)
	}
	b.bids.Clear()
	b.bids.ReplaceLevel(Order{Side: Buy, Price: price, Size: size, ID: uint64(Buy)})
	b.asks.Clear()
	b.asks.ReplaceLevel(Order{Side: Sell, Price: price, Size: size, ID: uint64(Sell)})
	b.applied(sequence, tsEvent)
	return nil
}

// ---- reads ----

// BestBidPrice returns the best bid, ok=false when the bid side is empty.
func (b *Book) BestBidPrice() (fixed.Price, bool) {
	return b.bids.BestPrice()
}

// BestAskPrice returns the best ask, ok=false when the ask side is empty.
func (b *Book) BestAskPrice() (fixed.Price, bool) {
	return b.asks.BestPrice()
}

// BestBidSize returns the aggregate size at the best bid.
func (b *Book) BestBidSize() (fixed.Qty, bool) {
	top := b.bids.Top()
	if top == nil {
		return fixed.Qty{}, false
	}
	return top.Size(), true
}

// BestAskSize returns the aggregate size at the best ask.
func (b *Book) BestAskSize() (fixed.Qty, bool) {
	top := b.asks.Top()
	if top == nil {
		return fixed.Qty{}, false
	}
	return top.Size(), true
}

// Spread returns best ask minus best bid in display units.
func (b *Book) Spread() (float64, bool) {
	bid, okB := b.bids.BestPrice()
	ask, okA := b.asks.BestPrice()
	if !okB || !okA {
		return 0, false
	}
	return ask.Float64() - bid.Float64(), true
}

// Midpoint returns the mid of best bid and best ask in display units.
func (b *Book) Midpoint() (float64, bool) {
	bid, okB := b.bids.BestPrice()
	ask, okA := b.asks.BestPrice()
	if !okB || !okA {
		return 0, false
	}
	return (bid.Float64() + ask.Float64()) / 2, true
}

// BidDepth returns the number of bid levels.
func (b *Book) BidDepth() int { return b.bids.Len() }

// AskDepth returns the number of ask levels.
func (b *Book) AskDepth() int { return b.asks.Len() }

// BidLevels returns deep copies of the bid levels in priority order.
func (b *Book) BidLevels() []*Level { return b.bids.Levels() }

// AskLevels returns deep copies of the ask levels in priority order.
func (b *Book) AskLevels() []*Level { return b.asks.Levels() }

func (b *Book) String() string {
	return fmt.Sprintf("Book{instrument=%s type=%s bids=%d asks=%d updates=%d}",
		b.instrumentID, b.bookType, b.bids.Len(), b.asks.Len(), b.updateCount)
}
