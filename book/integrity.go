package book

// CheckIntegrity verifies the invariants of the book's type on demand. It
// is O(depth) and never runs automatically on mutation; callers assert at
// snapshot boundaries or in tests. The book may legitimately hold a crossed
// state between two mutations of one batch, so the only legal assertion
// point is a batch boundary.
func (b *Book) CheckIntegrity() error {
	if b.bookType == L1MBP {
		if n := b.bids.Len(); n > 1 {
			return TooManyLevelsError{Side: Buy, Count: n}
		}
		if n := b.asks.Len(); n > 1 {
			return TooManyLevelsError{Side: Sell, Count: n}
		}
	}
	if err := checkLadder(b.bids, b.bookType); err != nil {
		return err
	}
	if err := checkLadder(b.asks, b.bookType); err != nil {
		return err
	}
	bid, okB := b.bids.BestPrice()
	ask, okA := b.asks.BestPrice()
	if okB && okA && bid.Gt(ask) {
		return OrdersCrossedError{BestBid: bid, BestAsk: ask}
	}
	return nil
}

func checkLadder(l *Ladder, bookType BookType) error {
	var err error
	l.Walk(func(lvl *Level) bool {
		if lvl.Size().IsZero() {
			err = EmptyLevelError{Side: l.side, Price: lvl.Price}
			return false
		}
		if bookType == L2MBP && lvl.Len() > 1 {
			err = TooManyOrdersError{Side: l.side, Price: lvl.Price, Count: lvl.Len()}
			return false
		}
		return true
	})
	return err
}
