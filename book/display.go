package book

import (
	"fmt"
	"strings"
)

// Pprint renders the top numLevels of each side as an ASCII table aligned
// on the spread: asks stacked above, bids below, worst prices at the edges.
func (b *Book) Pprint(numLevels int) string {
	if numLevels <= 0 {
		numLevels = 1
	}
	bids := b.BidLevels()
	asks := b.AskLevels()
	if len(bids) > numLevels {
		bids = bids[:numLevels]
	}
	if len(asks) > numLevels {
		asks = asks[:numLevels]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", b.instrumentID, b.bookType)
	fmt.Fprintf(&sb, "%12s %12s %-12s\n", "bids", "price", "asks")

	// Asks print worst-first so the best ask sits just above the spread.
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%12s %12s %-12s\n", "", asks[i].Price, asks[i].Size())
	}
	for _, lvl := range bids {
		fmt.Fprintf(&sb, "%12s %12s %-12s\n", lvl.Size(), lvl.Price, "")
	}
	return sb.String()
}
