package book

import (
	"errors"
	"fmt"

	"lob/fixed"
)

// Operation errors. Every failed mutation is a no-op on book state.
var (
	ErrWrongPrice         = errors.New("order price does not match level price")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
	ErrZeroSizeAdd        = errors.New("add with zero size")
	ErrWrongBookType      = errors.New("operation not supported for book type")
)

// TooManyLevelsError reports an L1 book holding more than one level on a side.
type TooManyLevelsError struct {
	Side  Side
	Count int
}

func (e TooManyLevelsError) Error() string {
	return fmt.Sprintf("integrity: L1 book has %d levels on %s side", e.Count, e.Side)
}

// TooManyOrdersError reports an L2 level holding more than one order.
type TooManyOrdersError struct {
	Side  Side
	Price fixed.Price
	Count int
}

func (e TooManyOrdersError) Error() string {
	return fmt.Sprintf("integrity: L2 level %s on %s side has %d orders", e.Price, e.Side, e.Count)
}

// OrdersCrossedError reports a strictly inverted market. A locked market
// (best bid equal to best ask) is legal and never reported.
type OrdersCrossedError struct {
	BestBid fixed.Price
	BestAsk fixed.Price
}

func (e OrdersCrossedError) Error() string {
	return fmt.Sprintf("integrity: orders crossed, best bid %s > best ask %s", e.BestBid, e.BestAsk)
}

// EmptyLevelError reports a level with zero total size that should have
// been pruned.
type EmptyLevelError struct {
	Side  Side
	Price fixed.Price
}

func (e EmptyLevelError) Error() string {
	return fmt.Sprintf("integrity: empty level %s on %s side", e.Price, e.Side)
}
