package book

import (
	"fmt"

	"lob/fixed"
)

// Level holds all orders resting at one price on one side. Orders keep
// strict FIFO arrival order; reordering them is a correctness defect, since
// every fair fill simulator assumes price-time priority.
type Level struct {
	Price  fixed.Price
	orders []Order
}

func NewLevel(price fixed.Price) *Level {
	return &Level{Price: price}
}

// Add appends the order to the FIFO tail. The ladder routes adds here and
// enforces cross-level ID uniqueness; this guard only catches callers that
// bypass it.
func (l *Level) Add(o Order) error {
	if !o.Price.Eq(l.Price) {
		return fmt.Errorf("%w: order %s, level %s", ErrWrongPrice, o.Price, l.Price)
	}
	for i := range l.orders {
		if l.orders[i].ID == o.ID {
			return fmt.Errorf("%w: id %d", ErrOrderAlreadyExists, o.ID)
		}
	}
	l.orders = append(l.orders, o)
	return nil
}

// Update replaces the size of the order with the same ID, keeping its queue
// position. A zero size routes to Delete; a changed price is the ladder's
// job, not the level's.
func (l *Level) Update(o Order) error {
	if !o.Price.Eq(l.Price) {
		return fmt.Errorf("%w: order %s, level %s", ErrWrongPrice, o.Price, l.Price)
	}
	if o.Size.IsZero() {
		return l.Delete(o.ID)
	}
	for i := range l.orders {
		if l.orders[i].ID == o.ID {
			l.orders[i].Size = o.Size
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrOrderNotFound, o.ID)
}

// Delete removes the order with the given ID.
func (l *Level) Delete(orderID uint64) error {
	for i := range l.orders {
		if l.orders[i].ID == orderID {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
}

// Get returns the resting order with the given ID.
func (l *Level) Get(orderID uint64) (Order, bool) {
	for i := range l.orders {
		if l.orders[i].ID == orderID {
			return l.orders[i], true
		}
	}
	return Order{}, false
}

// First returns the order at the FIFO head.
func (l *Level) First() (Order, bool) {
	if len(l.orders) == 0 {
		return Order{}, false
	}
	return l.orders[0], true
}

func (l *Level) Len() int { return len(l.orders) }

// Size returns the aggregate resting quantity at this level.
func (l *Level) Size() fixed.Qty {
	var raw uint64
	var precision uint8
	for i := range l.orders {
		raw += l.orders[i].Size.Raw()
		precision = l.orders[i].Size.Precision()
	}
	return fixed.QtyFromRaw(raw, precision)
}

// Exposure returns price times aggregate size in display units.
func (l *Level) Exposure() float64 {
	return l.Price.Float64() * l.Size().Float64()
}

// Orders returns a copy of the resting orders in FIFO order.
func (l *Level) Orders() []Order {
	out := make([]Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Clone returns a deep copy. Snapshots handed out by the book never alias
// live state.
func (l *Level) Clone() *Level {
	return &Level{Price: l.Price, orders: l.Orders()}
}

func (l *Level) String() string {
	return fmt.Sprintf("Level{price=%s orders=%d size=%s}", l.Price, len(l.orders), l.Size())
}
