package book

import (
	"fmt"

	"github.com/google/btree"

	"lob/fixed"
)

const ladderBTreeDegree = 32

type levelItem struct {
	level *Level
}

func (a levelItem) Less(than btree.Item) bool {
	return a.level.Price.Raw() < than.(levelItem).level.Price.Raw()
}

// Ladder is one side of the book: a price-ordered collection of levels.
// Iteration is always priority order, best level first (descending price for
// bids, ascending for asks). Levels whose aggregate size reaches zero are
// pruned. For market-by-order books the ladder also keeps an order id to
// price index so updates and deletes need not re-supply the resting price.
type Ladder struct {
	side   Side
	levels *btree.BTree
	index  map[uint64]fixed.Price // nil unless the book is market-by-order
}

func NewLadder(side Side, keepIndex bool) *Ladder {
	l := &Ladder{
		side:   side,
		levels: btree.New(ladderBTreeDegree),
	}
	if keepIndex {
		l.index = make(map[uint64]fixed.Price)
	}
	return l
}

func (l *Ladder) Side() Side { return l.side }
func (l *Ladder) Len() int   { return l.levels.Len() }

func (l *Ladder) find(price fixed.Price) *Level {
	probe := levelItem{level: &Level{Price: price}}
	if it := l.levels.Get(probe); it != nil {
		return it.(levelItem).level
	}
	return nil
}

func (l *Ladder) getOrCreate(price fixed.Price) *Level {
	if lvl := l.find(price); lvl != nil {
		return lvl
	}
	lvl := NewLevel(price)
	l.levels.ReplaceOrInsert(levelItem{level: lvl})
	return lvl
}

func (l *Ladder) prune(lvl *Level) {
	if lvl.Len() == 0 {
		l.levels.Delete(levelItem{level: lvl})
	}
}

// AddOrder appends the order to the FIFO tail of its price level, creating
// the level when absent.
func (l *Ladder) AddOrder(o Order) error {
	if l.index != nil {
		if _, ok := l.index[o.ID]; ok {
			return fmt.Errorf("%w: id %d", ErrOrderAlreadyExists, o.ID)
		}
	}
	lvl := l.getOrCreate(o.Price)
	if err := lvl.Add(o); err != nil {
		l.prune(lvl)
		return err
	}
	if l.index != nil {
		l.index[o.ID] = o.Price
	}
	return nil
}

// UpdateOrder alters the size of a resting order located through the id
// index. A changed price reprices as delete-then-add: the order loses its
// queue priority. A zero size is an implicit delete.
func (l *Ladder) UpdateOrder(o Order) error {
	if l.index == nil {
		panic("book: UpdateOrder requires an id-indexed ladder")
	}
	old, ok := l.index[o.ID]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, o.ID)
	}
	if o.Size.IsZero() {
		return l.DeleteOrder(o)
	}
	lvl := l.find(old)
	if lvl == nil {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, o.ID)
	}
	if old.Eq(o.Price) {
		return lvl.Update(o)
	}
	if err := lvl.Delete(o.ID); err != nil {
		return err
	}
	l.prune(lvl)
	delete(l.index, o.ID)
	return l.AddOrder(o)
}

// DeleteOrder removes a resting order, locating it by id when the ladder is
// indexed and by price otherwise. The level is pruned when it empties.
func (l *Ladder) DeleteOrder(o Order) error {
	price := o.Price
	if l.index != nil {
		p, ok := l.index[o.ID]
		if !ok {
			return fmt.Errorf("%w: id %d", ErrOrderNotFound, o.ID)
		}
		price = p
	}
	lvl := l.find(price)
	if lvl == nil {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, o.ID)
	}
	if err := lvl.Delete(o.ID); err != nil {
		return err
	}
	l.prune(lvl)
	if l.index != nil {
		delete(l.index, o.ID)
	}
	return nil
}

// ReplaceLevel overwrites the level at the order's price so that it holds
// exactly this order. Market-by-price books express aggregate updates this
// way; the level invariants keep holding because the aggregate rides on a
// single synthetic order.
func (l *Ladder) ReplaceLevel(o Order) {
	lvl := l.getOrCreate(o.Price)
	lvl.orders = lvl.orders[:0]
	lvl.orders = append(lvl.orders, o)
}

// RemoveLevel drops the whole level at the given price.
func (l *Ladder) RemoveLevel(price fixed.Price) error {
	lvl := l.find(price)
	if lvl == nil {
		return fmt.Errorf("%w: level %s", ErrOrderNotFound, price)
	}
	l.levels.Delete(levelItem{level: lvl})
	if l.index != nil {
		for i := range lvl.orders {
			delete(l.index, lvl.orders[i].ID)
		}
	}
	return nil
}

// Clear drops all levels and the id index.
func (l *Ladder) Clear() {
	l.levels.Clear(false)
	if l.index != nil {
		l.index = make(map[uint64]fixed.Price)
	}
}

// Top returns the best level, or nil when the ladder is empty.
func (l *Ladder) Top() *Level {
	var it btree.Item
	if l.side == Buy {
		it = l.levels.Max()
	} else {
		it = l.levels.Min()
	}
	if it == nil {
		return nil
	}
	return it.(levelItem).level
}

// BestPrice returns the price of the best level.
func (l *Ladder) BestPrice() (fixed.Price, bool) {
	top := l.Top()
	if top == nil {
		return fixed.Price{}, false
	}
	return top.Price, true
}

// Walk visits live levels in priority order until fn returns false. The
// levels must not be mutated by fn; callers outside the package get clones
// via Levels.
func (l *Ladder) Walk(fn func(*Level) bool) {
	iter := func(it btree.Item) bool {
		return fn(it.(levelItem).level)
	}
	if l.side == Buy {
		l.levels.Descend(iter)
	} else {
		l.levels.Ascend(iter)
	}
}

// Levels returns deep copies of all levels in priority order.
func (l *Ladder) Levels() []*Level {
	out := make([]*Level, 0, l.levels.Len())
	l.Walk(func(lvl *Level) bool {
		out = append(out, lvl.Clone())
		return true
	})
	return out
}
