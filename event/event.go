// Package event defines the typed records the engine emits after each
// applied mutation. Events are delivered through a handler func supplied at
// engine construction; the engine never manages goroutines or channels.
package event

import (
	"fmt"

	"github.com/google/uuid"

	"lob/book"
	"lob/fixed"
)

type Kind uint8

const (
	KindAdded Kind = iota + 1
	KindUpdated
	KindDeleted
	KindCleared
	KindSnapshot
)

func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindUpdated:
		return "updated"
	case KindDeleted:
		return "deleted"
	case KindCleared:
		return "cleared"
	case KindSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// BookEvent describes one applied book mutation. Price, Size, Side and
// OrderID carry the mutation's subject where meaningful; cleared and
// snapshot events leave them zero.
type BookEvent struct {
	EventID uuid.UUID
	Kind    Kind
	Side    book.Side
	Price   fixed.Price
	Size    fixed.Qty
	OrderID uint64
	TsEvent int64
}

// Handler consumes applied-mutation events. It runs synchronously on the
// writer's goroutine, so it must be fast and must not call back into the
// book.
type Handler func(BookEvent)

// New stamps a fresh event id onto the given event fields.
func New(kind Kind, side book.Side, price fixed.Price, size fixed.Qty, orderID uint64, tsEvent int64) BookEvent {
	return BookEvent{
		EventID: uuid.New(),
		Kind:    kind,
		Side:    side,
		Price:   price,
		Size:    size,
		OrderID: orderID,
		TsEvent: tsEvent,
	}
}

func (e BookEvent) String() string {
	return fmt.Sprintf("BookEvent{id=%s kind=%s side=%s price=%s size=%s order=%d}",
		e.EventID, e.Kind, e.Side, e.Price, e.Size, e.OrderID)
}
