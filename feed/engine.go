package feed

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"lob/book"
	"lob/event"
	"lob/infra/metrics"
)

// ErrInstrumentMismatch is returned for records addressed to a different
// instrument than the engine's book.
var ErrInstrumentMismatch = errors.New("record instrument does not match book")

// Engine feeds one book from a sequential record stream. It is the only
// write entry point: routing, batch framing, event emission and telemetry
// all happen here, while the book stays a pure data structure.
//
// Like the book itself the engine is single-writer; records must arrive in
// delivery order and the transport reorders, never the engine.
type Engine struct {
	book    *book.Book
	handler event.Handler
	log     zerolog.Logger

	pending []Delta // open batch, waiting for its F_LAST delta
}

// NewEngine wires a book to an event handler. A nil handler drops events.
func NewEngine(b *book.Book, handler event.Handler, logger zerolog.Logger) *Engine {
	if handler == nil {
		handler = func(event.BookEvent) {}
	}
	return &Engine{
		book:    b,
		handler: handler,
		log:     logger.With().Str("instrument", b.InstrumentID()).Logger(),
	}
}

func (e *Engine) Book() *book.Book { return e.book }

func (e *Engine) checkInstrument(instrumentID string) error {
	if instrumentID != "" && instrumentID != e.book.InstrumentID() {
		return fmt.Errorf("%w: got %s, book %s", ErrInstrumentMismatch, instrumentID, e.book.InstrumentID())
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, book.ErrWrongPrice):
		return "wrong_price"
	case errors.Is(err, book.ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, book.ErrOrderAlreadyExists):
		return "order_exists"
	case errors.Is(err, book.ErrZeroSizeAdd):
		return "zero_size_add"
	case errors.Is(err, book.ErrWrongBookType):
		return "wrong_book_type"
	case errors.Is(err, ErrInstrumentMismatch):
		return "instrument_mismatch"
	default:
		return "other"
	}
}

func (e *Engine) reject(err error, what string) error {
	metrics.RecordsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
	e.log.Warn().Err(err).Str("record", what).Msg("record rejected")
	return err
}

func (e *Engine) observeDepth() {
	metrics.BookDepthLevels.WithLabelValues("bid").Set(float64(e.book.BidDepth()))
	metrics.BookDepthLevels.WithLabelValues("ask").Set(float64(e.book.AskDepth()))
}

func deltaEventKind(action book.Action, implicitDelete bool) event.Kind {
	switch {
	case action == book.ActionClear:
		return event.KindCleared
	case action == book.ActionDelete || implicitDelete:
		return event.KindDeleted
	case action == book.ActionAdd:
		return event.KindAdded
	default:
		return event.KindUpdated
	}
}

// ApplyDelta applies a single delta immediately, outside any batch framing.
func (e *Engine) ApplyDelta(d Delta) error {
	if err := e.checkInstrument(d.InstrumentID); err != nil {
		return e.reject(err, "delta")
	}
	implicitDelete := d.Action == book.ActionUpdate && d.Order.Size.IsZero()
	if err := e.book.ApplyDelta(d.Action, d.Order, d.Flags, d.Sequence, d.TsEvent); err != nil {
		return e.reject(err, "delta")
	}
	metrics.DeltasAppliedTotal.Inc()
	if implicitDelete {
		metrics.ImplicitDeletesTotal.Inc()
	}
	e.observeDepth()
	e.log.Debug().
		Stringer("action", d.Action).
		Stringer("side", d.Order.Side).
		Uint64("order_id", d.Order.ID).
		Msg("delta applied")
	e.handler(event.New(deltaEventKind(d.Action, implicitDelete), d.Order.Side, d.Order.Price, d.Order.Size, d.Order.ID, d.TsEvent))
	return nil
}

// ApplyDeltas applies a framed batch: all deltas share a ts_event and the
// last carries F_LAST. Records that fail apply as no-ops; the rest of the
// batch still applies and every failure is reported.
func (e *Engine) ApplyDeltas(batch []Delta) error {
	var errs []error
	for _, d := range batch {
		if err := e.ApplyDelta(d); err != nil {
			errs = append(errs, err)
		}
	}
	metrics.BatchesAppliedTotal.Inc()
	return errors.Join(errs...)
}

// OnDelta buffers streamed deltas until the F_LAST-flagged record closes
// the batch, then applies the whole batch. This is the canonical input path
// for incremental feeds.
func (e *Engine) OnDelta(d Delta) error {
	e.pending = append(e.pending, d)
	if !d.IsLast() {
		return nil
	}
	batch := e.pending
	e.pending = nil
	return e.ApplyDeltas(batch)
}

// OnDepth10 replaces the top ten levels of each side atomically.
func (e *Engine) OnDepth10(d Depth10) error {
	if err := e.checkInstrument(d.InstrumentID); err != nil {
		return e.reject(err, "depth10")
	}
	if err := e.book.ApplyDepth10(d.Bids[:], d.Asks[:], d.Sequence, d.TsEvent); err != nil {
		return e.reject(err, "depth10")
	}
	metrics.SnapshotsAppliedTotal.Inc()
	e.observeDepth()
	e.log.Debug().Uint64("sequence", d.Sequence).Msg("depth10 applied")
	e.handler(event.New(event.KindSnapshot, book.NoSide, d.Bids[0].Price, d.Bids[0].Size, 0, d.TsEvent))
	return nil
}

// OnQuote lifts a top-of-book quote into an L1 book.
func (e *Engine) OnQuote(q Quote) error {
	if err := e.checkInstrument(q.InstrumentID); err != nil {
		return e.reject(err, "quote")
	}
	if err := e.book.UpdateQuote(q.BidPrice, q.AskPrice, q.BidSize, q.AskSize, 0, q.TsEvent); err != nil {
		return e.reject(err, "quote")
	}
	metrics.QuotesAppliedTotal.Inc()
	e.observeDepth()
	e.handler(event.New(event.KindUpdated, book.NoSide, q.BidPrice, q.BidSize, 0, q.TsEvent))
	return nil
}

// OnTrade lifts a last-trade record into an L1 book.
func (e *Engine) OnTrade(t Trade) error {
	if err := e.checkInstrument(t.InstrumentID); err != nil {
		return e.reject(err, "trade")
	}
	if err := e.book.UpdateTrade(t.Price, t.Size, 0, t.TsEvent); err != nil {
		return e.reject(err, "trade")
	}
	metrics.TradesAppliedTotal.Inc()
	e.observeDepth()
	e.log.Debug().Str("trade_id", t.TradeID).Msg("trade applied")
	e.handler(event.New(event.KindUpdated, t.AggressorSide, t.Price, t.Size, 0, t.TsEvent))
	return nil
}

// CheckIntegrity runs the book's on-demand checker and counts failures.
// Only legal at a batch boundary.
func (e *Engine) CheckIntegrity() error {
	if len(e.pending) > 0 {
		e.log.Warn().Int("pending", len(e.pending)).Msg("integrity check inside an open batch")
	}
	if err := e.book.CheckIntegrity(); err != nil {
		metrics.IntegrityFailuresTotal.Inc()
		return err
	}
	return nil
}
