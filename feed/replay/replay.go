// Package replay rebuilds a book by streaming a recorded delta feed into an
// engine. The book itself persists nothing; reconstruction is always a
// deterministic replay of the input stream, so feeding the same file twice
// produces identical book state.
//
// Record lines are pipe-delimited:
//
//	action|side|price|size|order_id|sequence|ts_event[|flags]
//
// Blank lines and lines starting with '#' are skipped. A missing flags
// field defaults to F_LAST, making each delta its own batch.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lob/book"
	"lob/feed"
	"lob/fixed"
)

// Precisions carries the fixed-point precisions of the recorded instrument.
type Precisions struct {
	Price uint8
	Size  uint8
}

func parseAction(s string) (book.Action, error) {
	switch s {
	case "add":
		return book.ActionAdd, nil
	case "update":
		return book.ActionUpdate, nil
	case "delete":
		return book.ActionDelete, nil
	case "clear":
		return book.ActionClear, nil
	default:
		return 0, fmt.Errorf("replay: unknown action %q", s)
	}
}

func parseSide(s string) (book.Side, error) {
	switch s {
	case "buy":
		return book.Buy, nil
	case "sell":
		return book.Sell, nil
	case "":
		return book.NoSide, nil
	default:
		return book.NoSide, fmt.Errorf("replay: unknown side %q", s)
	}
}

// ParseDelta decodes one record line.
func ParseDelta(line string, prec Precisions) (feed.Delta, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 7 && len(fields) != 8 {
		return feed.Delta{}, fmt.Errorf("replay: record has %d fields: %q", len(fields), line)
	}
	action, err := parseAction(fields[0])
	if err != nil {
		return feed.Delta{}, err
	}
	side, err := parseSide(fields[1])
	if err != nil {
		return feed.Delta{}, err
	}

	var d feed.Delta
	d.Action = action
	d.Order.Side = side
	d.Flags = feed.FlagLast

	if action != book.ActionClear {
		price, err := fixed.PriceFromString(fields[2], prec.Price)
		if err != nil {
			return feed.Delta{}, err
		}
		size, err := fixed.QtyFromString(fields[3], prec.Size)
		if err != nil {
			return feed.Delta{}, err
		}
		id, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return feed.Delta{}, fmt.Errorf("replay: parse order id %q: %w", fields[4], err)
		}
		d.Order.Price = price
		d.Order.Size = size
		d.Order.ID = id
	}

	seq, err := strconv.ParseUint(fields[5], 10, 64)
	if err != nil {
		return feed.Delta{}, fmt.Errorf("replay: parse sequence %q: %w", fields[5], err)
	}
	ts, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return feed.Delta{}, fmt.Errorf("replay: parse ts_event %q: %w", fields[6], err)
	}
	d.Sequence = seq
	d.TsEvent = ts

	if len(fields) == 8 {
		flags, err := strconv.ParseUint(fields[7], 10, 8)
		if err != nil {
			return feed.Delta{}, fmt.Errorf("replay: parse flags %q: %w", fields[7], err)
		}
		d.Flags = uint8(flags)
	}
	return d, nil
}

// Read decodes every record in the stream.
func Read(r io.Reader, prec Precisions) ([]feed.Delta, error) {
	var out []feed.Delta
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d, err := ParseDelta(line, prec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		out = append(out, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay: read: %w", err)
	}
	return out, nil
}

// Stream feeds the recorded deltas through the engine's batch framing and
// returns the number of records delivered. Rejected records surface as an
// error after the stream is exhausted; replay never stops early, because a
// rejected record is a no-op on book state.
func Stream(r io.Reader, e *feed.Engine, prec Precisions) (int, error) {
	deltas, err := Read(r, prec)
	if err != nil {
		return 0, err
	}
	var firstErr error
	for _, d := range deltas {
		if err := e.OnDelta(d); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return len(deltas), firstErr
}
