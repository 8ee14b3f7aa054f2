// Package fixed provides the fixed-point price and quantity primitives used
// by the order book. Raw values are scaled to 1e9 so that every precision up
// to nine decimal digits is exact; all comparison and arithmetic inside the
// book happens on raw integers. Floats only exist at the display boundary.
package fixed

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Scalar is the canonical raw scale: one unit equals 1e9 raw.
const Scalar int64 = 1_000_000_000

// MaxPrecision is the largest number of decimal digits representable
// without loss at the canonical scale.
const MaxPrecision uint8 = 9

var pow10 = [10]int64{
	1,
	10,
	100,
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
}

func checkPrecision(precision uint8) {
	if precision > MaxPrecision {
		panic(fmt.Sprintf("fixed: precision %d exceeds maximum %d", precision, MaxPrecision))
	}
}

// Price is a signed fixed-point price. The zero value is a zero price with
// precision zero.
type Price struct {
	raw       int64
	precision uint8
}

// PriceFromRaw wraps an already-scaled raw value.
func PriceFromRaw(raw int64, precision uint8) Price {
	checkPrecision(precision)
	return Price{raw: raw, precision: precision}
}

// PriceFromFloat rounds v to the nearest unit at the declared precision and
// scales it to raw.
func PriceFromFloat(v float64, precision uint8) Price {
	checkPrecision(precision)
	d := decimal.NewFromFloat(v).Round(int32(precision))
	return Price{raw: d.Shift(int32(MaxPrecision)).IntPart(), precision: precision}
}

// PriceFromString parses a decimal string such as "100.50".
func PriceFromString(s string, precision uint8) (Price, error) {
	checkPrecision(precision)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("fixed: parse price %q: %w", s, err)
	}
	d = d.Round(int32(precision))
	return Price{raw: d.Shift(int32(MaxPrecision)).IntPart(), precision: precision}, nil
}

func (p Price) Raw() int64        { return p.raw }
func (p Price) Precision() uint8  { return p.precision }
func (p Price) IsZero() bool      { return p.raw == 0 }
func (p Price) Eq(o Price) bool   { return p.raw == o.raw }
func (p Price) Lt(o Price) bool   { return p.raw < o.raw }
func (p Price) Gt(o Price) bool   { return p.raw > o.raw }
func (p Price) Lte(o Price) bool  { return p.raw <= o.raw }
func (p Price) Gte(o Price) bool  { return p.raw >= o.raw }

// Float64 is a lossy exit for analytics output and display.
func (p Price) Float64() float64 {
	return float64(p.raw) / float64(Scalar)
}

// Increment returns the smallest representable tick at this precision.
func (p Price) Increment() Price {
	return Price{raw: pow10[MaxPrecision-p.precision], precision: p.precision}
}

func (p Price) String() string {
	return strconv.FormatFloat(p.Float64(), 'f', int(p.precision), 64)
}

// Qty is an unsigned fixed-point quantity. Zero is a legal value; updates
// carrying a zero quantity mean deletion.
type Qty struct {
	raw       uint64
	precision uint8
}

// QtyFromRaw wraps an already-scaled raw value.
func QtyFromRaw(raw uint64, precision uint8) Qty {
	checkPrecision(precision)
	return Qty{raw: raw, precision: precision}
}

// QtyFromFloat rounds v to the nearest unit at the declared precision and
// scales it to raw. Negative inputs are a programmer error.
func QtyFromFloat(v float64, precision uint8) Qty {
	checkPrecision(precision)
	if v < 0 {
		panic(fmt.Sprintf("fixed: negative quantity %f", v))
	}
	d := decimal.NewFromFloat(v).Round(int32(precision))
	return Qty{raw: uint64(d.Shift(int32(MaxPrecision)).IntPart()), precision: precision}
}

// QtyFromString parses a decimal string such as "25".
func QtyFromString(s string, precision uint8) (Qty, error) {
	checkPrecision(precision)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Qty{}, fmt.Errorf("fixed: parse qty %q: %w", s, err)
	}
	if d.IsNegative() {
		return Qty{}, fmt.Errorf("fixed: parse qty %q: negative", s)
	}
	d = d.Round(int32(precision))
	return Qty{raw: uint64(d.Shift(int32(MaxPrecision)).IntPart()), precision: precision}, nil
}

func (q Qty) Raw() uint64       { return q.raw }
func (q Qty) Precision() uint8  { return q.precision }
func (q Qty) IsZero() bool      { return q.raw == 0 }
func (q Qty) Eq(o Qty) bool     { return q.raw == o.raw }
func (q Qty) Lt(o Qty) bool     { return q.raw < o.raw }
func (q Qty) Gt(o Qty) bool     { return q.raw > o.raw }

// Add returns q+o at q's precision.
func (q Qty) Add(o Qty) Qty {
	return Qty{raw: q.raw + o.raw, precision: q.precision}
}

// Sub returns q-o at q's precision; underflow is a programmer error.
func (q Qty) Sub(o Qty) Qty {
	if o.raw > q.raw {
		panic(fmt.Sprintf("fixed: qty underflow %d - %d", q.raw, o.raw))
	}
	return Qty{raw: q.raw - o.raw, precision: q.precision}
}

// Float64 is a lossy exit for analytics output and display.
func (q Qty) Float64() float64 {
	return float64(q.raw) / float64(Scalar)
}

func (q Qty) String() string {
	return strconv.FormatFloat(q.Float64(), 'f', int(q.precision), 64)
}
