// Package money implements a signed fixed-point decimal with exactly four
// fractional digits, the unit of account for every balance and transaction
// amount in the engine.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every Money value is rounded to.
const Scale = 4

// Money is a signed fixed-point decimal with exactly four fractional
// digits. The zero value is zero. Values are always pre-rounded at
// construction time; arithmetic between two already-rounded Money values
// never needs to round again, since addition and subtraction of decimals
// sharing a scale cannot grow the scale.
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{}

// FromInt builds a Money from a whole number of units, e.g. FromInt(100)
// is "100.0000".
func FromInt(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

// FromDecimal rounds an arbitrary-precision decimal down to four fractional
// digits using half-to-zero rounding (round the midpoint toward zero,
// rather than delegating to decimal.Decimal's own rounding methods). This is the single
// boundary where precision loss may occur; every other operation in this
// package preserves it exactly.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: roundHalfToZero(d, Scale)}
}

// Parse reads a decimal string such as "123.45" or "-7" and rounds it to
// four fractional digits per FromDecimal. It rejects malformed input.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MustParse is Parse but panics on error; intended for tests and literals.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// roundHalfToZero rounds d to the given number of fractional digits. Ties
// (an exact .5 at the dropped digit) round toward zero; everything else
// rounds to the nearest representable value. This is spelled out
// explicitly rather than delegated to decimal.Decimal.Round, whose
// tie-breaking rule is an implementation detail we don't want to depend
// on.
func roundHalfToZero(d decimal.Decimal, places int32) decimal.Decimal {
	scaled := d.Shift(places)
	truncated := scaled.Truncate(0)
	remainder := scaled.Sub(truncated).Abs()

	half := decimal.New(5, -1)
	switch remainder.Cmp(half) {
	case 1: // more than halfway: round away from zero
		if scaled.IsNegative() {
			truncated = truncated.Sub(decimal.NewFromInt(1))
		} else {
			truncated = truncated.Add(decimal.NewFromInt(1))
		}
	case 0, -1: // exact tie or less than halfway: stay at the truncated value
	}
	return truncated.Shift(-places)
}

// Add returns a + b.
func Add(a, b Money) Money {
	return Money{d: a.d.Add(b.d)}
}

// Sub returns a - b.
func Sub(a, b Money) Money {
	return Money{d: a.d.Sub(b.d)}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Add(m, other)
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Sub(m, other)
}

// Cmp returns -1, 0 or +1 as m is less than, equal to, or greater than
// other.
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.Cmp(other) < 0
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.Cmp(other) > 0
}

// Equal reports whether m == other.
func (m Money) Equal(other Money) bool {
	return m.Cmp(other) == 0
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsZero reports whether m == 0.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// String renders m with exactly four fractional digits, e.g. "100.0000".
func (m Money) String() string {
	return m.d.StringFixed(Scale)
}

// MarshalText implements encoding.TextMarshaler so Money serializes to its
// canonical four-digit string form in JSON, CSV and similar encodings.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
