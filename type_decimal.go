package networth

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal is an immutable arbitrary precision number used for every monetary
// computation.
//
// Unlike decimal.Decimal it has a non-finite state, reached from NaN or
// infinite inputs and from a division by zero. Non-finite values propagate
// through arithmetic and never panic. The zero value is a finite 0.
type Decimal struct {
	value     decimal.Decimal
	nonFinite bool
}

var nonFinite = Decimal{nonFinite: true}

// D is a convenient factory for Decimal.
//
// Strings that cannot be parsed, "NaN" and "Inf" produce a non-finite Decimal.
func D[T string | float64 | int | int64 | decimal.Decimal](value T) Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Decimal{value: v}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nonFinite
		}
		return Decimal{value: decimal.NewFromFloat(v)}
	case int:
		return Decimal{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Decimal{value: decimal.NewFromInt(v)}
	case string:
		return ParseDecimal(v)
	default:
		panic("unsupported type")
	}
}

// ParseDecimal parses s. It never fails: invalid input yields a non-finite Decimal.
func ParseDecimal(s string) Decimal {
	s = strings.TrimSpace(s)
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nonFinite
	}
	return Decimal{value: v}
}

// Zero returns a finite zero.
func Zero() Decimal { return Decimal{} }

func (d Decimal) IsFinite() bool   { return !d.nonFinite }
func (d Decimal) IsZero() bool     { return d.IsFinite() && d.value.IsZero() }
func (d Decimal) IsPositive() bool { return d.IsFinite() && d.value.IsPositive() }
func (d Decimal) IsNegative() bool { return d.IsFinite() && d.value.IsNegative() }

func (d Decimal) Add(e Decimal) Decimal { return d.apply(e, decimal.Decimal.Add) }
func (d Decimal) Sub(e Decimal) Decimal { return d.apply(e, decimal.Decimal.Sub) }
func (d Decimal) Mul(e Decimal) Decimal { return d.apply(e, decimal.Decimal.Mul) }

// Div returns d/e, non-finite when e is zero.
func (d Decimal) Div(e Decimal) Decimal {
	if e.IsZero() {
		return nonFinite
	}
	return d.apply(e, decimal.Decimal.Div)
}

func (d Decimal) apply(e Decimal, op func(decimal.Decimal, decimal.Decimal) decimal.Decimal) Decimal {
	if d.nonFinite || e.nonFinite {
		return nonFinite
	}
	return Decimal{value: op(d.value, e.value)}
}

func (d Decimal) Neg() Decimal {
	if d.nonFinite {
		return d
	}
	return Decimal{value: d.value.Neg()}
}

func (d Decimal) Abs() Decimal {
	if d.nonFinite {
		return d
	}
	return Decimal{value: d.value.Abs()}
}

// Round rounds to places fractional digits, half to even.
func (d Decimal) Round(places int) Decimal {
	if d.nonFinite {
		return d
	}
	return Decimal{value: d.value.RoundBank(int32(places))}
}

// Cmp compares d and e. Non-finite values compare as zero.
func (d Decimal) Cmp(e Decimal) int { return d.finite().Cmp(e.finite()) }

// Comparisons are false as soon as one side is non-finite.

func (d Decimal) Equal(e Decimal) bool {
	if d.nonFinite || e.nonFinite {
		return d.nonFinite == e.nonFinite
	}
	return d.value.Equal(e.value)
}
func (d Decimal) LessThan(e Decimal) bool { return d.both(e) && d.value.LessThan(e.value) }
func (d Decimal) LessThanOrEqual(e Decimal) bool {
	return d.both(e) && d.value.LessThanOrEqual(e.value)
}
func (d Decimal) GreaterThan(e Decimal) bool { return d.both(e) && d.value.GreaterThan(e.value) }
func (d Decimal) GreaterThanOrEqual(e Decimal) bool {
	return d.both(e) && d.value.GreaterThanOrEqual(e.value)
}

func (d Decimal) both(e Decimal) bool { return !d.nonFinite && !e.nonFinite }

// finite returns the underlying value, zero when non-finite.
func (d Decimal) finite() decimal.Decimal {
	if d.nonFinite {
		return decimal.Zero
	}
	return d.value
}

// OrZero returns d, or zero when d is non-finite.
func (d Decimal) OrZero() Decimal { return Decimal{value: d.finite()} }

// Decimal returns the underlying decimal.Decimal, zero when non-finite.
func (d Decimal) Decimal() decimal.Decimal { return d.finite() }

// Float64 is meant for display only.
func (d Decimal) Float64() float64 {
	if d.nonFinite {
		return math.NaN()
	}
	return d.value.InexactFloat64()
}

func (d Decimal) String() string {
	if d.nonFinite {
		return "NaN"
	}
	return d.value.String()
}

// StringFixed formats d with exactly places fractional digits.
func (d Decimal) StringFixed(places int) string {
	if d.nonFinite {
		return "NaN"
	}
	return d.value.StringFixedBank(int32(places))
}

// Max returns the greatest of the finite values, zero if there are none.
func Max(values ...Decimal) Decimal {
	var m decimal.Decimal
	first := true
	for _, v := range values {
		if v.nonFinite {
			continue
		}
		if first || v.value.GreaterThan(m) {
			m, first = v.value, false
		}
	}
	return Decimal{value: m}
}

// Sum adds up the finite values, ignoring the others.
func Sum(values ...Decimal) Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.finite())
	}
	return Decimal{value: total}
}

// MarshalJSON writes a JSON number, or null for a non-finite value.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if d.nonFinite {
		return []byte("null"), nil
	}
	return []byte(d.value.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings. null, "" and values
// that do not parse decode to zero.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			s = u
		}
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null":
		*d = Zero()
		return nil
	case "nan", "inf", "+inf", "-inf", "infinity", "-infinity":
		*d = nonFinite
		return nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		*d = Zero()
		return nil
	}
	*d = Decimal{value: v}
	return nil
}
