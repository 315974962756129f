// Package date provides a calendar day value type.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // permissive, allows single-digit month/day.

// DateFormat is the ISO-8601 format used to write dates.
const DateFormat = "2006-01-02"

const Day = 24 * time.Hour

// Date represents a date with day-level granularity. The zero value is not a valid day.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a canonical time.Time for that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current local date.
func Today() Date { return New(time.Now().Date()) }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// DaysSince returns the number of days from x to d, negative if d is before x.
func (d Date) DaysSince(x Date) int {
	return int(d.time().Sub(x.time()).Round(Day) / Day)
}

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Parse parses a Date. It accepts "2025-7-1" like dates, and full RFC 3339
// timestamps of which only the calendar day is kept.
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if on, err := time.Parse(readDateFormat, str); err == nil {
		return New(on.Date()), nil
	}
	if on, err := time.Parse(time.RFC3339Nano, str); err == nil {
		return New(on.Date()), nil
	}
	if on, err := time.Parse("2006-01-02T15:04:05", str); err == nil {
		return New(on.Date()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, DateFormat)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*d = Date{}
		return nil
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.String())
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
