package user

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for birth dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component. It marshals as
// "2006-01-02" and is stored in a SQL DATE column.
type Date struct {
	t time.Time
}

// NewDate creates a date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current calendar date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseDate parses a date in the 2006-01-02 layout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return DateOf(t), nil
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// AddDate returns the date shifted by the given years, months and days.
func (d Date) AddDate(years, months, days int) Date {
	return DateOf(d.t.AddDate(years, months, days))
}

// YearsUntil returns the number of whole years elapsed from d to ref.
// The count increments only once the anniversary of d has been reached.
func (d Date) YearsUntil(ref Date) int {
	years := ref.t.Year() - d.t.Year()
	if ref.t.Before(d.t.AddDate(years, 0, 0)) {
		years--
	}
	return years
}

func (d Date) String() string { return d.t.Format(DateLayout) }

// MarshalJSON encodes the date as a quoted 2006-01-02 string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted 2006-01-02 string. JSON null leaves the
// date untouched so pointer fields keep their absent semantics.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	parsed, err := ParseDate(strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
