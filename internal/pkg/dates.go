package pkg

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted on input. Storage/display format is DD-MMM-YYYY
// (e.g. 23-Apr-2021); ISO is accepted for API convenience.
const (
	LayoutStorage = "02-Jan-2006"
	LayoutISO     = "2006-01-02"
)

// Date is a calendar date (no time-of-day, no timezone). All ordering
// and arithmetic operate on the calendar date, never on its string form.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses DD-MMM-YYYY or YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range []string{LayoutStorage, LayoutISO} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unparseable date %q (want DD-MMM-YYYY or YYYY-MM-DD)", s)
}

// MustDate is a test/seed helper that panics on bad input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool        { return d.t.IsZero() }
func (d Date) Time() time.Time     { return d.t }
func (d Date) Year() int           { return d.t.Year() }
func (d Date) Month() time.Month   { return d.t.Month() }
func (d Date) Day() int            { return d.t.Day() }
func (d Date) Before(o Date) bool  { return d.t.Before(o.t) }
func (d Date) After(o Date) bool   { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool   { return d.t.Equal(o.t) }
func (d Date) AddDays(n int) Date  { return DateOf(d.t.AddDate(0, 0, n)) }
func (d Date) String() string      { return d.t.Format(LayoutStorage) }

// DaysBetween returns the number of whole days from d to o (o - d).
func (d Date) DaysBetween(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// DaysInMonth returns the length of d's month.
func (d Date) DaysInMonth() int {
	first := NewDate(d.Year(), d.Month(), 1)
	return first.t.AddDate(0, 1, -1).Day()
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ===============================
// QUARTERS
// ===============================

// Quarter identifies a calendar quarter (Q1..Q4 of a year).
type Quarter struct {
	Q    int
	Year int
}

// ParseQuarter parses "Q1".."Q4".
func ParseQuarter(s string, year int) (Quarter, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Q1":
		return Quarter{1, year}, nil
	case "Q2":
		return Quarter{2, year}, nil
	case "Q3":
		return Quarter{3, year}, nil
	case "Q4":
		return Quarter{4, year}, nil
	}
	return Quarter{}, fmt.Errorf("invalid quarter %q", s)
}

// QuarterOf returns the quarter containing the given date.
func QuarterOf(d Date) Quarter {
	return Quarter{Q: (int(d.Month())-1)/3 + 1, Year: d.Year()}
}

// Next returns the following quarter.
func (q Quarter) Next() Quarter {
	if q.Q == 4 {
		return Quarter{1, q.Year + 1}
	}
	return Quarter{q.Q + 1, q.Year}
}

// Start returns the first day of the quarter.
func (q Quarter) Start() Date {
	return NewDate(q.Year, time.Month((q.Q-1)*3+1), 1)
}

// End returns the last day of the quarter.
func (q Quarter) End() Date {
	return DateOf(q.Next().Start().t.AddDate(0, 0, -1))
}

// TotalDays counts the days in the quarter, both endpoints included.
func (q Quarter) TotalDays() int {
	return q.Start().DaysBetween(q.End()) + 1
}

func (q Quarter) String() string {
	return fmt.Sprintf("Q%d %d", q.Q, q.Year)
}
