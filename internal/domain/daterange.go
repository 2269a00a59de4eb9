package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("domain: date must be formatted yyyy-mm-dd")
	ErrInvalidRange = errors.New("domain: start date must not be after end date")
)

// Date is a calendar day. The time portion is always UTC midnight; on the
// wire it is an ISO-8601 yyyy-mm-dd string.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a yyyy-mm-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) String() string     { return d.t.Format(dateLayout) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) AddDays(n int) Date { return DateOf(d.t.AddDate(0, 0, n)) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
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

// DateRange is an inclusive closed interval of bookable days: both
// StartDate and EndDate belong to the range.
type DateRange struct {
	StartDate Date `json:"startDate"`
	EndDate   Date `json:"endDate"`
}

// NewDateRange validates start <= end.
func NewDateRange(start, end Date) (DateRange, error) {
	dr := DateRange{StartDate: start, EndDate: end}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.StartDate.IsZero() || dr.EndDate.IsZero() {
		return ErrInvalidRange
	}
	if dr.StartDate.After(dr.EndDate) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps is inclusive on both ends: a booking ending on day D conflicts
// with one starting on day D.
func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.StartDate.After(other.EndDate) && !other.StartDate.After(dr.EndDate)
}

// Days counts the whole days in the range, both endpoints included. A
// range spanning a single date counts as 1 day.
func (dr DateRange) Days() int {
	return int(dr.EndDate.t.Sub(dr.StartDate.t).Hours()/24) + 1
}

func (dr DateRange) ContainsDay(d Date) bool {
	return !d.Before(dr.StartDate) && !d.After(dr.EndDate)
}

func (dr DateRange) String() string {
	return dr.StartDate.String() + " - " + dr.EndDate.String()
}
