package date

import (
	"fmt"
	"time"
)

// Range is an inclusive range of days. A zero From or To leaves that side open.
type Range struct{ From, To Date }

// NewRange returns the period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains reports whether day is inside the range, boundaries included.
func (r Range) Contains(day Date) bool {
	if !r.From.IsZero() && day.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && day.After(r.To) {
		return false
	}
	return true
}

// ContainsTime reports whether t falls between the start of From and the
// end of To, both taken in t's location.
func (r Range) ContainsTime(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From.Start(t.Location())) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To.End(t.Location())) {
		return false
	}
	return true
}

// IsZero reports whether the range is open on both sides.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

func (r Range) String() string {
	switch {
	case r.IsZero():
		return "all time"
	case r.From.IsZero():
		return fmt.Sprintf("until %s", r.To)
	case r.To.IsZero():
		return fmt.Sprintf("since %s", r.From)
	case r.From == r.To:
		return r.From.String()
	default:
		return fmt.Sprintf("%s to %s", r.From, r.To)
	}
}
