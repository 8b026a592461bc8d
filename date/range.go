package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct {
	From Date `json:"start"`
	To   Date `json:"end"`
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// Days returns the number of days in the range.
func (r Range) Days() int { return DaysBetween(r.From, r.To) + 1 }

func (r Range) String() string { return fmt.Sprintf("%s_%s", r.From, r.To) }
