package date

import (
	"fmt"
	"strconv"
	"time"
)

// FiscalCalendar defines a fiscal ("tax") year by the month and day it starts
// on. A fiscal year ends the day before the next one starts.
type FiscalCalendar struct {
	StartMonth time.Month
	StartDay   int
}

// DefaultFiscalCalendar runs from March 1st to the end of February.
var DefaultFiscalCalendar = FiscalCalendar{StartMonth: time.March, StartDay: 1}

// NewFiscalCalendar returns a calendar starting on month/day.
// The start day must exist in every year, so February 29th is rejected.
func NewFiscalCalendar(month time.Month, day int) (FiscalCalendar, error) {
	c := FiscalCalendar{StartMonth: month, StartDay: day}
	if err := c.Validate(); err != nil {
		return FiscalCalendar{}, err
	}
	return c, nil
}

// Validate checks that the start month and day denote a date that exists in
// every calendar year.
func (c FiscalCalendar) Validate() error {
	if c.StartMonth < time.January || c.StartMonth > time.December {
		return fmt.Errorf("invalid fiscal year start month %d", c.StartMonth)
	}
	// 2023 is not a leap year: the last day of each month is the shortest one.
	last := New(2023, c.StartMonth+1, 0).Day()
	if c.StartDay < 1 || c.StartDay > last {
		return fmt.Errorf("invalid fiscal year start day %d for %s", c.StartDay, c.StartMonth)
	}
	return nil
}

// FiscalYear is one cycle of a FiscalCalendar.
type FiscalYear struct {
	Label string `json:"label"`
	Range
}

// start returns the start date of the fiscal year starting in year.
func (c FiscalCalendar) start(year int) Date { return New(year, c.StartMonth, c.StartDay) }

// year returns the fiscal year starting in the calendar year 'year'.
func (c FiscalCalendar) year(year int) FiscalYear {
	from := c.start(year)
	// the day before the next start, calendar normalisation takes care of leap years.
	to := c.start(year + 1).Add(-1)
	return FiscalYear{Label: label(from, to), Range: Range{From: from, To: to}}
}

func label(from, to Date) string {
	if from.Year() == to.Year() {
		return strconv.Itoa(from.Year())
	}
	return fmt.Sprintf("%d/%d", from.Year(), to.Year())
}

// Classify returns the fiscal year d belongs to.
func (c FiscalCalendar) Classify(d Date) FiscalYear {
	y := d.Year()
	if d.Before(c.start(y)) {
		y--
	}
	return c.year(y)
}

// RangeOf returns every fiscal year between the first and the last of the
// sorted dates, contiguous and including years without any date in them.
func (c FiscalCalendar) RangeOf(sorted []Date) []FiscalYear {
	if len(sorted) == 0 {
		return nil
	}
	first := c.Classify(sorted[0])
	last := c.Classify(sorted[len(sorted)-1])
	var years []FiscalYear
	for fy := first; !fy.From.After(last.From); fy = c.Next(fy) {
		years = append(years, fy)
	}
	return years
}

// Next returns the fiscal year following fy.
func (c FiscalCalendar) Next(fy FiscalYear) FiscalYear { return c.Classify(fy.To.Add(1)) }

func (fy FiscalYear) String() string { return fy.Label }
