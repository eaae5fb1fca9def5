package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kasabook/kasabook/internal/utils"
)

// Type selects how a period token is encoded.
type Type string

const (
	Monthly Type = "monthly"
	Annual  Type = "annual"
	Custom  Type = "custom"
)

// ErrInvalidPeriod is returned when a period token cannot be parsed for its
// declared type.
var ErrInvalidPeriod = errors.New("invalid period")

const (
	monthToken  = "2006-01"
	dayToken    = "2006-01-02"
	customDelim = "_"
)

// Range is a resolved reporting window. The interval is half-open:
// a date belongs to the range when Start <= date < EndExclusive, so one
// filter predicate works for every period type. Months lists the "YYYY-MM"
// tokens the window touches, in order.
type Range struct {
	Start        time.Time
	EndExclusive time.Time
	Months       []string
}

// Contains reports whether the given date falls inside the range.
func (r Range) Contains(date time.Time) bool {
	return !date.Before(r.Start) && date.Before(r.EndExclusive)
}

// Resolve maps a period token to its concrete date range.
//   - monthly: "YYYY-MM", covers that calendar month
//   - annual: "YYYY", covers the calendar year
//   - custom: "YYYY-MM-DD_YYYY-MM-DD", covers both endpoint days inclusive
func Resolve(periodType Type, period string) (Range, error) {
	switch periodType {
	case Monthly:
		start, err := time.Parse(monthToken, period)
		if err != nil {
			return Range{}, fmt.Errorf("%w: monthly period %q: %v", ErrInvalidPeriod, period, err)
		}
		return Range{
			Start:        start,
			EndExclusive: start.AddDate(0, 1, 0),
			Months:       []string{period},
		}, nil

	case Annual:
		start, err := time.Parse("2006", period)
		if err != nil {
			return Range{}, fmt.Errorf("%w: annual period %q: %v", ErrInvalidPeriod, period, err)
		}
		months := make([]string, 0, 12)
		for m := 0; m < 12; m++ {
			months = append(months, start.AddDate(0, m, 0).Format(monthToken))
		}
		return Range{
			Start:        start,
			EndExclusive: start.AddDate(1, 0, 0),
			Months:       months,
		}, nil

	case Custom:
		parts := strings.Split(period, customDelim)
		if len(parts) != 2 {
			return Range{}, fmt.Errorf("%w: custom period %q must be start_end", ErrInvalidPeriod, period)
		}
		start, err := time.Parse(dayToken, parts[0])
		if err != nil {
			return Range{}, fmt.Errorf("%w: custom start %q: %v", ErrInvalidPeriod, parts[0], err)
		}
		end, err := time.Parse(dayToken, parts[1])
		if err != nil {
			return Range{}, fmt.Errorf("%w: custom end %q: %v", ErrInvalidPeriod, parts[1], err)
		}
		if end.Before(start) {
			return Range{}, fmt.Errorf("%w: custom period %q ends before it starts", ErrInvalidPeriod, period)
		}
		return Range{
			Start:        start,
			EndExclusive: end.AddDate(0, 0, 1),
			Months:       monthsBetween(start, end),
		}, nil

	default:
		return Range{}, fmt.Errorf("%w: unknown period type %q", ErrInvalidPeriod, periodType)
	}
}

// monthsBetween lists every month boundary from the start month through the
// end month inclusive.
func monthsBetween(start, end time.Time) []string {
	var months []string
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		months = append(months, cursor.Format(monthToken))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

// Current returns today's period token in the encoding of the given type.
// For custom, the default window is the current calendar month.
func Current(periodType Type, clock utils.Clock) string {
	today := utils.Today(clock)
	switch periodType {
	case Annual:
		return today.Format("2006")
	case Custom:
		startOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		endOfMonth := startOfMonth.AddDate(0, 1, -1)
		return startOfMonth.Format(dayToken) + customDelim + endOfMonth.Format(dayToken)
	default:
		return today.Format(monthToken)
	}
}

// Label renders a human-readable caption for a period token. Malformed tokens
// are echoed back unchanged; formatting is presentation concern only.
func Label(periodType Type, period string) string {
	switch periodType {
	case Monthly:
		t, err := time.Parse(monthToken, period)
		if err != nil {
			return period
		}
		return t.Format("January 2006")
	case Custom:
		parts := strings.Split(period, customDelim)
		if len(parts) != 2 {
			return period
		}
		return parts[0] + " to " + parts[1]
	default:
		return period
	}
}
