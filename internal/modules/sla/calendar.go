package sla

import (
	"fmt"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
)

type civilDate struct {
	y int
	m time.Month
	d int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

func (c civilDate) noon() time.Time {
	return time.Date(c.y, c.m, c.d, 12, 0, 0, 0, time.UTC)
}

// Holidays is a set of civil dates excluded from business-day counts.
type Holidays map[civilDate]struct{}

func NewHolidays(dates ...time.Time) Holidays {
	h := make(Holidays, len(dates))
	for _, d := range dates {
		h[dateOf(d)] = struct{}{}
	}
	return h
}

func (h Holidays) Contains(t time.Time) bool {
	_, ok := h[dateOf(t)]
	return ok
}

// ElapsedBusinessDays counts the days from start through asOf, both
// inclusive, that fall Monday to Friday and are not holidays. Dates are
// compared as civil dates in each value's own location. A nil start, or a
// start after asOf, yields 0.
func ElapsedBusinessDays(start *time.Time, asOf time.Time, holidays Holidays) int {
	if start == nil {
		return 0
	}
	from := dateOf(*start).noon()
	to := dateOf(asOf).noon()
	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		if holidays.Contains(day) {
			continue
		}
		count++
	}
	return count
}

// Calendar loads the configured non-business days.
type Calendar struct {
	days repos.NonBusinessDayRepo
}

func NewCalendar(days repos.NonBusinessDayRepo) *Calendar {
	return &Calendar{days: days}
}

func (c *Calendar) LoadHolidays(dbc dbctx.Context) (Holidays, error) {
	rows, err := c.days.ListActive(dbc)
	if err != nil {
		return nil, fmt.Errorf("load non business days: %w", err)
	}
	dates := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	return NewHolidays(dates...), nil
}
