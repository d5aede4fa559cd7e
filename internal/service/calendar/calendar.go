package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkingDays counts the Monday to Friday days of a month, minus company
// holidays that land on a weekday in that month. Duplicate holiday entries
// count once. The result is never negative.
func WorkingDays(year int, month time.Month, holidays []time.Time) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	weekdays := 0
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			weekdays++
		}
	}

	seen := make(map[string]struct{}, len(holidays))
	holidayCount := 0
	for _, h := range holidays {
		if h.Year() != year || h.Month() != month || !isWeekday(h) {
			continue
		}
		key := h.Format(time.DateOnly)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		holidayCount++
	}

	if holidayCount > weekdays {
		return 0
	}
	return weekdays - holidayCount
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// MonthRatio returns present/total as an attendance ratio. A month with no
// working days contributes nothing. Present days beyond the total are
// clamped so the ratio never exceeds 1.
func MonthRatio(present, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	if present < 0 {
		present = 0
	}
	if present > total {
		present = total
	}
	return decimal.NewFromInt(int64(present)).Div(decimal.NewFromInt(int64(total)))
}
