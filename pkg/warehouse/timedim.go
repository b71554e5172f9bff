package warehouse

import (
	"sort"
	"time"

	"github.com/sousselabs/storelake/pkg/source"
)

// BuildTimeDim derives dim_time from the creation timestamps of all orders:
// one row per distinct calendar date, ids assigned in ascending date order so
// time_id is monotonic with full_date.
func BuildTimeDim(orders []source.OrderRecord) []TimeRow {
	seen := make(map[time.Time]struct{}, len(orders))
	dates := make([]time.Time, 0, len(orders))
	for _, o := range orders {
		d := dateOnly(o.CreatedAt)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]TimeRow, 0, len(dates))
	for i, d := range dates {
		dow := mondayIndexedWeekday(d)
		_, week := d.ISOWeek()
		rows = append(rows, TimeRow{
			TimeID:     i + 1,
			FullDate:   d,
			Day:        d.Day(),
			Month:      int(d.Month()),
			MonthName:  d.Month().String(),
			Quarter:    (int(d.Month())-1)/3 + 1,
			Year:       d.Year(),
			DayOfWeek:  dow,
			DayName:    d.Weekday().String(),
			IsWeekend:  dow >= 5,
			WeekOfYear: week,
		})
	}
	return rows
}

// mondayIndexedWeekday maps time.Weekday (Sunday=0) onto the warehouse
// convention Monday=0..Sunday=6, so the weekend flag covers indexes 5 and 6.
func mondayIndexedWeekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
