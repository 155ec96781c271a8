// services/weekkey.go - ISO week bucketing for streak counting
package services

import (
	"fmt"
	"time"
)

// WeekKey buckets a date into its Monday-to-Sunday ISO week and returns a
// "{year}-{week}" key, e.g. "2026-01". All dates in one week share a key and
// adjacent weeks never collide. Weeks start Monday; week 1 is the week holding
// the year's first Thursday, so the year component is the ISO year of the
// week's Thursday, not necessarily the calendar year of the input date.
func WeekKey(t time.Time) string {
	// Normalize to UTC midnight of the calendar day so time-of-day and DST
	// shifts can't move a date across a week boundary.
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	// Shift to the Thursday of this date's week. Weekday is 0=Sunday.
	offset := 3 - (int(day.Weekday())+6)%7
	thursday := day.AddDate(0, 0, offset)

	// The ISO week number is the Thursday's week index within its own year:
	// year-days 1-7 are week 1, 8-14 week 2, and so on.
	week := (thursday.YearDay() + 6) / 7

	return fmt.Sprintf("%d-%02d", thursday.Year(), week)
}
