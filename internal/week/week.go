// Package week holds the date arithmetic for the 7-day view: which dates
// belong to the week around an anchor date, and how the week is titled.
// Weeks start on Monday.
package week

import (
	"fmt"
	"time"

	"weekplanner/internal/models/task"
)

// Start returns the Monday of the anchor's week, truncated to a date.
func Start(anchor time.Time) time.Time {
	d := task.DateOnly(anchor)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week, it does not open the next one
	}
	return d.AddDate(0, 0, 1-wd)
}

// Dates returns the seven dates of the anchor's week, Monday first.
func Dates(anchor time.Time) [7]time.Time {
	var days [7]time.Time
	start := Start(anchor)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func Next(anchor time.Time) time.Time {
	return task.DateOnly(anchor).AddDate(0, 0, 7)
}

func Previous(anchor time.Time) time.Time {
	return task.DateOnly(anchor).AddDate(0, 0, -7)
}

// Title renders the header for the anchor's week: "June 2024" when the
// week sits inside one month, "Jun 2024 - July 2024" when it spans two.
func Title(anchor time.Time) string {
	start := Start(anchor)
	end := start.AddDate(0, 0, 6)

	if start.Month() == end.Month() {
		return start.Format("January 2006")
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2006"), end.Format("January 2006"))
}
