package session

import "time"

// DayUsage is one weekday's running session count.
type DayUsage struct {
	Weekday         string `json:"weekday"`
	CumulativeTotal int    `json:"cumulative_total"`
}

// DailyUsage compares the current week's activity against the previous one:
// per weekday (Monday-first), the cumulative number of sessions touched so
// far that week.
type DailyUsage struct {
	CurrentWeek  []DayUsage `json:"current_week"`
	PreviousWeek []DayUsage `json:"previous_week"`
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ComputeDailyUsage buckets sessions by their log's last-modified day.
// Sessions outside the two-week window are ignored.
func ComputeDailyUsage(sessions []LogFile, now time.Time) DailyUsage {
	currentStart := startOfWeek(now)
	previousStart := currentStart.AddDate(0, 0, -7)

	var current, previous [7]int
	for _, s := range sessions {
		at := time.Unix(0, s.ModTime).In(now.Location())
		switch {
		case !at.Before(currentStart):
			if day := weekdayIndex(at); at.Before(currentStart.AddDate(0, 0, 7)) {
				current[day]++
			}
		case !at.Before(previousStart):
			previous[weekdayIndex(at)]++
		}
	}

	return DailyUsage{
		CurrentWeek:  cumulative(current),
		PreviousWeek: cumulative(previous),
	}
}

func cumulative(counts [7]int) []DayUsage {
	days := make([]DayUsage, 7)
	running := 0
	for i, count := range counts {
		running += count
		days[i] = DayUsage{Weekday: weekdayLabels[i], CumulativeTotal: running}
	}
	return days
}

// weekdayIndex maps time.Weekday onto a Monday-first index.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -weekdayIndex(day))
}
