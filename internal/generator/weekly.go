package generator

import (
	"sort"
	"time"

	"alcyxob/workout-planner/internal/domain"
)

const (
	MinWeeklyFrequency = 3
	MaxWeeklyFrequency = 6
)

var canonicalDays = map[int][]time.Weekday{
	3: {time.Monday, time.Wednesday, time.Friday},
	4: {time.Monday, time.Tuesday, time.Thursday, time.Saturday},
	5: {time.Monday, time.Tuesday, time.Thursday, time.Friday, time.Saturday},
	6: {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
}

// DefaultFocusRotation is cycled through when a weekly request names no focus areas.
var DefaultFocusRotation = []domain.FocusArea{
	domain.FocusUpperBody, domain.FocusLowerBody, domain.FocusCardio, domain.FocusCore,
}

// mondayIndex orders weekdays Monday first.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func sortMondayFirst(days []time.Weekday) {
	sort.Slice(days, func(i, j int) bool { return mondayIndex(days[i]) < mondayIndex(days[j]) })
}

// ScheduleDays returns the training days of the week, Monday first. Explicit weekdays win and are
// deduplicated; otherwise the canonical set for the frequency is used, with the frequency clamped
// into the supported range.
func ScheduleDays(frequency int, explicit []time.Weekday) []time.Weekday {
	if len(explicit) > 0 {
		seen := make(map[time.Weekday]bool, len(explicit))
		var out []time.Weekday
		for _, d := range explicit {
			if d < time.Sunday || d > time.Saturday || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
		sortMondayFirst(out)
		return out
	}
	frequency = min(max(frequency, MinWeeklyFrequency), MaxWeeklyFrequency)
	return append([]time.Weekday(nil), canonicalDays[frequency]...)
}

// RestDays is the complement of the scheduled days, Monday first. It is informational only.
func RestDays(scheduled []time.Weekday) []time.Weekday {
	on := make(map[time.Weekday]bool, len(scheduled))
	for _, d := range scheduled {
		on[d] = true
	}
	var out []time.Weekday
	for i := 0; i < 7; i++ {
		d := time.Weekday((i + 1) % 7)
		if !on[d] {
			out = append(out, d)
		}
	}
	return out
}

// AssignFocus cycles the rotation over n days.
func AssignFocus(rotation []domain.FocusArea, n int) []domain.FocusArea {
	if len(rotation) == 0 {
		rotation = DefaultFocusRotation
	}
	out := make([]domain.FocusArea, n)
	for i := range out {
		out[i] = rotation[i%len(rotation)]
	}
	return out
}

// WeekStart returns midnight of the Monday starting the week that contains now, in now's location.
func WeekStart(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -mondayIndex(now.Weekday()))
}

// DateInWeek resolves a weekday to its date within the Monday-starting week containing now.
func DateInWeek(now time.Time, day time.Weekday) time.Time {
	return WeekStart(now).AddDate(0, 0, mondayIndex(day))
}

func weekdayNames(days []time.Weekday) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
