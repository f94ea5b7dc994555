// Package progress turns the activity log into the trends shown on the
// dashboard and progress screens.
package progress

import (
	"fmt"
	"time"

	"github.com/mindora-app/mindora/internal/store"
)

// Point is one bar of a chart. Count is the number of samples behind
// Value; a zero Count means there was no data for the bucket.
type Point struct {
	Label string
	Start time.Time
	Value float64
	Count int
}

// StressLevel maps a 1-5 mood temperature onto 0-100.
func StressLevel(temperature float64) float64 {
	v := (temperature - 1) / 4 * 100
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday midnight on or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// weekBuckets returns the starts of the last n weeks, oldest first, the
// final one containing now.
func weekBuckets(now time.Time, n int) []time.Time {
	cur := startOfWeek(now)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = cur.AddDate(0, 0, -7*(n-1-i))
	}
	return out
}

func bucketIndex(starts []time.Time, span func(time.Time) time.Time, at time.Time) int {
	for i, s := range starts {
		if !at.Before(s) && at.Before(span(s)) {
			return i
		}
	}
	return -1
}

func nextWeek(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
func nextDay(t time.Time) time.Time  { return t.AddDate(0, 0, 1) }

// WeeklyStress averages the stress level of mood checks per week for the
// last weeks weeks, oldest first.
func WeeklyStress(moods []store.MoodEvent, now time.Time, weeks int) []Point {
	if weeks <= 0 {
		return nil
	}
	starts := weekBuckets(now, weeks)
	points := make([]Point, weeks)
	for i, s := range starts {
		points[i] = Point{Label: fmt.Sprintf("Week %d", i+1), Start: s}
	}
	for _, m := range moods {
		i := bucketIndex(starts, nextWeek, m.Timestamp.In(now.Location()))
		if i < 0 {
			continue
		}
		points[i].Value += StressLevel(m.Temperature)
		points[i].Count++
	}
	return average(points)
}

// DailyStress averages the stress level per day over the seven days
// ending today, labelled by weekday.
func DailyStress(moods []store.MoodEvent, now time.Time) []Point {
	today := startOfDay(now)
	starts := make([]time.Time, 7)
	points := make([]Point, 7)
	for i := range starts {
		starts[i] = today.AddDate(0, 0, i-6)
		points[i] = Point{Label: starts[i].Format("Mon"), Start: starts[i]}
	}
	for _, m := range moods {
		i := bucketIndex(starts, nextDay, m.Timestamp.In(now.Location()))
		if i < 0 {
			continue
		}
		points[i].Value += StressLevel(m.Temperature)
		points[i].Count++
	}
	return average(points)
}

func average(points []Point) []Point {
	for i := range points {
		if points[i].Count > 0 {
			points[i].Value /= float64(points[i].Count)
		}
	}
	return points
}

// WeeklySessions counts completed exercise sessions per week, oldest
// first.
func WeeklySessions(sessions []store.ExerciseSession, now time.Time, weeks int) []Point {
	if weeks <= 0 {
		return nil
	}
	starts := weekBuckets(now, weeks)
	points := make([]Point, weeks)
	for i, s := range starts {
		points[i] = Point{Label: fmt.Sprintf("Week %d", i+1), Start: s}
	}
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		i := bucketIndex(starts, nextWeek, s.EndedAt.In(now.Location()))
		if i < 0 {
			continue
		}
		points[i].Count++
		points[i].Value++
	}
	return points
}

// Streak counts consecutive days with activity ending today. A streak that
// ended yesterday still counts until today is over.
func Streak(days []time.Time, now time.Time) int {
	const layout = "2006-01-02"
	active := make(map[string]bool, len(days))
	for _, d := range days {
		active[d.In(now.Location()).Format(layout)] = true
	}

	day := startOfDay(now)
	if !active[day.Format(layout)] {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for active[day.Format(layout)] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}
