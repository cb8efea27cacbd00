// Package workoutstats computes aggregate statistics over a user's workout
// session history: day streaks, per-session volume, weekly/monthly rollups
// and per-exercise history. All functions are pure; callers supply "now" so
// the calendar math is testable.
package workoutstats

import (
	"sort"
	"time"

	"github.com/fittrack/backend/internal/models"
)

// Volume returns the total volume of one session: sum of reps * weight over
// every completed set.
func Volume(s models.WorkoutSession) float64 {
	var total float64
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			total += float64(set.Reps) * set.WeightKg
		}
	}
	return total
}

// day normalizes a timestamp to its calendar date.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sessionDays returns the distinct calendar days with at least one session,
// sorted ascending.
func sessionDays(sessions []models.WorkoutSession) []time.Time {
	seen := make(map[time.Time]struct{}, len(sessions))
	for _, s := range sessions {
		seen[day(s.PerformedAt)] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// CurrentStreak returns the number of consecutive calendar days with at least
// one session, counting backwards from the most recent session day. The
// streak only counts if it reaches today or yesterday; otherwise it is 0.
func CurrentStreak(sessions []models.WorkoutSession, now time.Time) int {
	days := sessionDays(sessions)
	if len(days) == 0 {
		return 0
	}

	last := days[len(days)-1]
	today := day(now)
	if today.Sub(last) > 24*time.Hour {
		return 0
	}

	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive session days in the
// whole history.
func LongestStreak(sessions []models.WorkoutSession) int {
	days := sessionDays(sessions)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// WeeklySummary aggregates one ISO week of training.
type WeeklySummary struct {
	Year            int     `json:"year"`
	Week            int     `json:"week"`
	Sessions        int     `json:"sessions"`
	Volume          float64 `json:"volume"`
	DurationMinutes int     `json:"duration_minutes"`
}

// WeeklyRollup groups sessions by ISO week, most recent week first.
func WeeklyRollup(sessions []models.WorkoutSession) []WeeklySummary {
	type key struct{ year, week int }
	byWeek := make(map[key]*WeeklySummary)
	for _, s := range sessions {
		y, w := s.PerformedAt.ISOWeek()
		k := key{y, w}
		sum, ok := byWeek[k]
		if !ok {
			sum = &WeeklySummary{Year: y, Week: w}
			byWeek[k] = sum
		}
		sum.Sessions++
		sum.Volume += Volume(s)
		sum.DurationMinutes += s.DurationMinutes
	}

	out := make([]WeeklySummary, 0, len(byWeek))
	for _, sum := range byWeek {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Week > out[j].Week
	})
	return out
}

// MonthlySummary aggregates one calendar month of training.
type MonthlySummary struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	Sessions        int     `json:"sessions"`
	Volume          float64 `json:"volume"`
	DurationMinutes int     `json:"duration_minutes"`
}

// MonthlyRollup groups sessions by calendar month, most recent month first.
func MonthlyRollup(sessions []models.WorkoutSession) []MonthlySummary {
	type key struct {
		year  int
		month time.Month
	}
	byMonth := make(map[key]*MonthlySummary)
	for _, s := range sessions {
		k := key{s.PerformedAt.Year(), s.PerformedAt.Month()}
		sum, ok := byMonth[k]
		if !ok {
			sum = &MonthlySummary{Year: k.year, Month: int(k.month)}
			byMonth[k] = sum
		}
		sum.Sessions++
		sum.Volume += Volume(s)
		sum.DurationMinutes += s.DurationMinutes
	}

	out := make([]MonthlySummary, 0, len(byMonth))
	for _, sum := range byMonth {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out
}

// ExerciseDayStats holds the per-day averages for one exercise
// so that, for each day, we get the average weight and reps per set.
type ExerciseDayStats struct {
	AvgWeightKg float64 `json:"avg_weight_kg"`
	AvgReps     float64 `json:"avg_reps"`
	Sets        int     `json:"sets"`
}

// ExerciseHistory returns per-day set averages for the named exercise across
// the session history.
func ExerciseHistory(sessions []models.WorkoutSession, exerciseName string) map[time.Time]ExerciseDayStats {
	day2sets := make(map[time.Time][]models.CompletedSet)
	for _, s := range sessions {
		d := day(s.PerformedAt)
		for _, ex := range s.Exercises {
			if ex.ExerciseName != exerciseName {
				continue
			}
			day2sets[d] = append(day2sets[d], ex.Sets...)
		}
	}

	history := make(map[time.Time]ExerciseDayStats, len(day2sets))
	for d, sets := range day2sets {
		if len(sets) == 0 {
			continue
		}
		var weight, reps float64
		for _, set := range sets {
			weight += set.WeightKg
			reps += float64(set.Reps)
		}
		n := float64(len(sets))
		history[d] = ExerciseDayStats{
			AvgWeightKg: weight / n,
			AvgReps:     reps / n,
			Sets:        len(sets),
		}
	}
	return history
}
