// Package forecast collapses the 3-hourly forecast feed into daily summaries.
package forecast

import (
	"math"
	"sort"
	"time"

	"weather-lookup/internal/models"
)

const (
	// DefaultIcon is the clear-sky day icon used when a sample has no condition data.
	DefaultIcon = "01d"
	// MaxDays caps the number of summaries returned.
	MaxDays = 5
)

var dayNames = [7]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

type day struct {
	date    string
	weekday time.Weekday
	min     float64
	max     float64
	samples []models.ForecastSample
}

// Aggregate groups samples by their UTC calendar date and returns at most
// MaxDays summaries sorted by date. Samples without a timestamp or with
// non-finite temperatures are skipped; an empty input yields an empty slice.
func Aggregate(samples []models.ForecastSample) []models.DailyForecast {
	byDate := make(map[string]*day)
	days := make([]*day, 0, MaxDays+1)

	for _, s := range samples {
		if s.Time.IsZero() || !finite(s.Min) || !finite(s.Max) {
			continue
		}
		t := s.Time.UTC()
		key := t.Format(time.DateOnly)

		d, ok := byDate[key]
		if !ok {
			d = &day{date: key, weekday: t.Weekday(), min: s.Min, max: s.Max}
			byDate[key] = d
			days = append(days, d)
		}
		d.min = math.Min(d.min, s.Min)
		d.max = math.Max(d.max, s.Max)
		d.samples = append(d.samples, s)
	}

	// ISO dates compare chronologically as strings.
	sort.SliceStable(days, func(i, j int) bool { return days[i].date < days[j].date })
	if len(days) > MaxDays {
		days = days[:MaxDays]
	}

	out := make([]models.DailyForecast, 0, len(days))
	for _, d := range days {
		rep := d.samples[len(d.samples)/2]
		icon := rep.Icon
		if icon == "" {
			icon = DefaultIcon
		}
		out = append(out, models.DailyForecast{
			Date:        d.date,
			DayName:     dayNames[d.weekday],
			Min:         models.Round(d.min),
			Max:         models.Round(d.max),
			Icon:        icon,
			Description: rep.Description,
		})
	}
	return out
}

// DayName returns the short weekday label for an ISO date, or "" if the date is invalid.
func DayName(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return dayNames[t.Weekday()]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
