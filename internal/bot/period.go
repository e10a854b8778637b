package bot

import (
	"strings"
	"time"
)

// Period is a half-open time window [Start, End) with a display label
type Period struct {
	Start time.Time
	End   time.Time
	Label string
}

// ParsePeriod extracts a reporting window from a message. Recognizes the
// common French phrasings; anything else defaults to the current month.
func ParsePeriod(message string, now time.Time) Period {
	text := strings.ToLower(message)

	switch {
	case strings.Contains(text, "aujourd'hui") || strings.Contains(text, "aujourdhui") || strings.Contains(text, "today"):
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Period{Start: start, End: start.AddDate(0, 0, 1), Label: "aujourd'hui"}

	case strings.Contains(text, "hier") || strings.Contains(text, "yesterday"):
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Period{Start: end.AddDate(0, 0, -1), End: end, Label: "hier"}

	case strings.Contains(text, "cette semaine") || strings.Contains(text, "this week"):
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		// ISO week, Monday start
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return Period{Start: start, End: start.AddDate(0, 0, 7), Label: "cette semaine"}

	case strings.Contains(text, "ce mois") || strings.Contains(text, "this month"):
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Period{Start: start, End: start.AddDate(0, 1, 0), Label: "ce mois-ci"}

	case strings.Contains(text, "cette annee") || strings.Contains(text, "cette année") || strings.Contains(text, "this year"):
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return Period{Start: start, End: start.AddDate(1, 0, 0), Label: "cette année"}

	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Period{Start: start, End: start.AddDate(0, 1, 0), Label: "ce mois-ci"}
	}
}
