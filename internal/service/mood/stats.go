package mood

import (
	"math"
	"sort"

	"github.com/zhouzirui/mindful/client/internal/model/mood"
)

// Trend labels.
const (
	TrendImproving     = "improving"
	TrendDeclining     = "declining"
	TrendStable        = "stable"
	TrendNotEnoughData = "Not enough data"
)

// RecentLimit is the size of the recent-entries list.
const RecentLimit = 5

// Stats 由历史记录即时推导，不单独持久化。
type Stats struct {
	Chart   []mood.Entry `json:"chart"`
	Average float64      `json:"average"`
	Trend   string       `json:"trend"`
	Recent  []mood.Entry `json:"recent"`
	Count   int          `json:"count"`
}

// Summarize derives the chart projection, average, trend and recent list from history.
func Summarize(history []mood.Entry) Stats {
	chart := SortedByDate(history)
	return Stats{
		Chart:   chart,
		Average: Average(history),
		Trend:   Trend(chart),
		Recent:  Recent(history, RecentLimit),
		Count:   len(history),
	}
}

// SortedByDate returns a chronologically sorted copy.
func SortedByDate(history []mood.Entry) []mood.Entry {
	sorted := append([]mood.Entry(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if sorted == nil {
		return []mood.Entry{}
	}
	return sorted
}

// Average is the mean mood rounded to one decimal; 0 for an empty history.
func Average(history []mood.Entry) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, e := range history {
		sum += e.Mood
	}
	return math.Round(float64(sum)/float64(len(history))*10) / 10
}

// Trend compares the first and last mood of the three most recent entries.
// sorted must be in chronological order.
func Trend(sorted []mood.Entry) string {
	if len(sorted) < 3 {
		return TrendNotEnoughData
	}
	window := sorted[len(sorted)-3:]
	first, last := window[0].Mood, window[len(window)-1].Mood
	switch {
	case last > first:
		return TrendImproving
	case last < first:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Recent returns up to limit entries, newest first.
func Recent(history []mood.Entry, limit int) []mood.Entry {
	sorted := SortedByDate(history)
	recent := make([]mood.Entry, 0, limit)
	for i := len(sorted) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, sorted[i])
	}
	return recent
}
