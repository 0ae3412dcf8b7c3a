package mood

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindful/client/internal/model/mood"
)

func entries(moods map[int]int, order ...int) []mood.Entry {
	out := make([]mood.Entry, 0, len(order))
	for _, d := range order {
		out = append(out, mood.Entry{ID: string(rune('a' + d)), Date: day(d, 12), Mood: moods[d]})
	}
	return out
}

func TestTrendNeedsThreeEntries(t *testing.T) {
	require.Equal(t, TrendNotEnoughData, Summarize(nil).Trend)
	require.Equal(t, TrendNotEnoughData, Summarize(entries(map[int]int{1: 1, 2: 5}, 1, 2)).Trend)
}

func TestTrendUsesMostRecentThreeByDate(t *testing.T) {
	// stored out of order: 4 is newest
	history := entries(map[int]int{1: 5, 2: 1, 3: 3, 4: 4}, 4, 1, 3, 2)
	require.Equal(t, TrendImproving, Summarize(history).Trend)

	history = entries(map[int]int{1: 1, 2: 4, 3: 3, 4: 2}, 1, 2, 3, 4)
	require.Equal(t, TrendDeclining, Summarize(history).Trend)

	history = entries(map[int]int{1: 1, 2: 3, 3: 5, 4: 3}, 2, 3, 4, 1)
	require.Equal(t, TrendStable, Summarize(history).Trend)
}

func TestSummarizeAverageChartAndRecent(t *testing.T) {
	moods := map[int]int{1: 3, 2: 4, 3: 2, 4: 5, 5: 4, 6: 1}
	history := entries(moods, 6, 2, 1, 5, 3, 4)
	stats := Summarize(history)

	require.Equal(t, 3.2, stats.Average)
	require.Equal(t, 6, stats.Count)
	require.Len(t, stats.Chart, 6)
	for i := 1; i < len(stats.Chart); i++ {
		require.True(t, stats.Chart[i-1].Date.Before(stats.Chart[i].Date))
	}

	require.Len(t, stats.Recent, RecentLimit)
	days := make([]int, 0, len(stats.Recent))
	for _, e := range stats.Recent {
		days = append(days, e.Date.Day())
	}
	require.Equal(t, []int{6, 5, 4, 3, 2}, days)

	// input untouched
	require.Equal(t, 6, history[0].Date.Day())
}

func TestAverageEmpty(t *testing.T) {
	require.Equal(t, 0.0, Average(nil))
	require.Empty(t, Summarize(nil).Chart)
}
