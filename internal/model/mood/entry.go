package mood

import "time"

// Score bounds for a single answer and for the aggregated mood.
const (
	MinScore = 1
	MaxScore = 5
)

// Entry 表示一次完成的心情记录。
type Entry struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Mood   int       `json:"mood"`
	Note   string    `json:"note,omitempty"`
	Scores []int     `json:"scores,omitempty"`
}

// SameDay reports whether both timestamps fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
