package mood

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/mindful/client/internal/analysis/tone"
	"github.com/zhouzirui/mindful/client/internal/model/mood"
)

// Phase is the wizard's position in its state machine:
// Asking(i) -> Reviewing -> Submitted, with Reviewing -> Asking(k) through Edit.
type Phase string

const (
	PhaseAsking    Phase = "asking"
	PhaseReviewing Phase = "reviewing"
	PhaseSubmitted Phase = "submitted"
)

var (
	ErrOptionOutOfRange   = errors.New("option out of range")
	ErrQuestionOutOfRange = errors.New("question out of range")
	ErrNotAsking          = errors.New("wizard is not asking a question")
	ErrNotReviewing       = errors.New("wizard is not in review")
	ErrStepUnanswered     = errors.New("current question is not answered")
	ErrFirstStep          = errors.New("already at the first question")
	ErrIncomplete         = errors.New("all questions must be answered")
)

// Wizard collects the daily questionnaire answers and produces one Entry.
// Nothing is persisted before Submit; the caller owns the finished entry.
type Wizard struct {
	questions []mood.Question
	answers   []*int
	current   int
	phase     Phase
	note      string
	now       func() time.Time
	newID     func() string
}

// NewWizard starts a wizard at the first question.
func NewWizard(now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	questions := mood.Questions()
	return &Wizard{
		questions: questions,
		answers:   make([]*int, len(questions)),
		phase:     PhaseAsking,
		now:       now,
		newID:     uuid.NewString,
	}
}

// Phase returns the current state.
func (w *Wizard) Phase() Phase { return w.phase }

// Current returns the index of the question being asked.
func (w *Wizard) Current() int { return w.current }

// Answer records the choice for the current question only.
func (w *Wizard) Answer(option int) error {
	if w.phase != PhaseAsking {
		return ErrNotAsking
	}
	if option < 0 || option >= len(w.questions[w.current].Labels) {
		return ErrOptionOutOfRange
	}
	w.answers[w.current] = &option
	return nil
}

// CanAdvance reports whether the current question holds an answer.
func (w *Wizard) CanAdvance() bool {
	return w.phase == PhaseAsking && w.answers[w.current] != nil
}

// Advance moves to the next question; on the last question it enters review.
func (w *Wizard) Advance() error {
	if w.phase != PhaseAsking {
		return ErrNotAsking
	}
	if w.answers[w.current] == nil {
		return ErrStepUnanswered
	}
	if w.current < len(w.questions)-1 {
		w.current++
		return nil
	}
	w.phase = PhaseReviewing
	return nil
}

// Retreat moves back one question. On the first question it returns ErrFirstStep,
// which callers treat as a request to cancel the whole wizard.
func (w *Wizard) Retreat() error {
	if w.phase != PhaseAsking {
		return ErrNotAsking
	}
	if w.current == 0 {
		return ErrFirstStep
	}
	w.current--
	return nil
}

// Edit jumps from review back to question k.
func (w *Wizard) Edit(k int) error {
	if w.phase != PhaseReviewing {
		return ErrNotReviewing
	}
	if k < 0 || k >= len(w.questions) {
		return ErrQuestionOutOfRange
	}
	w.phase = PhaseAsking
	w.current = k
	return nil
}

// EditAll leaves review and restarts at the first question, keeping answers.
func (w *Wizard) EditAll() error {
	return w.Edit(0)
}

// SetNote stores the optional free-text note; only allowed during review.
func (w *Wizard) SetNote(note string) error {
	if w.phase != PhaseReviewing {
		return ErrNotReviewing
	}
	w.note = note
	return nil
}

// Cancel discards all in-progress answers and returns to the first question.
func (w *Wizard) Cancel() {
	w.answers = make([]*int, len(w.questions))
	w.current = 0
	w.note = ""
	w.phase = PhaseAsking
}

// Complete reports whether every question holds an answer.
func (w *Wizard) Complete() bool {
	for _, a := range w.answers {
		if a == nil {
			return false
		}
	}
	return true
}

// CanSubmit reports whether Submit would succeed.
func (w *Wizard) CanSubmit() bool {
	return w.phase == PhaseReviewing && w.Complete()
}

// Progress is the answered share in whole percent.
func (w *Wizard) Progress() int {
	answered := 0
	for _, a := range w.answers {
		if a != nil {
			answered++
		}
	}
	return int(math.Round(float64(answered) / float64(len(w.answers)) * 100))
}

// Submit finalizes the wizard and returns the new entry.
func (w *Wizard) Submit() (mood.Entry, error) {
	entry, err := w.Draft()
	if err != nil {
		return mood.Entry{}, err
	}
	w.phase = PhaseSubmitted
	return entry, nil
}

// Draft builds the entry Submit would return without leaving review.
func (w *Wizard) Draft() (mood.Entry, error) {
	if w.phase != PhaseReviewing {
		return mood.Entry{}, ErrNotReviewing
	}
	if !w.Complete() {
		return mood.Entry{}, ErrIncomplete
	}

	scores := w.scores()
	return mood.Entry{
		ID:     w.newID(),
		Date:   w.now(),
		Mood:   RoundScore(mean(scores)),
		Note:   strings.TrimSpace(w.note),
		Scores: scores,
	}, nil
}

// RoundScore rounds to the nearest integer with .5 going up.
func RoundScore(v float64) int {
	return int(math.Floor(v + 0.5))
}

func (w *Wizard) scores() []int {
	scores := make([]int, 0, len(w.answers))
	for _, a := range w.answers {
		if a != nil {
			scores = append(scores, *a+1)
		}
	}
	return scores
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// QuestionView is a question with the selected answer, if any.
type QuestionView struct {
	mood.Question
	Index         int    `json:"index"`
	Selected      *int   `json:"selected"`
	SelectedLabel string `json:"selectedLabel,omitempty"`
	SelectedEmoji string `json:"selectedEmoji,omitempty"`
}

// ReviewSummary is shown before submitting.
type ReviewSummary struct {
	Average  float64       `json:"average"`
	Emoji    string        `json:"emoji"`
	Feedback string        `json:"feedback"`
	NoteTone tone.Decision `json:"noteTone"`
}

// State is a read-only snapshot of the wizard for rendering.
type State struct {
	Phase      Phase          `json:"phase"`
	Current    int            `json:"current"`
	Total      int            `json:"total"`
	Progress   int            `json:"progress"`
	CanAdvance bool           `json:"canAdvance"`
	CanSubmit  bool           `json:"canSubmit"`
	Note       string         `json:"note,omitempty"`
	Questions  []QuestionView `json:"questions"`
	Summary    *ReviewSummary `json:"summary,omitempty"`
}

// State returns a snapshot of the wizard.
func (w *Wizard) State() State {
	views := make([]QuestionView, len(w.questions))
	for i, q := range w.questions {
		view := QuestionView{Question: q, Index: i}
		if a := w.answers[i]; a != nil {
			selected := *a
			view.Selected = &selected
			view.SelectedLabel = q.Labels[selected]
			view.SelectedEmoji = q.Emoji[selected]
		}
		views[i] = view
	}

	state := State{
		Phase:      w.phase,
		Current:    w.current,
		Total:      len(w.questions),
		Progress:   w.Progress(),
		CanAdvance: w.CanAdvance(),
		CanSubmit:  w.CanSubmit(),
		Note:       w.note,
		Questions:  views,
	}

	if w.phase == PhaseReviewing && w.Complete() {
		avg := mean(w.scores())
		last := w.questions[len(w.questions)-1]
		state.Summary = &ReviewSummary{
			Average:  math.Round(avg*10) / 10,
			Emoji:    last.Emoji[RoundScore(avg)-1],
			Feedback: mood.Feedback(avg),
			NoteTone: tone.Analyze(w.note),
		}
	}
	return state
}
