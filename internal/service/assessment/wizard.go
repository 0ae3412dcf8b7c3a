package assessment

import (
	"errors"
	"math"

	"github.com/zhouzirui/mindful/client/internal/model/assessment"
)

var (
	ErrOptionOutOfRange = errors.New("option out of range")
	ErrStepUnanswered   = errors.New("current question is not answered")
	ErrFirstStep        = errors.New("already at the first question")
	ErrLastStep         = errors.New("already at the last question")
	ErrIncomplete       = errors.New("please answer all questions before submitting")
)

// Wizard walks the assessment questions. There is no review phase:
// submitting from the last question finalizes directly.
type Wizard struct {
	questions []assessment.Question
	answers   []*int
	current   int
}

// NewWizard starts an empty assessment.
func NewWizard() *Wizard {
	questions := assessment.Questions()
	return &Wizard{questions: questions, answers: make([]*int, len(questions))}
}

// Restore loads previously saved answers; slots beyond the question count are ignored.
func (w *Wizard) Restore(answers []*int) {
	w.answers = make([]*int, len(w.questions))
	for i := 0; i < len(answers) && i < len(w.answers); i++ {
		if a := answers[i]; a != nil && *a >= 0 && *a < assessment.OptionCount {
			v := *a
			w.answers[i] = &v
		}
	}
}

// Answer records the choice for the current question.
func (w *Wizard) Answer(option int) error {
	if option < 0 || option >= len(w.questions[w.current].Options) {
		return ErrOptionOutOfRange
	}
	w.answers[w.current] = &option
	return nil
}

// Next moves forward one question.
func (w *Wizard) Next() error {
	if w.answers[w.current] == nil {
		return ErrStepUnanswered
	}
	if w.current >= len(w.questions)-1 {
		return ErrLastStep
	}
	w.current++
	return nil
}

// Previous moves back one question.
func (w *Wizard) Previous() error {
	if w.current == 0 {
		return ErrFirstStep
	}
	w.current--
	return nil
}

// Reset clears all answers.
func (w *Wizard) Reset() {
	w.answers = make([]*int, len(w.questions))
	w.current = 0
}

// Answers returns a copy of the answer slots.
func (w *Wizard) Answers() []*int {
	out := make([]*int, len(w.answers))
	for i, a := range w.answers {
		if a != nil {
			v := *a
			out[i] = &v
		}
	}
	return out
}

// Complete reports whether every question holds an answer.
func (w *Wizard) Complete() bool {
	return assessment.Record{Answers: w.answers}.Complete(len(w.questions))
}

// State is a render snapshot of the assessment wizard.
type State struct {
	Current   int                 `json:"current"`
	Total     int                 `json:"total"`
	Progress  int                 `json:"progress"`
	Question  assessment.Question `json:"question"`
	Selected  *int                `json:"selected"`
	Answers   []*int              `json:"answers"`
	IsLast    bool                `json:"isLast"`
	CanNext   bool                `json:"canNext"`
	CanBack   bool                `json:"canBack"`
	CanSubmit bool                `json:"canSubmit"`
}

// State returns the current snapshot.
func (w *Wizard) State() State {
	answered := 0
	for _, a := range w.answers {
		if a != nil {
			answered++
		}
	}
	answers := w.Answers()
	last := w.current == len(w.questions)-1
	return State{
		Current:   w.current,
		Total:     len(w.questions),
		Progress:  int(math.Round(float64(answered) / float64(len(w.questions)) * 100)),
		Question:  w.questions[w.current],
		Selected:  answers[w.current],
		Answers:   answers,
		IsLast:    last,
		CanNext:   !last && w.answers[w.current] != nil,
		CanBack:   w.current > 0,
		CanSubmit: last && w.Complete(),
	}
}
