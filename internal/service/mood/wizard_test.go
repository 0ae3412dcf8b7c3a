package mood

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func answerAll(t *testing.T, w *Wizard, answers []int) {
	t.Helper()
	for _, a := range answers {
		require.NoError(t, w.Answer(a))
		require.NoError(t, w.Advance())
	}
}

func TestWizardSubmitRoundsMeanAndKeepsScores(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		answers := make([]int, 10)
		sum := 0
		for j := range answers {
			answers[j] = rng.Intn(5)
			sum += answers[j] + 1
		}

		w := NewWizard(fixedClock)
		answerAll(t, w, answers)
		require.Equal(t, PhaseReviewing, w.Phase())

		entry, err := w.Submit()
		require.NoError(t, err)

		// sum/10 的 .5 情况向上取整
		expected := (sum + 5) / 10
		require.Equal(t, expected, entry.Mood, "answers=%v", answers)
		for j, a := range answers {
			require.Equal(t, a+1, entry.Scores[j])
		}
		require.Equal(t, fixedNow, entry.Date)
		require.NotEmpty(t, entry.ID)
	}
}

func TestWizardHalfRoundsUp(t *testing.T) {
	w := NewWizard(fixedClock)
	// scores: five 3s and five 4s -> mean 3.5
	answerAll(t, w, []int{2, 2, 2, 2, 2, 3, 3, 3, 3, 3})
	entry, err := w.Submit()
	require.NoError(t, err)
	require.Equal(t, 4, entry.Mood)
}

func TestWizardAdvanceRequiresAnswer(t *testing.T) {
	w := NewWizard(fixedClock)
	require.False(t, w.CanAdvance())
	require.ErrorIs(t, w.Advance(), ErrStepUnanswered)
	require.ErrorIs(t, w.Answer(5), ErrOptionOutOfRange)
	require.ErrorIs(t, w.Answer(-1), ErrOptionOutOfRange)
	require.NoError(t, w.Answer(4))
	require.True(t, w.CanAdvance())
	require.NoError(t, w.Advance())
	require.Equal(t, 1, w.Current())
	require.Equal(t, 10, w.Progress())
}

func TestWizardRetreatOnFirstStepSignalsCancel(t *testing.T) {
	w := NewWizard(fixedClock)
	require.ErrorIs(t, w.Retreat(), ErrFirstStep)

	require.NoError(t, w.Answer(1))
	require.NoError(t, w.Advance())
	require.NoError(t, w.Retreat())
	require.Equal(t, 0, w.Current())
}

func TestWizardLastStepEntersReviewNotNextQuestion(t *testing.T) {
	w := NewWizard(fixedClock)
	answerAll(t, w, []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4})
	require.Equal(t, PhaseReviewing, w.Phase())
	require.Equal(t, 9, w.Current())
	require.ErrorIs(t, w.Advance(), ErrNotAsking)
	require.ErrorIs(t, w.Answer(1), ErrNotAsking)
	require.True(t, w.CanSubmit())

	state := w.State()
	require.NotNil(t, state.Summary)
	require.Equal(t, 3.0, state.Summary.Average)
	require.Equal(t, "😐", state.Summary.Emoji)
	require.Equal(t, "Very low, upset, or overwhelmed", state.Questions[0].SelectedLabel)
}

func TestWizardEditFromReview(t *testing.T) {
	w := NewWizard(fixedClock)
	answerAll(t, w, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	require.NoError(t, w.Edit(4))
	require.Equal(t, PhaseAsking, w.Phase())
	require.Equal(t, 4, w.Current())
	require.NoError(t, w.Answer(4))

	// walk back to review through the remaining questions
	for w.Phase() == PhaseAsking {
		require.NoError(t, w.Advance())
	}
	require.NoError(t, w.SetNote("  rough start, better evening  "))
	entry, err := w.Submit()
	require.NoError(t, err)
	require.Equal(t, 5, entry.Scores[4])
	require.Equal(t, "rough start, better evening", entry.Note)
	require.Equal(t, PhaseSubmitted, w.Phase())

	_, err = w.Submit()
	require.ErrorIs(t, err, ErrNotReviewing)
}

func TestWizardCancelDiscardsAnswers(t *testing.T) {
	w := NewWizard(fixedClock)
	require.NoError(t, w.Answer(3))
	require.NoError(t, w.Advance())
	require.NoError(t, w.Answer(2))

	w.Cancel()
	require.Equal(t, 0, w.Current())
	require.Equal(t, 0, w.Progress())
	require.False(t, w.Complete())
	require.Nil(t, w.State().Questions[0].Selected)
}

func TestWizardSubmitBeforeReviewRejected(t *testing.T) {
	w := NewWizard(fixedClock)
	_, err := w.Submit()
	require.ErrorIs(t, err, ErrNotReviewing)
	require.ErrorIs(t, w.SetNote("x"), ErrNotReviewing)
}
