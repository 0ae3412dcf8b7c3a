package mood

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/mindful/client/internal/model/mood"
	"github.com/zhouzirui/mindful/client/pkg/logger"
)

// HistoryStore persists the full mood history as one record.
type HistoryStore interface {
	LoadMoodHistory(ctx context.Context) []mood.Entry
	SaveMoodHistory(ctx context.Context, entries []mood.Entry) error
	ClearMoodHistory(ctx context.Context) error
}

// Service owns the stored mood history.
type Service struct {
	store HistoryStore
	now   func() time.Time
	log   *logrus.Entry
}

// NewService creates the mood history service.
func NewService(store HistoryStore, log *logrus.Logger) *Service {
	return &Service{store: store, now: time.Now, log: logger.Component(log, "mood.service")}
}

// NewWizard starts a questionnaire using the service clock.
func (s *Service) NewWizard() *Wizard {
	return NewWizard(s.now)
}

// History returns the stored entries in stored order.
func (s *Service) History(ctx context.Context) []mood.Entry {
	return s.store.LoadMoodHistory(ctx)
}

// Stats derives the mood statistics from the stored history.
func (s *Service) Stats(ctx context.Context) Stats {
	return Summarize(s.History(ctx))
}

// Record stores entry. An existing entry on the same calendar day is replaced in place;
// otherwise the entry is appended.
func (s *Service) Record(ctx context.Context, entry mood.Entry) ([]mood.Entry, error) {
	history := Upsert(s.store.LoadMoodHistory(ctx), entry)
	if err := s.store.SaveMoodHistory(ctx, history); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"id": entry.ID, "mood": entry.Mood, "count": len(history)}).Info("mood entry recorded")
	return history, nil
}

// Submit records the wizard's entry. The wizard stays in review when the save
// fails so the same answers can be submitted again.
func (s *Service) Submit(ctx context.Context, w *Wizard) (mood.Entry, error) {
	entry, err := w.Draft()
	if err != nil {
		return mood.Entry{}, err
	}
	if _, err := s.Record(ctx, entry); err != nil {
		return mood.Entry{}, err
	}
	w.phase = PhaseSubmitted
	return entry, nil
}

// Clear deletes the whole history.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.ClearMoodHistory(ctx); err != nil {
		return err
	}
	s.log.Info("mood history cleared")
	return nil
}

// Upsert returns history with entry placed by calendar day.
func Upsert(history []mood.Entry, entry mood.Entry) []mood.Entry {
	out := append([]mood.Entry(nil), history...)
	for i, existing := range out {
		if mood.SameDay(entry.Date, existing.Date) {
			out[i] = entry
			return out
		}
	}
	return append(out, entry)
}
