package assessment

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/mindful/client/internal/model/assessment"
	"github.com/zhouzirui/mindful/client/pkg/logger"
)

// RecordStore persists the assessment answers as one record.
type RecordStore interface {
	LoadAssessment(ctx context.Context) (assessment.Record, bool)
	SaveAssessment(ctx context.Context, record assessment.Record) error
}

// Plan is what the wellbeing plan page shows.
type Plan struct {
	Tips         []assessment.Tip `json:"tips"`
	Personalized bool             `json:"personalized"`
	Guidance     []string         `json:"guidance,omitempty"`
}

// Service evaluates and persists assessments.
type Service struct {
	store RecordStore
	rules *RuleSet
	now   func() time.Time
	log   *logrus.Entry
}

// NewService creates the assessment service with the given rule cutoffs.
func NewService(store RecordStore, thresholds Thresholds, log *logrus.Logger) *Service {
	return &Service{
		store: store,
		rules: NewRuleSet(thresholds),
		now:   time.Now,
		log:   logger.Component(log, "assessment.service"),
	}
}

// Resume builds a wizard seeded with any saved answers. The flag reports whether
// saved responses were found.
func (s *Service) Resume(ctx context.Context) (*Wizard, bool) {
	w := NewWizard()
	record, ok := s.store.LoadAssessment(ctx)
	if !ok || len(record.Answers) == 0 {
		return w, false
	}
	w.Restore(record.Answers)
	return w, true
}

// Submit finalizes the wizard: answers are persisted first, then the tips are derived.
// Incomplete answers are rejected without any write.
func (s *Service) Submit(ctx context.Context, w *Wizard) ([]assessment.Tip, error) {
	if !w.Complete() {
		return nil, ErrIncomplete
	}
	answers := w.Answers()
	record := assessment.Record{Answers: answers, Date: s.now()}
	if err := s.store.SaveAssessment(ctx, record); err != nil {
		return nil, err
	}
	tips := s.rules.Evaluate(assessment.DimensionsFrom(answers))
	s.log.WithField("tips", len(tips)).Info("assessment submitted")
	return tips, nil
}

// PlanFor wraps derived tips for display; no tips falls back to the default plan.
func PlanFor(tips []assessment.Tip) Plan {
	if len(tips) == 0 {
		return Plan{Tips: assessment.DefaultTips()}
	}
	return Plan{Tips: tips, Personalized: true, Guidance: assessment.PlanGuidance}
}
