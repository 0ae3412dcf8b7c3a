package assessment

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindful/client/internal/model/assessment"
	"github.com/zhouzirui/mindful/client/internal/storage"
)

func newTestService() (*Service, *storage.Adapter) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	adapter := storage.NewAdapter(storage.NewMemoryKV(), log)
	return NewService(adapter, DefaultThresholds(), log), adapter
}

func answered(values ...int) *Wizard {
	w := NewWizard()
	for i, v := range values {
		if err := w.Answer(v); err != nil {
			panic(err)
		}
		if i < len(values)-1 {
			if err := w.Next(); err != nil {
				panic(err)
			}
		}
	}
	return w
}

func tipIDs(tips []assessment.Tip) []string {
	ids := make([]string, 0, len(tips))
	for _, t := range tips {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestSubmitRejectsIncompleteWithoutWrite(t *testing.T) {
	ctx := context.Background()
	svc, adapter := newTestService()

	w := answered(3, 2, 2, 3, 1)
	tips, err := svc.Submit(ctx, w)
	require.ErrorIs(t, err, ErrIncomplete)
	require.Nil(t, tips)

	_, ok := adapter.LoadAssessment(ctx)
	require.False(t, ok)
}

func TestSubmitStressAndEmotionRules(t *testing.T) {
	svc, _ := newTestService()

	tips, err := svc.Submit(context.Background(), answered(3, 2, 2, 3, 0, 0, 0, 0, 0, 0))
	require.NoError(t, err)

	ids := tipIDs(tips)
	require.Contains(t, ids, assessment.TipStressBreathing.ID)
	require.Contains(t, ids, assessment.TipGratitudeJournal.ID)
	// 声明顺序
	require.Equal(t, assessment.TipStressBreathing.ID, ids[0])
	require.Equal(t, assessment.TipGratitudeJournal.ID, ids[1])
}

func TestSubmitLookupRulesYieldExactlyOneTipEach(t *testing.T) {
	svc, _ := newTestService()

	tips, err := svc.Submit(context.Background(), answered(0, 0, 0, 0, 0, 0, 0, 0, 2, 1))
	require.NoError(t, err)
	require.Len(t, tips, 2)
	require.Equal(t, "Meaningful Connection", tips[0].Title)
	require.Equal(t, "Sleep Environment Optimization", tips[1].Title)
}

func TestSubmitAllRulesFire(t *testing.T) {
	svc, _ := newTestService()

	tips, err := svc.Submit(context.Background(), answered(3, 3, 3, 3, 3, 3, 3, 3, 0, 0))
	require.NoError(t, err)
	require.Len(t, tips, 10)
}

func TestSubmitPersistsAnswers(t *testing.T) {
	ctx := context.Background()
	svc, adapter := newTestService()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	_, err := svc.Submit(ctx, answered(1, 1, 1, 1, 1, 1, 1, 1, 1, 1))
	require.NoError(t, err)

	record, ok := adapter.LoadAssessment(ctx)
	require.True(t, ok)
	require.True(t, record.Complete(10))
	require.True(t, record.Date.Equal(at))

	w, saved := svc.Resume(ctx)
	require.True(t, saved)
	require.True(t, w.Complete())
}

func TestThresholdsAreConfigurable(t *testing.T) {
	th := DefaultThresholds()
	th.StressManagement = 3
	rules := NewRuleSet(th)

	tips := rules.Evaluate(assessment.Dimensions{StressManagement: 3})
	require.NotContains(t, tipIDs(tips), assessment.TipStressBreathing.ID)
}

func TestPlanFor(t *testing.T) {
	plan := PlanFor(nil)
	require.False(t, plan.Personalized)
	require.Len(t, plan.Tips, 3)
	require.Empty(t, plan.Guidance)

	plan = PlanFor([]assessment.Tip{assessment.TipWindDown})
	require.True(t, plan.Personalized)
	require.NotEmpty(t, plan.Guidance)
}
