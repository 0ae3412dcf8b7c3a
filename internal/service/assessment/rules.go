package assessment

import (
	"github.com/zhouzirui/mindful/client/internal/model/assessment"
)

// Thresholds are the per-dimension cutoffs of the rule table; a rule fires when the
// dimension value is strictly greater than its cutoff.
type Thresholds struct {
	StressManagement    int `yaml:"stressManagement"`
	EmotionalWellbeing  int `yaml:"emotionalWellbeing"`
	Sleep               int `yaml:"sleep"`
	CopingStrategies    int `yaml:"copingStrategies"`
	LifeBalance         int `yaml:"lifeBalance"`
	Mindfulness         int `yaml:"mindfulness"`
	Energy              int `yaml:"energy"`
	EmotionalExpression int `yaml:"emotionalExpression"`
}

// DefaultThresholds returns the reference cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StressManagement:    2,
		EmotionalWellbeing:  1,
		Sleep:               1,
		CopingStrategies:    2,
		LifeBalance:         0,
		Mindfulness:         1,
		Energy:              1,
		EmotionalExpression: 1,
	}
}

type thresholdRule struct {
	value  func(assessment.Dimensions) int
	cutoff int
	tip    assessment.Tip
}

// RuleSet evaluates the ordered rule table.
type RuleSet struct {
	rules []thresholdRule
}

// NewRuleSet builds the rule table with the given cutoffs.
func NewRuleSet(t Thresholds) *RuleSet {
	return &RuleSet{rules: []thresholdRule{
		{func(d assessment.Dimensions) int { return d.StressManagement }, t.StressManagement, assessment.TipStressBreathing},
		{func(d assessment.Dimensions) int { return d.EmotionalWellbeing }, t.EmotionalWellbeing, assessment.TipGratitudeJournal},
		{func(d assessment.Dimensions) int { return d.Sleep }, t.Sleep, assessment.TipWindDown},
		{func(d assessment.Dimensions) int { return d.CopingStrategies }, t.CopingStrategies, assessment.TipStressResponsePlan},
		{func(d assessment.Dimensions) int { return d.LifeBalance }, t.LifeBalance, assessment.TipBoundaries},
		{func(d assessment.Dimensions) int { return d.Mindfulness }, t.Mindfulness, assessment.TipMorningMindfulness},
		{func(d assessment.Dimensions) int { return d.Energy }, t.Energy, assessment.TipEnergyAudit},
		{func(d assessment.Dimensions) int { return d.EmotionalExpression }, t.EmotionalExpression, assessment.TipEmotionNaming},
	}}
}

// Evaluate returns tips in rule declaration order: threshold rules first,
// then exactly one self-care tip and one goal tip.
func (r *RuleSet) Evaluate(d assessment.Dimensions) []assessment.Tip {
	tips := make([]assessment.Tip, 0, len(r.rules)+2)
	for _, rule := range r.rules {
		if rule.value(d) > rule.cutoff {
			tips = append(tips, rule.tip)
		}
	}
	if tip, ok := lookup(assessment.SelfCareTips, d.SelfCare); ok {
		tips = append(tips, tip)
	}
	if tip, ok := lookup(assessment.GoalTips, d.Goals); ok {
		tips = append(tips, tip)
	}
	return tips
}

func lookup(table [assessment.OptionCount]assessment.Tip, i int) (assessment.Tip, bool) {
	if i < 0 || i >= len(table) {
		return assessment.Tip{}, false
	}
	return table[i], true
}
