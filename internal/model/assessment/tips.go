package assessment

// Tips produced by the threshold rules, keyed by dimension.
var (
	TipStressBreathing = Tip{ID: "stress-1", Title: "Daily Breathing Exercise",
		Description: "Practice 4-7-8 breathing: Inhale for 4 seconds, hold for 7, exhale for 8. Repeat 5 times when feeling stressed.",
		Category:    Meditation}
	TipGratitudeJournal = Tip{ID: "emotion-1", Title: "Gratitude Journal",
		Description: "Write down three things you are grateful for each day to shift focus toward positive aspects of life.",
		Category:    Journaling}
	TipWindDown = Tip{ID: "sleep-1", Title: "Evening Wind-Down Routine",
		Description: "Create a 30-minute pre-sleep routine: dim lights, avoid screens, try light stretching or reading.",
		Category:    SelfCare}
	TipStressResponsePlan = Tip{ID: "cope-1", Title: "Healthy Stress Response Plan",
		Description: "Create a list of 5 healthy ways to respond to stress that you can reference when feeling overwhelmed.",
		Category:    SelfCare}
	TipBoundaries = Tip{ID: "balance-1", Title: "Boundary Setting Practice",
		Description: `Identify one area where you need better boundaries and practice saying "no" when necessary.`,
		Category:    SelfCare}
	TipMorningMindfulness = Tip{ID: "mind-1", Title: "Morning Mindfulness",
		Description: "Start each day with 5 minutes of mindful breathing or body scan meditation before checking your phone.",
		Category:    Meditation}
	TipEnergyAudit = Tip{ID: "energy-1", Title: "Energy Audit",
		Description: "Track activities that drain and boost your energy for one week to identify patterns.",
		Category:    Journaling}
	TipEmotionNaming = Tip{ID: "express-1", Title: "Emotion Naming Practice",
		Description: "When feeling intense emotions, pause and name the specific emotion to increase emotional awareness.",
		Category:    Journaling}
)

// SelfCareTips is indexed by the self-care preference answer.
var SelfCareTips = [OptionCount]Tip{
	{ID: "self-1", Title: "Movement Snacks",
		Description: `Incorporate 3-5 minute "movement snacks" throughout your day - stretch, walk, or do quick exercises.`,
		Category:    SelfCare},
	{ID: "self-2", Title: "Creative Expression Time",
		Description: "Schedule 15 minutes daily for creative expression without judgment or expectations.",
		Category:    SelfCare},
	{ID: "self-3", Title: "Meaningful Connection",
		Description: "Reach out to one person each week for a meaningful conversation beyond small talk.",
		Category:    SelfCare},
	{ID: "self-4", Title: "Mental Clarity Break",
		Description: "Take a 10-minute break each day to clear your mind through meditation or journaling.",
		Category:    Meditation},
}

// GoalTips is indexed by the goal preference answer.
var GoalTips = [OptionCount]Tip{
	{ID: "goal-1", Title: "Stress Trigger Identification",
		Description: "Identify your top three stress triggers and create a specific plan for each one.",
		Category:    Journaling},
	{ID: "goal-2", Title: "Sleep Environment Optimization",
		Description: "Evaluate and improve your sleep environment: temperature, light, noise, and comfort.",
		Category:    SelfCare},
	{ID: "goal-3", Title: "Values Alignment Check",
		Description: "List your core values and assess how your daily activities align with them.",
		Category:    Journaling},
	{ID: "goal-4", Title: "Wellbeing Routine Building",
		Description: "Create a simple morning routine that includes one activity for mental, physical, and emotional wellbeing.",
		Category:    SelfCare},
}

// DefaultTips is shown when no personalized plan exists yet.
func DefaultTips() []Tip {
	return []Tip{
		{ID: "1", Title: "Morning Meditation", Description: "Start your day with 5 minutes of mindful breathing.", Category: Meditation},
		{ID: "2", Title: "Gratitude Journal", Description: "Write down three things you are grateful for today.", Category: Journaling},
		{ID: "3", Title: "Self-Care Break", Description: "Take a 15-minute walk in nature to reset your mind.", Category: SelfCare},
	}
}

// PlanGuidance accompanies a personalized plan.
var PlanGuidance = []string{
	"Try to incorporate at least one activity into your daily routine",
	"Track your progress and notice how different activities affect your wellbeing",
	"Adjust as needed - what works for you may change over time",
	"Retake the assessment in 2-4 weeks to see your progress",
}
