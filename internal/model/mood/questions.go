package mood

// Question is one step of the daily mood questionnaire.
type Question struct {
	ID     int      `json:"id"`
	Text   string   `json:"text"`
	Emoji  []string `json:"emoji"`
	Labels []string `json:"labels"`
}

// OptionCount is the number of choices every mood question offers.
const OptionCount = 5

// Questions returns the fixed daily questionnaire, in presentation order.
func Questions() []Question {
	return []Question{
		{
			ID:    1,
			Text:  "How would you describe your overall mood today?",
			Emoji: []string{"😞", "😟", "😐", "🙂", "😃"},
			Labels: []string{"Very low, upset, or overwhelmed", "A bit down or anxious", "Neutral, nothing special",
				"Mostly good, but some stress", "Very happy and positive"},
		},
		{
			ID:    2,
			Text:  "How much energy did you have today?",
			Emoji: []string{"😵", "😩", "😴", "✅", "⚡"},
			Labels: []string{"Completely drained, exhausted", "Low energy, struggled to get things done",
				"Felt sluggish but managed", "Fairly energetic", "Full of energy and motivation"},
		},
		{
			ID:    3,
			Text:  "How well did you sleep last night?",
			Emoji: []string{"😫", "😕", "😴", "😌", "💤"},
			Labels: []string{"Barely slept, completely exhausted", "Poor sleep, waking up often", "Somewhat restless",
				"Decent sleep, but could be better", "Great sleep, well-rested"},
		},
		{
			ID:    4,
			Text:  "How well did you handle stress today?",
			Emoji: []string{"😰", "😖", "😟", "🙂", "🧘"},
			Labels: []string{"Overwhelmed, couldn't manage stress at all", "Very stressed, difficult to focus",
				"Somewhat stressed but pushed through", "Managed okay, but felt a little pressure", "Handled it well, stayed calm"},
		},
		{
			ID:    5,
			Text:  "How socially connected did you feel today?",
			Emoji: []string{"😔", "😞", "😐", "😊", "❤️"},
			Labels: []string{"Completely disconnected from others", "Felt isolated or lonely", "Had minimal interactions",
				"Talked to a few people, felt okay", "Spent quality time with people I care about"},
		},
		{
			ID:    6,
			Text:  "Did you feel in control of your emotions today?",
			Emoji: []string{"😭", "😩", "😕", "✅", "🎯"},
			Labels: []string{"Lost control, emotions took over", "Felt emotionally overwhelmed",
				"Had some emotional ups and downs", "Mostly stable", "Completely in control"},
		},
		{
			ID:    7,
			Text:  "How productive did you feel today?",
			Emoji: []string{"😞", "😟", "😐", "✅", "🚀"},
			Labels: []string{"No motivation, got nothing done", "Couldn't focus, left things incomplete",
				"Did some tasks, but struggled", "Got most things done", "Super productive, got everything done"},
		},
		{
			ID:    8,
			Text:  "How well did you take care of yourself today?",
			Emoji: []string{"😣", "😞", "🤷", "🏃", "🍎"},
			Labels: []string{"Completely neglected myself", "Ignored my needs today", "Did a few things for self-care",
				"Took care of some aspects of my well-being", "Ate well, exercised, and relaxed"},
		},
		{
			ID:    9,
			Text:  "Did you experience any negative emotions today (anxiety, sadness, frustration)?",
			Emoji: []string{"😞", "😟", "😐", "😊", "😃"},
			Labels: []string{"Strong negative emotions all day", "Felt quite negative for most of the day",
				"Some negative emotions, but nothing major", "A little, but manageable", "Not at all"},
		},
		{
			ID:    10,
			Text:  "What would best describe your day overall?",
			Emoji: []string{"😩", "😞", "😐", "😊", "🌟"},
			Labels: []string{"A really bad day, struggled a lot", "A rough day, but I got through it",
				"An average day, nothing special", "A good day with minor issues", "Fantastic, everything went well"},
		},
	}
}

// Feedback 根据平均分给出当天的反馈文案。
func Feedback(score float64) string {
	switch {
	case score >= 4.5:
		return "You're having an excellent day! Your mood is very positive. This is a great time to engage in activities you enjoy and connect with others."
	case score >= 3.5:
		return "You're having a good day overall. Your mood is positive, though there might be some minor stressors. Consider taking some time for yourself to maintain this positive state."
	case score >= 2.5:
		return "You're having an average day. Your mood is neutral, with some ups and downs. Consider doing something you enjoy to boost your mood."
	case score >= 1.5:
		return "You're having a challenging day. Your mood is lower than usual. Be gentle with yourself and consider reaching out to someone you trust or engaging in self-care activities."
	default:
		return "You're having a difficult day. Your mood is quite low. Please prioritize self-care and consider reaching out for support from friends, family, or a mental health professional."
	}
}
