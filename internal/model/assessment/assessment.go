package assessment

import "time"

// Category groups wellbeing tips for presentation.
type Category string

const (
	Meditation Category = "meditation"
	Exercise   Category = "exercise"
	Journaling Category = "journaling"
	SelfCare   Category = "selfcare"
)

// Tip is a single recommendation of a wellbeing plan.
type Tip struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

// Question is one step of the wellbeing assessment.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// OptionCount is the number of choices every assessment question offers.
const OptionCount = 4

// Record is the persisted form of a completed assessment.
// Answers keeps nil slots so an in-progress record stays decodable.
type Record struct {
	Answers []*int    `json:"answers"`
	Date    time.Time `json:"date"`
}

// Complete reports whether every slot holds an answer.
func (r Record) Complete(questionCount int) bool {
	if len(r.Answers) != questionCount {
		return false
	}
	for _, a := range r.Answers {
		if a == nil {
			return false
		}
	}
	return true
}

// Dimensions maps the ten answers onto named assessment dimensions, positionally.
type Dimensions struct {
	StressManagement    int `json:"stressManagement"`
	EmotionalWellbeing  int `json:"emotionalWellbeing"`
	Sleep               int `json:"sleep"`
	CopingStrategies    int `json:"copingStrategies"`
	LifeBalance         int `json:"lifeBalance"`
	Mindfulness         int `json:"mindfulness"`
	Energy              int `json:"energy"`
	EmotionalExpression int `json:"emotionalExpression"`
	SelfCare            int `json:"selfCare"`
	Goals               int `json:"goals"`
}

// DimensionsFrom converts complete answers into Dimensions.
// Callers must check completeness first; missing slots read as zero.
func DimensionsFrom(answers []*int) Dimensions {
	at := func(i int) int {
		if i < len(answers) && answers[i] != nil {
			return *answers[i]
		}
		return 0
	}
	return Dimensions{
		StressManagement:    at(0),
		EmotionalWellbeing:  at(1),
		Sleep:               at(2),
		CopingStrategies:    at(3),
		LifeBalance:         at(4),
		Mindfulness:         at(5),
		Energy:              at(6),
		EmotionalExpression: at(7),
		SelfCare:            at(8),
		Goals:               at(9),
	}
}

// Questions returns the fixed assessment questionnaire.
func Questions() []Question {
	return []Question{
		{ID: 1, Text: "How often do you feel stressed or overwhelmed?",
			Options: []string{"Rarely", "Occasionally", "Frequently", "Almost always"}},
		{ID: 2, Text: "What is your most common emotional state lately?",
			Options: []string{"Happy & calm", "Anxious & restless", "Sad & unmotivated", "Irritable & frustrated"}},
		{ID: 3, Text: "How well do you sleep on most nights?",
			Options: []string{"Very well (7+ hours, restful)", "Decent (6-7 hours, slightly disturbed)",
				"Poorly (less than 6 hours, restless)", "Extremely poorly (insomnia, frequent waking)"}},
		{ID: 4, Text: "How do you usually cope with stress?",
			Options: []string{"Exercise or physical activity", "Talking to someone (friends, family)",
				"Distracting myself with media (TV, social media)", "Keeping it to myself"}},
		{ID: 5, Text: "What aspect of your life is currently the most challenging?",
			Options: []string{"Work or studies", "Relationships (family, friends, partner)",
				"Personal growth & motivation", "Health & physical well-being"}},
		{ID: 6, Text: "Do you engage in any mindfulness or relaxation activities?",
			Options: []string{"Yes, regularly", "Occasionally", "Rarely", "No, but I'm interested in trying"}},
		{ID: 7, Text: "How would you describe your daily energy levels?",
			Options: []string{"High and productive", "Moderate, but manageable", "Low and sluggish", "Extremely drained and exhausted"}},
		{ID: 8, Text: "Do you feel comfortable expressing your emotions to others?",
			Options: []string{"Yes, I openly talk about them", "Sometimes, with close people",
				"Rarely, I prefer to keep things private", "No, I struggle with expressing emotions"}},
		{ID: 9, Text: "What kind of self-care do you enjoy the most?",
			Options: []string{"Physical (exercise, skincare, sleep)", "Creative (art, music, writing)",
				"Social (spending time with others)", "Mental (reading, meditation, journaling)"}},
		{ID: 10, Text: "What are you hoping to gain from this personalized plan?",
			Options: []string{"Better stress management", "Improved sleep and relaxation",
				"More motivation and emotional balance", "General mental well-being improvement"}},
	}
}
