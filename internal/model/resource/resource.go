package resource

// Link is one entry of a resource category.
type Link struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// Category groups related mental health resources.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Links       []Link `json:"links"`
}

// Disclaimer is shown under the resource directory.
const Disclaimer = "MindfulAI is not a substitute for professional medical advice, diagnosis, or treatment. " +
	"If you're experiencing a mental health emergency, please call your local emergency services " +
	"or visit the nearest emergency room."

// Emergency 紧急求助入口，所有页面可见。
func Emergency() []Link {
	return []Link{
		{Name: "988 Suicide & Crisis Lifeline", Href: "tel:988"},
		{Name: "Find Local Support", Href: "#"},
	}
}

// Seed provides the resource directory.
func Seed() []Category {
	return []Category{
		{
			ID:          "crisis-hotlines",
			Title:       "Crisis Hotlines",
			Description: "Immediate support for those in crisis or experiencing suicidal thoughts.",
			Links: []Link{
				{Name: "988 Suicide & Crisis Lifeline", Href: "tel:988"},
				{Name: "Crisis Text Line", Href: "sms:741741"},
				{Name: "Veterans Crisis Line", Href: "tel:18002738255"},
			},
		},
		{
			ID:          "online-therapy",
			Title:       "Online Therapy",
			Description: "Connect with licensed therapists from the comfort of your home.",
			Links: []Link{
				{Name: "BetterHelp", Href: "https://www.betterhelp.com"},
				{Name: "Talkspace", Href: "https://www.talkspace.com"},
				{Name: "Cerebral", Href: "https://cerebral.com"},
			},
		},
		{
			ID:          "support-groups",
			Title:       "Support Groups",
			Description: "Connect with others who understand what you're going through.",
			Links: []Link{
				{Name: "NAMI Support Groups", Href: "https://www.nami.org/Support-Education/Support-Groups"},
				{Name: "Mental Health America", Href: "https://www.mhanational.org/find-support-groups"},
				{Name: "7 Cups", Href: "https://www.7cups.com"},
			},
		},
		{
			ID:          "education",
			Title:       "Educational Resources",
			Description: "Learn more about mental health conditions and treatment options.",
			Links: []Link{
				{Name: "NIMH", Href: "https://www.nimh.nih.gov"},
				{Name: "Psychology Today", Href: "https://www.psychologytoday.com"},
				{Name: "Mental Health First Aid", Href: "https://www.mentalhealthfirstaid.org"},
			},
		},
		{
			ID:          "books",
			Title:       "Self-Help Books",
			Description: "Recommended reading for various mental health topics.",
			Links: []Link{
				{Name: "Feeling Good by David Burns", Href: "#"},
				{Name: "The Anxiety and Phobia Workbook", Href: "#"},
				{Name: "The Body Keeps the Score", Href: "#"},
			},
		},
		{
			ID:          "mindfulness",
			Title:       "Meditation & Mindfulness",
			Description: "Apps and resources for practicing mindfulness and meditation.",
			Links: []Link{
				{Name: "Headspace", Href: "https://www.headspace.com"},
				{Name: "Calm", Href: "https://www.calm.com"},
				{Name: "Insight Timer", Href: "https://insighttimer.com"},
			},
		},
	}
}
