package tone

import "strings"

// Label 是心情备注的粗粒度语气标签。
type Label string

const (
	Neutral  Label = "neutral"
	Positive Label = "positive"
	Low      Label = "low"
	Anxious  Label = "anxious"
	Angry    Label = "angry"
)

// Decision carries the winning label and its keyword score.
type Decision struct {
	Tone  Label `json:"tone"`
	Score int   `json:"score"`
}

var keywordBuckets = map[Label][]string{
	Positive: {
		"happy", "great", "good day", "grateful", "thankful", "calm", "relaxed", "proud", "excited", "love",
		"enjoyed", "fun", "peaceful", "better", "rested", "motivated", "开心", "高兴", "满意",
	},
	Low: {
		"sad", "down", "lonely", "alone", "tired", "exhausted", "empty", "hopeless", "cry", "cried", "miss",
		"unmotivated", "drained", "worthless", "难过", "失落", "孤单",
	},
	Anxious: {
		"anxious", "anxiety", "worried", "worry", "nervous", "panic", "stressed", "stress", "overwhelmed",
		"scared", "afraid", "restless", "deadline", "焦虑", "紧张",
	},
	Angry: {
		"angry", "furious", "mad", "annoyed", "irritated", "frustrated", "rage", "hate", "fed up", "生气", "烦",
	},
}

// bucketOrder breaks score ties deterministically; map iteration order is random.
var bucketOrder = []Label{Low, Anxious, Angry, Positive}

// Analyze scores a free-text note against the keyword buckets.
func Analyze(note string) Decision {
	normalized := strings.ToLower(strings.TrimSpace(note))
	if normalized == "" {
		return Decision{Tone: Neutral}
	}

	best := Decision{Tone: Neutral}
	for _, label := range bucketOrder {
		score := 0
		for _, word := range keywordBuckets[label] {
			if strings.Contains(normalized, word) {
				score += 3
			}
		}
		if label == Positive {
			score += strings.Count(note, "!")
		}
		if score > best.Score {
			best = Decision{Tone: label, Score: score}
		}
	}
	return best
}
