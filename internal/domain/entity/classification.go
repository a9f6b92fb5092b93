package entity

// ToxicThreshold is the score at or above which a text is labeled toxic
const ToxicThreshold = 0.5

// Classification represents the outcome of scoring a single text
type Classification struct {
	Text          string  `json:"text"`
	IsToxic       bool    `json:"is_toxic"`
	ToxicScore    float64 `json:"toxic_score"`
	NotToxicScore float64 `json:"not_toxic_score"`
	Confidence    float64 `json:"confidence"`
}

// NewClassification derives a Classification from raw model scores.
// Confidence is the larger of the two scores.
func NewClassification(text string, toxicScore, notToxicScore float64) *Classification {
	confidence := toxicScore
	if notToxicScore > confidence {
		confidence = notToxicScore
	}

	return &Classification{
		Text:          text,
		IsToxic:       toxicScore >= ToxicThreshold,
		ToxicScore:    toxicScore,
		NotToxicScore: notToxicScore,
		Confidence:    confidence,
	}
}
