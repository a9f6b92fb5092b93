package service

import "context"

// Scores holds the raw toxic / not-toxic scores produced by the model
// for a single text. The two values are model confidences in [0,1] and
// are not required to sum to exactly 1.
type Scores struct {
	Toxic    float64 `json:"toxic"`
	NotToxic float64 `json:"not_toxic"`
}

// Classifier defines the interface for text toxicity classification
type Classifier interface {
	// Classify scores a single text
	Classify(ctx context.Context, text string) (*Scores, error)

	// ClassifyBatch scores multiple texts
	ClassifyBatch(ctx context.Context, texts []string) ([]*Scores, error)
}

// ModelLoader builds a Classifier from a local model artifact directory
type ModelLoader interface {
	Load(modelDir string) (Classifier, error)
}
