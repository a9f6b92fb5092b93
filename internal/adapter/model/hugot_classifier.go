package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/domain/service"
)

// HugotLoader builds in-process classifiers from a local model directory
type HugotLoader struct {
	log *zap.Logger
}

// NewHugotLoader creates a new HugotLoader
func NewHugotLoader(log *zap.Logger) *HugotLoader {
	return &HugotLoader{log: log}
}

// Load starts an inference session over the model artifact in modelDir
func (l *HugotLoader) Load(modelDir string) (service.Classifier, error) {
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create inference session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelDir,
		Name:      "toxicity",
	})
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			l.log.Warn("Failed to destroy inference session", zap.Error(destroyErr))
		}
		return nil, fmt.Errorf("failed to load model from %s: %w", modelDir, err)
	}

	l.log.Info("Model pipeline created", zap.String("model_dir", modelDir))

	return &HugotClassifier{
		session:  session,
		pipeline: pipeline,
	}, nil
}

// HugotClassifier adapts a hugot text-classification pipeline to the
// Classifier interface
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// Classify scores a single text
func (c *HugotClassifier) Classify(ctx context.Context, text string) (*service.Scores, error) {
	results, err := c.ClassifyBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// ClassifyBatch scores multiple texts
func (c *HugotClassifier) ClassifyBatch(_ context.Context, texts []string) ([]*service.Scores, error) {
	out, err := c.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	if len(out.ClassificationOutputs) != len(texts) {
		return nil, fmt.Errorf("inference returned %d results for %d inputs", len(out.ClassificationOutputs), len(texts))
	}

	results := make([]*service.Scores, len(texts))
	for i, outputs := range out.ClassificationOutputs {
		scores, err := scoresFromOutputs(outputs)
		if err != nil {
			return nil, err
		}
		results[i] = scores
	}

	return results, nil
}

// Close releases the underlying inference session
func (c *HugotClassifier) Close() error {
	return c.session.Destroy()
}

// scoresFromOutputs reads the toxic / not-toxic scores out of the
// pipeline's per-label output. When the pipeline reports only one of the
// two labels, the other is derived as its complement.
func scoresFromOutputs(outputs []pipelines.ClassificationOutput) (*service.Scores, error) {
	var (
		toxic, notToxic         float64
		haveToxic, haveNotToxic bool
	)

	for _, o := range outputs {
		switch normalizeLabel(o.Label) {
		case "TOXIC", "LABEL_1":
			toxic = float64(o.Score)
			haveToxic = true
		case "NOT_TOXIC", "NON_TOXIC", "LABEL_0":
			notToxic = float64(o.Score)
			haveNotToxic = true
		}
	}

	switch {
	case haveToxic && haveNotToxic:
	case haveToxic:
		notToxic = 1 - toxic
	case haveNotToxic:
		toxic = 1 - notToxic
	default:
		return nil, fmt.Errorf("model output has no recognized toxicity labels (%d labels)", len(outputs))
	}

	return &service.Scores{Toxic: toxic, NotToxic: notToxic}, nil
}

func normalizeLabel(label string) string {
	label = strings.ToUpper(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, "-", "_")
	label = strings.ReplaceAll(label, " ", "_")
	return label
}
