package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/domain/entity"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/cache"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/metrics"
)

// ToxicityUsecase defines the interface for toxicity analysis
type ToxicityUsecase interface {
	Analyze(ctx context.Context, text string) (*entity.Classification, error)
	AnalyzeBatch(ctx context.Context, texts []string) ([]*entity.Classification, error)
}

type toxicityUsecase struct {
	provider ModelProvider
	results  *cache.ResultCache
	log      *zap.Logger
}

// NewToxicityUsecase creates a new toxicity usecase. results may be nil,
// in which case no caching happens.
func NewToxicityUsecase(provider ModelProvider, results *cache.ResultCache, log *zap.Logger) ToxicityUsecase {
	return &toxicityUsecase{
		provider: provider,
		results:  results,
		log:      log,
	}
}

func (u *toxicityUsecase) Analyze(ctx context.Context, text string) (*entity.Classification, error) {
	if cached, ok := u.results.Get(ctx, text); ok {
		return cached, nil
	}

	classifier, err := u.provider.Ensure(ctx)
	if err != nil {
		metrics.ClassificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("error loading model: %w", err)
	}

	scores, err := classifier.Classify(ctx, text)
	if err != nil {
		metrics.ClassificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("error in prediction: %w", err)
	}

	result := entity.NewClassification(text, scores.Toxic, scores.NotToxic)
	metrics.ClassificationsTotal.WithLabelValues(outcomeLabel(result)).Inc()

	u.results.Set(ctx, text, result)

	return result, nil
}

func (u *toxicityUsecase) AnalyzeBatch(ctx context.Context, texts []string) ([]*entity.Classification, error) {
	classifier, err := u.provider.Ensure(ctx)
	if err != nil {
		metrics.ClassificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("error loading model: %w", err)
	}

	scores, err := classifier.ClassifyBatch(ctx, texts)
	if err != nil {
		metrics.ClassificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("error in prediction: %w", err)
	}

	results := make([]*entity.Classification, len(scores))
	for i, s := range scores {
		results[i] = entity.NewClassification(texts[i], s.Toxic, s.NotToxic)
		metrics.ClassificationsTotal.WithLabelValues(outcomeLabel(results[i])).Inc()
	}

	return results, nil
}

func outcomeLabel(c *entity.Classification) string {
	if c.IsToxic {
		return "toxic"
	}
	return "not_toxic"
}
