package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/cache"
	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/observability"
)

// AnalysisService tokenizes and tags free text.
type AnalysisService struct {
	classifier *classifier.Classifier
	cache      cache.TagCache
	composed   bool
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AnalysisDependencies bundles collaborators for the analysis service.
type AnalysisDependencies struct {
	Classifier     *classifier.Classifier
	Cache          cache.TagCache
	ComposeUnicode bool
	Metrics        *observability.Metrics
	Logger         *zap.Logger
}

// NewAnalysisService constructs the service.
func NewAnalysisService(deps AnalysisDependencies) *AnalysisService {
	return &AnalysisService{
		classifier: deps.Classifier,
		cache:      deps.Cache,
		composed:   deps.ComposeUnicode,
		metrics:    deps.Metrics,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Tokenize returns the bag of words for text.
func (s *AnalysisService) Tokenize(text string) []string {
	return s.classifier.Tokenize(text)
}

// Classify tags text against both dictionaries. Cache failures fall back to
// computing the result.
func (s *AnalysisService) Classify(ctx context.Context, text string) (classifier.Result, error) {
	if s.cache == nil {
		s.metrics.RecordClassification(false)
		return s.classifier.Classify(text), nil
	}

	key := cache.Key(text, s.classifier.Emotional().Fingerprint(), s.classifier.Technical().Fingerprint(), s.composed)
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Debug("tag cache get failed", zap.Error(err))
	}
	if ok {
		s.metrics.RecordClassification(true)
		return *cached, nil
	}

	res := s.classifier.Classify(text)
	s.metrics.RecordClassification(false)
	storeKey := cache.Key(text, res.EmotionalFingerprint, res.TechnicalFingerprint, s.composed)
	if err := s.cache.Set(ctx, storeKey, res); err != nil {
		s.logger.Debug("tag cache set failed", zap.Error(err))
	}
	return res, nil
}
