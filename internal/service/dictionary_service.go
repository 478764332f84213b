package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// DictionaryService grows the emotional and technical dictionaries.
type DictionaryService struct {
	classifier *classifier.Classifier
	store      repository.DictionaryRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// DictionaryDependencies bundles collaborators for the dictionary service.
type DictionaryDependencies struct {
	Classifier *classifier.Classifier
	Store      repository.DictionaryRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewDictionaryService constructs the service.
func NewDictionaryService(deps DictionaryDependencies) *DictionaryService {
	return &DictionaryService{
		classifier: deps.Classifier,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Load fills the in-process dictionaries from the store.
func (s *DictionaryService) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	for _, kind := range []classifier.Kind{classifier.KindEmotional, classifier.KindTechnical} {
		d, err := s.classifier.Dictionary(kind)
		if err != nil {
			return err
		}
		entries, err := s.store.List(ctx, kind)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := d.Add(e.Word, e.Category); err != nil {
				s.logger.Warn("skipping stored dictionary entry", zap.String("dictionary", string(kind)), zap.Error(err))
			}
		}
		s.logger.Info("dictionary loaded", zap.String("dictionary", string(kind)), zap.Int("entries", d.Len()))
	}
	return nil
}

// Seed inserts entries that are not present yet and returns how many were added.
func (s *DictionaryService) Seed(ctx context.Context, kind classifier.Kind, entries []classifier.Entry) (int, error) {
	added := 0
	for _, e := range entries {
		if tokens := s.unmatchable(e.Word); tokens != nil {
			s.logger.Warn("skipping seed word that never matches a token",
				zap.String("dictionary", string(kind)),
				zap.String("word", e.Word),
				zap.Strings("tokens", tokens))
			continue
		}
		_, outcome, err := s.AddWord(ctx, nil, kind, e.Word, e.Category)
		if outcome == classifier.OutcomeAlreadyExists {
			continue
		}
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// AddEmotionalWord inserts into the emotional dictionary.
func (s *DictionaryService) AddEmotionalWord(ctx context.Context, actor *domain.User, word, category string) (classifier.Entry, classifier.Outcome, error) {
	return s.AddWord(ctx, actor, classifier.KindEmotional, word, category)
}

// AddTechnicalWord inserts into the technical dictionary.
func (s *DictionaryService) AddTechnicalWord(ctx context.Context, actor *domain.User, word, category string) (classifier.Entry, classifier.Outcome, error) {
	return s.AddWord(ctx, actor, classifier.KindTechnical, word, category)
}

// AddWord inserts word into the dictionary of kind. A word already present
// ignoring case yields OutcomeAlreadyExists and a CONFLICT error; the
// dictionary is left as it was. Words the tokenizer would never produce as a
// single token are rejected.
func (s *DictionaryService) AddWord(ctx context.Context, actor *domain.User, kind classifier.Kind, word, category string) (classifier.Entry, classifier.Outcome, error) {
	word = strings.TrimSpace(word)
	category = strings.TrimSpace(category)
	if word == "" || category == "" {
		return classifier.Entry{}, "", apperrors.NewValidationError("word and category required", nil)
	}
	if tokens := s.unmatchable(word); tokens != nil {
		return classifier.Entry{}, "", apperrors.NewValidationError("word never matches a token",
			map[string]any{"word": word, "tokens": tokens})
	}
	d, err := s.classifier.Dictionary(kind)
	if err != nil {
		return classifier.Entry{}, "", apperrors.NewNotFound("dictionary", map[string]any{"dictionary": string(kind)})
	}

	entry, err := d.AddCommit(word, category, func(e classifier.Entry) error {
		if s.store == nil {
			return nil
		}
		return s.store.Append(ctx, kind, e)
	})
	if err != nil {
		var dup *classifier.DuplicateWordError
		switch {
		case errors.As(err, &dup):
			s.metrics.RecordWordInsert(string(kind), false)
			return classifier.Entry{}, classifier.OutcomeAlreadyExists, duplicateError(kind, word, dup.Existing.Category, err)
		case errors.Is(err, repository.ErrAlreadyExists):
			// Another instance stored it first.
			s.resync(ctx, kind, d)
			existing := ""
			if e, ok := d.Lookup(word); ok {
				existing = e.Category
			}
			s.metrics.RecordWordInsert(string(kind), false)
			return classifier.Entry{}, classifier.OutcomeAlreadyExists, duplicateError(kind, word, existing, err)
		}
		return classifier.Entry{}, "", err
	}

	s.metrics.RecordWordInsert(string(kind), true)
	s.logger.Info("dictionary word added",
		zap.String("dictionary", string(kind)),
		zap.String("word", entry.Word),
		zap.String("category", entry.Category))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:  events.EventDictionaryWordAdded,
		Actor: actorOf(actor),
		Payload: events.DictionaryWordAddedPayload{
			Dictionary: string(kind),
			Word:       entry.Word,
			Category:   entry.Category,
		},
	})
	return entry, classifier.OutcomeAdded, nil
}

// List returns the entries of a dictionary in insertion order.
func (s *DictionaryService) List(kind classifier.Kind) ([]classifier.Entry, error) {
	d, err := s.classifier.Dictionary(kind)
	if err != nil {
		return nil, apperrors.NewNotFound("dictionary", map[string]any{"dictionary": string(kind)})
	}
	return d.Entries(), nil
}

// unmatchable returns the tokens of word when they are not exactly the word's
// own key, or nil when the word can match.
func (s *DictionaryService) unmatchable(word string) []string {
	word = strings.TrimSpace(word)
	tokens := s.classifier.Tokenize(word)
	if len(tokens) == 1 && tokens[0] == classifier.WordKey(word) {
		return nil
	}
	if tokens == nil {
		tokens = []string{}
	}
	return tokens
}

// resync adds stored entries the in-process dictionary is missing.
func (s *DictionaryService) resync(ctx context.Context, kind classifier.Kind, d *classifier.Dictionary) {
	entries, err := s.store.List(ctx, kind)
	if err != nil {
		s.logger.Warn("dictionary resync failed", zap.String("dictionary", string(kind)), zap.Error(err))
		return
	}
	added := 0
	for _, e := range entries {
		if _, ok := d.Lookup(e.Word); ok {
			continue
		}
		if _, err := d.Add(e.Word, e.Category); err == nil {
			added++
		}
	}
	if added > 0 {
		s.logger.Info("dictionary resynced from store", zap.String("dictionary", string(kind)), zap.Int("added", added))
	}
}

func duplicateError(kind classifier.Kind, word, existingCategory string, cause error) error {
	details := map[string]any{"dictionary": string(kind), "word": word}
	if existingCategory != "" {
		details["existing_category"] = existingCategory
	}
	de := apperrors.NewDomainError("CONFLICT", string(classifier.OutcomeAlreadyExists), http.StatusConflict, details)
	de.Err = cause
	return de
}
