package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestAddWord_PersistsAndPublishes(t *testing.T) {
	f := newFixture(t)
	staff := f.register(t, "luis@uni.edu", domain.RoleStaff)
	ctx := context.Background()

	entry, outcome, err := f.dicts.AddEmotionalWord(ctx, staff, "  Lento ", "frustración")
	require.NoError(t, err)
	assert.Equal(t, classifier.OutcomeAdded, outcome)
	assert.Equal(t, classifier.Entry{Word: "Lento", Category: "frustración"}, entry)

	stored, err := f.dictStore.List(ctx, classifier.KindEmotional)
	require.NoError(t, err)
	assert.Equal(t, []classifier.Entry{entry}, stored)

	require.Len(t, f.published, 1)
	assert.Equal(t, events.EventDictionaryWordAdded, f.published[0].Type)
	assert.Equal(t, "luis@uni.edu", f.published[0].Actor.Email)
	assert.NotEmpty(t, f.published[0].ID)
	assert.Equal(t, int64(1), f.metrics.Snapshot().WordsAdded["emotional"])
}

func TestAddWord_DuplicateIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.dicts.AddEmotionalWord(ctx, nil, "Lento", "frustración")
	require.NoError(t, err)

	_, outcome, err := f.dicts.AddEmotionalWord(ctx, nil, "lento", "alegría")
	assert.Equal(t, classifier.OutcomeAlreadyExists, outcome)
	assert.ErrorIs(t, err, classifier.ErrDuplicateWord)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", de.Code)
	assert.Equal(t, "already exists", de.Message)
	assert.Equal(t, "frustración", de.Details["existing_category"])

	got, ok := f.classifier.Emotional().Lookup("LENTO")
	require.True(t, ok)
	assert.Equal(t, "frustración", got.Category)
	assert.Equal(t, int64(1), f.metrics.Snapshot().WordsDuplicate["emotional"])
}

func TestAddWord_DictionariesAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, out, err := f.dicts.AddEmotionalWord(ctx, nil, "bloqueado", "enojo")
	require.NoError(t, err)
	assert.Equal(t, classifier.OutcomeAdded, out)
	_, out, err = f.dicts.AddTechnicalWord(ctx, nil, "bloqueado", "cuentas")
	require.NoError(t, err)
	assert.Equal(t, classifier.OutcomeAdded, out)
}

func TestAddWord_RequiresWordAndCategory(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.dicts.AddTechnicalWord(context.Background(), nil, "   ", "redes")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Equal(t, 0, f.classifier.Technical().Len())
}

type failingDictionaryStore struct {
	repository.DictionaryRepository
	err error
}

func (s failingDictionaryStore) Append(context.Context, classifier.Kind, classifier.Entry) error {
	return s.err
}

func TestAddWord_StoreFailureLeavesDictionaryUnchanged(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("db down")
	svc := NewDictionaryService(DictionaryDependencies{
		Classifier: f.classifier,
		Store:      failingDictionaryStore{err: boom},
	})

	_, _, err := svc.AddTechnicalWord(context.Background(), nil, "wifi", "redes")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, f.classifier.Technical().Len())
}

func TestDictionaryLoad_RestoresStoredEntries(t *testing.T) {
	store := repository.NewMemoryDictionaryRepository()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, classifier.KindTechnical, classifier.Entry{Word: "impresora", Category: "hardware"}))
	require.NoError(t, store.Append(ctx, classifier.KindEmotional, classifier.Entry{Word: "gracias", Category: "satisfacción"}))

	c := classifier.New(nil)
	svc := NewDictionaryService(DictionaryDependencies{Classifier: c, Store: store})
	require.NoError(t, svc.Load(ctx))

	res := c.Classify("Gracias, la impresora ya imprime")
	assert.Equal(t, []string{"satisfacción"}, res.Emotions)
	assert.Equal(t, []string{"hardware"}, res.Categories)
}

func TestDictionarySeed_SkipsExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.dicts.AddTechnicalWord(ctx, nil, "wifi", "redes")
	require.NoError(t, err)

	added, err := f.dicts.Seed(ctx, classifier.KindTechnical, []classifier.Entry{
		{Word: "WiFi", Category: "redes"},
		{Word: "impresora", Category: "hardware"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	entries, err := f.dicts.List(classifier.KindTechnical)
	require.NoError(t, err)
	assert.Equal(t, []classifier.Entry{
		{Word: "wifi", Category: "redes"},
		{Word: "impresora", Category: "hardware"},
	}, entries)

	_, err = f.dicts.List(classifier.Kind("other"))
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestAddWord_StoreConflictLearnsStoredEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.dictStore.Append(ctx, classifier.KindTechnical, classifier.Entry{Word: "wifi", Category: "redes"}))
	require.NoError(t, f.dictStore.Append(ctx, classifier.KindTechnical, classifier.Entry{Word: "monitor", Category: "hardware"}))

	_, outcome, err := f.dicts.AddTechnicalWord(ctx, nil, "WiFi", "otra")
	require.Error(t, err)
	assert.Equal(t, classifier.OutcomeAlreadyExists, outcome)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", de.Code)
	assert.Equal(t, "redes", de.Details["existing_category"])

	assert.Equal(t, []string{"redes", "hardware"}, f.classifier.Classify("el wifi y el monitor").Categories)
	assert.Empty(t, f.published)
}

func TestAddWord_RejectsWordsThatNeverMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, word := range []string{"wi-fi", "no funciona", "niño", "!!!"} {
		_, outcome, err := f.dicts.AddTechnicalWord(ctx, nil, word, "redes")
		require.Error(t, err, word)
		assert.Empty(t, outcome)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code, word)
	}
	assert.Equal(t, 0, f.classifier.Technical().Len())

	stored, err := f.dictStore.List(ctx, classifier.KindTechnical)
	require.NoError(t, err)
	assert.Empty(t, stored)

	_, outcome, err := f.dicts.AddTechnicalWord(ctx, nil, "Matrícula", "registro")
	require.NoError(t, err)
	assert.Equal(t, classifier.OutcomeAdded, outcome)
}

func TestDictionarySeed_SkipsWordsThatNeverMatch(t *testing.T) {
	f := newFixture(t)

	added, err := f.dicts.Seed(context.Background(), classifier.KindTechnical, []classifier.Entry{
		{Word: "contraseña", Category: "cuentas"},
		{Word: "clave", Category: "cuentas"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, []classifier.Entry{{Word: "clave", Category: "cuentas"}}, f.classifier.Technical().Entries())
}
