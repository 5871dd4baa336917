package ingest

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/linguanote/linguanote/internal/config"
	"github.com/linguanote/linguanote/internal/domain"
)

// entryStoreMock implements EntryStore with injectable behavior.
type entryStoreMock struct {
	mu sync.Mutex

	FindByTargetTextFunc func(ctx context.Context, languageID int64, text string) (*domain.LogEntry, error)
	InsertFunc           func(ctx context.Context, e *domain.LogEntry) (int64, error)
	UpdateFunc           func(ctx context.Context, id int64, fields map[string]any) (bool, error)

	inserted []domain.LogEntry
	updates  []map[string]any
}

func (m *entryStoreMock) FindByTargetText(ctx context.Context, languageID int64, text string) (*domain.LogEntry, error) {
	return m.FindByTargetTextFunc(ctx, languageID, text)
}

func (m *entryStoreMock) Insert(ctx context.Context, e *domain.LogEntry) (int64, error) {
	m.mu.Lock()
	m.inserted = append(m.inserted, *e)
	m.mu.Unlock()
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, e)
	}
	return int64(len(m.inserted)), nil
}

func (m *entryStoreMock) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	m.mu.Lock()
	m.updates = append(m.updates, fields)
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, fields)
	}
	return true, nil
}

// reviewStoreMock records every created review item.
type reviewStoreMock struct {
	mu sync.Mutex

	CreateFunc func(ctx context.Context, item *domain.ReviewItem) (int64, error)

	created []domain.ReviewItem
}

func (m *reviewStoreMock) Create(ctx context.Context, item *domain.ReviewItem) (int64, error) {
	m.mu.Lock()
	m.created = append(m.created, *item)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return int64(len(m.created)), nil
}

func (m *reviewStoreMock) items() []domain.ReviewItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ReviewItem(nil), m.created...)
}

// sourceNoteStoreMock records created provenance rows.
type sourceNoteStoreMock struct {
	mu sync.Mutex

	CreateFunc func(ctx context.Context, note *domain.SourceNote) (int64, error)

	created []domain.SourceNote
}

func (m *sourceNoteStoreMock) Create(ctx context.Context, note *domain.SourceNote) (int64, error) {
	m.mu.Lock()
	m.created = append(m.created, *note)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, note)
	}
	return int64(len(m.created)), nil
}

// languageStoreMock resolves every name to one fixed language.
type languageStoreMock struct {
	GetOrCreateByNameFunc func(ctx context.Context, name string) (*domain.Language, error)
}

func (m *languageStoreMock) GetOrCreateByName(ctx context.Context, name string) (*domain.Language, error) {
	if m.GetOrCreateByNameFunc != nil {
		return m.GetOrCreateByNameFunc(ctx, name)
	}
	return &domain.Language{ID: 1, Name: name}, nil
}

// txRunnerMock passes the callback straight through without a transaction.
type txRunnerMock struct{}

func (txRunnerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// classifierMock implements Classifier with injectable behavior.
type classifierMock struct {
	mu sync.Mutex

	ClassifyFunc func(ctx context.Context, text string) ([]domain.CandidateItem, error)

	calls int
}

func (m *classifierMock) Classify(ctx context.Context, text string) ([]domain.CandidateItem, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.ClassifyFunc(ctx, text)
}

// testDeps bundles the mocks behind one service under test.
type testDeps struct {
	entries     *entryStoreMock
	reviews     *reviewStoreMock
	sourceNotes *sourceNoteStoreMock
	languages   *languageStoreMock
	classifier  *classifierMock

	extract ExtractFunc
	slept   []time.Duration
}

// newTestService builds a Service over fresh mocks. Defaults: an empty
// store (every lookup misses), a classifier that returns no items, an
// extractor that returns the path as text, and an instant sleep.
func newTestService(t *testing.T) (*Service, *testDeps) {
	t.Helper()

	deps := &testDeps{
		entries: &entryStoreMock{
			FindByTargetTextFunc: func(ctx context.Context, languageID int64, text string) (*domain.LogEntry, error) {
				return nil, domain.ErrNotFound
			},
		},
		reviews:     &reviewStoreMock{},
		sourceNotes: &sourceNoteStoreMock{},
		languages:   &languageStoreMock{},
		classifier: &classifierMock{
			ClassifyFunc: func(ctx context.Context, text string) ([]domain.CandidateItem, error) {
				return nil, nil
			},
		},
	}
	deps.extract = func(path string) (string, error) {
		return "text of " + path, nil
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.IngestConfig{MaxConcurrent: 4, RetryCooldown: 45 * time.Second, PreviewLength: 200}

	svc := NewService(cfg, log,
		deps.entries, deps.reviews, deps.sourceNotes, deps.languages,
		txRunnerMock{}, deps.classifier,
		func(path string) (string, error) { return deps.extract(path) },
	)
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		deps.slept = append(deps.slept, d)
		return nil
	}
	return svc, deps
}
