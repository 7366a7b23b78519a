package service

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/storage"
)

type mockAssetRepo struct {
	mock.Mock
}

func (m *mockAssetRepo) Create(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *mockAssetRepo) List(ctx context.Context, filter models.AssetFilter) ([]models.AssetWithCategory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssetWithCategory), args.Error(1)
}

func (m *mockAssetRepo) Update(ctx context.Context, id string, patch models.AssetPatch) (*models.Asset, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *mockAssetRepo) Archive(ctx context.Context, id string) (*models.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryRepo) Upsert(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

type mockSeeder struct {
	mock.Mock
}

func (m *mockSeeder) SeedDemo(ctx context.Context, user *models.User, workspace *models.Workspace, member *models.WorkspaceMember) error {
	args := m.Called(ctx, user, workspace, member)
	return args.Error(0)
}

// memoryStore хранит файлы в памяти.
type memoryStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string][]byte)}
}

func (s *memoryStore) Save(_ context.Context, userID, originalName, _ string, _ int64, r io.Reader) (*storage.StoredFile, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	path := userID + "/" + storage.SanitizeFilename(originalName)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = buf.Bytes()
	return &storage.StoredFile{Path: path, Size: int64(buf.Len())}, nil
}

func (s *memoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	s.deleted = append(s.deleted, path)
	return nil
}

type publishedEvent struct {
	userID string
	event  string
	asset  *models.Asset
}

type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) PublishAssetEvent(userID, event string, asset *models.Asset) {
	p.events = append(p.events, publishedEvent{userID: userID, event: event, asset: asset})
}
