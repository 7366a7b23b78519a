package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"
)

// memoryAssetRepo хранит ассеты в памяти и повторяет семантику AssetRepository.
type memoryAssetRepo struct {
	mu         sync.Mutex
	assets     map[string]*models.Asset
	categories map[string]models.Category
	creates    int
}

func newMemoryAssetRepo(categories ...models.Category) *memoryAssetRepo {
	repo := &memoryAssetRepo{
		assets:     make(map[string]*models.Asset),
		categories: make(map[string]models.Category),
	}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *memoryAssetRepo) Create(_ context.Context, asset *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.creates++
	category, ok := r.categories[asset.CategoryID]
	if !ok || category.UserID != asset.UserID {
		return apperror.ErrMissingReference
	}

	now := time.Now()
	asset.CreatedAt, asset.UpdatedAt = now, now
	stored := *asset
	r.assets[asset.ID] = &stored
	return nil
}

func (r *memoryAssetRepo) List(_ context.Context, filter models.AssetFilter) ([]models.AssetWithCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	items := make([]models.AssetWithCategory, 0)
	for _, a := range r.assets {
		if a.UserID != filter.UserID || a.IsArchived {
			continue
		}
		if filter.CategoryID != "" && a.CategoryID != filter.CategoryID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(a.Title+" "+a.UserDescription), q) {
			continue
		}
		c := r.categories[a.CategoryID]
		items = append(items, models.AssetWithCategory{Asset: *a, Category: models.CategoryRef{ID: c.ID, Name: c.Name}})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (r *memoryAssetRepo) Update(_ context.Context, id string, p models.AssetPatch) (*models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assets[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.UserDescription != nil {
		a.UserDescription = *p.UserDescription
	}
	if p.CategoryID != nil {
		a.CategoryID = *p.CategoryID
	}
	if p.Tags != nil {
		a.Tags = pq.StringArray(*p.Tags)
	}
	if p.IsFavorite != nil {
		a.IsFavorite = *p.IsFavorite
	}
	if p.IsArchived != nil {
		a.IsArchived = *p.IsArchived
	}
	a.UpdatedAt = time.Now()
	updated := *a
	return &updated, nil
}

func (r *memoryAssetRepo) Archive(_ context.Context, id string) (*models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assets[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	a.IsArchived = true
	if a.DeletedAt == nil {
		now := time.Now()
		a.DeletedAt = &now
	}
	archived := *a
	return &archived, nil
}

// memoryCategoryRepo поглощает дубликаты (user_id, name) как ON CONFLICT.
type memoryCategoryRepo struct {
	mu   sync.Mutex
	rows []models.Category
}

func (r *memoryCategoryRepo) ListByUser(_ context.Context, userID string) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Category, 0)
	for _, c := range r.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryCategoryRepo) Upsert(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.rows {
		if c.UserID == category.UserID && c.Name == category.Name {
			*category = c
			return nil
		}
	}
	category.CreatedAt = time.Now()
	r.rows = append(r.rows, *category)
	return nil
}
