package repository

import (
	"context"
	"sync"
	"time"

	"github.com/DarkMK69/PTsTest/internal/model"
	"github.com/DarkMK69/PTsTest/pkg/uid"
)

// SeedEntityID is the identifier of the record loaded at startup.
const SeedEntityID = "11111111-1111-1111-1111-111111111111"

// MemoryEntityRepository is the in-memory implementation of
// EntityRepository. The collection is an ordered slice guarded by a
// single RWMutex; all reads and writes go through the lock, so no
// caller ever observes the collection mid-mutation.
type MemoryEntityRepository struct {
	mu       sync.RWMutex
	entities []*model.Entity
	revision uint64
}

// NewMemoryEntityRepository creates an in-memory entity repository
// preloaded with the seed record.
func NewMemoryEntityRepository() *MemoryEntityRepository {
	r := &MemoryEntityRepository{}
	r.entities = append(r.entities, &model.Entity{
		ID:        SeedEntityID,
		Name:      "Initial Item",
		CreatedAt: time.Now().UTC(),
		Priority:  model.PriorityMedium,
		Tags:      []string{"demo"},
		Metadata:  map[string]string{"env": "seed"},
	})
	return r
}

// Create stores a new entity. Unsupplied optional fields default to
// isActive=true, priority=medium, and empty (never nil) tags/metadata.
func (r *MemoryEntityRepository) Create(ctx context.Context, input model.CreateEntityInput) (*model.EntityView, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	priority := model.PriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	entity := &model.Entity{
		ID:          uid.New(),
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		Price:       input.Price,
		CreatedAt:   time.Now().UTC(),
		IsActive:    isActive,
		Priority:    priority,
		Tags:        tags,
		Metadata:    metadata,
		Rating:      input.Rating,
		Counter:     input.Counter,
		Website:     input.Website,
		BirthDate:   input.BirthDate,
		AlarmTime:   input.AlarmTime,
		RefID:       input.RefID,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}

	r.mu.Lock()
	r.entities = append(r.entities, entity)
	r.revision++
	r.mu.Unlock()

	view := entity.View()
	return &view, nil
}

// Get retrieves an entity view by identifier.
func (r *MemoryEntityRepository) Get(ctx context.Context, id string) (*model.EntityView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entities {
		if e.ID == id {
			view := e.View()
			return &view, nil
		}
	}
	return nil, ErrNotFound
}

// List returns one page of entity views. The window starting at
// (pageNumber-1)*pageSize is clipped to the collection bounds; a page
// past the end succeeds with an empty item list.
func (r *MemoryEntityRepository) List(ctx context.Context, pageNumber, pageSize int) (*model.PagedResult[model.EntityView], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.entities)

	size := pageSize
	if size < 0 {
		size = 0
	}
	offset := (pageNumber - 1) * size
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + size
	if end > total {
		end = total
	}

	items := make([]model.EntityView, 0, end-offset)
	for _, e := range r.entities[offset:end] {
		items = append(items, e.View())
	}

	result := model.NewPagedResult(items, pageNumber, pageSize, total)
	return &result, nil
}

// ListAll returns an unpaged snapshot of all entity views and the
// store revision, both observed under the same lock.
func (r *MemoryEntityRepository) ListAll(ctx context.Context) ([]model.EntityView, uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	views := make([]model.EntityView, 0, len(r.entities))
	for _, e := range r.entities {
		views = append(views, e.View())
	}
	return views, r.revision, nil
}

// Update applies a partial update. Fields left nil in the patch keep
// their stored values; tags and metadata are replaced wholesale.
func (r *MemoryEntityRepository) Update(ctx context.Context, id string, patch model.EntityPatch) (*model.EntityView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var existing *model.Entity
	for _, e := range r.entities {
		if e.ID == id {
			existing = e
			break
		}
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Quantity != nil {
		existing.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		existing.Price = *patch.Price
	}
	if patch.IsActive != nil {
		existing.IsActive = *patch.IsActive
	}
	if patch.Priority != nil {
		existing.Priority = *patch.Priority
	}
	if patch.Tags != nil {
		existing.Tags = *patch.Tags
	}
	if patch.Metadata != nil {
		existing.Metadata = *patch.Metadata
	}
	if patch.Rating != nil {
		existing.Rating = *patch.Rating
	}
	if patch.Counter != nil {
		existing.Counter = *patch.Counter
	}
	if patch.Website != nil {
		existing.Website = patch.Website
	}
	if patch.BirthDate != nil {
		existing.BirthDate = patch.BirthDate
	}
	if patch.AlarmTime != nil {
		existing.AlarmTime = patch.AlarmTime
	}
	if patch.RefID != nil {
		existing.RefID = patch.RefID
	}
	if patch.Email != nil {
		existing.Email = patch.Email
	}
	if patch.PhoneNumber != nil {
		existing.PhoneNumber = patch.PhoneNumber
	}

	now := time.Now().UTC()
	existing.UpdatedAt = &now
	r.revision++

	view := existing.View()
	return &view, nil
}

// Delete removes the entity with the given identifier.
func (r *MemoryEntityRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entities {
		if e.ID == id {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			r.revision++
			return true, nil
		}
	}
	return false, nil
}

// Count returns the current number of stored entities.
func (r *MemoryEntityRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities), nil
}

// Close is a no-op for the in-memory repository.
func (r *MemoryEntityRepository) Close() error {
	return nil
}
