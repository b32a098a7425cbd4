package repository

import (
	"context"
	"errors"

	"github.com/DarkMK69/PTsTest/internal/model"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

// EntityRepository defines entity data access methods.
type EntityRepository interface {
	// Create stores a new entity with a generated identifier and
	// returns its view.
	Create(ctx context.Context, input model.CreateEntityInput) (*model.EntityView, error)

	// Get retrieves a single entity view by identifier.
	// Returns ErrNotFound if no entity matches.
	Get(ctx context.Context, id string) (*model.EntityView, error)

	// List returns one page of entity views. pageNumber is 1-based;
	// the window is clipped to the collection, and an out-of-range
	// page yields an empty item list with the true total count.
	List(ctx context.Context, pageNumber, pageSize int) (*model.PagedResult[model.EntityView], error)

	// ListAll returns an unpaged snapshot of all entity views together
	// with the store revision observed at the same instant. The
	// revision increments on every successful mutation.
	ListAll(ctx context.Context) ([]model.EntityView, uint64, error)

	// Update applies a partial update to the entity with the given
	// identifier. Returns ErrNotFound if no entity matches.
	Update(ctx context.Context, id string, patch model.EntityPatch) (*model.EntityView, error)

	// Delete removes the entity with the given identifier and reports
	// whether a removal occurred.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the current number of stored entities.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the repository.
	Close() error
}
