package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a project row does not exist.
var ErrNotFound = errors.New("project not found")

// ProjectRecord is one saved planning document. Document is the serialized
// JSON payload; the storage layer treats it as opaque text and knows nothing
// about its inner shape.
type ProjectRecord struct {
	ID        string
	Name      string
	Document  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProjectRepo interface {
	Create(ctx context.Context, rec *ProjectRecord) error
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)
	GetByName(ctx context.Context, name string) (*ProjectRecord, error)
	List(ctx context.Context) ([]*ProjectRecord, error)
	UpdateDocument(ctx context.Context, id, document string) error
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}
