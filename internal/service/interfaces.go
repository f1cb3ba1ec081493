package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
)

// ProjectService manages saved planning documents. The repository only ever
// sees serialized text; all structure lives on this side of the boundary.
type ProjectService interface {
	Create(ctx context.Context, name string) (*repository.ProjectRecord, error)
	// Open resolves ref as project name, exact ID, or unambiguous ID prefix.
	Open(ctx context.Context, ref string) (*domain.Project, *repository.ProjectRecord, error)
	Save(ctx context.Context, id string, p *domain.Project) error
	List(ctx context.Context) ([]*repository.ProjectRecord, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	// Export serializes the project and names the file after the export date.
	Export(ctx context.Context, ref string, now time.Time) (filename string, data []byte, err error)
}

// ImportPreview summarizes what an import would bring in. The caller shows
// these counts for confirmation before anything is committed.
type ImportPreview struct {
	StaffCount      int
	RoleCount       int
	DayCount        int
	SessionCount    int
	AssignmentCount int
	Warnings        []string
}

// ImportService validates import payloads and, after the caller confirms,
// commits them as new or replaced projects. Preview never mutates storage.
type ImportService interface {
	PreviewJSON(data []byte) (*ImportPreview, error)
	CommitJSON(ctx context.Context, name string, data []byte) (*repository.ProjectRecord, error)
	PreviewCSV(text string) (*ImportPreview, error)
	CommitCSV(ctx context.Context, name, text string) (*repository.ProjectRecord, []string, error)
}
