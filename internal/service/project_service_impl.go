package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/importer"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	newID    func() string
	now      func() time.Time
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork) ProjectService {
	return &projectService{
		projects: projects,
		uow:      uow,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (s *projectService) Create(ctx context.Context, name string) (*repository.ProjectRecord, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	data, err := importer.Encode(domain.NewProject())
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec := &repository.ProjectRecord{
		ID:        s.newID(),
		Name:      name,
		Document:  string(data),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Name check and insert share one transaction so two creates cannot race
	// past each other.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteProjectRepo(tx)
		if _, err := repo.GetByName(ctx, name); err == nil {
			return fmt.Errorf("project %q already exists", name)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return repo.Create(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *projectService) Open(ctx context.Context, ref string) (*domain.Project, *repository.ProjectRecord, error) {
	rec, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	schema, errs := importer.Decode([]byte(rec.Document))
	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("stored document for project %q is damaged: %w", rec.Name, errors.Join(errs...))
	}
	p, err := importer.Convert(schema)
	if err != nil {
		return nil, nil, fmt.Errorf("stored document for project %q is damaged: %w", rec.Name, err)
	}
	return p, rec, nil
}

func (s *projectService) Save(ctx context.Context, id string, p *domain.Project) error {
	data, err := importer.Encode(p)
	if err != nil {
		return err
	}
	return s.projects.UpdateDocument(ctx, id, string(data))
}

func (s *projectService) List(ctx context.Context) ([]*repository.ProjectRecord, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Rename(ctx context.Context, id, name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	return s.projects.Rename(ctx, id, name)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

func (s *projectService) Export(ctx context.Context, ref string, now time.Time) (string, []byte, error) {
	p, _, err := s.Open(ctx, ref)
	if err != nil {
		return "", nil, err
	}
	data, err := importer.Encode(p)
	if err != nil {
		return "", nil, err
	}
	return importer.ExportFilename(now), data, nil
}

// resolve finds a record by name, exact ID, then unambiguous ID prefix.
func (s *projectService) resolve(ctx context.Context, ref string) (*repository.ProjectRecord, error) {
	if ref == "" {
		return nil, fmt.Errorf("project reference is required")
	}

	if rec, err := s.projects.GetByName(ctx, ref); err == nil {
		return rec, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	records, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == ref {
			return rec, nil
		}
	}

	var matches []*repository.ProjectRecord
	for _, rec := range records {
		if strings.HasPrefix(rec.ID, ref) {
			matches = append(matches, rec)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
