package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/csvimport"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/importer"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/timeutil"
	"github.com/google/uuid"
)

type importService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	newID    func() string
	now      func() time.Time
}

func NewImportService(projects repository.ProjectRepo, uow db.UnitOfWork) ImportService {
	return &importService{
		projects: projects,
		uow:      uow,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (s *importService) PreviewJSON(data []byte) (*ImportPreview, error) {
	schema, errs := importer.Decode(data)
	if len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	p, err := importer.Convert(schema)
	if err != nil {
		return nil, err
	}
	return previewOf(p, nil), nil
}

func (s *importService) CommitJSON(ctx context.Context, name string, data []byte) (*repository.ProjectRecord, error) {
	schema, errs := importer.Decode(data)
	if len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	p, err := importer.Convert(schema)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, name, p)
}

func (s *importService) PreviewCSV(text string) (*ImportPreview, error) {
	result, err := csvimport.New().Parse(text)
	if err != nil {
		return nil, err
	}
	return previewOf(projectFromCSV(result), result.Warnings), nil
}

func (s *importService) CommitCSV(ctx context.Context, name, text string) (*repository.ProjectRecord, []string, error) {
	result, err := csvimport.New().Parse(text)
	if err != nil {
		return nil, nil, err
	}
	rec, err := s.commit(ctx, name, projectFromCSV(result))
	if err != nil {
		return nil, nil, err
	}
	return rec, result.Warnings, nil
}

// commit writes the document under the given project name, creating the
// project or replacing its document, in one transaction.
func (s *importService) commit(ctx context.Context, name string, p *domain.Project) (*repository.ProjectRecord, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	data, err := importer.Encode(p)
	if err != nil {
		return nil, err
	}

	var out *repository.ProjectRecord
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteProjectRepo(tx)
		existing, err := repo.GetByName(ctx, name)
		if err == nil {
			if err := repo.UpdateDocument(ctx, existing.ID, string(data)); err != nil {
				return err
			}
			existing.Document = string(data)
			out = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		now := s.now().UTC()
		out = &repository.ProjectRecord{
			ID:        s.newID(),
			Name:      name,
			Document:  string(data),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return repo.Create(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// projectFromCSV assembles the recovered collections into a document and
// derives a grid window wide enough to show everything that was imported.
func projectFromCSV(r *csvimport.Result) *domain.Project {
	p := domain.NewProject()
	p.Staff = r.Staff
	p.Roles = r.Roles
	p.Days = r.Days
	p.Sessions = r.Sessions
	p.Assignments = r.Assignments

	if len(r.Sessions) > 0 {
		start, end := r.Sessions[0].StartMin, r.Sessions[0].EndMin
		for _, sess := range r.Sessions {
			if sess.StartMin < start {
				start = sess.StartMin
			}
			if sess.EndMin > end {
				end = sess.EndMin
			}
		}
		p.GridStart = start.SnapDown(timeutil.GridStep)
		p.GridEnd = (end + timeutil.GridStep - 1).SnapDown(timeutil.GridStep)
	}
	return p
}

func previewOf(p *domain.Project, warnings []string) *ImportPreview {
	return &ImportPreview{
		StaffCount:      len(p.Staff),
		RoleCount:       len(p.Roles),
		DayCount:        len(p.Days),
		SessionCount:    len(p.Sessions),
		AssignmentCount: len(p.Assignments),
		Warnings:        warnings,
	}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
