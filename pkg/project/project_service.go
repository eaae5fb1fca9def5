package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ProjectService interface {
	GetAll(ctx context.Context) ([]Project, error)
	GetOverlapping(ctx context.Context, start, endExclusive time.Time) ([]Project, error)
	Get(ctx context.Context, id string) (Project, error)
	Create(ctx context.Context, project Project) (Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ProjectServiceImpl struct {
	repo ProjectRepo
}

func NewProjectService(repo ProjectRepo) *ProjectServiceImpl {
	return &ProjectServiceImpl{repo: repo}
}

func (s *ProjectServiceImpl) GetAll(ctx context.Context) ([]Project, error) {
	return s.repo.GetAll(ctx)
}

// GetOverlapping returns the projects whose lifetime intersects the period,
// used to scope the budget view to projects running in it.
func (s *ProjectServiceImpl) GetOverlapping(ctx context.Context, start, endExclusive time.Time) ([]Project, error) {
	projects, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return Overlapping(projects, start, endExclusive), nil
}

func (s *ProjectServiceImpl) Get(ctx context.Context, id string) (Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectServiceImpl) Create(ctx context.Context, p Project) (Project, error) {
	if err := p.Validate(); err != nil {
		return Project{}, err
	}
	p.ID = uuid.NewString()
	if p.Status == "" {
		p.Status = StatusActive
	}
	if err := s.repo.Store(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *ProjectServiceImpl) Update(ctx context.Context, p Project) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("project not updated, probably because it does not exist (%s)", p.ID)
		return false, nil
	}
	return true, nil
}

func (s *ProjectServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
