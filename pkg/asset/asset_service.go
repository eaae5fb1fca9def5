package asset

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type AssetService interface {
	GetAll(ctx context.Context) ([]Asset, error)
	Get(ctx context.Context, id string) (Asset, error)
	Create(ctx context.Context, asset Asset) (Asset, error)
	Update(ctx context.Context, asset Asset) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AssetServiceImpl struct {
	repo AssetRepo
}

func NewAssetService(repo AssetRepo) *AssetServiceImpl {
	return &AssetServiceImpl{repo: repo}
}

func (s *AssetServiceImpl) GetAll(ctx context.Context) ([]Asset, error) {
	return s.repo.GetAll(ctx)
}

func (s *AssetServiceImpl) Get(ctx context.Context, id string) (Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AssetServiceImpl) Create(ctx context.Context, a Asset) (Asset, error) {
	a.ID = uuid.NewString()
	if a.Currency == "" {
		a.Currency = "BGN"
	}
	if err := s.repo.Store(ctx, a); err != nil {
		return Asset{}, err
	}
	return a, nil
}

func (s *AssetServiceImpl) Update(ctx context.Context, a Asset) (bool, error) {
	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("asset not updated, probably because it does not exist (%s)", a.ID)
		return false, nil
	}
	return true, nil
}

func (s *AssetServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
