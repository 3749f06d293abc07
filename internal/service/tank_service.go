package service

import (
	"context"
	"errors"
	"strings"

	"darb_pms/internal/apperror"
	"darb_pms/internal/model"
	"darb_pms/internal/repository"
)

// TankService provides tank operations.
type TankService interface {
	Create(ctx context.Context, req model.CreateTankRequest, userID int) (*model.Tank, error)
	List(ctx context.Context) ([]model.Tank, error)
	ListByStation(ctx context.Context, stationCode string) ([]model.Tank, error)
	Get(ctx context.Context, tankCode string) (*model.Tank, error)
	Update(ctx context.Context, tankCode string, req model.UpdateTankRequest, userID int) (*model.Tank, error)
	Delete(ctx context.Context, tankCode string) (*model.Tank, error)
}

type tankService struct {
	repo repository.TankRepository
}

// NewTankService creates a new TankService
func NewTankService(repo repository.TankRepository) TankService {
	return &tankService{repo: repo}
}

func tankError(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrTankNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrTankCodeTaken
	default:
		return apperror.Internal("failed to "+action+" tank", err)
	}
}

func (s *tankService) Create(ctx context.Context, req model.CreateTankRequest, userID int) (*model.Tank, error) {
	if strings.TrimSpace(req.TankCode) == "" || strings.TrimSpace(req.StationCode) == "" {
		return nil, ErrTankFieldsRequired
	}
	t, err := s.repo.Create(ctx, req, userID)
	if err != nil {
		return nil, tankError(err, "create")
	}
	return t, nil
}

func (s *tankService) List(ctx context.Context) ([]model.Tank, error) {
	tanks, err := s.repo.List(ctx)
	if err != nil {
		return nil, tankError(err, "fetch")
	}
	return tanks, nil
}

func (s *tankService) ListByStation(ctx context.Context, stationCode string) ([]model.Tank, error) {
	tanks, err := s.repo.ListByStation(ctx, stationCode)
	if err != nil {
		return nil, tankError(err, "fetch")
	}
	return tanks, nil
}

func (s *tankService) Get(ctx context.Context, tankCode string) (*model.Tank, error) {
	t, err := s.repo.FindByCode(ctx, tankCode)
	if err != nil {
		return nil, tankError(err, "fetch")
	}
	return t, nil
}

func (s *tankService) Update(ctx context.Context, tankCode string, req model.UpdateTankRequest, userID int) (*model.Tank, error) {
	if req.StationCode != nil && strings.TrimSpace(*req.StationCode) == "" {
		return nil, apperror.Validation("station code cannot be empty")
	}
	t, err := s.repo.Update(ctx, tankCode, req, userID)
	if err != nil {
		return nil, tankError(err, "update")
	}
	return t, nil
}

func (s *tankService) Delete(ctx context.Context, tankCode string) (*model.Tank, error) {
	t, err := s.repo.Delete(ctx, tankCode)
	if err != nil {
		return nil, tankError(err, "delete")
	}
	return t, nil
}
