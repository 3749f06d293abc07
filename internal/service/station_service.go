package service

import (
	"context"
	"errors"
	"strings"

	"darb_pms/internal/apperror"
	"darb_pms/internal/model"
	"darb_pms/internal/repository"

	log "github.com/sirupsen/logrus"
)

// StationService provides station_information operations.
type StationService interface {
	Create(ctx context.Context, in model.StationInput, userID int) (*model.Station, error)
	List(ctx context.Context) ([]model.Station, error)
	Get(ctx context.Context, identifier string) (*model.Station, error)
	Update(ctx context.Context, identifier string, req model.UpdateStationRequest, userID int) (*model.Station, error)
	Delete(ctx context.Context, identifier string) (*model.Station, error)
	BulkImport(ctx context.Context, inputs []model.StationInput, userID int) (*model.BulkStationResult, error)
}

type stationService struct {
	repo repository.StationRepository
}

// NewStationService creates a new StationService
func NewStationService(repo repository.StationRepository) StationService {
	return &stationService{repo: repo}
}

func stationError(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrStationNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrStationCodeTaken
	default:
		return apperror.Internal("failed to "+action+" station information", err)
	}
}

func validStationInput(in model.StationInput) bool {
	return strings.TrimSpace(in.StationCode) != "" && strings.TrimSpace(in.StationName) != ""
}

func (s *stationService) Create(ctx context.Context, in model.StationInput, userID int) (*model.Station, error) {
	if !validStationInput(in) {
		return nil, ErrStationFieldsRequired
	}
	st, err := s.repo.Create(ctx, in, userID)
	if err != nil {
		return nil, stationError(err, "create")
	}
	return st, nil
}

func (s *stationService) List(ctx context.Context) ([]model.Station, error) {
	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, stationError(err, "fetch")
	}
	return stations, nil
}

func (s *stationService) Get(ctx context.Context, identifier string) (*model.Station, error) {
	st, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, stationError(err, "fetch")
	}
	return st, nil
}

func (s *stationService) Update(ctx context.Context, identifier string, req model.UpdateStationRequest, userID int) (*model.Station, error) {
	if req.StationName != nil && strings.TrimSpace(*req.StationName) == "" {
		return nil, apperror.Validation("station name cannot be empty")
	}
	st, err := s.repo.Update(ctx, identifier, req, userID)
	if err != nil {
		return nil, stationError(err, "update")
	}
	return st, nil
}

func (s *stationService) Delete(ctx context.Context, identifier string) (*model.Station, error) {
	st, err := s.repo.Delete(ctx, identifier)
	if err != nil {
		return nil, stationError(err, "delete")
	}
	return st, nil
}

// BulkImport upserts every valid row in one transaction. Rows missing a code
// or name are reported without touching the database.
func (s *stationService) BulkImport(ctx context.Context, inputs []model.StationInput, userID int) (*model.BulkStationResult, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBulkImport
	}

	valid := make([]model.StationInput, 0, len(inputs))
	rejected := []model.BulkStationError{}
	for _, in := range inputs {
		if !validStationInput(in) {
			rejected = append(rejected, model.BulkStationError{
				StationCode: in.StationCode,
				Error:       ErrStationFieldsRequired.Message,
			})
			continue
		}
		valid = append(valid, in)
	}

	stations := []model.Station{}
	if len(valid) > 0 {
		var rowErrs []model.BulkStationError
		var err error
		stations, rowErrs, err = s.repo.BulkUpsert(ctx, valid, userID)
		if err != nil {
			return nil, apperror.Internal("failed to import stations", err)
		}
		rejected = append(rejected, rowErrs...)
	}

	log.WithFields(log.Fields{
		"received": len(inputs),
		"imported": len(stations),
		"failed":   len(rejected),
	}).Info("bulk station import finished")

	return &model.BulkStationResult{
		Processed: len(inputs),
		Stations:  stations,
		Errors:    rejected,
	}, nil
}
