package service

import (
	"context"

	"darb_pms/internal/model"
	"darb_pms/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id int, role string) (*model.User, error) {
	args := m.Called(ctx, id, role)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Create(ctx context.Context, p *model.InvestmentProject) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id int) (*model.InvestmentProject, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.InvestmentProject)
	return p, args.Error(1)
}

func (m *mockProjectRepo) List(ctx context.Context, filter repository.ProjectFilter) ([]model.InvestmentProject, error) {
	args := m.Called(ctx, filter)
	ps, _ := args.Get(0).([]model.InvestmentProject)
	return ps, args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, id int, assignments []model.ColumnAssignment, updatedBy int) (*model.InvestmentProject, error) {
	args := m.Called(ctx, id, assignments, updatedBy)
	p, _ := args.Get(0).(*model.InvestmentProject)
	return p, args.Error(1)
}

func (m *mockProjectRepo) UpdateReview(ctx context.Context, id int, status string, comment *string, asCEO bool, updatedBy int) (*model.InvestmentProject, error) {
	args := m.Called(ctx, id, status, comment, asCEO, updatedBy)
	p, _ := args.Get(0).(*model.InvestmentProject)
	return p, args.Error(1)
}

func (m *mockProjectRepo) SetAttachmentURL(ctx context.Context, id int, kind, url string, updatedBy int) (*model.InvestmentProject, error) {
	args := m.Called(ctx, id, kind, url, updatedBy)
	p, _ := args.Get(0).(*model.InvestmentProject)
	return p, args.Error(1)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int) (*model.InvestmentProject, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.InvestmentProject)
	return p, args.Error(1)
}

func (m *mockProjectRepo) CountByFeasibility(ctx context.Context, departmentType *string) (map[string]int64, error) {
	args := m.Called(ctx, departmentType)
	c, _ := args.Get(0).(map[string]int64)
	return c, args.Error(1)
}

func (m *mockProjectRepo) CountByContract(ctx context.Context, departmentType *string) (map[string]int64, error) {
	args := m.Called(ctx, departmentType)
	c, _ := args.Get(0).(map[string]int64)
	return c, args.Error(1)
}

type mockStationRepo struct {
	mock.Mock
}

func (m *mockStationRepo) Create(ctx context.Context, in model.StationInput, createdBy int) (*model.Station, error) {
	args := m.Called(ctx, in, createdBy)
	s, _ := args.Get(0).(*model.Station)
	return s, args.Error(1)
}

func (m *mockStationRepo) List(ctx context.Context) ([]model.Station, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]model.Station)
	return s, args.Error(1)
}

func (m *mockStationRepo) FindByIdentifier(ctx context.Context, identifier string) (*model.Station, error) {
	args := m.Called(ctx, identifier)
	s, _ := args.Get(0).(*model.Station)
	return s, args.Error(1)
}

func (m *mockStationRepo) Update(ctx context.Context, identifier string, req model.UpdateStationRequest, updatedBy int) (*model.Station, error) {
	args := m.Called(ctx, identifier, req, updatedBy)
	s, _ := args.Get(0).(*model.Station)
	return s, args.Error(1)
}

func (m *mockStationRepo) Delete(ctx context.Context, identifier string) (*model.Station, error) {
	args := m.Called(ctx, identifier)
	s, _ := args.Get(0).(*model.Station)
	return s, args.Error(1)
}

func (m *mockStationRepo) BulkUpsert(ctx context.Context, inputs []model.StationInput, userID int) ([]model.Station, []model.BulkStationError, error) {
	args := m.Called(ctx, inputs, userID)
	s, _ := args.Get(0).([]model.Station)
	e, _ := args.Get(1).([]model.BulkStationError)
	return s, e, args.Error(2)
}

type mockTankRepo struct {
	mock.Mock
}

func (m *mockTankRepo) Create(ctx context.Context, req model.CreateTankRequest, createdBy int) (*model.Tank, error) {
	args := m.Called(ctx, req, createdBy)
	t, _ := args.Get(0).(*model.Tank)
	return t, args.Error(1)
}

func (m *mockTankRepo) List(ctx context.Context) ([]model.Tank, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]model.Tank)
	return t, args.Error(1)
}

func (m *mockTankRepo) ListByStation(ctx context.Context, stationCode string) ([]model.Tank, error) {
	args := m.Called(ctx, stationCode)
	t, _ := args.Get(0).([]model.Tank)
	return t, args.Error(1)
}

func (m *mockTankRepo) FindByCode(ctx context.Context, tankCode string) (*model.Tank, error) {
	args := m.Called(ctx, tankCode)
	t, _ := args.Get(0).(*model.Tank)
	return t, args.Error(1)
}

func (m *mockTankRepo) Update(ctx context.Context, tankCode string, req model.UpdateTankRequest, updatedBy int) (*model.Tank, error) {
	args := m.Called(ctx, tankCode, req, updatedBy)
	t, _ := args.Get(0).(*model.Tank)
	return t, args.Error(1)
}

func (m *mockTankRepo) Delete(ctx context.Context, tankCode string) (*model.Tank, error) {
	args := m.Called(ctx, tankCode)
	t, _ := args.Get(0).(*model.Tank)
	return t, args.Error(1)
}
