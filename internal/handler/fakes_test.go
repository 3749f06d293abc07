package handler

import (
	"context"
	"sync"
	"time"

	"darb_pms/internal/model"
	"darb_pms/internal/repository"
)

type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (r *memUserRepo) List(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []model.User{}
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id int, role string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	found := *u
	return &found, nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// memProjectRepo implements the review path against a map; the remaining
// methods are not needed by the handler tests.
type memProjectRepo struct {
	repository.InvestmentProjectRepository

	mu       sync.Mutex
	projects map[int]*model.InvestmentProject
	writes   int
}

func (r *memProjectRepo) FindByID(ctx context.Context, id int) (*model.InvestmentProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *p
	return &found, nil
}

func (r *memProjectRepo) UpdateReview(ctx context.Context, id int, status string, comment *string, asCEO bool, updatedBy int) (*model.InvestmentProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.ReviewStatus = status
	if asCEO {
		p.CEOComment = comment
	} else {
		p.PMComment = comment
	}
	p.UpdatedBy = &updatedBy
	p.UpdatedAt = time.Now()
	found := *p
	return &found, nil
}

func (r *memProjectRepo) Update(ctx context.Context, id int, assignments []model.ColumnAssignment, updatedBy int) (*model.InvestmentProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, a := range assignments {
		if a.Column == "project_name" {
			p.ProjectName = a.Value.(string)
		}
	}
	found := *p
	return &found, nil
}

// memStationRepo implements the create and bulk paths; every call is counted.
type memStationRepo struct {
	repository.StationRepository

	mu    sync.Mutex
	calls int
}

func (r *memStationRepo) Create(ctx context.Context, in model.StationInput, createdBy int) (*model.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return &model.Station{ID: r.calls, StationCode: in.StationCode, StationName: in.StationName}, nil
}

func (r *memStationRepo) BulkUpsert(ctx context.Context, inputs []model.StationInput, userID int) ([]model.Station, []model.BulkStationError, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	stations := make([]model.Station, 0, len(inputs))
	for i, in := range inputs {
		stations = append(stations, model.Station{ID: i + 1, StationCode: in.StationCode, StationName: in.StationName})
	}
	return stations, []model.BulkStationError{}, nil
}
