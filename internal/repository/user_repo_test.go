package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"darb_pms/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var userCols = []string{"id", "username", "password_hash", "role", "station_code", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, password_hash, role, station_code)")).
		WithArgs("alice", "$2a$10$hash", model.RoleUser, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	user := &model.User{Username: "alice", PasswordHash: "$2a$10$hash", Role: model.RoleUser}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "hash", model.RoleUser, (*string)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), &model.User{Username: "alice", PasswordHash: "hash", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "users_username_key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()
	station := "ST-1"

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(3, "alice", "hash", model.RoleCEO, &station, now, now))

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.Equal(t, model.RoleCEO, user.Role)
	assert.Equal(t, "ST-1", *user.StationCode)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByUsername(context.Background(), "ghost")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_UpdatePassword_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $1")).
		WithArgs("newhash", 9).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdatePassword(context.Background(), 9, "newhash")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRole(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(model.RoleCEO, 2).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(2, "bob", "hash", model.RoleCEO, nil, now, now))

	user, err := repo.UpdateRole(context.Background(), 2, model.RoleCEO)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCEO, user.Role)
	assert.Nil(t, user.StationCode)
}
