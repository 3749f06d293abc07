package repository

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"darb_pms/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectCols() []string {
	cols := strings.Split(projectColumns, ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

// projectRow returns one row in projectColumns order.
func projectRow(id int, status string, pmComment, ceoComment *string) []any {
	now := time.Now()
	var (
		none   *string
		noDate *time.Time
		noUser *int
	)
	return []any{
		id, "investment", none, "Exit 5", "IP-42", none, none, 0.0,
		none, none, none, none, noDate, none,
		0, 0, 0, 0, 0, 0.0,
		none, none, none, none, none, model.OwnerTypeIndividual,
		none, none, none, none,
		none, none, status, pmComment, ceoComment,
		noUser, noUser, now, now,
	}
}

func TestInvestmentProjectRepository_UpdateReview_CEO(t *testing.T) {
	mock := newMock(t)
	repo := NewInvestmentProjectRepository(mock)
	comment := "ok"

	mock.ExpectQuery(regexp.QuoteMeta("SET review_status = $1, ceo_comment = $2, updated_by = $3")).
		WithArgs(model.ReviewStatusApproved, &comment, 7, 42).
		WillReturnRows(pgxmock.NewRows(projectCols()).AddRow(projectRow(42, model.ReviewStatusApproved, nil, &comment)...))

	p, err := repo.UpdateReview(context.Background(), 42, model.ReviewStatusApproved, &comment, true, 7)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewStatusApproved, p.ReviewStatus)
	assert.Equal(t, "ok", *p.CEOComment)
	assert.Nil(t, p.PMComment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvestmentProjectRepository_UpdateReview_PM(t *testing.T) {
	mock := newMock(t)
	repo := NewInvestmentProjectRepository(mock)
	comment := "checked"

	mock.ExpectQuery(regexp.QuoteMeta("SET review_status = $1, pm_comment = $2, updated_by = $3")).
		WithArgs(model.ReviewStatusValidated, &comment, 3, 42).
		WillReturnRows(pgxmock.NewRows(projectCols()).AddRow(projectRow(42, model.ReviewStatusValidated, &comment, nil)...))

	p, err := repo.UpdateReview(context.Background(), 42, model.ReviewStatusValidated, &comment, false, 3)
	require.NoError(t, err)
	assert.Equal(t, "checked", *p.PMComment)
	assert.Nil(t, p.CEOComment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvestmentProjectRepository_UpdateReview_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewInvestmentProjectRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE investment_projects")).
		WithArgs(model.ReviewStatusApproved, (*string)(nil), 1, 404).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateReview(context.Background(), 404, model.ReviewStatusApproved, nil, true, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvestmentProjectRepository_Update_BuildsSetClause(t *testing.T) {
	mock := newMock(t)
	repo := NewInvestmentProjectRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE investment_projects SET kiosks = $1, project_name = $2, updated_by = $3, updated_at = NOW() WHERE id = $4 RETURNING")).
		WithArgs(2, "Renamed", 5, 42).
		WillReturnRows(pgxmock.NewRows(projectCols()).AddRow(projectRow(42, model.ReviewStatusPending, nil, nil)...))

	_, err := repo.Update(context.Background(), 42, []model.ColumnAssignment{
		{Column: "kiosks", Value: 2},
		{Column: "project_name", Value: "Renamed"},
	}, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvestmentProjectRepository_List_Filters(t *testing.T) {
	mock := newMock(t)
	repo := NewInvestmentProjectRepository(mock)
	station, dept := "ST-1", "investment"

	mock.ExpectQuery(regexp.QuoteMeta("FROM investment_projects WHERE station_code = $1 AND department_type = $2 ORDER BY created_at DESC")).
		WithArgs(station, dept).
		WillReturnRows(pgxmock.NewRows(projectCols()).
			AddRow(projectRow(2, model.ReviewStatusPending, nil, nil)...).
			AddRow(projectRow(1, model.ReviewStatusPending, nil, nil)...))

	projects, err := repo.List(context.Background(), ProjectFilter{StationCode: &station, DepartmentType: &dept})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, 2, projects[0].ID)
}

func TestInvestmentProjectRepository_CountByFeasibility(t *testing.T) {
	mock := newMock(t)
	repo := NewInvestmentProjectRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(feasibility_status, ''), COUNT(*) FROM investment_projects GROUP BY 1")).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("approved", int64(2)).
			AddRow("", int64(3)))

	counts, err := repo.CountByFeasibility(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"total": 5, "approved": 2}, counts)
}
