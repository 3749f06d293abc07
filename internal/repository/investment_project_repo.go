package repository

import (
	"context"
	"fmt"
	"strings"

	"darb_pms/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProjectFilter narrows project listings. Nil fields are ignored.
type ProjectFilter struct {
	DepartmentType *string
	StationCode    *string
}

// InvestmentProjectRepository defines operations for investment project data
type InvestmentProjectRepository interface {
	Create(ctx context.Context, p *model.InvestmentProject) error
	FindByID(ctx context.Context, id int) (*model.InvestmentProject, error)
	List(ctx context.Context, filter ProjectFilter) ([]model.InvestmentProject, error)
	Update(ctx context.Context, id int, assignments []model.ColumnAssignment, updatedBy int) (*model.InvestmentProject, error)
	UpdateReview(ctx context.Context, id int, status string, comment *string, asCEO bool, updatedBy int) (*model.InvestmentProject, error)
	SetAttachmentURL(ctx context.Context, id int, kind, url string, updatedBy int) (*model.InvestmentProject, error)
	Delete(ctx context.Context, id int) (*model.InvestmentProject, error)
	CountByFeasibility(ctx context.Context, departmentType *string) (map[string]int64, error)
	CountByContract(ctx context.Context, departmentType *string) (map[string]int64, error)
}

type investmentProjectRepository struct {
	db DB
}

// NewInvestmentProjectRepository creates a new InvestmentProjectRepository
func NewInvestmentProjectRepository(db DB) InvestmentProjectRepository {
	return &investmentProjectRepository{db: db}
}

const projectColumns = `id, department_type, request_type, project_name, project_code, city, district, area,
	project_status, contract_type, google_location, priority_level, order_date, request_sender,
	super_market, fuel_station, kiosks, retail_shop, drive_through, element_area,
	owner_name, owner_contact_no, id_no, national_address, email, owner_type,
	design_file_url, documents_url, autocad_url, station_code,
	feasibility_status, contract_status, review_status, pm_comment, ceo_comment,
	created_by, updated_by, created_at, updated_at`

func scanProject(row pgx.Row, p *model.InvestmentProject) error {
	return row.Scan(
		&p.ID, &p.DepartmentType, &p.RequestType, &p.ProjectName, &p.ProjectCode, &p.City, &p.District, &p.Area,
		&p.ProjectStatus, &p.ContractType, &p.GoogleLocation, &p.PriorityLevel, &p.OrderDate, &p.RequestSender,
		&p.SuperMarket, &p.FuelStation, &p.Kiosks, &p.RetailShop, &p.DriveThrough, &p.ElementArea,
		&p.OwnerName, &p.OwnerContactNo, &p.IDNo, &p.NationalAddress, &p.Email, &p.OwnerType,
		&p.DesignFileURL, &p.DocumentsURL, &p.AutocadURL, &p.StationCode,
		&p.FeasibilityStatus, &p.ContractStatus, &p.ReviewStatus, &p.PMComment, &p.CEOComment,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
}

func collectProjects(rows pgx.Rows) ([]model.InvestmentProject, error) {
	defer rows.Close()

	projects := []model.InvestmentProject{}
	for rows.Next() {
		var p model.InvestmentProject
		if err := scanProject(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// Create inserts a project and fills p with the stored row.
func (r *investmentProjectRepository) Create(ctx context.Context, p *model.InvestmentProject) error {
	sql := `INSERT INTO investment_projects (
                department_type, request_type, project_name, project_code, city, district, area,
                project_status, contract_type, google_location, priority_level, order_date, request_sender,
                super_market, fuel_station, kiosks, retail_shop, drive_through, element_area,
                owner_name, owner_contact_no, id_no, national_address, email, owner_type,
                design_file_url, documents_url, autocad_url, station_code, created_by, updated_by
            ) VALUES (
                $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
                $14, $15, $16, $17, $18, $19,
                $20, $21, $22, $23, $24, $25,
                $26, $27, $28, $29, $30, $30
            ) RETURNING ` + projectColumns
	row := r.db.QueryRow(ctx, sql,
		p.DepartmentType, p.RequestType, p.ProjectName, p.ProjectCode, p.City, p.District, p.Area,
		p.ProjectStatus, p.ContractType, p.GoogleLocation, p.PriorityLevel, p.OrderDate, p.RequestSender,
		p.SuperMarket, p.FuelStation, p.Kiosks, p.RetailShop, p.DriveThrough, p.ElementArea,
		p.OwnerName, p.OwnerContactNo, p.IDNo, p.NationalAddress, p.Email, p.OwnerType,
		p.DesignFileURL, p.DocumentsURL, p.AutocadURL, p.StationCode, p.CreatedBy,
	)
	if err := scanProject(row, p); err != nil {
		return fmt.Errorf("failed to create investment project: %w", mapError(err))
	}
	return nil
}

// FindByID retrieves a project by its ID
func (r *investmentProjectRepository) FindByID(ctx context.Context, id int) (*model.InvestmentProject, error) {
	p := &model.InvestmentProject{}
	sql := `SELECT ` + projectColumns + ` FROM investment_projects WHERE id = $1`
	if err := scanProject(r.db.QueryRow(ctx, sql, id), p); err != nil {
		return nil, fmt.Errorf("failed to find investment project by ID: %w", mapError(err))
	}
	return p, nil
}

// List retrieves projects matching the filter, newest first.
func (r *investmentProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]model.InvestmentProject, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + projectColumns + ` FROM investment_projects`)

	args := []any{}
	var conditions []string
	if filter.StationCode != nil && *filter.StationCode != "" {
		args = append(args, *filter.StationCode)
		conditions = append(conditions, fmt.Sprintf("station_code = $%d", len(args)))
	}
	if filter.DepartmentType != nil && *filter.DepartmentType != "" {
		args = append(args, *filter.DepartmentType)
		conditions = append(conditions, fmt.Sprintf("department_type = $%d", len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment projects: %w", err)
	}
	return collectProjects(rows)
}

// Update applies a partial update. Assignments must come from
// model.InvestmentProjectPatchFields; column names are not re-checked here.
func (r *investmentProjectRepository) Update(ctx context.Context, id int, assignments []model.ColumnAssignment, updatedBy int) (*model.InvestmentProject, error) {
	if len(assignments) == 0 {
		return nil, fmt.Errorf("failed to update investment project: no fields")
	}

	setClauses := make([]string, 0, len(assignments)+2)
	args := make([]any, 0, len(assignments)+2)
	for _, a := range assignments {
		args = append(args, a.Value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", a.Column, len(args)))
	}
	args = append(args, updatedBy)
	setClauses = append(setClauses, fmt.Sprintf("updated_by = $%d", len(args)), "updated_at = NOW()")
	args = append(args, id)

	sql := fmt.Sprintf(`UPDATE investment_projects SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), projectColumns)

	p := &model.InvestmentProject{}
	if err := scanProject(r.db.QueryRow(ctx, sql, args...), p); err != nil {
		return nil, fmt.Errorf("failed to update investment project: %w", mapError(err))
	}
	return p, nil
}

const (
	reviewAsCEOSQL = `UPDATE investment_projects
            SET review_status = $1, ceo_comment = $2, updated_by = $3, updated_at = NOW()
            WHERE id = $4 RETURNING ` + projectColumns
	reviewAsPMSQL = `UPDATE investment_projects
            SET review_status = $1, pm_comment = $2, updated_by = $3, updated_at = NOW()
            WHERE id = $4 RETURNING ` + projectColumns
)

// UpdateReview writes the review status and exactly one comment column in a
// single statement: ceo_comment when asCEO, pm_comment otherwise.
func (r *investmentProjectRepository) UpdateReview(ctx context.Context, id int, status string, comment *string, asCEO bool, updatedBy int) (*model.InvestmentProject, error) {
	sql := reviewAsPMSQL
	if asCEO {
		sql = reviewAsCEOSQL
	}

	p := &model.InvestmentProject{}
	if err := scanProject(r.db.QueryRow(ctx, sql, status, comment, updatedBy, id), p); err != nil {
		return nil, fmt.Errorf("failed to update review status: %w", mapError(err))
	}
	return p, nil
}

// SetAttachmentURL stores the location of an uploaded attachment.
func (r *investmentProjectRepository) SetAttachmentURL(ctx context.Context, id int, kind, url string, updatedBy int) (*model.InvestmentProject, error) {
	column, ok := model.AttachmentColumns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown attachment kind %q", kind)
	}

	sql := fmt.Sprintf(`UPDATE investment_projects SET %s = $1, updated_by = $2, updated_at = NOW()
            WHERE id = $3 RETURNING %s`, column, projectColumns)
	p := &model.InvestmentProject{}
	if err := scanProject(r.db.QueryRow(ctx, sql, url, updatedBy, id), p); err != nil {
		return nil, fmt.Errorf("failed to set attachment url: %w", mapError(err))
	}
	return p, nil
}

// Delete removes a project and returns the deleted row.
func (r *investmentProjectRepository) Delete(ctx context.Context, id int) (*model.InvestmentProject, error) {
	p := &model.InvestmentProject{}
	sql := `DELETE FROM investment_projects WHERE id = $1 RETURNING ` + projectColumns
	if err := scanProject(r.db.QueryRow(ctx, sql, id), p); err != nil {
		return nil, fmt.Errorf("failed to delete investment project: %w", mapError(err))
	}
	return p, nil
}

// CountByFeasibility counts projects per feasibility_status.
func (r *investmentProjectRepository) CountByFeasibility(ctx context.Context, departmentType *string) (map[string]int64, error) {
	return r.countBy(ctx, "feasibility_status", departmentType)
}

// CountByContract counts projects per contract_status.
func (r *investmentProjectRepository) CountByContract(ctx context.Context, departmentType *string) (map[string]int64, error) {
	return r.countBy(ctx, "contract_status", departmentType)
}

// countBy groups on a fixed status column. The "total" key holds the overall count.
func (r *investmentProjectRepository) countBy(ctx context.Context, column string, departmentType *string) (map[string]int64, error) {
	sql := fmt.Sprintf(`SELECT COALESCE(%s, ''), COUNT(*) FROM investment_projects`, column)
	args := []any{}
	if departmentType != nil && *departmentType != "" {
		sql += ` WHERE department_type = $1`
		args = append(args, *departmentType)
	}
	sql += ` GROUP BY 1`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by %s: %w", column, err)
	}
	defer rows.Close()

	counts := map[string]int64{"total": 0}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts["total"] += n
		if status != "" {
			counts[status] += n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s counts: %w", column, err)
	}
	return counts, nil
}
