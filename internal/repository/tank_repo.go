package repository

import (
	"context"
	"fmt"

	"darb_pms/internal/model"

	"github.com/jackc/pgx/v5"
)

// TankRepository defines operations for tank data
type TankRepository interface {
	Create(ctx context.Context, req model.CreateTankRequest, createdBy int) (*model.Tank, error)
	List(ctx context.Context) ([]model.Tank, error)
	ListByStation(ctx context.Context, stationCode string) ([]model.Tank, error)
	FindByCode(ctx context.Context, tankCode string) (*model.Tank, error)
	Update(ctx context.Context, tankCode string, req model.UpdateTankRequest, updatedBy int) (*model.Tank, error)
	Delete(ctx context.Context, tankCode string) (*model.Tank, error)
}

type tankRepository struct {
	db DB
}

// NewTankRepository creates a new TankRepository
func NewTankRepository(db DB) TankRepository {
	return &tankRepository{db: db}
}

const tankColumns = `id, tank_code, fuel_type, vendor, tank_capacity, tank_size, tank_manufacturer,
	tank_warranty_certificate, station_code, canopy_code, created_by, updated_by, created_at, updated_at`

func scanTank(row pgx.Row, t *model.Tank) error {
	return row.Scan(
		&t.ID, &t.TankCode, &t.FuelType, &t.Vendor, &t.TankCapacity, &t.TankSize, &t.TankManufacturer,
		&t.TankWarrantyCertificate, &t.StationCode, &t.CanopyCode, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
}

// Create inserts a tank. A taken tank code yields ErrDuplicate.
func (r *tankRepository) Create(ctx context.Context, req model.CreateTankRequest, createdBy int) (*model.Tank, error) {
	sql := `INSERT INTO tanks (tank_code, fuel_type, vendor, tank_capacity, tank_size, tank_manufacturer,
                tank_warranty_certificate, station_code, canopy_code, created_by, updated_by)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
            RETURNING ` + tankColumns
	t := &model.Tank{}
	row := r.db.QueryRow(ctx, sql,
		req.TankCode, req.FuelType, req.Vendor, req.TankCapacity, req.TankSize, req.TankManufacturer,
		req.TankWarrantyCertificate, req.StationCode, req.CanopyCode, createdBy,
	)
	if err := scanTank(row, t); err != nil {
		return nil, fmt.Errorf("failed to create tank: %w", mapError(err))
	}
	return t, nil
}

// List returns all tanks, newest first.
func (r *tankRepository) List(ctx context.Context) ([]model.Tank, error) {
	return r.query(ctx, `SELECT `+tankColumns+` FROM tanks ORDER BY created_at DESC`)
}

// ListByStation returns the tanks of one station.
func (r *tankRepository) ListByStation(ctx context.Context, stationCode string) ([]model.Tank, error) {
	return r.query(ctx, `SELECT `+tankColumns+` FROM tanks WHERE station_code = $1 ORDER BY created_at DESC`, stationCode)
}

func (r *tankRepository) query(ctx context.Context, sql string, args ...any) ([]model.Tank, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tanks: %w", err)
	}
	defer rows.Close()

	tanks := []model.Tank{}
	for rows.Next() {
		var t model.Tank
		if err := scanTank(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan tank row: %w", err)
		}
		tanks = append(tanks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tank rows: %w", err)
	}
	return tanks, nil
}

// FindByCode retrieves a tank by its code
func (r *tankRepository) FindByCode(ctx context.Context, tankCode string) (*model.Tank, error) {
	t := &model.Tank{}
	if err := scanTank(r.db.QueryRow(ctx, `SELECT `+tankColumns+` FROM tanks WHERE tank_code = $1`, tankCode), t); err != nil {
		return nil, fmt.Errorf("failed to find tank: %w", mapError(err))
	}
	return t, nil
}

// Update applies a partial update; nil fields keep their stored value.
func (r *tankRepository) Update(ctx context.Context, tankCode string, req model.UpdateTankRequest, updatedBy int) (*model.Tank, error) {
	sql := `UPDATE tanks
            SET fuel_type = COALESCE($1, fuel_type),
                vendor = COALESCE($2, vendor),
                tank_capacity = COALESCE($3, tank_capacity),
                tank_size = COALESCE($4, tank_size),
                tank_manufacturer = COALESCE($5, tank_manufacturer),
                tank_warranty_certificate = COALESCE($6, tank_warranty_certificate),
                station_code = COALESCE($7, station_code),
                canopy_code = COALESCE($8, canopy_code),
                updated_by = $9,
                updated_at = NOW()
            WHERE tank_code = $10
            RETURNING ` + tankColumns
	t := &model.Tank{}
	row := r.db.QueryRow(ctx, sql,
		req.FuelType, req.Vendor, req.TankCapacity, req.TankSize, req.TankManufacturer,
		req.TankWarrantyCertificate, req.StationCode, req.CanopyCode, updatedBy, tankCode,
	)
	if err := scanTank(row, t); err != nil {
		return nil, fmt.Errorf("failed to update tank: %w", mapError(err))
	}
	return t, nil
}

// Delete removes a tank and returns the deleted row.
func (r *tankRepository) Delete(ctx context.Context, tankCode string) (*model.Tank, error) {
	t := &model.Tank{}
	if err := scanTank(r.db.QueryRow(ctx, `DELETE FROM tanks WHERE tank_code = $1 RETURNING `+tankColumns, tankCode), t); err != nil {
		return nil, fmt.Errorf("failed to delete tank: %w", mapError(err))
	}
	return t, nil
}
