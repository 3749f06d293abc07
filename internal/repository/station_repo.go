package repository

import (
	"context"
	"fmt"

	"darb_pms/internal/model"

	"github.com/jackc/pgx/v5"
)

// StationRepository defines operations for station_information.
// Identifier arguments match either the numeric id or the station code.
type StationRepository interface {
	Create(ctx context.Context, in model.StationInput, createdBy int) (*model.Station, error)
	List(ctx context.Context) ([]model.Station, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.Station, error)
	Update(ctx context.Context, identifier string, req model.UpdateStationRequest, updatedBy int) (*model.Station, error)
	Delete(ctx context.Context, identifier string) (*model.Station, error)
	BulkUpsert(ctx context.Context, inputs []model.StationInput, userID int) ([]model.Station, []model.BulkStationError, error)
}

type stationRepository struct {
	db DB
}

// NewStationRepository creates a new StationRepository
func NewStationRepository(db DB) StationRepository {
	return &stationRepository{db: db}
}

const stationColumns = `id, station_code, station_name, area_region, city, district, street,
	geographic_location, station_type_code, station_status_code,
	created_by, updated_by, created_at, updated_at`

func scanStation(row pgx.Row, s *model.Station) error {
	return row.Scan(
		&s.ID, &s.StationCode, &s.StationName, &s.AreaRegion, &s.City, &s.District, &s.Street,
		&s.GeographicLocation, &s.StationTypeCode, &s.StationStatusCode,
		&s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
}

const insertStationSQL = `INSERT INTO station_information (
            station_code, station_name, area_region, city, district,
            street, geographic_location, station_type_code, station_status_code,
            created_by, updated_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

// Create inserts a station. A taken station code yields ErrDuplicate.
func (r *stationRepository) Create(ctx context.Context, in model.StationInput, createdBy int) (*model.Station, error) {
	s := &model.Station{}
	row := r.db.QueryRow(ctx, insertStationSQL+` RETURNING `+stationColumns, stationArgs(in, createdBy)...)
	if err := scanStation(row, s); err != nil {
		return nil, fmt.Errorf("failed to create station: %w", mapError(err))
	}
	return s, nil
}

func stationArgs(in model.StationInput, userID int) []any {
	return []any{
		in.StationCode, in.StationName, in.AreaRegion, in.City, in.District,
		in.Street, in.GeographicLocation, in.StationTypeCode, in.StationStatusCode,
		userID,
	}
}

// List returns all stations, newest first.
func (r *stationRepository) List(ctx context.Context) ([]model.Station, error) {
	rows, err := r.db.Query(ctx, `SELECT `+stationColumns+` FROM station_information ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	stations := []model.Station{}
	for rows.Next() {
		var s model.Station
		if err := scanStation(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating station rows: %w", err)
	}
	return stations, nil
}

// FindByIdentifier retrieves a station by id or code.
func (r *stationRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.Station, error) {
	s := &model.Station{}
	sql := `SELECT ` + stationColumns + ` FROM station_information WHERE id::text = $1 OR station_code = $1`
	if err := scanStation(r.db.QueryRow(ctx, sql, identifier), s); err != nil {
		return nil, fmt.Errorf("failed to find station: %w", mapError(err))
	}
	return s, nil
}

// Update applies a partial update; nil fields keep their stored value.
func (r *stationRepository) Update(ctx context.Context, identifier string, req model.UpdateStationRequest, updatedBy int) (*model.Station, error) {
	sql := `UPDATE station_information
            SET station_name = COALESCE($1, station_name),
                area_region = COALESCE($2, area_region),
                city = COALESCE($3, city),
                district = COALESCE($4, district),
                street = COALESCE($5, street),
                geographic_location = COALESCE($6, geographic_location),
                station_type_code = COALESCE($7, station_type_code),
                station_status_code = COALESCE($8, station_status_code),
                updated_by = $9,
                updated_at = NOW()
            WHERE id::text = $10 OR station_code = $10
            RETURNING ` + stationColumns
	s := &model.Station{}
	row := r.db.QueryRow(ctx, sql,
		req.StationName, req.AreaRegion, req.City, req.District, req.Street,
		req.GeographicLocation, req.StationTypeCode, req.StationStatusCode,
		updatedBy, identifier,
	)
	if err := scanStation(row, s); err != nil {
		return nil, fmt.Errorf("failed to update station: %w", mapError(err))
	}
	return s, nil
}

// Delete removes a station and returns the deleted row.
func (r *stationRepository) Delete(ctx context.Context, identifier string) (*model.Station, error) {
	s := &model.Station{}
	sql := `DELETE FROM station_information WHERE id::text = $1 OR station_code = $1 RETURNING ` + stationColumns
	if err := scanStation(r.db.QueryRow(ctx, sql, identifier), s); err != nil {
		return nil, fmt.Errorf("failed to delete station: %w", mapError(err))
	}
	return s, nil
}

const upsertStationSQL = insertStationSQL + `
        ON CONFLICT (station_code) DO UPDATE SET
            station_name = EXCLUDED.station_name,
            area_region = EXCLUDED.area_region,
            city = EXCLUDED.city,
            district = EXCLUDED.district,
            street = EXCLUDED.street,
            geographic_location = EXCLUDED.geographic_location,
            station_type_code = EXCLUDED.station_type_code,
            station_status_code = EXCLUDED.station_status_code,
            updated_by = EXCLUDED.updated_by,
            updated_at = NOW()
        RETURNING ` + stationColumns

// BulkUpsert inserts or updates every input inside one transaction. Each row
// runs under its own savepoint, so a failing row is reported in the returned
// errors and the rest of the batch still commits. Any other failure rolls
// the whole batch back.
func (r *stationRepository) BulkUpsert(ctx context.Context, inputs []model.StationInput, userID int) (stations []model.Station, rowErrs []model.BulkStationError, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin bulk import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	stations = []model.Station{}
	rowErrs = []model.BulkStationError{}
	for _, in := range inputs {
		sp, spErr := tx.Begin(ctx)
		if spErr != nil {
			return nil, nil, fmt.Errorf("failed to create savepoint: %w", spErr)
		}

		var s model.Station
		if rowErr := scanStation(sp.QueryRow(ctx, upsertStationSQL, stationArgs(in, userID)...), &s); rowErr != nil {
			if rbErr := sp.Rollback(ctx); rbErr != nil {
				return nil, nil, fmt.Errorf("failed to roll back savepoint: %w", rbErr)
			}
			rowErrs = append(rowErrs, model.BulkStationError{StationCode: in.StationCode, Error: rowErr.Error()})
			continue
		}
		if relErr := sp.Commit(ctx); relErr != nil {
			return nil, nil, fmt.Errorf("failed to release savepoint: %w", relErr)
		}
		stations = append(stations, s)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit bulk import: %w", err)
	}
	return stations, rowErrs, nil
}
