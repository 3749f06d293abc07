package model

import "time"

// Station is a row of station_information.
type Station struct {
	ID                 int       `json:"id"`
	StationCode        string    `json:"stationCode"`
	StationName        string    `json:"stationName"`
	AreaRegion         *string   `json:"areaRegion"`
	City               *string   `json:"city"`
	District           *string   `json:"district"`
	Street             *string   `json:"street"`
	GeographicLocation *string   `json:"geographicLocation"`
	StationTypeCode    *string   `json:"stationTypeCode"`
	StationStatusCode  *string   `json:"stationStatusCode"`
	CreatedBy          *int      `json:"createdBy"`
	UpdatedBy          *int      `json:"updatedBy"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// StationInput is the create / bulk-import payload.
type StationInput struct {
	StationCode        string  `json:"stationCode" binding:"required"`
	StationName        string  `json:"stationName" binding:"required"`
	AreaRegion         *string `json:"areaRegion"`
	City               *string `json:"city"`
	District           *string `json:"district"`
	Street             *string `json:"street"`
	GeographicLocation *string `json:"geographicLocation"`
	StationTypeCode    *string `json:"stationTypeCode"`
	StationStatusCode  *string `json:"stationStatusCode"`
}

// UpdateStationRequest carries a partial update; nil fields keep their value.
type UpdateStationRequest struct {
	StationName        *string `json:"stationName"`
	AreaRegion         *string `json:"areaRegion"`
	City               *string `json:"city"`
	District           *string `json:"district"`
	Street             *string `json:"street"`
	GeographicLocation *string `json:"geographicLocation"`
	StationTypeCode    *string `json:"stationTypeCode"`
	StationStatusCode  *string `json:"stationStatusCode"`
}

// BulkStationError reports a row that could not be imported.
type BulkStationError struct {
	StationCode string `json:"stationCode"`
	Error       string `json:"error"`
}

// BulkStationResult summarizes a bulk import.
type BulkStationResult struct {
	Processed int                `json:"processed"`
	Stations  []Station          `json:"data"`
	Errors    []BulkStationError `json:"errors"`
}
