package model

import "time"

// Tank is an underground fuel tank at a station.
type Tank struct {
	ID                      int       `json:"id"`
	TankCode                string    `json:"tankCode"`
	FuelType                *string   `json:"fuelType"`
	Vendor                  *string   `json:"vendor"`
	TankCapacity            *float64  `json:"tankCapacity"`
	TankSize                *string   `json:"tankSize"`
	TankManufacturer        *string   `json:"tankManufacturer"`
	TankWarrantyCertificate *string   `json:"tankWarrantyCertificate"`
	StationCode             string    `json:"stationCode"`
	CanopyCode              *string   `json:"canopyCode"`
	CreatedBy               *int      `json:"createdBy"`
	UpdatedBy               *int      `json:"updatedBy"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

type CreateTankRequest struct {
	TankCode                string   `json:"tankCode" binding:"required"`
	FuelType                *string  `json:"fuelType"`
	Vendor                  *string  `json:"vendor"`
	TankCapacity            *float64 `json:"tankCapacity"`
	TankSize                *string  `json:"tankSize"`
	TankManufacturer        *string  `json:"tankManufacturer"`
	TankWarrantyCertificate *string  `json:"tankWarrantyCertificate"`
	StationCode             string   `json:"stationCode" binding:"required"`
	CanopyCode              *string  `json:"canopyCode"`
}

type UpdateTankRequest struct {
	FuelType                *string  `json:"fuelType"`
	Vendor                  *string  `json:"vendor"`
	TankCapacity            *float64 `json:"tankCapacity"`
	TankSize                *string  `json:"tankSize"`
	TankManufacturer        *string  `json:"tankManufacturer"`
	TankWarrantyCertificate *string  `json:"tankWarrantyCertificate"`
	StationCode             *string  `json:"stationCode"`
	CanopyCode              *string  `json:"canopyCode"`
}
