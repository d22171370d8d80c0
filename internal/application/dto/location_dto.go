package dto

import "github.com/shopspring/decimal"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Aisle     string          `json:"aisle" validate:"required"`
	Rack      string          `json:"rack" validate:"required"`
	Shelf     string          `json:"shelf" validate:"required"`
	Bin       string          `json:"bin" validate:"required"`
	Type      string          `json:"location_type" validate:"required"`
	MaxWeight decimal.Decimal `json:"max_weight" validate:"gt=0"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Aisle             string          `json:"aisle"`
	Rack              string          `json:"rack"`
	Shelf             string          `json:"shelf"`
	Bin               string          `json:"bin"`
	Type              string          `json:"location_type"`
	Occupied          bool            `json:"occupied"`
	MaxWeight         decimal.Decimal `json:"max_weight"`
	CurrentWeight     decimal.Decimal `json:"current_weight"`
	RemainingCapacity decimal.Decimal `json:"remaining_capacity"`
}
