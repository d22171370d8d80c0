package dto

import (
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// AddInventoryRequest body de POST /api/inventory/add. Sin location_id se asigna automáticamente.
type AddInventoryRequest struct {
	ProductID   string     `json:"product_id" validate:"required"`
	Quantity    int        `json:"quantity" validate:"gt=0"`
	LocationID  string     `json:"location_id,omitempty"`
	BatchNumber string     `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
}

// MoveInventoryRequest body de POST /api/inventory/:id/move.
type MoveInventoryRequest struct {
	NewLocationID string `json:"new_location_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"gt=0"`
}

// RemoveInventoryRequest body de POST /api/inventory/remove.
type RemoveInventoryRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// InventoryItemResponse salida de un ítem de inventario.
type InventoryItemResponse struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"product_id"`
	LocationID    string     `json:"location_id"`
	Quantity      int        `json:"quantity"`
	BatchNumber   string     `json:"batch_number,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	Quarantined   bool       `json:"quarantined"`
	LastCountedAt *time.Time `json:"last_counted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// RemovedLineResponse cantidad retirada de un ítem.
type RemovedLineResponse struct {
	ItemID     string `json:"item_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
	Consumed   bool   `json:"consumed"`
}

// RemoveInventoryResponse resultado de un retiro FEFO.
type RemoveInventoryResponse struct {
	ProductID string                `json:"product_id"`
	Quantity  int                   `json:"quantity"`
	Lines     []RemovedLineResponse `json:"lines"`
}

// AvailableQuantityResponse stock disponible (sin cuarentena) de un producto.
type AvailableQuantityResponse struct {
	ProductID string `json:"product_id"`
	Available int    `json:"available"`
}

// HistoryResponse registro del historial de inventario.
type HistoryResponse struct {
	ID                    string    `json:"id"`
	ProductID             string    `json:"product_id"`
	InventoryItemID       string    `json:"inventory_item_id,omitempty"`
	ActionType            string    `json:"action_type"`
	Quantity              int       `json:"quantity"`
	SourceLocationID      string    `json:"source_location_id,omitempty"`
	DestinationLocationID string    `json:"destination_location_id,omitempty"`
	UserID                string    `json:"user_id,omitempty"`
	Username              string    `json:"username,omitempty"`
	BatchNumber           string    `json:"batch_number,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	Timestamp             time.Time `json:"timestamp"`
}

// MonthlySummaryResponse altas y bajas de un mes (YYYY-MM).
type MonthlySummaryResponse struct {
	Month     string `json:"month"`
	Additions int    `json:"additions"`
	Removals  int    `json:"removals"`
}

func NewInventoryItemResponse(it *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:            it.ID,
		ProductID:     it.ProductID,
		LocationID:    it.LocationID,
		Quantity:      it.Quantity,
		BatchNumber:   it.BatchNumber,
		ExpiryDate:    it.ExpiryDate,
		Quarantined:   it.Quarantined,
		LastCountedAt: it.LastCountedAt,
		CreatedAt:     it.CreatedAt,
	}
}

func NewInventoryItemList(items []*entity.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewInventoryItemResponse(it))
	}
	return out
}

func NewHistoryList(list []*entity.InventoryHistory) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, HistoryResponse{
			ID:                    h.ID,
			ProductID:             h.ProductID,
			InventoryItemID:       h.InventoryItemID,
			ActionType:            string(h.ActionType),
			Quantity:              h.Quantity,
			SourceLocationID:      h.SourceLocationID,
			DestinationLocationID: h.DestinationLocationID,
			UserID:                h.UserID,
			Username:              h.Username,
			BatchNumber:           h.BatchNumber,
			Notes:                 h.Notes,
			Timestamp:             h.Timestamp,
		})
	}
	return out
}

func NewMonthlySummaryList(list []entity.MonthlySummary) []MonthlySummaryResponse {
	out := make([]MonthlySummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, MonthlySummaryResponse{Month: s.Month, Additions: s.Additions, Removals: s.Removals})
	}
	return out
}
