package entity

import "time"

// ActionType tipo de acción registrada en el historial de inventario.
type ActionType string

const (
	ActionAdded       ActionType = "ADDED"
	ActionRemoved     ActionType = "REMOVED"
	ActionMoved       ActionType = "MOVED"
	ActionCounted     ActionType = "COUNTED"
	ActionQuarantined ActionType = "QUARANTINED"
)

// InventoryHistory registro inmutable (append-only) de un cambio de inventario.
type InventoryHistory struct {
	ID                    string
	ProductID             string
	InventoryItemID       string // vacío si el ítem ya no existe al registrar
	ActionType            ActionType
	Quantity              int
	SourceLocationID      string
	DestinationLocationID string
	UserID                string
	Username              string
	BatchNumber           string
	Notes                 string
	Timestamp             time.Time
}

// MonthlySummary totales de altas y bajas de un producto en un mes.
type MonthlySummary struct {
	Month     string // YYYY-MM
	Additions int
	Removals  int
}
