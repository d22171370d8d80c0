package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LocationType clasifica el uso de una ubicación dentro de la bodega.
type LocationType string

const (
	LocationPicking     LocationType = "PICKING"
	LocationPacking     LocationType = "PACKING"
	LocationBulkStorage LocationType = "BULK_STORAGE"
	LocationReceiving   LocationType = "RECEIVING"
	LocationShipping    LocationType = "SHIPPING"
)

// ParseLocationType convierte un string (sin distinguir mayúsculas) en LocationType.
func ParseLocationType(s string) (LocationType, bool) {
	t := LocationType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case LocationPicking, LocationPacking, LocationBulkStorage, LocationReceiving, LocationShipping:
		return t, true
	}
	return "", false
}

// WarehouseLocation posición física identificada por pasillo/rack/estante/bin.
// Occupied y CurrentWeight se recalculan a partir de los ítems que contiene.
type WarehouseLocation struct {
	ID            string
	Aisle         string
	Rack          string
	Shelf         string
	Bin           string
	Type          LocationType
	Occupied      bool
	MaxWeight     decimal.Decimal
	CurrentWeight decimal.Decimal
}

// Code devuelve la clave legible, ej. "A-1-2-1".
func (l *WarehouseLocation) Code() string {
	return fmt.Sprintf("%s-%s-%s-%s", l.Aisle, l.Rack, l.Shelf, l.Bin)
}

// RemainingCapacity peso que aún admite la ubicación.
func (l *WarehouseLocation) RemainingCapacity() decimal.Decimal {
	return l.MaxWeight.Sub(l.CurrentWeight)
}
