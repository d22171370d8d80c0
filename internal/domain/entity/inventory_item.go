package entity

import "time"

// InventoryItem cantidad de un producto en una ubicación, opcionalmente con lote y vencimiento.
// Un ítem en cuarentena no cuenta como disponible.
type InventoryItem struct {
	ID            string
	ProductID     string
	LocationID    string
	Quantity      int
	BatchNumber   string
	ExpiryDate    *time.Time
	Quarantined   bool
	LastCountedAt *time.Time
	CreatedAt     time.Time
}

// IsExpired indica si el ítem venció antes de now.
func (i *InventoryItem) IsExpired(now time.Time) bool {
	return i.ExpiryDate != nil && i.ExpiryDate.Before(now)
}

// ExpiresBetween indica si el vencimiento cae en [from, to].
func (i *InventoryItem) ExpiresBetween(from, to time.Time) bool {
	if i.ExpiryDate == nil {
		return false
	}
	return !i.ExpiryDate.Before(from) && !i.ExpiryDate.After(to)
}
