package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// LocationUseCase alta y consulta de ubicaciones. Peso actual y ocupación
// los mantiene el motor de inventario.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación vacía.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	typ, ok := entity.ParseLocationType(in.Type)
	if !ok {
		return nil, domain.Invalid("location_type desconocido %q", in.Type)
	}
	loc := &entity.WarehouseLocation{
		ID:            uuid.New().String(),
		Aisle:         strings.TrimSpace(in.Aisle),
		Rack:          strings.TrimSpace(in.Rack),
		Shelf:         strings.TrimSpace(in.Shelf),
		Bin:           strings.TrimSpace(in.Bin),
		Type:          typ,
		MaxWeight:     in.MaxWeight,
		CurrentWeight: decimal.Zero,
	}
	if loc.Aisle == "" || loc.Rack == "" || loc.Shelf == "" || loc.Bin == "" {
		return nil, domain.Invalid("aisle, rack, shelf y bin son requeridos")
	}
	if !loc.MaxWeight.IsPositive() {
		return nil, domain.Invalid("max_weight debe ser positivo")
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetByID obtiene una ubicación.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.NotFound("ubicación", id)
	}
	return toLocationResponse(loc), nil
}

// List todas las ubicaciones o solo las del tipo indicado.
func (uc *LocationUseCase) List(ctx context.Context, locType string) ([]dto.LocationResponse, error) {
	if locType == "" {
		list, err := uc.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return toLocationList(list), nil
	}
	typ, err := parseType(locType)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByType(ctx, typ)
	if err != nil {
		return nil, err
	}
	return toLocationList(list), nil
}

// ListAvailableByType ubicaciones desocupadas del tipo (BULK_STORAGE por defecto).
func (uc *LocationUseCase) ListAvailableByType(ctx context.Context, locType string) ([]dto.LocationResponse, error) {
	typ := entity.LocationBulkStorage
	if locType != "" {
		var err error
		if typ, err = parseType(locType); err != nil {
			return nil, err
		}
	}
	list, err := uc.repo.ListAvailableByType(ctx, typ)
	if err != nil {
		return nil, err
	}
	return toLocationList(list), nil
}

// ListWithSpace ubicaciones por debajo del 90% de su capacidad.
func (uc *LocationUseCase) ListWithSpace(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.repo.ListWithSpace(ctx, inventory.SpaceAvailableRatio)
	if err != nil {
		return nil, err
	}
	return toLocationList(list), nil
}

func parseType(s string) (entity.LocationType, error) {
	typ, ok := entity.ParseLocationType(s)
	if !ok {
		return "", fmt.Errorf("%w: location_type desconocido %q", domain.ErrInvalidInput, s)
	}
	return typ, nil
}

func toLocationList(list []*entity.WarehouseLocation) []dto.LocationResponse {
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLocationResponse(l))
	}
	return out
}

func toLocationResponse(l *entity.WarehouseLocation) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:                l.ID,
		Code:              l.Code(),
		Aisle:             l.Aisle,
		Rack:              l.Rack,
		Shelf:             l.Shelf,
		Bin:               l.Bin,
		Type:              string(l.Type),
		Occupied:          l.Occupied,
		MaxWeight:         l.MaxWeight,
		CurrentWeight:     l.CurrentWeight,
		RemainingCapacity: l.RemainingCapacity(),
	}
}
