package ports

import (
	"context"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
)

// TowerBackend is the remote search and geocoding service.
type TowerBackend interface {
	// Geocode resolves a free-text place name. A backend-reported failure is
	// returned as *domain.GeocodeError.
	Geocode(ctx context.Context, location string) (domain.Coordinate, error)

	// FilterTowers returns the closest tower of each type for a carrier.
	FilterTowers(ctx context.Context, c domain.Coordinate, carrier string) ([]domain.Tower, error)

	// BroadAreaSearch returns every tower whose range covers the coordinate.
	BroadAreaSearch(ctx context.Context, c domain.Coordinate) ([]domain.Tower, error)
}
