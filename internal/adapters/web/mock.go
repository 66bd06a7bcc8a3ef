package web

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/geo"
)

// MockSessionService is a mock of ports.SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) ClickMap(ctx context.Context, c domain.Coordinate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockSessionService) PointerMoved(ctx context.Context, c domain.Coordinate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockSessionService) MoveToLocation(ctx context.Context, location string) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockSessionService) MoveToCoordinates(ctx context.Context, latText, lonText string) error {
	args := m.Called(ctx, latText, lonText)
	return args.Error(0)
}

func (m *MockSessionService) UseCurrentLocation(ctx context.Context, provider geo.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockSessionService) SearchCarrier(ctx context.Context, carrier string) error {
	args := m.Called(ctx, carrier)
	return args.Error(0)
}

func (m *MockSessionService) BroadAreaSearch(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionService) SetFilter(ctx context.Context, filter domain.TowerFilter) error {
	args := m.Called(ctx, filter)
	return args.Error(0)
}

func (m *MockSessionService) ToggleCircle(ctx context.Context, markerID string) error {
	args := m.Called(ctx, markerID)
	return args.Error(0)
}

func (m *MockSessionService) State(ctx context.Context) (domain.SessionState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SessionState), args.Error(1)
}

func (m *MockSessionService) Overlays(ctx context.Context) ([]domain.Overlay, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Overlay), args.Error(1)
}
