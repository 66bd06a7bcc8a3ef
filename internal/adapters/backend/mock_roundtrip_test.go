package backend

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AgainstMockBackend(t *testing.T) {
	srv := httptest.NewServer(mock.NewBackend("dense", []string{"AT&T", "Verizon"}, 0))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()

	at, err := c.Geocode(ctx, "Chicago")
	require.NoError(t, err)

	towers, err := c.BroadAreaSearch(ctx, at)
	require.NoError(t, err)
	for _, tw := range towers {
		assert.NoError(t, tw.Validate())
	}

	closest, err := c.FilterTowers(ctx, at, "Verizon")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(closest), len(domain.KnownTowerTypes))

	_, err = c.Geocode(ctx, "Atlantis")
	var gerr *domain.GeocodeError
	assert.True(t, errors.As(err, &gerr))
}
