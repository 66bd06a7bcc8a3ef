package summary

import (
	"testing"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_StableDescending(t *testing.T) {
	towers := []domain.Tower{
		{Type: domain.TowerGSM, SignalQuality: 50, Distance: 1},
		{Type: domain.TowerLTE, SignalQuality: 80, Distance: 2},
		{Type: domain.TowerNR, SignalQuality: 80, Distance: 3},
	}

	rows := Render(towers, domain.AllTowers())
	require.Len(t, rows, 3)
	assert.Equal(t, "LTE", rows[0].Type, "first 80 keeps its place")
	assert.Equal(t, "NR", rows[1].Type)
	assert.Equal(t, "GSM", rows[2].Type)

	// Input untouched
	assert.Equal(t, domain.TowerGSM, towers[0].Type)
}

func TestRender_CountMatchesFilter(t *testing.T) {
	towers := []domain.Tower{
		{Type: domain.TowerLTE, SignalQuality: 10},
		{Type: domain.TowerGSM, SignalQuality: 20},
		{Type: domain.TowerLTE, SignalQuality: 30},
		{Type: domain.TowerUMTS, SignalQuality: 40},
	}

	tests := []struct {
		filter string
		want   int
	}{
		{"all", 4},
		{"LTE", 2},
		{"GSM", 1},
		{"UMTS", 1},
	}
	for _, tt := range tests {
		f, err := domain.ParseTowerFilter(tt.filter)
		require.NoError(t, err)
		rows := Render(towers, f)
		assert.Len(t, rows, tt.want, tt.filter)
		for _, r := range rows {
			assert.False(t, r.Placeholder)
		}
	}
}

func TestRender_Placeholder(t *testing.T) {
	for _, towers := range [][]domain.Tower{nil, {{Type: domain.TowerGSM}}} {
		rows := Render(towers, domain.TowerFilter{Type: "NR"})
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Placeholder)
		assert.Equal(t, domain.NoTowersMessage, rows[0].Message)
	}
}

func TestRow_Formatting(t *testing.T) {
	row := Row(domain.Tower{
		Type:          domain.TowerLTE,
		Range:         1500,
		SignalQuality: 70.015,
		Distance:      123.456,
	})

	assert.Equal(t, "/static/images/lte.png", row.TypeIcon)
	assert.Equal(t, "/static/images/signal_great.png", row.SignalIcon)
	assert.Equal(t, "1500 meters", row.Range)
	assert.Equal(t, "123.46 meters", row.Distance)
	assert.Equal(t, "LTE", row.Type)
}
