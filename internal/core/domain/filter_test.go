package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTowerFilter(t *testing.T) {
	f, err := ParseTowerFilter("")
	require.NoError(t, err)
	assert.True(t, f.IsAll())

	f, err = ParseTowerFilter("ALL")
	require.NoError(t, err)
	assert.True(t, f.IsAll())

	f, err = ParseTowerFilter("lte")
	require.NoError(t, err)
	assert.Equal(t, "LTE", f.Type)

	_, err = ParseTowerFilter("wimax")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestTowerFilter_Matches(t *testing.T) {
	lte := Tower{Type: TowerLTE}
	gsm := Tower{Type: TowerGSM}

	assert.True(t, AllTowers().Matches(lte))
	assert.True(t, AllTowers().Matches(gsm))

	f := TowerFilter{Type: "LTE"}
	assert.True(t, f.Matches(lte))
	assert.False(t, f.Matches(gsm))
}

func TestTowerFilter_Validate(t *testing.T) {
	assert.NoError(t, AllTowers().Validate())
	assert.NoError(t, TowerFilter{}.Validate())
	assert.NoError(t, TowerFilter{Type: "NR"}.Validate())
	assert.ErrorIs(t, TowerFilter{Type: "lte"}.Validate(), ErrInvalidFilter)
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(ErrNoCarrier))
	assert.True(t, IsUserError(ErrNoSelection))
	assert.False(t, IsUserError(&GeocodeError{Message: "not found"}))
	assert.Equal(t, "not found", (&GeocodeError{Message: "not found"}).Error())
	assert.Equal(t, MsgLocationAbsent, (&GeocodeError{}).Error())
}
