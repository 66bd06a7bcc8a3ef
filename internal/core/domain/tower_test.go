package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFor_StepFunction(t *testing.T) {
	cases := map[float64]SignalBand{
		0:     BandLow,
		10:    BandLow,
		10.01: BandMid,
		30:    BandMid,
		30.01: BandGood,
		70:    BandGood,
		70.01: BandGreat,
		100:   BandGreat,
	}
	for q, want := range cases {
		assert.Equal(t, want, BandFor(q), "quality %v", q)
	}
}

func TestTowerIcon(t *testing.T) {
	assert.Equal(t, "/static/images/lte.png", TowerIcon(TowerLTE))
	assert.Equal(t, "/static/images/nr.png", TowerIcon(TowerNR))
	assert.Equal(t, DefaultIcon, TowerIcon("WIMAX"))
	assert.Equal(t, "/static/images/signal_great.png", SignalIcon(BandGreat))
}

func TestTower_Validate(t *testing.T) {
	ok := Tower{Type: TowerLTE, Lat: 40, Lon: -74, Range: 1000, SignalQuality: 55, Distance: 200}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Range = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRange)

	bad = ok
	bad.SignalQuality = 101
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSignalQuality)

	bad = ok
	bad.Distance = -3
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDistance)

	bad = ok
	bad.Lat = 95
	assert.ErrorIs(t, bad.Validate(), ErrInvalidCoordinate)
}

func TestTower_ValidateRejectsNonFinite(t *testing.T) {
	ok := Tower{Type: TowerGSM, Lat: 40, Lon: -74, Range: 1000, SignalQuality: 55, Distance: 200}

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		bad := ok
		bad.Range = v
		assert.ErrorIs(t, bad.Validate(), ErrInvalidRange)

		bad = ok
		bad.Distance = v
		assert.ErrorIs(t, bad.Validate(), ErrInvalidDistance)
	}
}
