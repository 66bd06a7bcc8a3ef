package mock

import (
	"hash/fnv"
	"math"
	"math/rand"
	"regexp"
	"strings"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/geo"
)

// cellSize is the grid step, in degrees, towers are generated on.
const cellSize = 0.02

// searchCells is how many cells around the query point are scanned.
const searchCells = 2

// decay is the signal quality decay constant.
const decay = 2.5

// Gazetteer used by the geocoding endpoint. Keys are normalized names.
var gazetteer = map[string]domain.Coordinate{
	"newyork":      {Lat: 40.712776, Lon: -74.005974},
	"newyorkcity":  {Lat: 40.712776, Lon: -74.005974},
	"losangeles":   {Lat: 34.052235, Lon: -118.243683},
	"chicago":      {Lat: 41.878113, Lon: -87.629799},
	"houston":      {Lat: 29.760427, Lon: -95.369804},
	"sanfrancisco": {Lat: 37.774929, Lon: -122.419418},
	"seattle":      {Lat: 47.606209, Lon: -122.332069},
	"miami":        {Lat: 25.761681, Lon: -80.191788},
	"london":       {Lat: 51.507351, Lon: -0.127758},
	"paris":        {Lat: 48.856613, Lon: 2.352222},
	"berlin":       {Lat: 52.520008, Lon: 13.404954},
	"madrid":       {Lat: 40.416775, Lon: -3.703790},
	"tokyo":        {Lat: 35.689487, Lon: 139.691711},
}

// Radio technologies with their share of generated towers and range bounds in meters.
var radioProfiles = []struct {
	Type     domain.TowerType
	Weight   float64
	MinRange float64
	MaxRange float64
}{
	{domain.TowerLTE, 0.40, 800, 5000},
	{domain.TowerGSM, 0.20, 2000, 9000},
	{domain.TowerUMTS, 0.15, 1000, 6000},
	{domain.TowerNR, 0.15, 300, 1500},
	{domain.TowerCDMA, 0.10, 2000, 8000},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// NormalizeName lowercases s and drops everything but letters and digits.
func NormalizeName(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// ColorFor returns the display colour of a tower type.
func ColorFor(t domain.TowerType) string {
	switch t {
	case domain.TowerLTE:
		return "blue"
	case domain.TowerGSM:
		return "green"
	case domain.TowerCDMA:
		return "orange"
	case domain.TowerUMTS:
		return "purple"
	case domain.TowerNR:
		return "black"
	default:
		return "red"
	}
}

// SignalQuality is 100·e^(-k·d/R) rounded to 2 decimals, 0 when the range is 0.
func SignalQuality(distance, rangeM float64) float64 {
	if rangeM == 0 {
		return 0
	}
	q := math.Exp(-decay*(distance/rangeM)) * 100
	return math.Round(q*100) / 100
}

// SiteTower is a generated tower site, before distances are known.
type SiteTower struct {
	Type  domain.TowerType
	Lat   float64
	Lon   float64
	Range float64
}

// DataGenerator deterministically places tower sites on a lat/lon grid. The
// same carrier and cell always produce the same towers.
type DataGenerator struct {
	density int
}

// NewDataGenerator creates a generator for a scenario: "basic", "dense" or
// "empty". Unknown scenarios fall back to basic.
func NewDataGenerator(scenario string) *DataGenerator {
	switch scenario {
	case "dense":
		return &DataGenerator{density: 9}
	case "empty":
		return &DataGenerator{density: 0}
	default:
		return &DataGenerator{density: 4}
	}
}

func cellSeed(carrier string, x, y int64) int64 {
	h := fnv.New64a()
	h.Write([]byte(carrier))
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(x >> (8 * i))
		buf[8+i] = byte(y >> (8 * i))
	}
	h.Write(buf[:])
	return int64(h.Sum64())
}

// Cell returns the towers of a carrier in the grid cell (x, y).
func (g *DataGenerator) Cell(carrier string, x, y int64) []SiteTower {
	if g.density == 0 {
		return nil
	}
	r := rand.New(rand.NewSource(cellSeed(carrier, x, y)))
	n := r.Intn(g.density + 1)
	out := make([]SiteTower, 0, n)
	for i := 0; i < n; i++ {
		p := g.pickProfile(r)
		out = append(out, SiteTower{
			Type:  radioProfiles[p].Type,
			Lat:   (float64(y) + r.Float64()) * cellSize,
			Lon:   (float64(x) + r.Float64()) * cellSize,
			Range: math.Round(radioProfiles[p].MinRange + r.Float64()*(radioProfiles[p].MaxRange-radioProfiles[p].MinRange)),
		})
	}
	return out
}

func (g *DataGenerator) pickProfile(r *rand.Rand) int {
	x := r.Float64()
	acc := 0.0
	for i, p := range radioProfiles {
		acc += p.Weight
		if x < acc {
			return i
		}
	}
	return len(radioProfiles) - 1
}

// InRange returns every tower of the carriers whose range covers at, with
// distance and signal quality filled in.
func (g *DataGenerator) InRange(at domain.Coordinate, carriers ...string) []domain.Tower {
	cx := int64(math.Floor(at.Lon / cellSize))
	cy := int64(math.Floor(at.Lat / cellSize))

	var out []domain.Tower
	for _, carrier := range carriers {
		for dy := int64(-searchCells); dy <= searchCells; dy++ {
			for dx := int64(-searchCells); dx <= searchCells; dx++ {
				for _, s := range g.Cell(carrier, cx+dx, cy+dy) {
					d := geo.Distance(at, domain.Coordinate{Lat: s.Lat, Lon: s.Lon})
					if d > s.Range {
						continue
					}
					out = append(out, domain.Tower{
						Type:          s.Type,
						Lat:           s.Lat,
						Lon:           s.Lon,
						Range:         s.Range,
						SignalQuality: SignalQuality(d, s.Range),
						Distance:      d,
						Color:         ColorFor(s.Type),
					})
				}
			}
		}
	}
	return out
}

// ClosestPerType keeps the nearest tower of each type, in KnownTowerTypes order.
func ClosestPerType(towers []domain.Tower) []domain.Tower {
	best := make(map[domain.TowerType]domain.Tower)
	for _, t := range towers {
		if cur, ok := best[t.Type]; !ok || t.Distance < cur.Distance {
			best[t.Type] = t
		}
	}
	out := make([]domain.Tower, 0, len(best))
	for _, tt := range domain.KnownTowerTypes {
		if t, ok := best[tt]; ok {
			out = append(out, t)
			delete(best, tt)
		}
	}
	for _, t := range best {
		out = append(out, t)
	}
	return out
}

// Geocode looks a place name up in the gazetteer.
func Geocode(location string) (domain.Coordinate, bool) {
	c, ok := gazetteer[NormalizeName(location)]
	return c, ok
}
