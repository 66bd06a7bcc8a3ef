package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/geo"
)

// circleSegments is the number of vertices used to approximate a coverage circle.
const circleSegments = 64

// ExportJSON writes towers as a JSON array
func ExportJSON(w io.Writer, towers []domain.Tower) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if towers == nil {
		towers = []domain.Tower{}
	}
	return encoder.Encode(towers)
}

// ExportCSV writes towers as CSV with headers
func ExportCSV(w io.Writer, towers []domain.Tower) error {
	writer := csv.NewWriter(w)

	headers := []string{"Type", "Latitude", "Longitude", "Range", "SignalQuality", "SignalBand", "Distance", "Color"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, t := range towers {
		row := []string{
			string(t.Type),
			strconv.FormatFloat(t.Lat, 'f', 6, 64),
			strconv.FormatFloat(t.Lon, 'f', 6, 64),
			strconv.FormatFloat(t.Range, 'f', -1, 64),
			fmt.Sprintf("%.2f", t.SignalQuality),
			string(domain.BandFor(t.SignalQuality)),
			fmt.Sprintf("%.2f", t.Distance),
			t.Color,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// OverlayCollection converts drawn overlays to GeoJSON. Pins and markers
// become points; coverage circles become polygons.
func OverlayCollection(overlays []domain.Overlay) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, o := range overlays {
		var g orb.Geometry = geo.Point(o.Position)
		if o.Kind == domain.OverlayCoverageCircle {
			g = geo.Circle(o.Position, o.Radius, circleSegments)
		}

		f := geojson.NewFeature(g)
		f.ID = o.ID
		f.Properties["kind"] = string(o.Kind)
		if o.Label != "" {
			f.Properties["label"] = o.Label
		}
		if o.Icon != "" {
			f.Properties["icon"] = o.Icon
		}
		if o.Kind == domain.OverlayCoverageCircle {
			f.Properties["radius"] = o.Radius
			f.Properties["color"] = o.Color
			f.Properties["fill_opacity"] = o.FillOpacity
		}
		if o.Kind != domain.OverlayDropPin {
			f.Properties["tower_index"] = o.TowerIndex
		}
		if o.PairID != "" {
			f.Properties["pair_id"] = o.PairID
		}
		fc.Append(f)
	}
	return fc
}

// ExportGeoJSON writes overlays as a GeoJSON FeatureCollection.
func ExportGeoJSON(w io.Writer, overlays []domain.Overlay) error {
	data, err := OverlayCollection(overlays).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}
