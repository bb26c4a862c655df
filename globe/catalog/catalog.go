// Package catalog provides marker lists: the built-in set and GeoJSON files.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/spf13/afero"
	"github.com/wroge/wgs84"

	"lightglobe/globe/markers"
)

// ErrNoMarkers is returned for catalogs without a single usable marker.
var ErrNoMarkers = errors.New("catalog has no markers")

// DefaultColor is the pillar tint when a feature names none.
var DefaultColor = color.RGBA{R: 0xE6, G: 0xF8, B: 0xFF, A: 0xFF}

// Builtin returns the stock five-country list.
func Builtin() []markers.Marker {
	return []markers.Marker{
		{ID: "USA", Name: "USA", Lat: 37.0902, Lon: -95.7129, Color: DefaultColor},
		{ID: "China", Name: "China", Lat: 35.8617, Lon: 104.1954, Color: DefaultColor},
		{ID: "Russia", Name: "Russia", Lat: 61.5240, Lon: 105.3188, Color: DefaultColor},
		{ID: "Brazil", Name: "Brazil", Lat: -14.2350, Lon: -51.9253, Color: DefaultColor},
		{ID: "Australia", Name: "Australia", Lat: -25.2744, Lon: 133.7751, Color: DefaultColor},
	}
}

type crs struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

type properties struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

type inFeature struct {
	ID         json.RawMessage `json:"id,omitempty"`
	Geometry   *geom.Point     `json:"geometry"`
	Properties properties      `json:"properties"`
}

type inCollection struct {
	Type     string      `json:"type"`
	CRS      *crs        `json:"crs,omitempty"`
	Features []inFeature `json:"features"`
}

// Load reads a GeoJSON FeatureCollection of Point features. Coordinates are
// WGS84 longitude/latitude unless the legacy crs member names EPSG:3857, in
// which case they are converted. Marker ids come from the feature id, then
// properties.id, then properties.name.
func Load(r io.Reader) ([]markers.Marker, error) {
	var fc inCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if fc.Type != "" && fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("decode catalog: unexpected type %q", fc.Type)
	}

	toLonLat, err := projection(fc.CRS)
	if err != nil {
		return nil, err
	}

	out := make([]markers.Marker, 0, len(fc.Features))
	for i, f := range fc.Features {
		m, err := toMarker(f, toLonLat)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, ErrNoMarkers
	}
	return out, nil
}

// LoadFile reads a catalog file from fsys.
func LoadFile(fsys afero.Fs, path string) ([]markers.Marker, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

type transform func(x, y float64) (lon, lat float64)

func projection(c *crs) (transform, error) {
	if c == nil {
		return func(x, y float64) (float64, float64) { return x, y }, nil
	}
	code, err := epsgCode(c.Properties.Name)
	if err != nil {
		return nil, err
	}
	switch code {
	case 4326, 4979:
		return func(x, y float64) (float64, float64) { return x, y }, nil
	case 3857, 900913:
		f := wgs84.EPSG().Transform(3857, 4326)
		return func(x, y float64) (float64, float64) {
			lon, lat, _ := f(x, y, 0)
			return lon, lat
		}, nil
	default:
		return nil, fmt.Errorf("unsupported crs %q", c.Properties.Name)
	}
}

// epsgCode accepts "EPSG:3857", "urn:ogc:def:crs:EPSG::3857" and the
// OGC CRS84 name.
func epsgCode(name string) (int, error) {
	if strings.HasSuffix(name, "CRS84") {
		return 4326, nil
	}
	i := strings.LastIndex(name, ":")
	code, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return 0, fmt.Errorf("unsupported crs %q", name)
	}
	return code, nil
}

func toMarker(f inFeature, toLonLat transform) (markers.Marker, error) {
	if f.Geometry == nil {
		return markers.Marker{}, errors.New("missing point geometry")
	}
	c, ok := f.Geometry.Coordinates()
	if !ok {
		return markers.Marker{}, errors.New("empty point")
	}
	lon, lat := toLonLat(c.XY.X, c.XY.Y)

	m := markers.Marker{
		ID:    featureID(f),
		Name:  f.Properties.Name,
		Lat:   lat,
		Lon:   lon,
		Color: DefaultColor,
	}
	if m.ID == "" {
		return markers.Marker{}, errors.New("feature has no id or name")
	}
	if f.Properties.Color != "" {
		col, err := colorful.Hex(f.Properties.Color)
		if err != nil {
			return markers.Marker{}, fmt.Errorf("color %q: %w", f.Properties.Color, err)
		}
		r, g, b := col.RGB255()
		m.Color = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return m, nil
}

func featureID(f inFeature) string {
	if len(f.ID) > 0 {
		var s string
		if err := json.Unmarshal(f.ID, &s); err == nil && s != "" {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(f.ID, &n); err == nil {
			return n.String()
		}
	}
	if f.Properties.ID != "" {
		return f.Properties.ID
	}
	return f.Properties.Name
}

type outFeature struct {
	Type       string        `json:"type"`
	ID         string        `json:"id"`
	Geometry   geom.Geometry `json:"geometry"`
	Properties properties    `json:"properties"`
}

type outCollection struct {
	Type     string       `json:"type"`
	Features []outFeature `json:"features"`
}

// Write encodes markers as an indented WGS84 GeoJSON FeatureCollection that
// Load reads back.
func Write(w io.Writer, ms []markers.Marker) error {
	fc := outCollection{Type: "FeatureCollection", Features: make([]outFeature, 0, len(ms))}
	for _, m := range ms {
		wkt := "POINT(" + strconv.FormatFloat(m.Lon, 'f', -1, 64) + " " + strconv.FormatFloat(m.Lat, 'f', -1, 64) + ")"
		g, err := geom.UnmarshalWKT(wkt)
		if err != nil {
			return fmt.Errorf("marker %q: %w", m.ID, err)
		}
		col, _ := colorful.MakeColor(opaque(m.Color))
		fc.Features = append(fc.Features, outFeature{
			Type:     "Feature",
			ID:       m.ID,
			Geometry: g,
			Properties: properties{
				Name:  m.Name,
				Color: strings.ToUpper(col.Hex()),
			},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}

// opaque keeps MakeColor from rejecting a zero alpha.
func opaque(c color.RGBA) color.RGBA {
	c.A = 0xFF
	return c
}
