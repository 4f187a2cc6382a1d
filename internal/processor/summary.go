package processor

import (
	"errors"

	"github.com/woozymasta/geojson/internal/geo"
	"github.com/woozymasta/geojson/internal/geojson"
)

// Summary describes a converted layer.
type Summary struct {
	Error      *ErrorInfo     `json:"error,omitempty" yaml:"error,omitempty"`
	Geometries map[string]int `json:"geometries,omitempty" yaml:"geometries,omitempty"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Kind       string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	BBox       []float64      `json:"bbox,omitempty" yaml:"bbox,omitempty"` // [minX, minY, maxX, maxY]
	Features   int            `json:"features" yaml:"features"`
	Points     int            `json:"points" yaml:"points"`
	Length     float64        `json:"length" yaml:"length"` // planar, in coordinate units
}

// ErrorInfo is the serializable form of a failed conversion.
type ErrorInfo struct {
	Kind    string `json:"kind" yaml:"kind"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// NewErrorInfo describes err, keeping the structure of conversion errors.
func NewErrorInfo(err error) *ErrorInfo {
	var ce *geojson.ConversionError
	if errors.As(err, &ce) {
		return &ErrorInfo{Kind: ce.Kind.String(), Path: ce.Path, Message: ce.Message}
	}
	return &ErrorInfo{Kind: "source", Message: err.Error()}
}

// Summarize collects feature, geometry and position statistics.
func Summarize(name string, v geo.GeoJSON) Summary {
	s := Summary{Name: name, Geometries: map[string]int{}}
	if v == nil {
		return s
	}
	s.Kind = v.Kind().String()

	var fc geo.FeatureCollection
	switch v := v.(type) {
	case geo.FeatureCollection:
		fc = v
		s.Features = len(v)
	case geo.Feature:
		fc = geo.FeatureCollection{v}
		s.Features = 1
	case geo.Geometry:
		fc = geo.FeatureCollection{{Geometry: v}}
	}

	for _, f := range fc {
		if f.Geometry == nil {
			continue
		}
		s.countTypes(f.Geometry)
		s.Points += geo.CountPoints(f.Geometry)
		s.Length += geo.Length(f.Geometry)
	}

	if b, ok := fc.Bound(); ok {
		s.BBox = []float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()}
	}

	return s
}

// countTypes counts g and, for collections, every nested member.
func (s *Summary) countTypes(g geo.Geometry) {
	s.Geometries[g.Type().String()]++

	if gc, ok := g.(geo.GeometryCollection); ok {
		for _, child := range gc {
			s.countTypes(child)
		}
	}
}
