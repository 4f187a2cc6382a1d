// Package geo holds the typed GeoJSON model produced by the converter.
package geo

// Kind identifies the variant held by a GeoJSON value.
type Kind int

// GeoJSON value kinds.
const (
	KindEmpty Kind = iota
	KindGeometry
	KindFeature
	KindFeatureCollection
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindGeometry:
		return "Geometry"
	case KindFeature:
		return "Feature"
	case KindFeatureCollection:
		return "FeatureCollection"
	}
	return "Unknown"
}

// GeoJSON is the result of a conversion: Empty, a Geometry, a Feature or
// a FeatureCollection. The set of implementations is closed.
type GeoJSON interface {
	Kind() Kind
	geojson()
}

// Empty is the zero state of a GeoJSON value. Conversion never returns it.
type Empty struct{}

// Kind implements GeoJSON.
func (Empty) Kind() Kind { return KindEmpty }
func (Empty) geojson() {}

// Feature is a geometry with properties. Properties are not modeled.
type Feature struct {
	Geometry Geometry
}

// Kind implements GeoJSON.
func (Feature) Kind() Kind { return KindFeature }
func (Feature) geojson() {}

// FeatureCollection is an ordered set of features.
type FeatureCollection []Feature

// Kind implements GeoJSON.
func (FeatureCollection) Kind() Kind { return KindFeatureCollection }
func (FeatureCollection) geojson() {}
