// Package geojson converts parsed GeoJSON documents into the typed model of
// package geo.
//
// Conversion is a single top-down pass over a jsonvalue.Value. The first
// violation aborts it and is returned as a *ConversionError; no partial
// result is ever returned alongside an error. Converters hold no mutable
// state and are safe for concurrent use on distinct or read-only inputs.
package geojson

import (
	"fmt"
	"math"

	"github.com/woozymasta/geojson/internal/geo"
	"github.com/woozymasta/geojson/internal/jsonvalue"
)

const root = "$"

// Options toggles optional parts of the reader.
type Options struct {
	// GeometryCollections enables recursive conversion of
	// GeometryCollection. When false it is rejected as not implemented
	// once its geometries member has been validated.
	GeometryCollections bool
}

// Converter turns jsonvalue trees into geo values. The zero value is ready
// to use.
type Converter struct {
	opts Options
}

// New returns a Converter with the given options.
func New(opts Options) *Converter {
	return &Converter{opts: opts}
}

var defaultConverter Converter

// Convert converts a top-level GeoJSON document with default options.
func Convert(v jsonvalue.Value) (geo.GeoJSON, error) {
	return defaultConverter.Convert(v)
}

// ConvertFeature converts a Feature object with default options.
func ConvertFeature(v jsonvalue.Value) (geo.Feature, error) {
	return defaultConverter.ConvertFeature(v)
}

// ConvertGeometry converts a geometry object with default options.
func ConvertGeometry(v jsonvalue.Value) (geo.Geometry, error) {
	return defaultConverter.ConvertGeometry(v)
}

// Convert converts a top-level GeoJSON document. Only FeatureCollection
// documents are supported; any other type is a NotImplementedError.
func (c *Converter) Convert(v jsonvalue.Value) (geo.GeoJSON, error) {
	if !jsonvalue.IsObject(v) {
		return nil, schemaError(root, "GeoJSON must be an object")
	}

	typ, err := typeOf(v, root, "GeoJSON")
	if err != nil {
		return nil, err
	}

	if typ != "FeatureCollection" {
		return nil, notImplemented(root, typ)
	}

	if !v.Has("features") {
		return nil, schemaError(root, "FeatureCollection must have features property")
	}

	features := v.Member("features")
	path := member(root, "features")
	if !jsonvalue.IsArray(features) {
		return nil, schemaError(path, "FeatureCollection features property must be an array")
	}

	n := features.Len()
	collection := make(geo.FeatureCollection, 0, n)
	for i := 0; i < n; i++ {
		f, err := c.convertFeature(features.Index(i), index(path, i))
		if err != nil {
			return nil, err
		}
		collection = append(collection, f)
	}

	return collection, nil
}

// ConvertFeature converts a Feature object. Feature properties are not
// read, so a missing properties member is fine.
func (c *Converter) ConvertFeature(v jsonvalue.Value) (geo.Feature, error) {
	return c.convertFeature(v, root)
}

func (c *Converter) convertFeature(v jsonvalue.Value, path string) (geo.Feature, error) {
	if !jsonvalue.IsObject(v) {
		return geo.Feature{}, schemaError(path, "Feature must be an object")
	}

	typ, err := typeOf(v, path, "Feature")
	if err != nil {
		return geo.Feature{}, err
	}
	if typ != "Feature" {
		return geo.Feature{}, schemaError(member(path, "type"), "Feature type must be Feature")
	}

	if !v.Has("geometry") {
		return geo.Feature{}, schemaError(path, "Feature must have a geometry property")
	}

	geometry := v.Member("geometry")
	geometryPath := member(path, "geometry")
	if !jsonvalue.IsObject(geometry) {
		return geo.Feature{}, schemaError(geometryPath, "Feature geometry must be an object")
	}

	g, err := c.convertGeometry(geometry, geometryPath)
	if err != nil {
		return geo.Feature{}, err
	}

	return geo.Feature{Geometry: g}, nil
}

// ConvertGeometry converts a geometry object.
func (c *Converter) ConvertGeometry(v jsonvalue.Value) (geo.Geometry, error) {
	return c.convertGeometry(v, root)
}

func (c *Converter) convertGeometry(v jsonvalue.Value, path string) (geo.Geometry, error) {
	if !jsonvalue.IsObject(v) {
		return nil, schemaError(path, "Geometry must be an object")
	}

	name, err := typeOf(v, path, "Geometry")
	if err != nil {
		return nil, err
	}
	typ, known := geo.ParseGeometryType(name)

	if typ == geo.TypeGeometryCollection {
		return c.convertCollection(v, path)
	}

	if !v.Has("coordinates") {
		return nil, schemaError(path, "GeoJSON geometry must have a coordinates property")
	}

	coords := v.Member("coordinates")
	coordsPath := member(path, "coordinates")
	if !jsonvalue.IsArray(coords) {
		return nil, schemaError(coordsPath, "coordinates property must be an array")
	}

	if !known {
		return nil, notImplemented(path, name)
	}

	switch typ {
	case geo.TypePoint:
		p, err := convertPoint(coords, coordsPath)
		if err != nil {
			return nil, err
		}
		return p, nil
	case geo.TypeMultiPoint:
		return convertPoints[geo.MultiPoint](coords, coordsPath)
	case geo.TypeLineString:
		return convertPoints[geo.LineString](coords, coordsPath)
	case geo.TypePolygon, geo.TypeMultiLineString, geo.TypeMultiPolygon:
		return nil, notImplemented(path, typ.String())
	case geo.TypeGeometryCollection:
		// handled above, it has no coordinates member
	}

	return nil, notImplemented(path, name)
}

func (c *Converter) convertCollection(v jsonvalue.Value, path string) (geo.Geometry, error) {
	if !v.Has("geometries") {
		return nil, schemaError(path, "GeometryCollection must have a geometries property")
	}

	geometries := v.Member("geometries")
	geometriesPath := member(path, "geometries")
	if !jsonvalue.IsArray(geometries) {
		return nil, schemaError(geometriesPath, "GeometryCollection geometries property must be an array")
	}

	if !c.opts.GeometryCollections {
		return nil, notImplemented(path, geo.TypeGeometryCollection.String())
	}

	n := geometries.Len()
	collection := make(geo.GeometryCollection, 0, n)
	for i := 0; i < n; i++ {
		g, err := c.convertGeometry(geometries.Index(i), index(geometriesPath, i))
		if err != nil {
			return nil, err
		}
		collection = append(collection, g)
	}

	return collection, nil
}

// convertPoint reads the first two numbers of a position. Extra dimensions
// such as altitude are dropped.
func convertPoint(v jsonvalue.Value, path string) (geo.Point, error) {
	if v.Len() < 2 {
		return geo.Point{}, schemaError(path, "coordinates array must have at least 2 numbers")
	}

	x, err := coordinate(v.Index(0), index(path, 0))
	if err != nil {
		return geo.Point{}, err
	}
	y, err := coordinate(v.Index(1), index(path, 1))
	if err != nil {
		return geo.Point{}, err
	}

	return geo.Point{X: x, Y: y}, nil
}

// coordinate reads a single finite number. YAML can spell NaN and
// infinities, JSON cannot.
func coordinate(v jsonvalue.Value, path string) (float64, error) {
	if !jsonvalue.IsNumber(v) {
		return 0, schemaError(path, "coordinate must be a number")
	}

	f := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, schemaError(path, "coordinate must be a finite number")
	}

	return f, nil
}

// pointSequence is a geometry made of an ordered list of positions.
type pointSequence interface {
	~[]geo.Point
	geo.Geometry
}

// convertPoints reads an array of positions, keeping their order.
func convertPoints[T pointSequence](v jsonvalue.Value, path string) (geo.Geometry, error) {
	n := v.Len()
	points := make(T, 0, n)

	for i := 0; i < n; i++ {
		elem := v.Index(i)
		elemPath := index(path, i)
		if !jsonvalue.IsArray(elem) {
			return nil, schemaError(elemPath, "position must be an array")
		}

		p, err := convertPoint(elem, elemPath)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, nil
}

// typeOf returns the "type" discriminator of an object.
func typeOf(v jsonvalue.Value, path, what string) (string, error) {
	if !v.Has("type") {
		return "", schemaError(path, "%s must have a type property", what)
	}

	t := v.Member("type")
	if !jsonvalue.IsString(t) {
		return "", schemaError(member(path, "type"), "%s type property must be a string", what)
	}

	return t.Str(), nil
}

func member(path, key string) string {
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
