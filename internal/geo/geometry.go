package geo

// GeometryType enumerates the geometry kinds defined by RFC 7946.
type GeometryType int

// Geometry types. Only some of them have a model in this package; the
// converter rejects the rest as not implemented.
const (
	TypePoint GeometryType = iota + 1
	TypeMultiPoint
	TypeLineString
	TypePolygon
	TypeMultiLineString
	TypeMultiPolygon
	TypeGeometryCollection
)

var geometryTypeNames = map[GeometryType]string{
	TypePoint:              "Point",
	TypeMultiPoint:         "MultiPoint",
	TypeLineString:         "LineString",
	TypePolygon:            "Polygon",
	TypeMultiLineString:    "MultiLineString",
	TypeMultiPolygon:       "MultiPolygon",
	TypeGeometryCollection: "GeometryCollection",
}

var geometryTypesByName = func() map[string]GeometryType {
	m := make(map[string]GeometryType, len(geometryTypeNames))
	for t, name := range geometryTypeNames {
		m[name] = t
	}
	return m
}()

// ParseGeometryType maps a GeoJSON "type" string to a GeometryType.
// Matching is case sensitive, as in the standard.
func ParseGeometryType(s string) (GeometryType, bool) {
	t, ok := geometryTypesByName[s]
	return t, ok
}

func (t GeometryType) String() string {
	if name, ok := geometryTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Geometry is a shape value. Implementations: Point, MultiPoint,
// LineString and GeometryCollection.
type Geometry interface {
	GeoJSON
	Type() GeometryType
}

// Point is a 2D position, X is longitude and Y latitude by convention.
type Point struct {
	X, Y float64
}

// MultiPoint is an unordered set of points.
type MultiPoint []Point

// LineString is a directed path through its points.
type LineString []Point

// GeometryCollection is a heterogeneous set of geometries, possibly nested.
type GeometryCollection []Geometry

// Type implements Geometry.
func (Point) Type() GeometryType { return TypePoint }

// Kind implements GeoJSON.
func (Point) Kind() Kind { return KindGeometry }
func (Point) geojson() {}

// Type implements Geometry.
func (MultiPoint) Type() GeometryType { return TypeMultiPoint }

// Kind implements GeoJSON.
func (MultiPoint) Kind() Kind { return KindGeometry }
func (MultiPoint) geojson() {}

// Type implements Geometry.
func (LineString) Type() GeometryType { return TypeLineString }

// Kind implements GeoJSON.
func (LineString) Kind() Kind { return KindGeometry }
func (LineString) geojson() {}

// Type implements Geometry.
func (GeometryCollection) Type() GeometryType { return TypeGeometryCollection }

// Kind implements GeoJSON.
func (GeometryCollection) Kind() Kind { return KindGeometry }
func (GeometryCollection) geojson() {}
