package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ToOrb converts a geometry into its orb counterpart so it can be fed to
// orb based algorithms. A nil geometry yields nil.
func ToOrb(g Geometry) orb.Geometry {
	switch g := g.(type) {
	case Point:
		return orb.Point{g.X, g.Y}
	case MultiPoint:
		mp := make(orb.MultiPoint, len(g))
		for i, p := range g {
			mp[i] = orb.Point{p.X, p.Y}
		}
		return mp
	case LineString:
		ls := make(orb.LineString, len(g))
		for i, p := range g {
			ls[i] = orb.Point{p.X, p.Y}
		}
		return ls
	case GeometryCollection:
		c := make(orb.Collection, 0, len(g))
		for _, child := range g {
			if o := ToOrb(child); o != nil {
				c = append(c, o)
			}
		}
		return c
	}
	return nil
}

// CountPoints returns the number of positions in g, recursing into collections.
func CountPoints(g Geometry) int {
	switch g := g.(type) {
	case Point:
		return 1
	case MultiPoint:
		return len(g)
	case LineString:
		return len(g)
	case GeometryCollection:
		n := 0
		for _, child := range g {
			n += CountPoints(child)
		}
		return n
	}
	return 0
}

// Bound returns the planar bounding box of g. ok is false when g holds no
// positions. Empty members of a collection do not contribute.
func Bound(g Geometry) (b orb.Bound, ok bool) {
	switch g := g.(type) {
	case Point:
		return orb.Point{g.X, g.Y}.Bound(), true
	case MultiPoint, LineString:
		if CountPoints(g) == 0 {
			return b, false
		}
		return ToOrb(g).Bound(), true
	case GeometryCollection:
		for _, child := range g {
			cb, cok := Bound(child)
			b, ok = union(b, ok, cb, cok)
		}
		return b, ok
	}
	return b, false
}

// Bound returns the planar bounding box of all features. ok is false when
// the collection holds no positions.
func (fc FeatureCollection) Bound() (b orb.Bound, ok bool) {
	for _, f := range fc {
		fb, fok := Bound(f.Geometry)
		b, ok = union(b, ok, fb, fok)
	}
	return b, ok
}

// union merges two optional bounds. orb.Bound.Union does not treat an
// empty receiver specially, so emptiness is tracked by the flags.
func union(a orb.Bound, aok bool, b orb.Bound, bok bool) (orb.Bound, bool) {
	switch {
	case !bok:
		return a, aok
	case !aok:
		return b, true
	}
	return a.Union(b), true
}

// Length returns the summed planar length of the line strings in g,
// in coordinate units.
func Length(g Geometry) float64 {
	o := ToOrb(g)
	if o == nil {
		return 0
	}
	return planar.Length(o)
}
