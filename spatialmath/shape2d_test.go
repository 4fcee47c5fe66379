package spatialmath_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/spatialmath"
)

func TestCirclesCollide(t *testing.T) {
	a := spatialmath.Circle{Center: spatialmath.NewVec2(0, 0), Radius: 1}
	b := spatialmath.Circle{Center: spatialmath.NewVec2(1.5, 0), Radius: 1}
	test.That(t, spatialmath.CirclesCollide(a, b), test.ShouldBeTrue)

	c := spatialmath.Circle{Center: spatialmath.NewVec2(10, 0), Radius: 1}
	test.That(t, spatialmath.CirclesCollide(a, c), test.ShouldBeFalse)
}

func TestCircleDist(t *testing.T) {
	a := spatialmath.Circle{Center: spatialmath.NewVec2(0, 0), Radius: 1}
	b := spatialmath.Circle{Center: spatialmath.NewVec2(5, 0), Radius: 1}
	test.That(t, spatialmath.CircleDist(a, b), test.ShouldEqual, 3.0)
}

func TestLineLineIntersect(t *testing.T) {
	p1, p2 := spatialmath.NewVec2(0, 0), spatialmath.NewVec2(2, 2)
	p3, p4 := spatialmath.NewVec2(0, 2), spatialmath.NewVec2(2, 0)
	pt, ok := spatialmath.LineLineIntersect(p1, p2, p3, p4)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, pt.X, test.ShouldAlmostEqual, 1.0)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 1.0)
}

func TestLineLineIntersectParallelNoHit(t *testing.T) {
	p1, p2 := spatialmath.NewVec2(0, 0), spatialmath.NewVec2(1, 0)
	p3, p4 := spatialmath.NewVec2(0, 1), spatialmath.NewVec2(1, 1)
	_, ok := spatialmath.LineLineIntersect(p1, p2, p3, p4)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestPointInPolygon(t *testing.T) {
	square := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0), spatialmath.NewVec2(4, 0),
		spatialmath.NewVec2(4, 4), spatialmath.NewVec2(0, 4),
	}}
	test.That(t, spatialmath.PointInPolygon(spatialmath.NewVec2(2, 2), square), test.ShouldBeTrue)
	test.That(t, spatialmath.PointInPolygon(spatialmath.NewVec2(10, 10), square), test.ShouldBeFalse)
}

func TestPolygonsCollideOverlapping(t *testing.T) {
	a := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0), spatialmath.NewVec2(2, 0),
		spatialmath.NewVec2(2, 2), spatialmath.NewVec2(0, 2),
	}}
	b := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(1, 1), spatialmath.NewVec2(3, 1),
		spatialmath.NewVec2(3, 3), spatialmath.NewVec2(1, 3),
	}}
	test.That(t, spatialmath.PolygonsCollide(a, b), test.ShouldBeTrue)
}

func TestPolygonsCollideDisjointAABBReject(t *testing.T) {
	a := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0), spatialmath.NewVec2(1, 0),
		spatialmath.NewVec2(1, 1), spatialmath.NewVec2(0, 1),
	}}
	b := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(100, 100), spatialmath.NewVec2(101, 100),
		spatialmath.NewVec2(101, 101), spatialmath.NewVec2(100, 101),
	}}
	test.That(t, spatialmath.PolygonsCollide(a, b), test.ShouldBeFalse)
}

func TestPolygonsCollideOneContainsOther(t *testing.T) {
	outer := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(-5, -5), spatialmath.NewVec2(5, -5),
		spatialmath.NewVec2(5, 5), spatialmath.NewVec2(-5, 5),
	}}
	inner := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(-1, -1), spatialmath.NewVec2(1, -1),
		spatialmath.NewVec2(1, 1), spatialmath.NewVec2(-1, 1),
	}}
	test.That(t, spatialmath.PolygonsCollide(outer, inner), test.ShouldBeTrue)
}

func TestCirclePolygonCollide(t *testing.T) {
	poly := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(0, 0), spatialmath.NewVec2(4, 0),
		spatialmath.NewVec2(4, 4), spatialmath.NewVec2(0, 4),
	}}
	inside := spatialmath.Circle{Center: spatialmath.NewVec2(2, 2), Radius: 0.5}
	test.That(t, spatialmath.CirclePolygonCollide(inside, poly), test.ShouldBeTrue)

	far := spatialmath.Circle{Center: spatialmath.NewVec2(100, 100), Radius: 0.5}
	test.That(t, spatialmath.CirclePolygonCollide(far, poly), test.ShouldBeFalse)
}

func TestShapesCollideDispatch(t *testing.T) {
	c := spatialmath.Circle{Center: spatialmath.NewVec2(0, 0), Radius: 1}
	poly := spatialmath.Polygon{Vertices: []spatialmath.Vec2{
		spatialmath.NewVec2(-2, -2), spatialmath.NewVec2(2, -2),
		spatialmath.NewVec2(2, 2), spatialmath.NewVec2(-2, 2),
	}}
	test.That(t, spatialmath.ShapesCollide(c, poly), test.ShouldBeTrue)
	test.That(t, spatialmath.ShapesCollide(poly, c), test.ShouldBeTrue)
}

func TestClosestPointOnSegment(t *testing.T) {
	a, b := spatialmath.NewVec2(0, 0), spatialmath.NewVec2(10, 0)
	p := spatialmath.NewVec2(5, 5)
	closest, t_ := spatialmath.ClosestPointOnSegment(a, b, p)
	test.That(t, closest.X, test.ShouldEqual, 5.0)
	test.That(t, closest.Y, test.ShouldEqual, 0.0)
	test.That(t, t_, test.ShouldEqual, 0.5)
}
