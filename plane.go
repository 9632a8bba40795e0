package meshboundary

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is the set of points x with Normal·x + D = 0.
type Plane struct {
	Normal mgl64.Vec3
	D      float64
}

const planeThickness = 1e-9

func NewPlane(point, normal mgl64.Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// SignedDistance is positive on the side the normal points to. Points
// within planeThickness of the plane report 0.
func (p Plane) SignedDistance(x mgl64.Vec3) float64 {
	d := p.Normal.Dot(x) + p.D
	if math.Abs(d) < planeThickness {
		return 0
	}
	return d
}

// Where sums the signed distances of pts: negative when they lie mostly
// behind the plane.
func (p Plane) Where(pts ...mgl64.Vec3) float64 {
	var inter float64
	for _, x := range pts {
		inter += p.SignedDistance(x)
	}
	return inter
}

// FacePlane returns the plane through face cell i, oriented by its winding.
// ok is false for non face cells and degenerate faces.
func (pd *PolyData) FacePlane(i int) (Plane, bool) {
	n := pd.FaceNormal(i)
	if n == (mgl64.Vec3{}) {
		return Plane{}, false
	}
	return NewPlane(pd.FaceCentroid(i), n), true
}

// EnclosedVolume applies the divergence theorem over every face cell. For a
// closed boundary with outward windings it is the enclosed volume; inward
// windings give a negative result.
func (pd *PolyData) EnclosedVolume() float64 {
	total := 0.0
	for i, c := range pd.cells {
		if !isFace(c.Type) || len(c.PointIDs) < 3 {
			continue
		}
		total += pd.FaceCentroid(i).Dot(pd.areaVector(c.PointIDs))
	}
	return total / 3
}
