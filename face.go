package meshboundary

import "github.com/go-gl/mathgl/mgl64"

// isFace reports whether a cell type is emitted as a polygonal face.
func isFace(t CellType) bool {
	switch t {
	case CellTriangle, CellQuad, CellPolygon:
		return true
	}
	return false
}

// FaceNormal returns the unit normal of face cell i following its winding,
// or the zero vector for non face cells and degenerate faces.
func (pd *PolyData) FaceNormal(i int) mgl64.Vec3 {
	c := pd.cells[i]
	if !isFace(c.Type) || len(c.PointIDs) < 3 {
		return mgl64.Vec3{}
	}
	n := pd.areaVector(c.PointIDs)
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// FaceArea returns the area of face cell i, 0 for other cells.
func (pd *PolyData) FaceArea(i int) float64 {
	c := pd.cells[i]
	if !isFace(c.Type) || len(c.PointIDs) < 3 {
		return 0
	}
	return pd.areaVector(c.PointIDs).Len()
}

// SurfaceArea sums the area of every face cell.
func (pd *PolyData) SurfaceArea() float64 {
	total := 0.0
	for i := range pd.cells {
		total += pd.FaceArea(i)
	}
	return total
}

// FaceCentroid returns the mean of the face's points.
func (pd *PolyData) FaceCentroid(i int) mgl64.Vec3 {
	c := pd.cells[i]
	if len(c.PointIDs) == 0 {
		return mgl64.Vec3{}
	}
	sum := mgl64.Vec3{}
	for _, id := range c.PointIDs {
		sum = sum.Add(pd.Points[id])
	}
	return sum.Mul(1 / float64(len(c.PointIDs)))
}

// areaVector is half the sum of the fan cross products: its direction is
// the face normal and its length the face area.
func (pd *PolyData) areaVector(ids []int) mgl64.Vec3 {
	p0 := pd.Points[ids[0]]
	sum := mgl64.Vec3{}
	for k := 1; k+1 < len(ids); k++ {
		u := pd.Points[ids[k]].Sub(p0)
		v := pd.Points[ids[k+1]].Sub(p0)
		sum = sum.Add(u.Cross(v))
	}
	return sum.Mul(0.5)
}
