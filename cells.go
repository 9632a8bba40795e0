package meshboundary

// Face tables list each face's cell-local corners, ordered so the face
// normal points out of a positively oriented cell.
var (
	tetraFaces = [4][3]int{
		{0, 1, 3}, {1, 2, 3}, {2, 0, 3}, {0, 2, 1},
	}
	hexahedronFaces = [6][4]int{
		{0, 4, 7, 3}, {1, 2, 6, 5},
		{0, 1, 5, 4}, {3, 7, 6, 2},
		{0, 3, 2, 1}, {4, 5, 6, 7},
	}
	voxelFaces = [6][4]int{
		{0, 4, 6, 2}, {1, 3, 7, 5},
		{0, 1, 5, 4}, {2, 6, 7, 3},
		{0, 2, 3, 1}, {4, 5, 7, 6},
	}
	wedgeTriFaces  = [2][3]int{{0, 1, 2}, {3, 5, 4}}
	wedgeQuadFaces = [3][4]int{
		{0, 3, 4, 1}, {1, 4, 5, 2}, {2, 5, 3, 0},
	}
	pyramidTriFaces = [4][3]int{
		{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4},
	}
	pyramidQuadFace = [4]int{0, 3, 2, 1}

	// pixelRing is the pixel corner order that walks its outline.
	pixelRing = [4]int{0, 1, 3, 2}
)

// addTriFace adds the face f of a cell, skipping it when two corners share
// a point.
func addTriFace(l *HashEntryList, ids []int, f [3]int, cellID, value int) {
	v := [3]int{ids[f[0]], ids[f[1]], ids[f[2]]}
	if v[0] == v[1] || v[1] == v[2] || v[2] == v[0] {
		return
	}
	l.AddTri(v, cellID, value)
}

// addQuadFace adds the face f of a cell. A quad with one collapsed edge, as
// produced by degenerate hexahedra, is added as a triangle.
func addQuadFace(l *HashEntryList, ids []int, f [4]int, cellID, value int) {
	var v [4]int
	n := 0
	for i := 0; i < 4; i++ {
		a, b := ids[f[i]], ids[f[(i+1)%4]]
		if a != b {
			v[n] = a
			n++
		}
	}
	switch n {
	case 4:
		if v[0] == v[2] || v[1] == v[3] {
			return
		}
		l.AddQuad(v, cellID, value)
	case 3:
		if v[0] == v[1] || v[1] == v[2] || v[2] == v[0] {
			return
		}
		l.AddTri([3]int{v[0], v[1], v[2]}, cellID, value)
	}
}

// AddTetrahedron adds the four faces of a tetrahedron. It reports false when
// the cell has too few points.
func AddTetrahedron(l *HashEntryList, ids []int, cellID, value int) bool {
	if len(ids) < 4 {
		return false
	}
	for _, f := range tetraFaces {
		addTriFace(l, ids, f, cellID, value)
	}
	return true
}

func AddHexahedron(l *HashEntryList, ids []int, cellID, value int) bool {
	if len(ids) < 8 {
		return false
	}
	for _, f := range hexahedronFaces {
		addQuadFace(l, ids, f, cellID, value)
	}
	return true
}

func AddVoxel(l *HashEntryList, ids []int, cellID, value int) bool {
	if len(ids) < 8 {
		return false
	}
	for _, f := range voxelFaces {
		addQuadFace(l, ids, f, cellID, value)
	}
	return true
}

func AddWedge(l *HashEntryList, ids []int, cellID, value int) bool {
	if len(ids) < 6 {
		return false
	}
	for _, f := range wedgeTriFaces {
		addTriFace(l, ids, f, cellID, value)
	}
	for _, f := range wedgeQuadFaces {
		addQuadFace(l, ids, f, cellID, value)
	}
	return true
}

func AddPyramid(l *HashEntryList, ids []int, cellID, value int) bool {
	if len(ids) < 5 {
		return false
	}
	addQuadFace(l, ids, pyramidQuadFace, cellID, value)
	for _, f := range pyramidTriFaces {
		addTriFace(l, ids, f, cellID, value)
	}
	return true
}

func addEdge(l *HashEntryList2D, a, b, cellID, value int) {
	if a == b {
		return
	}
	l.AddLine([2]int{a, b}, cellID, value)
}

// AddPolygon adds every edge of a polygon, walking its points as a ring.
func AddPolygon(l *HashEntryList2D, ids []int, cellID, value int) bool {
	if len(ids) < 3 {
		return false
	}
	ring := NewClist(ids)
	for i := 0; i < len(ids); i++ {
		e := ring.NextEdge()
		addEdge(l, e[0], e[1], cellID, value)
	}
	return true
}

func AddTriangle2D(l *HashEntryList2D, ids []int, cellID, value int) bool {
	if len(ids) < 3 {
		return false
	}
	return AddPolygon(l, ids[:3], cellID, value)
}

func AddQuad2D(l *HashEntryList2D, ids []int, cellID, value int) bool {
	if len(ids) < 4 {
		return false
	}
	return AddPolygon(l, ids[:4], cellID, value)
}

// AddPixel adds the edges of a pixel, whose corners are stored in row order
// rather than around its outline.
func AddPixel(l *HashEntryList2D, ids []int, cellID, value int) bool {
	if len(ids) < 4 {
		return false
	}
	ring := pixelToQuad(ids)
	return AddPolygon(l, ring[:], cellID, value)
}

func pixelToQuad(ids []int) [4]int {
	var ring [4]int
	for i, c := range pixelRing {
		ring[i] = ids[c]
	}
	return ring
}
