package meshboundary

// faceHeader is the bookkeeping shared by every face and edge record.
type faceHeader struct {
	originalCellID int
	cellValue      int
	matched        bool
}

func (h *faceHeader) OriginalCellID() int { return h.originalCellID }
func (h *faceHeader) CellValue() int      { return h.cellValue }
func (h *faceHeader) Matched() bool       { return h.matched }

// Line is an edge of a 2D cell. The smaller vertex is the hash key and is
// not stored.
type Line struct {
	faceHeader
	node         int
	orderingCase uint8
}

// set canonicalises the edge v and returns its hash key.
func (ln *Line) set(v [2]int, cellID, value int) int {
	key, node, ordering := lineOrdering(v)
	ln.node = node
	ln.orderingCase = ordering
	ln.faceHeader = faceHeader{originalCellID: cellID, cellValue: value}
	return key
}

func (ln *Line) equals(o *Line) bool {
	return ln.node == o.node
}

// OutputCell rebuilds the edge in its original direction.
func (ln *Line) OutputCell(key int) [2]int {
	sorted := [2]int{key, ln.node}
	var out [2]int
	for i, p := range linePerms[ln.orderingCase] {
		out[p] = sorted[i]
	}
	return out
}

// Tri is a triangular face. nodes holds the two largest vertices ascending.
type Tri struct {
	faceHeader
	nodes        [2]int
	orderingCase uint8
}

func (t *Tri) set(v [3]int, cellID, value int) int {
	key, nodes, ordering := triOrdering(v)
	t.nodes = nodes
	t.orderingCase = ordering
	t.faceHeader = faceHeader{originalCellID: cellID, cellValue: value}
	return key
}

func (t *Tri) equals(o *Tri) bool {
	return t.nodes == o.nodes
}

// equalsQuad reports whether t is one half of q split along a diagonal.
// Both must share the hash key, so t covers q's minimum vertex and its two
// stored nodes must be a pair of q's stored nodes.
func (t *Tri) equalsQuad(q *Quad) bool {
	a, b := t.nodes[0], t.nodes[1]
	n := q.nodes
	return (a == n[0] && b == n[1]) ||
		(a == n[1] && b == n[2]) ||
		(a == n[0] && b == n[2])
}

func (t *Tri) OutputCell(key int) [3]int {
	sorted := [3]int{key, t.nodes[0], t.nodes[1]}
	var out [3]int
	for i, p := range triPerms[t.orderingCase] {
		out[p] = sorted[i]
	}
	return out
}

// Quad is a quadrilateral face. nodes holds the three largest vertices ascending.
type Quad struct {
	faceHeader
	nodes        [3]int
	orderingCase uint8
}

func (q *Quad) set(v [4]int, cellID, value int) int {
	key, nodes, ordering := quadOrdering(v)
	q.nodes = nodes
	q.orderingCase = ordering
	q.faceHeader = faceHeader{originalCellID: cellID, cellValue: value}
	return key
}

func (q *Quad) equals(o *Quad) bool {
	return q.nodes == o.nodes
}

func (q *Quad) OutputCell(key int) [4]int {
	sorted := [4]int{key, q.nodes[0], q.nodes[1], q.nodes[2]}
	var out [4]int
	for i, p := range quadPerms[q.orderingCase] {
		out[p] = sorted[i]
	}
	return out
}

// missingCorner returns q's corners in winding order and the index of the
// corner t does not cover. t must satisfy t.equalsQuad(q).
func (q *Quad) missingCorner(key int, t *Tri) ([4]int, int) {
	corners := q.OutputCell(key)
	for i, v := range corners {
		if v != key && v != t.nodes[0] && v != t.nodes[1] {
			return corners, i
		}
	}
	return corners, 0
}

// half returns the triangle t covers, in q's winding.
func (q *Quad) half(key int, t *Tri) [3]int {
	corners, m := q.missingCorner(key, t)
	return [3]int{corners[(m+1)%4], corners[(m+2)%4], corners[(m+3)%4]}
}

// complement returns, in q's winding, the triangle left over when t covers
// the other half of q.
func (q *Quad) complement(key int, t *Tri) [3]int {
	corners, m := q.missingCorner(key, t)
	c := quadComplement[m]
	return [3]int{corners[c[0]], corners[c[1]], corners[c[2]]}
}
