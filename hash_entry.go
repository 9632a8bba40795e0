package meshboundary

// hashEntrySize is the number of in place slots per bucket.
const hashEntrySize = 8

// hashEntry is one bucket of the 3D face table. Slot i holds a Quad when bit
// i of quadMask is set and a Tri otherwise. Overflow goes to extension.
type hashEntry struct {
	tris      [hashEntrySize]*Tri
	quads     [hashEntrySize]*Quad
	quadMask  uint8
	count     int
	extension *hashEntry
	list      *HashEntryList
}

func (e *hashEntry) isQuad(i int) bool {
	return e.quadMask&(1<<uint(i)) != 0
}

func (e *hashEntry) setTri(i int, t *Tri) {
	e.tris[i] = t
	e.quads[i] = nil
	e.quadMask &^= 1 << uint(i)
}

func (e *hashEntry) setQuad(i int, q *Quad) {
	e.quads[i] = q
	e.tris[i] = nil
	e.quadMask |= 1 << uint(i)
}

// header returns the bookkeeping of whatever record sits in slot i.
func (e *hashEntry) header(i int) *faceHeader {
	if e.isQuad(i) {
		return &e.quads[i].faceHeader
	}
	return &e.tris[i].faceHeader
}

// tail returns the first bucket in the chain with a free slot, growing the
// chain when every bucket is full.
func (e *hashEntry) tail() *hashEntry {
	b := e
	for b.count == hashEntrySize {
		if b.extension == nil {
			ext := e.list.entries.get()
			ext.list = e.list
			b.extension = ext
		}
		b = b.extension
	}
	return b
}

func (e *hashEntry) storeTri(t *Tri) {
	b := e.tail()
	b.setTri(b.count, t)
	b.count++
	e.list.track(&t.faceHeader)
}

func (e *hashEntry) storeQuad(q *Quad) {
	b := e.tail()
	b.setQuad(b.count, q)
	b.count++
	e.list.track(&q.faceHeader)
}

// remove drops slot i by moving the last occupied slot into it.
func (e *hashEntry) remove(i int) {
	last := e.count - 1
	if i != last {
		if e.isQuad(last) {
			e.setQuad(i, e.quads[last])
		} else {
			e.setTri(i, e.tris[last])
		}
	}
	e.tris[last] = nil
	e.quads[last] = nil
	e.quadMask &^= 1 << uint(last)
	e.count--
}

func (e *hashEntry) findTri(t *Tri) (*hashEntry, int) {
	for b := e; b != nil; b = b.extension {
		for i := 0; i < b.count; i++ {
			if b.isQuad(i) {
				if t.equalsQuad(b.quads[i]) {
					return b, i
				}
			} else if t.equals(b.tris[i]) {
				return b, i
			}
		}
	}
	return nil, -1
}

func (e *hashEntry) findQuad(q *Quad) (*hashEntry, int) {
	for b := e; b != nil; b = b.extension {
		for i := 0; i < b.count; i++ {
			if b.isQuad(i) {
				if q.equals(b.quads[i]) {
					return b, i
				}
			} else if b.tris[i].equalsQuad(q) {
				return b, i
			}
		}
	}
	return nil, -1
}

// addTri inserts t or resolves it against the face it duplicates. The lower
// cell value keeps a shared face and marks it matched; equal values cancel.
func (e *hashEntry) addTri(key int, t *Tri) {
	b, i := e.findTri(t)
	if b == nil {
		e.storeTri(t)
		return
	}
	if b.isQuad(i) {
		b.addTriOverQuad(key, i, t)
		return
	}

	l := e.list
	existing := b.tris[i]
	switch {
	case existing.cellValue < t.cellValue:
		l.markMatched(&existing.faceHeader)
		l.tris.put(t)
	case existing.cellValue > t.cellValue:
		t.matched = true
		l.untrack(&existing.faceHeader)
		b.setTri(i, t)
		l.track(&t.faceHeader)
		l.tris.put(existing)
	default:
		l.untrack(&existing.faceHeader)
		b.remove(i)
		l.tris.put(existing)
		l.tris.put(t)
	}
}

// addTriOverQuad resolves t against the quad in slot i that it covers half
// of. The quad is always split: the half t covers is resolved here and the
// other half goes back in as a triangle.
func (e *hashEntry) addTriOverQuad(key, i int, t *Tri) {
	l := e.list
	q := e.quads[i]
	switch {
	case q.cellValue < t.cellValue:
		l.untrack(&q.faceHeader)
		e.keepQuadHalf(key, i, q, t)
	case q.cellValue > t.cellValue:
		rest, owner := q.complement(key, t), q.faceHeader
		t.matched = true
		l.untrack(&q.faceHeader)
		e.setTri(i, t)
		l.track(&t.faceHeader)
		l.quads.put(q)
		l.addSplit(rest, owner)
	default:
		rest, owner := q.complement(key, t), q.faceHeader
		l.untrack(&q.faceHeader)
		e.remove(i)
		l.quads.put(q)
		l.tris.put(t)
		l.addSplit(rest, owner)
	}
}

func (e *hashEntry) addQuad(key int, q *Quad) {
	b, i := e.findQuad(q)
	if b == nil {
		e.storeQuad(q)
		return
	}
	if !b.isQuad(i) {
		b.addQuadOverTri(key, i, q)
		return
	}

	l := e.list
	existing := b.quads[i]
	switch {
	case existing.cellValue < q.cellValue:
		l.markMatched(&existing.faceHeader)
		l.quads.put(q)
	case existing.cellValue > q.cellValue:
		q.matched = true
		l.untrack(&existing.faceHeader)
		b.setQuad(i, q)
		l.track(&q.faceHeader)
		l.quads.put(existing)
	default:
		l.untrack(&existing.faceHeader)
		b.remove(i)
		l.quads.put(existing)
		l.quads.put(q)
	}
}

// addQuadOverTri resolves q against a stored triangle covering half of it.
func (e *hashEntry) addQuadOverTri(key, i int, q *Quad) {
	l := e.list
	t := e.tris[i]
	switch {
	case t.cellValue < q.cellValue:
		rest, owner := q.complement(key, t), q.faceHeader
		l.markMatched(&t.faceHeader)
		l.quads.put(q)
		l.addSplit(rest, owner)
	case t.cellValue > q.cellValue:
		l.untrack(&t.faceHeader)
		e.keepQuadHalf(key, i, q, t)
	default:
		rest, owner := q.complement(key, t), q.faceHeader
		l.untrack(&t.faceHeader)
		e.remove(i)
		l.tris.put(t)
		l.quads.put(q)
		l.addSplit(rest, owner)
	}
}

// keepQuadHalf handles a quad that wins against the triangle t covering half
// of it. Slot i gets that half as a matched triangle owned by the quad, in
// the quad's winding, reusing t's record. The other half goes back through
// the table so it meets its own neighbour at its own key. Neither q nor t
// may be tracked when it is called.
func (e *hashEntry) keepQuadHalf(key, i int, q *Quad, t *Tri) {
	l := e.list
	half, rest, owner := q.half(key, t), q.complement(key, t), q.faceHeader
	t.set(half, owner.originalCellID, owner.cellValue)
	t.matched = true
	e.setTri(i, t)
	l.track(&t.faceHeader)
	l.quads.put(q)
	l.addSplit(rest, owner)
}

// createOutputCells emits this chain's records, all of them or only the
// matched ones, and returns how many were emitted.
func (e *hashEntry) createOutputCells(key int, out *PolyData, inCD, outCD *FieldData, emitAll bool) int {
	n := 0
	for b := e; b != nil; b = b.extension {
		for i := 0; i < b.count; i++ {
			h := b.header(i)
			if !emitAll && !h.matched {
				continue
			}
			var id int
			if b.isQuad(i) {
				ids := b.quads[i].OutputCell(key)
				id = out.InsertNextCell(CellQuad, ids[:])
			} else {
				ids := b.tris[i].OutputCell(key)
				id = out.InsertNextCell(CellTriangle, ids[:])
			}
			outCD.CopyData(inCD, h.originalCellID, id)
			n++
		}
	}
	return n
}
