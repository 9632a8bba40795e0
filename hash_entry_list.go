package meshboundary

// PoolOptions sizes the record pools of a hash table.
type PoolOptions struct {
	BlockSize int
	MaxFree   int
}

func DefaultPoolOptions() PoolOptions {
	return PoolOptions{BlockSize: DefaultPoolBlockSize, MaxFree: DefaultMaxFreeRecords}
}

// HashEntryList is the 3D face table. Faces are keyed by their smallest
// vertex, so the table has one bucket head per mesh point.
type HashEntryList struct {
	table   []*hashEntry
	tris    *pool[Tri]
	quads   *pool[Quad]
	entries *pool[hashEntry]

	numFaces   int
	numMatched int
}

func NewHashEntryList(numPoints int, opts PoolOptions) *HashEntryList {
	if numPoints < 0 {
		numPoints = 0
	}
	return &HashEntryList{
		table:   make([]*hashEntry, numPoints),
		tris:    newPool[Tri](opts.BlockSize, opts.MaxFree),
		quads:   newPool[Quad](opts.BlockSize, opts.MaxFree),
		entries: newPool[hashEntry](opts.BlockSize, opts.MaxFree),
	}
}

func (l *HashEntryList) entry(key int) *hashEntry {
	e := l.table[key]
	if e == nil {
		e = l.entries.get()
		e.list = l
		l.table[key] = e
	}
	return e
}

func (l *HashEntryList) inRange(key int) bool {
	return key >= 0 && key < len(l.table)
}

// AddTri adds a triangular face given in the owning cell's winding.
func (l *HashEntryList) AddTri(v [3]int, cellID, value int) {
	t := l.tris.get()
	key := t.set(v, cellID, value)
	l.addTriRecord(key, t)
}

// AddQuad adds a quadrilateral face given in the owning cell's winding.
func (l *HashEntryList) AddQuad(v [4]int, cellID, value int) {
	q := l.quads.get()
	key := q.set(v, cellID, value)
	if !l.inRange(key) {
		l.quads.put(q)
		return
	}
	l.entry(key).addQuad(key, q)
}

func (l *HashEntryList) addTriRecord(key int, t *Tri) {
	if !l.inRange(key) {
		l.tris.put(t)
		return
	}
	l.entry(key).addTri(key, t)
}

// addSplit inserts the half of a quad that survived a triangle match. It
// keeps the quad's cell, value and matched state.
func (l *HashEntryList) addSplit(v [3]int, owner faceHeader) {
	t := l.tris.get()
	key := t.set(v, owner.originalCellID, owner.cellValue)
	t.matched = owner.matched
	l.addTriRecord(key, t)
}

func (l *HashEntryList) track(h *faceHeader) {
	l.numFaces++
	if h.matched {
		l.numMatched++
	}
}

func (l *HashEntryList) untrack(h *faceHeader) {
	l.numFaces--
	if h.matched {
		l.numMatched--
	}
}

func (l *HashEntryList) markMatched(h *faceHeader) {
	if !h.matched {
		h.matched = true
		l.numMatched++
	}
}

// NumberOfFaces is the number of faces currently stored.
func (l *HashEntryList) NumberOfFaces() int { return l.numFaces }

// NumberOfMatchedFaces is the number of stored faces marked matched.
func (l *HashEntryList) NumberOfMatchedFaces() int { return l.numMatched }

// CreateOutputCells appends stored faces to out in key order, copying each
// face's cell data from its owning input cell. With emitAll false only
// matched faces are written. It returns the number of cells written.
func (l *HashEntryList) CreateOutputCells(out *PolyData, inCD, outCD *FieldData, emitAll bool) int {
	n := 0
	for key, e := range l.table {
		if e != nil {
			n += e.createOutputCells(key, out, inCD, outCD, emitAll)
		}
	}
	return n
}

// TableStats reports pool usage of a hash table.
type TableStats struct {
	Buckets int
	Records []PoolStats
	Entries PoolStats
}

func (l *HashEntryList) Stats() TableStats {
	return TableStats{
		Buckets: l.entries.inUse,
		Records: []PoolStats{l.tris.stats(), l.quads.stats()},
		Entries: l.entries.stats(),
	}
}

// Release drops the bucket array and every pool block.
func (l *HashEntryList) Release() {
	l.table = nil
	l.tris.release()
	l.quads.release()
	l.entries.release()
	l.numFaces = 0
	l.numMatched = 0
}
