package meshboundary

// hashEntry2D is one bucket of the 2D edge table.
type hashEntry2D struct {
	lines     [hashEntrySize]*Line
	count     int
	extension *hashEntry2D
	list      *HashEntryList2D
}

func (e *hashEntry2D) tail() *hashEntry2D {
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

func (e *hashEntry2D) store(ln *Line) {
	b := e.tail()
	b.lines[b.count] = ln
	b.count++
	e.list.track(&ln.faceHeader)
}

func (e *hashEntry2D) remove(i int) {
	last := e.count - 1
	e.lines[i] = e.lines[last]
	e.lines[last] = nil
	e.count--
}

func (e *hashEntry2D) find(ln *Line) (*hashEntry2D, int) {
	for b := e; b != nil; b = b.extension {
		for i := 0; i < b.count; i++ {
			if ln.equals(b.lines[i]) {
				return b, i
			}
		}
	}
	return nil, -1
}

func (e *hashEntry2D) addLine(ln *Line) {
	b, i := e.find(ln)
	if b == nil {
		e.store(ln)
		return
	}

	l := e.list
	existing := b.lines[i]
	switch {
	case existing.cellValue < ln.cellValue:
		l.markMatched(&existing.faceHeader)
		l.lines.put(ln)
	case existing.cellValue > ln.cellValue:
		ln.matched = true
		l.untrack(&existing.faceHeader)
		b.lines[i] = ln
		l.track(&ln.faceHeader)
		l.lines.put(existing)
	default:
		l.untrack(&existing.faceHeader)
		b.remove(i)
		l.lines.put(existing)
		l.lines.put(ln)
	}
}

func (e *hashEntry2D) createOutputCells(key int, out *PolyData, inCD, outCD *FieldData, emitAll bool) int {
	n := 0
	for b := e; b != nil; b = b.extension {
		for i := 0; i < b.count; i++ {
			ln := b.lines[i]
			if !emitAll && !ln.matched {
				continue
			}
			ids := ln.OutputCell(key)
			id := out.InsertNextCell(CellLine, ids[:])
			outCD.CopyData(inCD, ln.originalCellID, id)
			n++
		}
	}
	return n
}

// HashEntryList2D is the edge table used for meshes of 2D cells.
type HashEntryList2D struct {
	table   []*hashEntry2D
	lines   *pool[Line]
	entries *pool[hashEntry2D]

	numLines   int
	numMatched int
}

func NewHashEntryList2D(numPoints int, opts PoolOptions) *HashEntryList2D {
	if numPoints < 0 {
		numPoints = 0
	}
	return &HashEntryList2D{
		table:   make([]*hashEntry2D, numPoints),
		lines:   newPool[Line](opts.BlockSize, opts.MaxFree),
		entries: newPool[hashEntry2D](opts.BlockSize, opts.MaxFree),
	}
}

// AddLine adds an edge given in the owning cell's direction.
func (l *HashEntryList2D) AddLine(v [2]int, cellID, value int) {
	ln := l.lines.get()
	key := ln.set(v, cellID, value)
	if key < 0 || key >= len(l.table) {
		l.lines.put(ln)
		return
	}
	e := l.table[key]
	if e == nil {
		e = l.entries.get()
		e.list = l
		l.table[key] = e
	}
	e.addLine(ln)
}

func (l *HashEntryList2D) track(h *faceHeader) {
	l.numLines++
	if h.matched {
		l.numMatched++
	}
}

func (l *HashEntryList2D) untrack(h *faceHeader) {
	l.numLines--
	if h.matched {
		l.numMatched--
	}
}

func (l *HashEntryList2D) markMatched(h *faceHeader) {
	if !h.matched {
		h.matched = true
		l.numMatched++
	}
}

func (l *HashEntryList2D) NumberOfLines() int        { return l.numLines }
func (l *HashEntryList2D) NumberOfMatchedLines() int { return l.numMatched }

// CreateOutputCells appends stored edges to out as line cells.
func (l *HashEntryList2D) CreateOutputCells(out *PolyData, inCD, outCD *FieldData, emitAll bool) int {
	n := 0
	for key, e := range l.table {
		if e != nil {
			n += e.createOutputCells(key, out, inCD, outCD, emitAll)
		}
	}
	return n
}

func (l *HashEntryList2D) Stats() TableStats {
	return TableStats{
		Buckets: l.entries.inUse,
		Records: []PoolStats{l.lines.stats()},
		Entries: l.entries.stats(),
	}
}

func (l *HashEntryList2D) Release() {
	l.table = nil
	l.lines.release()
	l.entries.release()
	l.numLines = 0
	l.numMatched = 0
}
