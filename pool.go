package meshboundary

const (
	// DefaultPoolBlockSize is the number of records allocated at once when
	// a pool runs dry.
	DefaultPoolBlockSize = 256
	// DefaultMaxFreeRecords caps the free list of a pool.
	DefaultMaxFreeRecords = 16384
)

// pool hands out records carved from fixed size blocks and recycles them
// through a bounded free list. Records are never released one by one: the
// blocks go away together in release.
type pool[T any] struct {
	blockSize int
	maxFree   int
	blocks    [][]T
	free      []*T
	inUse     int
	abandoned int
}

func newPool[T any](blockSize, maxFree int) *pool[T] {
	if blockSize < 1 {
		blockSize = DefaultPoolBlockSize
	}
	if maxFree < 0 {
		maxFree = DefaultMaxFreeRecords
	}
	return &pool[T]{
		blockSize: blockSize,
		maxFree:   maxFree,
		free:      make([]*T, 0, blockSize),
	}
}

func (p *pool[T]) grow() {
	block := make([]T, p.blockSize)
	p.blocks = append(p.blocks, block)
	// pushed in reverse so get hands them out in block order
	for i := len(block) - 1; i >= 0; i-- {
		p.free = append(p.free, &block[i])
	}
}

// get returns a zeroed record.
func (p *pool[T]) get() *T {
	if len(p.free) == 0 {
		p.grow()
	}
	last := len(p.free) - 1
	r := p.free[last]
	p.free[last] = nil
	p.free = p.free[:last]
	var zero T
	*r = zero
	p.inUse++
	return r
}

// put hands r back. Once the free list is full r is abandoned; it stays
// owned by its block until release.
func (p *pool[T]) put(r *T) {
	p.inUse--
	if len(p.free) >= p.maxFree {
		p.abandoned++
		return
	}
	p.free = append(p.free, r)
}

func (p *pool[T]) release() {
	p.blocks = nil
	p.free = nil
	p.inUse = 0
	p.abandoned = 0
}

// PoolStats describes one pool's memory at a point in time.
type PoolStats struct {
	Blocks    int
	Allocated int
	InUse     int
	Free      int
	Abandoned int
}

func (p *pool[T]) stats() PoolStats {
	return PoolStats{
		Blocks:    len(p.blocks),
		Allocated: len(p.blocks) * p.blockSize,
		InUse:     p.inUse,
		Free:      len(p.free),
		Abandoned: p.abandoned,
	}
}
