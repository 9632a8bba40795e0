package meshboundary

// Ordering cases. Each entry is a permutation p with sorted[i] = original[p[i]],
// so sorted[0] is the minimum vertex (the hash key) and the rest are the
// stored nodes. Inverting p recovers the original winding exactly.
var linePerms = [2][2]uint8{
	{0, 1},
	{1, 0},
}

var triPerms = [6][3]uint8{
	{0, 1, 2}, {0, 2, 1},
	{1, 0, 2}, {1, 2, 0},
	{2, 0, 1}, {2, 1, 0},
}

var quadPerms = [24][4]uint8{
	{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 1, 3}, {0, 2, 3, 1}, {0, 3, 1, 2}, {0, 3, 2, 1},
	{1, 0, 2, 3}, {1, 0, 3, 2}, {1, 2, 0, 3}, {1, 2, 3, 0}, {1, 3, 0, 2}, {1, 3, 2, 0},
	{2, 0, 1, 3}, {2, 0, 3, 1}, {2, 1, 0, 3}, {2, 1, 3, 0}, {2, 3, 0, 1}, {2, 3, 1, 0},
	{3, 0, 1, 2}, {3, 0, 2, 1}, {3, 1, 0, 2}, {3, 1, 2, 0}, {3, 2, 0, 1}, {3, 2, 1, 0},
}

// Decision tables: triCase[argmin][argmax] and
// quadCase[argmin][argmax][middle pair descending].
var (
	triCase  [3][3]uint8
	quadCase [4][4][2]uint8
)

// quadComplement[m] lists the corners of the half of a quad that keeps
// corner m, given the other half is corners m+1, m+2, m+3. The order keeps
// the quad's winding.
var quadComplement = [4][3]int{
	{0, 1, 3},
	{1, 2, 0},
	{2, 3, 1},
	{3, 0, 2},
}

func init() {
	for c, p := range triPerms {
		triCase[p[0]][p[2]] = uint8(c)
	}
	for c, p := range quadPerms {
		desc := 0
		if p[1] > p[2] {
			desc = 1
		}
		quadCase[p[0]][p[3]][desc] = uint8(c)
	}
}

// argMinMax returns the first position holding the minimum and the last
// position holding the maximum. They differ whenever len(v) > 1.
func argMinMax(v []int) (lo, hi int) {
	for i := 1; i < len(v); i++ {
		if v[i] < v[lo] {
			lo = i
		}
		if v[i] >= v[hi] {
			hi = i
		}
	}
	if lo == hi {
		// all equal
		lo, hi = 0, len(v)-1
	}
	return lo, hi
}

func lineOrdering(v [2]int) (key, node int, ordering uint8) {
	if v[0] <= v[1] {
		return v[0], v[1], 0
	}
	return v[1], v[0], 1
}

func triOrdering(v [3]int) (key int, nodes [2]int, ordering uint8) {
	lo, hi := argMinMax(v[:])
	mid := 3 - lo - hi
	return v[lo], [2]int{v[mid], v[hi]}, triCase[lo][hi]
}

func quadOrdering(v [4]int) (key int, nodes [3]int, ordering uint8) {
	lo, hi := argMinMax(v[:])
	var rest [2]int
	n := 0
	for i := 0; i < 4; i++ {
		if i != lo && i != hi {
			rest[n] = i
			n++
		}
	}
	desc := 0
	if v[rest[0]] > v[rest[1]] {
		desc = 1
	}
	ordering = quadCase[lo][hi][desc]
	p := quadPerms[ordering]
	return v[p[0]], [3]int{v[p[1]], v[p[2]], v[p[3]]}, ordering
}
