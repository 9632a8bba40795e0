package meshboundary

import (
	"io"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestFilter(t *testing.T, mutate func(*Config)) *BoundaryFilter {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	if mutate != nil {
		mutate(&cfg)
	}
	f, err := NewBoundaryFilter(cfg)
	require.NoError(t, err)
	return f
}

// withOwners adds an "owner" array holding each cell's own id.
func withOwners(g *UnstructuredGrid) *UnstructuredGrid {
	owners := make([]int, len(g.Cells))
	for i := range owners {
		owners[i] = i
	}
	g.CellData.AddArray(NewIntArray("owner", owners))
	return g
}

func addPoints(b *MeshBuilder, pts ...mgl64.Vec3) {
	for _, p := range pts {
		b.AddPoint(p)
	}
}

var (
	tetPoints = []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1},
	}
	cubePoints = []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
)

func twoTets(a, b int) *UnstructuredGrid {
	mb := NewMeshBuilder()
	addPoints(mb, tetPoints...)
	mb.AddCell(CellTetra, a, 0, 1, 2, 3)
	mb.AddCell(CellTetra, b, 1, 2, 3, 4)
	return withOwners(mb.Build())
}

func TestTwoTetsSameValue(t *testing.T) {
	out, s := newTestFilter(t, nil).Execute(twoTets(1, 1))
	assert.Equal(t, 6, out.NumberOfCells())
	assert.Equal(t, 6, s.Faces)
	assert.Zero(t, s.MatchedFaces)
	assert.True(t, s.SingleValue)
	for _, c := range out.Cells() {
		assert.Equal(t, CellTriangle, c.Type)
		assert.False(t, containsAll(c.PointIDs, 1, 2, 3), "shared face %v emitted", c.PointIDs)
	}
}

func TestTwoTetsDifferentValues(t *testing.T) {
	testCases := []struct {
		name   string
		a, b   int
		winner int
	}{
		{"first lower", 1, 2, 0},
		{"second lower", 2, 1, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, s := newTestFilter(t, nil).Execute(twoTets(tc.a, tc.b))
			require.Equal(t, 7, out.NumberOfCells())
			assert.Equal(t, 1, s.MatchedFaces)
			assert.False(t, s.SingleValue)

			owners, _ := out.CellData.IntArray("owner")
			shared := 0
			for i, c := range out.Cells() {
				if containsAll(c.PointIDs, 1, 2, 3) {
					shared++
					assert.Equal(t, tc.winner, owners.Values[i])
				}
			}
			assert.Equal(t, 1, shared)
		})
	}
}

func TestTwoTetsSubsetMode(t *testing.T) {
	f := newTestFilter(t, func(c *Config) { c.Mode = ModeSubset })

	out, _ := f.Execute(twoTets(1, 2))
	require.Equal(t, 1, out.NumberOfCells())
	assert.True(t, containsAll(out.GetCell(0).PointIDs, 1, 2, 3))

	// a single valued mesh falls back to the full boundary
	out, s := f.Execute(twoTets(3, 3))
	assert.True(t, s.SingleValue)
	assert.Equal(t, 6, out.NumberOfCells())
}

func containsAll(ids []int, want ...int) bool {
	for _, w := range want {
		found := false
		for _, id := range ids {
			if id == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestSingleCells(t *testing.T) {
	testCases := []struct {
		name   string
		cell   CellType
		points []mgl64.Vec3
		tris   int
		quads  int
		volume float64
	}{
		{"tetra", CellTetra, tetPoints[:4], 4, 0, 1.0 / 6},
		{"hexahedron", CellHexahedron, cubePoints, 0, 6, 1},
		{"voxel", CellVoxel, []mgl64.Vec3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
		}, 0, 6, 1},
		{"wedge", CellWedge, []mgl64.Vec3{
			{0, 0, 0}, {0, 1, 0}, {1, 0, 0},
			{0, 0, 1}, {0, 1, 1}, {1, 0, 1},
		}, 2, 3, 0.5},
		{"pyramid", CellPyramid, []mgl64.Vec3{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0.5, 0.5, 1},
		}, 4, 1, 1.0 / 3},
	}
	for _, mode := range []Mode{ModeBoundary, ModeSubset} {
		for _, tc := range testCases {
			t.Run(string(mode)+"/"+tc.name, func(t *testing.T) {
				mb := NewMeshBuilder()
				addPoints(mb, tc.points...)
				ids := make([]int, len(tc.points))
				for i := range ids {
					ids[i] = i
				}
				mb.AddCell(tc.cell, 7, ids...)
				grid := mb.Build()

				out, s := newTestFilter(t, func(c *Config) { c.Mode = mode }).Execute(grid)
				counts := out.CountByType()
				assert.Equal(t, tc.tris, counts[CellTriangle])
				assert.Equal(t, tc.quads, counts[CellQuad])
				assert.Equal(t, 1, s.VolumeCells)

				// every face points away from the cell
				centre := mgl64.Vec3{}
				for _, p := range tc.points {
					centre = centre.Add(p)
				}
				centre = centre.Mul(1 / float64(len(tc.points)))
				for i := 0; i < out.NumberOfCells(); i++ {
					plane, ok := out.FacePlane(i)
					require.True(t, ok)
					assert.Less(t, plane.SignedDistance(centre), 0.0, "face %v", out.GetCell(i).PointIDs)
				}
				assert.InDelta(t, tc.volume, out.EnclosedVolume(), 1e-12)
			})
		}
	}
}

func TestHexBetweenTets(t *testing.T) {
	// two tets covering the x=1 face of the cube, split along one diagonal
	diagonals := map[string][2][4]int{
		"1-6": {{1, 2, 6, 8}, {1, 6, 5, 8}},
		"2-5": {{1, 2, 5, 8}, {2, 6, 5, 8}},
	}
	build := func(diagonal string, hexValue, tetValue int, hexFirst bool) *UnstructuredGrid {
		mb := NewMeshBuilder()
		addPoints(mb, cubePoints...)
		mb.AddPoint(mgl64.Vec3{2, 0.5, 0.5})
		hex := func() { mb.AddCell(CellHexahedron, hexValue, 0, 1, 2, 3, 4, 5, 6, 7) }
		if hexFirst {
			hex()
		}
		for _, tet := range diagonals[diagonal] {
			mb.AddCell(CellTetra, tetValue, tet[:]...)
		}
		if !hexFirst {
			hex()
		}
		return withOwners(mb.Build())
	}

	testCases := []struct {
		name      string
		hexValue  int
		tetValue  int
		hexFirst  bool
		quads     int
		tris      int
		matched   int
		subsetOut int
	}{
		{"same value, hex first", 1, 1, true, 5, 4, 0, 9},
		{"same value, tets first", 1, 1, false, 5, 4, 0, 9},
		{"hex lower, hex first", 1, 2, true, 5, 6, 2, 2},
		{"hex lower, tets first", 1, 2, false, 5, 6, 2, 2},
		{"tets lower, hex first", 2, 1, true, 5, 6, 2, 2},
		{"tets lower, tets first", 2, 1, false, 5, 6, 2, 2},
	}
	for diagonal := range diagonals {
		for _, tc := range testCases {
			t.Run(diagonal+"/"+tc.name, func(t *testing.T) {
				grid := build(diagonal, tc.hexValue, tc.tetValue, tc.hexFirst)
				out, s := newTestFilter(t, nil).Execute(grid)
				counts := out.CountByType()
				assert.Equal(t, tc.quads, counts[CellQuad])
				assert.Equal(t, tc.tris, counts[CellTriangle])
				assert.Equal(t, tc.matched, s.MatchedFaces)

				// the shared x=1 face is covered once, or not at all when it is interior
				shared := 0.0
				for i, c := range out.Cells() {
					onFace := true
					for _, id := range c.PointIDs {
						onFace = onFace && out.Points[id].X() == 1
					}
					if onFace {
						shared += out.FaceArea(i)
					}
				}
				if tc.hexValue == tc.tetValue {
					assert.Zero(t, shared)
					assert.InDelta(t, 4.0/3, out.EnclosedVolume(), 1e-12)
				} else {
					assert.InDelta(t, 1.0, shared, 1e-12)
				}

				sub, _ := newTestFilter(t, func(c *Config) { c.Mode = ModeSubset }).Execute(grid)
				assert.Equal(t, tc.subsetOut, sub.NumberOfCells())
			})
		}
	}
}

func TestTwoHexesShareFace(t *testing.T) {
	mb := NewMeshBuilder()
	for z := 0.0; z <= 1; z++ {
		for y := 0.0; y <= 1; y++ {
			for x := 0.0; x <= 2; x++ {
				mb.AddPoint(mgl64.Vec3{x, y, z})
			}
		}
	}
	at := func(x, y, z int) int { return z*6 + y*3 + x }
	hex := func(x int) []int {
		return []int{
			at(x, 0, 0), at(x+1, 0, 0), at(x+1, 1, 0), at(x, 1, 0),
			at(x, 0, 1), at(x+1, 0, 1), at(x+1, 1, 1), at(x, 1, 1),
		}
	}
	mb.AddCell(CellHexahedron, 0, hex(0)...)
	mb.AddCell(CellHexahedron, 0, hex(1)...)

	out, _ := newTestFilter(t, nil).Execute(mb.Build())
	assert.Equal(t, 10, out.NumberOfCells())
	assert.InDelta(t, 10.0, out.SurfaceArea(), 1e-9)
	assert.InDelta(t, 2.0, out.EnclosedVolume(), 1e-9)
}

func TestDegenerateHexahedron(t *testing.T) {
	mb := NewMeshBuilder()
	addPoints(mb, []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
	}...)
	// a wedge stored as a hexahedron with collapsed corners
	mb.AddCell(CellHexahedron, 1, 0, 1, 2, 2, 3, 4, 5, 5)

	out, s := newTestFilter(t, nil).Execute(mb.Build())
	counts := out.CountByType()
	assert.Equal(t, 3, counts[CellQuad])
	assert.Equal(t, 2, counts[CellTriangle])
	assert.Equal(t, 1, s.VolumeCells)
}

func quadGrid(a, b int) *UnstructuredGrid {
	mb := NewMeshBuilder()
	for y := 0.0; y <= 1; y++ {
		for x := 0.0; x <= 2; x++ {
			mb.AddPoint(mgl64.Vec3{x, y, 0})
		}
	}
	mb.AddCell(CellQuad, a, 0, 1, 4, 3)
	mb.AddCell(CellQuad, b, 1, 2, 5, 4)
	return withOwners(mb.Build())
}

func TestQuadEdges(t *testing.T) {
	out, s := newTestFilter(t, nil).Execute(quadGrid(1, 1))
	assert.Equal(t, 6, out.NumberOfCells())
	assert.Equal(t, 2, s.SurfaceCells)
	for _, c := range out.Cells() {
		assert.Equal(t, CellLine, c.Type)
		assert.False(t, containsAll(c.PointIDs, 1, 4), "shared edge emitted")
	}

	out, s = newTestFilter(t, nil).Execute(quadGrid(5, 2))
	require.Equal(t, 7, out.NumberOfCells())
	assert.Equal(t, 1, s.MatchedLines)
	owners, _ := out.CellData.IntArray("owner")
	for i, c := range out.Cells() {
		if containsAll(c.PointIDs, 1, 4) {
			assert.Equal(t, 1, owners.Values[i])
			// the winner's direction is kept
			assert.Equal(t, []int{4, 1}, c.PointIDs)
		}
	}
}

func TestPixelEdges(t *testing.T) {
	mb := NewMeshBuilder()
	addPoints(mb, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 1, 0})
	mb.AddCell(CellPixel, 0, 0, 1, 2, 3)

	out, _ := newTestFilter(t, nil).Execute(mb.Build())
	var edges [][]int
	for _, c := range out.Cells() {
		edges = append(edges, c.PointIDs)
	}
	assert.ElementsMatch(t, [][]int{{0, 1}, {1, 3}, {3, 2}, {2, 0}}, edges)
}

func TestPassSurfaceCells(t *testing.T) {
	mb := NewMeshBuilder()
	addPoints(mb, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 1, 0})
	mb.AddCell(CellPixel, 0, 0, 1, 2, 3)
	mb.AddCell(CellTriangle, 0, 1, 3, 2)

	out, s := newTestFilter(t, func(c *Config) { c.PassSurfaceCells = true }).Execute(mb.Build())
	require.Equal(t, 2, out.NumberOfCells())
	assert.Equal(t, 2, s.PassThroughCells)
	assert.Equal(t, Cell{Type: CellQuad, PointIDs: []int{0, 1, 3, 2}}, out.GetCell(0))
	assert.Equal(t, Cell{Type: CellTriangle, PointIDs: []int{1, 3, 2}}, out.GetCell(1))
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, out.FaceNormal(0))
}

func TestPassThroughCellsFollowFaces(t *testing.T) {
	mb := NewMeshBuilder()
	addPoints(mb, tetPoints...)
	mb.AddCell(CellVertex, 0, 4)
	mb.AddCell(CellTetra, 0, 0, 1, 2, 3)
	mb.AddCell(CellPolyLine, 0, 0, 4, 1)
	mb.AddCell(CellTriangleStrip, 0, 0, 1, 2, 3)
	pressure := NewFloatArray("pressure", 2, []float64{1, 10, 2, 20, 3, 30, 4, 40})
	mb.AddCellData(pressure)
	grid := mb.Build()

	out, s := newTestFilter(t, nil).Execute(grid)
	require.Equal(t, 7, out.NumberOfCells())
	assert.Equal(t, 3, s.PassThroughCells)
	assert.Equal(t, 7, s.OutputCells)

	assert.Equal(t, CellVertex, out.GetCell(4).Type)
	assert.Equal(t, CellPolyLine, out.GetCell(5).Type)
	assert.Equal(t, CellTriangleStrip, out.GetCell(6).Type)

	outPressure, ok := out.CellData.Array("pressure").(*FloatArray)
	require.True(t, ok)
	require.Equal(t, 7, outPressure.NumberOfTuples())
	for i := 0; i < 4; i++ {
		assert.Equal(t, []float64{2, 20}, outPressure.Tuple(i))
	}
	assert.Equal(t, []float64{1, 10}, outPressure.Tuple(4))
	assert.Equal(t, []float64{3, 30}, outPressure.Tuple(5))
	assert.Equal(t, []float64{4, 40}, outPressure.Tuple(6))

	subsets, ok := out.CellData.IntArray(DefaultSubsetArray)
	require.True(t, ok)
	assert.Len(t, subsets.Values, 7)
}

func TestMissingSubsets(t *testing.T) {
	testCases := []struct {
		name  string
		array DataArray
	}{
		{"absent", nil},
		{"not integer", NewFloatArray(DefaultSubsetArray, 1, []float64{1, 1})},
		{"too short", NewIntArray(DefaultSubsetArray, []int{1})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			grid := NewUnstructuredGrid()
			grid.Points = append(grid.Points, cubePoints...)
			grid.Cells = append(grid.Cells,
				Cell{Type: CellHexahedron, PointIDs: []int{0, 1, 2, 3, 4, 5, 6, 7}},
				Cell{Type: CellLine, PointIDs: []int{0, 6}},
			)
			if tc.array != nil {
				grid.CellData.AddArray(tc.array)
			}

			out, s := newTestFilter(t, nil).Execute(grid)
			assert.True(t, s.SubsetsMissing)
			require.Equal(t, 1, out.NumberOfCells())
			assert.Equal(t, CellLine, out.GetCell(0).Type)
		})
	}
}

func TestCustomSubsetArrayName(t *testing.T) {
	mb := NewMeshBuilder().SetSubsetArrayName("materials")
	addPoints(mb, tetPoints...)
	mb.AddCell(CellTetra, 1, 0, 1, 2, 3)
	mb.AddCell(CellTetra, 2, 1, 2, 3, 4)
	grid := mb.Build()

	out, s := newTestFilter(t, func(c *Config) { c.SubsetArray = "materials" }).Execute(grid)
	assert.False(t, s.SubsetsMissing)
	assert.Equal(t, 7, out.NumberOfCells())

	_, s = newTestFilter(t, nil).Execute(grid)
	assert.True(t, s.SubsetsMissing)
}

func TestSkippedCells(t *testing.T) {
	mb := NewMeshBuilder()
	addPoints(mb, tetPoints...)
	mb.AddCell(CellType(42), 0, 0, 1, 2)
	mb.AddCell(CellEmpty, 0)
	mb.AddCell(CellTetra, 0, 0, 1, 2, 99)
	mb.AddCell(CellHexahedron, 0, 0, 1, 2)
	mb.AddCell(CellTetra, 0, 0, 1, 2, 3)

	out, s := newTestFilter(t, nil).Execute(mb.Build())
	assert.Equal(t, 4, s.SkippedCells)
	assert.Equal(t, 1, s.VolumeCells)
	assert.Equal(t, 4, out.NumberOfCells())
}

func TestExecuteNilAndEmpty(t *testing.T) {
	f := newTestFilter(t, nil)
	out, s := f.Execute(nil)
	assert.Zero(t, out.NumberOfCells())
	assert.Equal(t, Summary{}, s)

	out, s = f.Execute(&UnstructuredGrid{})
	assert.Zero(t, out.NumberOfCells())
	assert.True(t, s.SubsetsMissing)
}

func TestNewBoundaryFilterRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "outline"
	_, err := NewBoundaryFilter(cfg)
	assert.Error(t, err)
}

func TestExecuteConcurrently(t *testing.T) {
	grid := twoTets(1, 2)
	f := newTestFilter(t, nil)
	want, _ := f.Execute(grid)

	var wg sync.WaitGroup
	results := make([]*PolyData, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = f.Execute(grid)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want.Cells(), got.Cells())
	}
}
