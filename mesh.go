package meshboundary

import "github.com/go-gl/mathgl/mgl64"

// DefaultSubsetArray is the cell array holding each cell's subset value.
const DefaultSubsetArray = "avtSubsets"

// UnstructuredGrid is the input mesh: a shared point array, an ordered cell
// list and per cell attribute arrays.
type UnstructuredGrid struct {
	Points   []mgl64.Vec3
	Cells    []Cell
	CellData *FieldData
}

func NewUnstructuredGrid() *UnstructuredGrid {
	return &UnstructuredGrid{
		Points:   make([]mgl64.Vec3, 0, 100),
		Cells:    make([]Cell, 0, 100),
		CellData: NewFieldData(),
	}
}

func (g *UnstructuredGrid) NumberOfPoints() int { return len(g.Points) }
func (g *UnstructuredGrid) NumberOfCells() int  { return len(g.Cells) }

// MeshBuilder assembles an UnstructuredGrid, welding points that share
// coordinates and recording one subset value per cell.
type MeshBuilder struct {
	grid       *UnstructuredGrid
	pointIndex map[mgl64.Vec3]int
	subsets    []int
	subsetName string
}

func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{
		grid:       NewUnstructuredGrid(),
		pointIndex: make(map[mgl64.Vec3]int),
		subsetName: DefaultSubsetArray,
	}
}

// SetSubsetArrayName changes the name the subset values are stored under.
func (b *MeshBuilder) SetSubsetArrayName(name string) *MeshBuilder {
	b.subsetName = name
	return b
}

// AddPoint returns the index of p, adding it if no point with the same
// coordinates exists yet.
func (b *MeshBuilder) AddPoint(p mgl64.Vec3) int {
	if index, found := b.pointIndex[p]; found {
		return index
	}
	b.grid.Points = append(b.grid.Points, p)
	newIndex := len(b.grid.Points) - 1
	b.pointIndex[p] = newIndex
	return newIndex
}

// AddCell appends a cell over existing point indices and returns its id.
func (b *MeshBuilder) AddCell(t CellType, subset int, ids ...int) int {
	pointIDs := make([]int, len(ids))
	copy(pointIDs, ids)
	b.grid.Cells = append(b.grid.Cells, Cell{Type: t, PointIDs: pointIDs})
	b.subsets = append(b.subsets, subset)
	return len(b.grid.Cells) - 1
}

// AddCellAt appends a cell given by coordinates, welding each one.
func (b *MeshBuilder) AddCellAt(t CellType, subset int, pts ...mgl64.Vec3) int {
	indices := make([]int, len(pts))
	for i, p := range pts {
		indices[i] = b.AddPoint(p)
	}
	return b.AddCell(t, subset, indices...)
}

// AddCellData attaches an extra cell array. It should hold one tuple per cell
// once building is finished.
func (b *MeshBuilder) AddCellData(a DataArray) *MeshBuilder {
	b.grid.CellData.AddArray(a)
	return b
}

// Build finalises the grid. The builder must not be used afterwards.
func (b *MeshBuilder) Build() *UnstructuredGrid {
	subsets := make([]int, len(b.subsets))
	copy(subsets, b.subsets)
	b.grid.CellData.AddArray(NewIntArray(b.subsetName, subsets))
	return b.grid
}
