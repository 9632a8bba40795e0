package meshboundary

import "github.com/go-gl/mathgl/mgl64"

// PolyData is the filter output: the input points, shared, plus an ordered
// list of surface, line and vertex cells with their attribute data.
type PolyData struct {
	Points   []mgl64.Vec3
	cells    []Cell
	CellData *FieldData
}

func NewPolyData(points []mgl64.Vec3) *PolyData {
	return &PolyData{
		Points:   points,
		cells:    make([]Cell, 0, 10),
		CellData: NewFieldData(),
	}
}

// Allocate reserves room for n cells.
func (pd *PolyData) Allocate(n int) {
	if cap(pd.cells)-len(pd.cells) >= n {
		return
	}
	cells := make([]Cell, len(pd.cells), len(pd.cells)+n)
	copy(cells, pd.cells)
	pd.cells = cells
}

// InsertNextCell appends a cell and returns its id. ids is copied.
func (pd *PolyData) InsertNextCell(t CellType, ids []int) int {
	pointIDs := make([]int, len(ids))
	copy(pointIDs, ids)
	pd.cells = append(pd.cells, Cell{Type: t, PointIDs: pointIDs})
	return len(pd.cells) - 1
}

func (pd *PolyData) GetCell(i int) Cell {
	return pd.cells[i]
}

func (pd *PolyData) NumberOfCells() int {
	return len(pd.cells)
}

func (pd *PolyData) Cells() []Cell {
	return pd.cells
}

// CountByType returns how many output cells have each type.
func (pd *PolyData) CountByType() map[CellType]int {
	counts := make(map[CellType]int)
	for _, c := range pd.cells {
		counts[c.Type]++
	}
	return counts
}
