package meshboundary

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidMesh is returned for mesh documents that cannot describe a mesh.
var ErrInvalidMesh = errors.New("invalid mesh document")

// MeshDocument is the YAML form of a mesh, used by the command line tool.
type MeshDocument struct {
	Points   [][]float64     `yaml:"points"`
	Cells    []CellDocument  `yaml:"cells"`
	CellData []ArrayDocument `yaml:"cellData,omitempty"`
}

type CellDocument struct {
	Type   string `yaml:"type"`
	Points []int  `yaml:"points,flow"`
}

// ArrayDocument holds either Ints or Floats.
type ArrayDocument struct {
	Name       string    `yaml:"name"`
	Components int       `yaml:"components,omitempty"`
	Ints       []int     `yaml:"ints,omitempty,flow"`
	Floats     []float64 `yaml:"floats,omitempty,flow"`
}

// LoadMesh reads a YAML mesh document from path.
func LoadMesh(path string) (*UnstructuredGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh %s: %w", path, err)
	}
	defer file.Close()

	grid, err := ReadMesh(file)
	if err != nil {
		return nil, fmt.Errorf("error reading mesh %s: %w", path, err)
	}
	return grid, nil
}

func ReadMesh(r io.Reader) (*UnstructuredGrid, error) {
	var doc MeshDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding mesh: %w", err)
	}
	return doc.Grid()
}

// Grid converts the document into a mesh, checking point arity, cell type
// names and that every cell array has one tuple per cell.
func (doc *MeshDocument) Grid() (*UnstructuredGrid, error) {
	grid := NewUnstructuredGrid()
	for i, p := range doc.Points {
		if len(p) != 3 {
			return nil, fmt.Errorf("%w: point %d has %d coordinates", ErrInvalidMesh, i, len(p))
		}
		grid.Points = append(grid.Points, mgl64.Vec3{p[0], p[1], p[2]})
	}
	for i, c := range doc.Cells {
		t, err := ParseCellType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", ErrInvalidMesh, i, err)
		}
		ids := make([]int, len(c.Points))
		copy(ids, c.Points)
		grid.Cells = append(grid.Cells, Cell{Type: t, PointIDs: ids})
	}
	for _, a := range doc.CellData {
		arr, err := a.array()
		if err != nil {
			return nil, err
		}
		if arr.NumberOfTuples() != len(grid.Cells) {
			return nil, fmt.Errorf("%w: array %q has %d tuples for %d cells",
				ErrInvalidMesh, a.Name, arr.NumberOfTuples(), len(grid.Cells))
		}
		grid.CellData.AddArray(arr)
	}
	return grid, nil
}

func (a ArrayDocument) array() (DataArray, error) {
	if a.Name == "" {
		return nil, fmt.Errorf("%w: cell array without a name", ErrInvalidMesh)
	}
	switch {
	case len(a.Ints) > 0 && len(a.Floats) > 0:
		return nil, fmt.Errorf("%w: array %q has both ints and floats", ErrInvalidMesh, a.Name)
	case len(a.Floats) > 0:
		c := a.Components
		if c < 1 {
			c = 1
		}
		if len(a.Floats)%c != 0 {
			return nil, fmt.Errorf("%w: array %q length %d is not a multiple of %d components",
				ErrInvalidMesh, a.Name, len(a.Floats), c)
		}
		values := make([]float64, len(a.Floats))
		copy(values, a.Floats)
		return NewFloatArray(a.Name, c, values), nil
	default:
		values := make([]int, len(a.Ints))
		copy(values, a.Ints)
		return NewIntArray(a.Name, values), nil
	}
}

// PolyDataDocument is the YAML form of a filter result.
type PolyDataDocument struct {
	Points   [][]float64     `yaml:"points"`
	Cells    []CellDocument  `yaml:"cells"`
	CellData []ArrayDocument `yaml:"cellData,omitempty"`
}

func NewPolyDataDocument(pd *PolyData) *PolyDataDocument {
	doc := &PolyDataDocument{
		Points: make([][]float64, len(pd.Points)),
		Cells:  make([]CellDocument, pd.NumberOfCells()),
	}
	for i, p := range pd.Points {
		doc.Points[i] = []float64{p.X(), p.Y(), p.Z()}
	}
	for i, c := range pd.Cells() {
		doc.Cells[i] = CellDocument{Type: c.Type.String(), Points: c.PointIDs}
	}
	for _, a := range pd.CellData.Arrays() {
		switch arr := a.(type) {
		case *IntArray:
			doc.CellData = append(doc.CellData, ArrayDocument{Name: arr.Name, Ints: arr.Values})
		case *FloatArray:
			doc.CellData = append(doc.CellData, ArrayDocument{
				Name: arr.Name, Components: arr.Components, Floats: arr.Values,
			})
		}
	}
	return doc
}

// WritePolyData encodes pd as YAML.
func WritePolyData(w io.Writer, pd *PolyData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewPolyDataDocument(pd)); err != nil {
		return fmt.Errorf("error encoding boundary: %w", err)
	}
	return enc.Close()
}
