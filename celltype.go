package meshboundary

import "fmt"

// CellType identifies the shape of a mesh cell. Values match the VTK
// cell type codes so meshes exported from VTK based tools keep their tags.
type CellType uint8

const (
	CellEmpty         CellType = 0
	CellVertex        CellType = 1
	CellPolyVertex    CellType = 2
	CellLine          CellType = 3
	CellPolyLine      CellType = 4
	CellTriangle      CellType = 5
	CellTriangleStrip CellType = 6
	CellPolygon       CellType = 7
	CellPixel         CellType = 8
	CellQuad          CellType = 9
	CellTetra         CellType = 10
	CellVoxel         CellType = 11
	CellHexahedron    CellType = 12
	CellWedge         CellType = 13
	CellPyramid       CellType = 14
)

var cellTypeNames = map[CellType]string{
	CellEmpty:         "empty",
	CellVertex:        "vertex",
	CellPolyVertex:    "poly_vertex",
	CellLine:          "line",
	CellPolyLine:      "poly_line",
	CellTriangle:      "triangle",
	CellTriangleStrip: "triangle_strip",
	CellPolygon:       "polygon",
	CellPixel:         "pixel",
	CellQuad:          "quad",
	CellTetra:         "tetra",
	CellVoxel:         "voxel",
	CellHexahedron:    "hexahedron",
	CellWedge:         "wedge",
	CellPyramid:       "pyramid",
}

func (t CellType) String() string {
	if name, ok := cellTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("celltype(%d)", uint8(t))
}

// ParseCellType maps a name produced by String back to its CellType.
func ParseCellType(name string) (CellType, error) {
	for t, n := range cellTypeNames {
		if n == name {
			return t, nil
		}
	}
	return CellEmpty, fmt.Errorf("unknown cell type %q", name)
}

// cellClass groups cell types by how the boundary filter treats them.
type cellClass int

const (
	classUnsupported cellClass = iota
	classPassThrough
	classSurface
	classVolume
)

func (t CellType) class() cellClass {
	switch t {
	case CellVertex, CellPolyVertex, CellLine, CellPolyLine, CellTriangleStrip:
		return classPassThrough
	case CellTriangle, CellQuad, CellPolygon, CellPixel:
		return classSurface
	case CellTetra, CellVoxel, CellHexahedron, CellWedge, CellPyramid:
		return classVolume
	}
	return classUnsupported
}

// Cell is one entry of a mesh cell list.
type Cell struct {
	Type     CellType
	PointIDs []int
}
