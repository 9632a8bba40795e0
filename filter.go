package meshboundary

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Summary describes one Execute call.
type Summary struct {
	Cells            int
	VolumeCells      int
	SurfaceCells     int
	PassThroughCells int
	SkippedCells     int

	Faces        int
	MatchedFaces int
	Lines        int
	MatchedLines int
	OutputCells  int

	SingleValue    bool
	SubsetsMissing bool
}

// BoundaryFilter extracts the boundary faces of volume cells and the
// boundary edges of surface cells, including boundaries between cells with
// different subset values. A filter holds no state between calls.
type BoundaryFilter struct {
	config Config
	log    *logrus.Logger
}

func NewBoundaryFilter(cfg Config) (*BoundaryFilter, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid boundary filter config: %w", err)
	}
	return &BoundaryFilter{config: cfg, log: cfg.logger()}, nil
}

func (f *BoundaryFilter) Config() Config {
	return f.config
}

// Execute runs the filter over in. Faces and edges come first in key order,
// followed by the cells copied through unchanged. Input problems never
// fail the call; they shrink the output and are reported in the Summary.
func (f *BoundaryFilter) Execute(in *UnstructuredGrid) (*PolyData, Summary) {
	if in == nil {
		return NewPolyData(nil), Summary{}
	}
	inCD := in.CellData
	if inCD == nil {
		inCD = NewFieldData()
	}
	out := NewPolyData(in.Points)

	subsets := f.subsetValues(in, inCD)
	opts := f.config.poolOptions()
	faces := NewHashEntryList(len(in.Points), opts)
	lines := NewHashEntryList2D(len(in.Points), opts)
	defer faces.Release()
	defer lines.Release()

	passThrough, s := f.loopOverAllCells(in, subsets, faces, lines)
	s.SubsetsMissing = subsets == nil

	emitAll := f.config.Mode == ModeBoundary || s.SingleValue
	s.Faces = faces.NumberOfFaces()
	s.MatchedFaces = faces.NumberOfMatchedFaces()
	s.Lines = lines.NumberOfLines()
	s.MatchedLines = lines.NumberOfMatchedLines()

	numFaces, numLines := s.MatchedFaces, s.MatchedLines
	if emitAll {
		numFaces, numLines = s.Faces, s.Lines
	}
	total := len(passThrough) + numFaces + numLines
	out.Allocate(total)
	out.CellData.CopyAllocate(inCD, total)

	faces.CreateOutputCells(out, inCD, out.CellData, emitAll)
	lines.CreateOutputCells(out, inCD, out.CellData, emitAll)
	for _, cellID := range passThrough {
		c := in.Cells[cellID]
		t, ids := c.Type, c.PointIDs
		if t == CellPixel && len(ids) >= 4 {
			ring := pixelToQuad(ids)
			t, ids = CellQuad, ring[:]
		}
		newID := out.InsertNextCell(t, ids)
		out.CellData.CopyData(inCD, cellID, newID)
	}
	s.OutputCells = out.NumberOfCells()

	f.log.WithFields(logrus.Fields{
		"cells":        s.Cells,
		"volumeCells":  s.VolumeCells,
		"surfaceCells": s.SurfaceCells,
		"passThrough":  s.PassThroughCells,
		"skipped":      s.SkippedCells,
		"faces":        s.Faces,
		"matchedFaces": s.MatchedFaces,
		"lines":        s.Lines,
		"matchedLines": s.MatchedLines,
		"singleValue":  s.SingleValue,
		"output":       s.OutputCells,
		"faceBuckets":  faces.Stats().Buckets,
	}).Debug("Boundary extraction finished")

	return out, s
}

// subsetValues returns the integer subset array, or nil when the input
// lacks a usable one.
func (f *BoundaryFilter) subsetValues(in *UnstructuredGrid, cd *FieldData) []int {
	name := f.config.SubsetArray
	arr := cd.Array(name)
	if arr == nil {
		f.log.WithFields(logrus.Fields{"array": name}).
			Warn("Subset array missing, only pass-through cells will be emitted")
		return nil
	}
	ints, ok := arr.(*IntArray)
	if !ok {
		f.log.WithFields(logrus.Fields{"array": name}).
			Warn("Subset array is not integer typed, only pass-through cells will be emitted")
		return nil
	}
	if len(ints.Values) < len(in.Cells) {
		f.log.WithFields(logrus.Fields{
			"array":  name,
			"values": len(ints.Values),
			"cells":  len(in.Cells),
		}).Warn("Subset array is shorter than the cell list, only pass-through cells will be emitted")
		return nil
	}
	return ints.Values
}

// loopOverAllCells feeds every hashed cell to its table and returns the ids
// of the cells to copy through unchanged.
func (f *BoundaryFilter) loopOverAllCells(in *UnstructuredGrid, subsets []int, faces *HashEntryList, lines *HashEntryList2D) ([]int, Summary) {
	s := Summary{Cells: len(in.Cells), SingleValue: true}
	passThrough := make([]int, 0)
	numPoints := len(in.Points)
	unsupported := make(map[CellType]int)
	badPoints := 0

	haveValue := false
	firstValue := 0

	for cellID, c := range in.Cells {
		class := c.Type.class()
		if class == classUnsupported {
			unsupported[c.Type]++
			s.SkippedCells++
			continue
		}
		if !pointsInRange(c.PointIDs, numPoints) {
			badPoints++
			s.SkippedCells++
			continue
		}
		if class == classPassThrough || (class == classSurface && f.config.PassSurfaceCells) {
			passThrough = append(passThrough, cellID)
			s.PassThroughCells++
			continue
		}
		if subsets == nil {
			continue
		}

		value := subsets[cellID]
		if !haveValue {
			firstValue, haveValue = value, true
		} else if value != firstValue {
			s.SingleValue = false
		}

		var ok bool
		switch c.Type {
		case CellTetra:
			ok = AddTetrahedron(faces, c.PointIDs, cellID, value)
		case CellVoxel:
			ok = AddVoxel(faces, c.PointIDs, cellID, value)
		case CellHexahedron:
			ok = AddHexahedron(faces, c.PointIDs, cellID, value)
		case CellWedge:
			ok = AddWedge(faces, c.PointIDs, cellID, value)
		case CellPyramid:
			ok = AddPyramid(faces, c.PointIDs, cellID, value)
		case CellTriangle:
			ok = AddTriangle2D(lines, c.PointIDs, cellID, value)
		case CellQuad:
			ok = AddQuad2D(lines, c.PointIDs, cellID, value)
		case CellPolygon:
			ok = AddPolygon(lines, c.PointIDs, cellID, value)
		case CellPixel:
			ok = AddPixel(lines, c.PointIDs, cellID, value)
		}
		switch {
		case !ok:
			s.SkippedCells++
		case class == classVolume:
			s.VolumeCells++
		default:
			s.SurfaceCells++
		}
	}

	for t, n := range unsupported {
		f.log.WithFields(logrus.Fields{"type": t.String(), "count": n}).
			Debug("Skipped cells of unsupported type")
	}
	if badPoints > 0 {
		f.log.WithFields(logrus.Fields{"count": badPoints, "points": numPoints}).
			Warn("Skipped cells referencing points out of range")
	}
	return passThrough, s
}

func pointsInRange(ids []int, numPoints int) bool {
	for _, id := range ids {
		if id < 0 || id >= numPoints {
			return false
		}
	}
	return true
}
