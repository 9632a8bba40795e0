package meshboundary

// DataArray is a named per-cell attribute array.
type DataArray interface {
	ArrayName() string
	NumberOfTuples() int
	// NewInstance returns an empty array of the same kind and shape,
	// sized for the given number of tuples.
	NewInstance(tuples int) DataArray
	// CopyTuple copies tuple from of src into tuple to of the receiver.
	// src must have the same concrete type.
	CopyTuple(src DataArray, from, to int)
}

// IntArray holds one integer per tuple.
type IntArray struct {
	Name   string
	Values []int
}

func NewIntArray(name string, values []int) *IntArray {
	return &IntArray{Name: name, Values: values}
}

func (a *IntArray) ArrayName() string   { return a.Name }
func (a *IntArray) NumberOfTuples() int { return len(a.Values) }

func (a *IntArray) NewInstance(tuples int) DataArray {
	return &IntArray{Name: a.Name, Values: make([]int, tuples)}
}

func (a *IntArray) CopyTuple(src DataArray, from, to int) {
	s, ok := src.(*IntArray)
	if !ok || from < 0 || from >= len(s.Values) || to < 0 || to >= len(a.Values) {
		return
	}
	a.Values[to] = s.Values[from]
}

// FloatArray holds Components floats per tuple, stored interleaved.
type FloatArray struct {
	Name       string
	Components int
	Values     []float64
}

func NewFloatArray(name string, components int, values []float64) *FloatArray {
	if components < 1 {
		components = 1
	}
	return &FloatArray{Name: name, Components: components, Values: values}
}

func (a *FloatArray) ArrayName() string { return a.Name }

func (a *FloatArray) NumberOfTuples() int {
	if a.Components < 1 {
		return len(a.Values)
	}
	return len(a.Values) / a.Components
}

func (a *FloatArray) NewInstance(tuples int) DataArray {
	c := a.Components
	if c < 1 {
		c = 1
	}
	return &FloatArray{Name: a.Name, Components: c, Values: make([]float64, tuples*c)}
}

func (a *FloatArray) CopyTuple(src DataArray, from, to int) {
	s, ok := src.(*FloatArray)
	if !ok || s.Components != a.Components {
		return
	}
	if from < 0 || from >= s.NumberOfTuples() || to < 0 || to >= a.NumberOfTuples() {
		return
	}
	c := a.Components
	copy(a.Values[to*c:(to+1)*c], s.Values[from*c:(from+1)*c])
}

// Tuple returns the components of tuple i.
func (a *FloatArray) Tuple(i int) []float64 {
	c := a.Components
	return a.Values[i*c : (i+1)*c]
}

// FieldData is an ordered set of arrays with unique names.
type FieldData struct {
	arrays []DataArray
}

func NewFieldData() *FieldData {
	return &FieldData{arrays: make([]DataArray, 0, 4)}
}

// AddArray appends a, replacing any array that already has its name.
func (fd *FieldData) AddArray(a DataArray) {
	for i, existing := range fd.arrays {
		if existing.ArrayName() == a.ArrayName() {
			fd.arrays[i] = a
			return
		}
	}
	fd.arrays = append(fd.arrays, a)
}

func (fd *FieldData) Array(name string) DataArray {
	if fd == nil {
		return nil
	}
	for _, a := range fd.arrays {
		if a.ArrayName() == name {
			return a
		}
	}
	return nil
}

// IntArray returns the named array when it exists and holds integers.
func (fd *FieldData) IntArray(name string) (*IntArray, bool) {
	ia, ok := fd.Array(name).(*IntArray)
	return ia, ok
}

func (fd *FieldData) Arrays() []DataArray {
	if fd == nil {
		return nil
	}
	return fd.arrays
}

func (fd *FieldData) NumberOfArrays() int {
	if fd == nil {
		return 0
	}
	return len(fd.arrays)
}

// CopyAllocate replaces the receiver's arrays with empty instances of the
// arrays in src, each sized for tuples entries.
func (fd *FieldData) CopyAllocate(src *FieldData, tuples int) {
	fd.arrays = fd.arrays[:0]
	for _, a := range src.Arrays() {
		fd.arrays = append(fd.arrays, a.NewInstance(tuples))
	}
}

// CopyData copies tuple from of every array in src to tuple to of the
// matching array. The receiver must have been set up by CopyAllocate(src, ...).
func (fd *FieldData) CopyData(src *FieldData, from, to int) {
	srcArrays := src.Arrays()
	for i, a := range fd.arrays {
		if i >= len(srcArrays) {
			return
		}
		a.CopyTuple(srcArrays[i], from, to)
	}
}
