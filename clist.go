package meshboundary

// Clist walks a cell's point ids cyclically, wrapping from the last id
// back to the first.
type Clist struct {
	points []int
	count  int
	end    int
}

func NewClist(ids []int) *Clist {
	return &Clist{
		points: ids,
		end:    len(ids),
	}
}

// Back steps the cursor back by one.
func (c *Clist) Back() {
	c.count--
	if c.count < 0 {
		c.count = c.end - 1
	}
}

func (c *Clist) NextPoint() int {
	old := c.count
	c.count++
	if c.count >= c.end {
		c.count = 0
	}
	return c.points[old]
}

// NextEdge returns the edge starting at the cursor and advances by one.
func (c *Clist) NextEdge() [2]int {
	a := c.NextPoint()
	b := c.NextPoint()
	c.Back()
	return [2]int{a, b}
}
