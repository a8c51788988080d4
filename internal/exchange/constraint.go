package exchange

// CapacityConstraint is an opaque bound attached to a portfolio and applied
// later by the solver. The exchange core only needs value equality and a
// strict order for set membership.
type CapacityConstraint struct {
	Capacity  float64
	Converter string // names the conversion the solver applies to targets
}

// Equal reports value equality.
func (c CapacityConstraint) Equal(o CapacityConstraint) bool {
	return c.Capacity == o.Capacity && c.Converter == o.Converter
}

// Less orders constraints by capacity, then converter.
func (c CapacityConstraint) Less(o CapacityConstraint) bool {
	if c.Capacity != o.Capacity {
		return c.Capacity < o.Capacity
	}
	return c.Converter < o.Converter
}

func constraintLess(a, b CapacityConstraint) bool {
	return a.Less(b)
}
