package sweep

// Dim identifies one of the three sweep dimensions.
type Dim int

const (
	DimX Dim = iota
	DimY
	DimZ
)

// String returns the dimension name for diagnostics.
func (d Dim) String() string {
	switch d {
	case DimX:
		return "x"
	case DimY:
		return "y"
	case DimZ:
		return "z"
	default:
		return "?"
	}
}

// LoopOrder holds the two outer loop levels chosen by the planner. The
// remaining dimension is always the innermost loop, fully re-rendered per
// outer-pair combination.
type LoopOrder struct {
	First  Dim // outermost loop
	Second Dim
}

// third returns the innermost dimension.
func (o LoopOrder) third() Dim {
	for _, d := range []Dim{DimX, DimY, DimZ} {
		if d != o.First && d != o.Second {
			return d
		}
	}
	return DimX
}

// PlanOrder decides loop nesting from the axes' relative switch costs.
//
// If one axis is very slow to change between (like a model checkpoint),
// it must sit in the outermost loop so its value changes least often. The
// axis with strictly the highest cost goes outermost; of the remaining
// two, the higher-cost one goes second. Ties default to Z outermost, Y
// second. The choice affects only traversal order, never grid geometry:
// results are always indexed by their original (x, y, z) coordinates.
func PlanOrder(costX, costY, costZ float64) LoopOrder {
	order := LoopOrder{First: DimZ, Second: DimY}

	switch {
	case costX > costY && costX > costZ:
		order.First = DimX
		if costY > costZ {
			order.Second = DimY
		} else {
			order.Second = DimZ
		}
	case costY > costX && costY > costZ:
		order.First = DimY
		if costX > costZ {
			order.Second = DimX
		} else {
			order.Second = DimZ
		}
	case costZ > costX && costZ > costY:
		order.First = DimZ
		if costX > costY {
			order.Second = DimX
		} else {
			order.Second = DimY
		}
	}
	return order
}
