package layout

// Direction is a flex direction.
type Direction int

const (
	DirectionColumn Direction = iota
	DirectionRow
)

func (d Direction) String() string {
	if d == DirectionRow {
		return "row"
	}
	return "column"
}

// DefaultAdaptiveBreakpoint is the width at which AdaptiveDirection switches to rows.
const DefaultAdaptiveBreakpoint = 600

// AdaptiveDirection lays children out in a row once width reaches breakpoint.
func AdaptiveDirection(width, breakpoint float64) Direction {
	if width >= breakpoint {
		return DirectionRow
	}
	return DirectionColumn
}

// Orientation of the viewport.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// OrientationOf reports landscape when the viewport is wider than tall.
func OrientationOf(v Viewport) Orientation {
	if v.Width > v.Height {
		return Landscape
	}
	return Portrait
}
