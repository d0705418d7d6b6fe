// Package layout maps viewport and device signals to layout decisions.
//
// Every function here is pure: callers pass the current Snapshot (or the
// Viewport inside it) and get a decision back. Nothing is cached between
// calls, so a new snapshot always produces a fresh result.
package layout

import "strings"

// FormFactor is the device category used as the scaling reference.
type FormFactor string

const (
	FormFactorPhone    FormFactor = "phone"
	FormFactorTablet   FormFactor = "tablet"
	FormFactorFoldable FormFactor = "foldable"
)

// Dimensions is a reference width/height pair in layout points.
type Dimensions struct {
	Width  float64
	Height float64
}

var baseDimensions = map[FormFactor]Dimensions{
	FormFactorPhone:    {Width: 375, Height: 812},
	FormFactorTablet:   {Width: 834, Height: 1194},
	FormFactorFoldable: {Width: 884, Height: 1812},
}

// BaseDimensions returns the reference dimensions for ff. Unknown form
// factors fall back to the phone reference.
func BaseDimensions(ff FormFactor) Dimensions {
	if d, ok := baseDimensions[ff]; ok {
		return d
	}
	return baseDimensions[FormFactorPhone]
}

// ParseFormFactor normalizes s. Unrecognized values map to phone.
func ParseFormFactor(s string) FormFactor {
	switch FormFactor(strings.ToLower(strings.TrimSpace(s))) {
	case FormFactorTablet:
		return FormFactorTablet
	case FormFactorFoldable:
		return FormFactorFoldable
	default:
		return FormFactorPhone
	}
}

// Viewport is the externally supplied window metric snapshot.
type Viewport struct {
	Width      float64
	Height     float64
	FontScale  float64
	PixelRatio float64
}

// DefaultModerateFactor is the blend used when callers have no preference.
const DefaultModerateFactor = 0.5

// Scale scales size linearly by the viewport width relative to the form
// factor's reference width.
func Scale(v Viewport, size float64, ff FormFactor) float64 {
	return v.Width / BaseDimensions(ff).Width * size
}

// VerticalScale is Scale using heights.
func VerticalScale(v Viewport, size float64, ff FormFactor) float64 {
	return v.Height / BaseDimensions(ff).Height * size
}

// ModerateScale moves size toward Scale(size) by factor. A factor of 0
// returns size unchanged, 1 returns the fully scaled value.
func ModerateScale(v Viewport, size, factor float64, ff FormFactor) float64 {
	scaled := Scale(v, size, ff)
	return size*(1-factor) + scaled*factor
}

// FontScale applies the system font scale. An unset (zero) scale counts as 1.
func FontScale(v Viewport, size float64) float64 {
	if v.FontScale == 0 {
		return size
	}
	return size * v.FontScale
}

// Scaler binds a viewport and form factor so render code can scale many
// values against the same snapshot.
type Scaler struct {
	Viewport   Viewport
	FormFactor FormFactor
	Factor     float64
}

// NewScaler returns a Scaler using DefaultModerateFactor.
func NewScaler(v Viewport, ff FormFactor) Scaler {
	return Scaler{Viewport: v, FormFactor: ff, Factor: DefaultModerateFactor}
}

func (s Scaler) Scale(size float64) float64 { return Scale(s.Viewport, size, s.FormFactor) }

func (s Scaler) Vertical(size float64) float64 { return VerticalScale(s.Viewport, size, s.FormFactor) }

func (s Scaler) Moderate(size float64) float64 {
	return ModerateScale(s.Viewport, size, s.Factor, s.FormFactor)
}

func (s Scaler) Font(size float64) float64 { return FontScale(s.Viewport, size) }

// Cells rounds a scaled value to a whole terminal cell count, never below floor.
func Cells(v float64, floor int) int {
	n := int(v + 0.5)
	if n < floor {
		return floor
	}
	return n
}
