package layout

import "strings"

// DeviceType is the externally reported device class.
type DeviceType string

const (
	DevicePhone    DeviceType = "phone"
	DeviceTablet   DeviceType = "tablet"
	DeviceFoldable DeviceType = "foldable"
)

// ParseDeviceType normalizes s. Empty or unknown values are phones.
func ParseDeviceType(s string) DeviceType {
	switch DeviceType(strings.ToLower(strings.TrimSpace(s))) {
	case DeviceTablet:
		return DeviceTablet
	case DeviceFoldable:
		return DeviceFoldable
	default:
		return DevicePhone
	}
}

// DeviceContext is the externally supplied device signal. It is not
// validated: Resolved maps anything unrecognized to a phone.
type DeviceContext struct {
	Type         DeviceType
	Folded       bool
	FoldPosition float64
}

// Resolved returns the device type with unknown values mapped to phone.
func (d DeviceContext) Resolved() DeviceType {
	return ParseDeviceType(string(d.Type))
}

// SelectByDevice picks the variant for the device type. A zero value means
// the variant was not supplied; foldables fall back to the tablet then the
// phone variant, tablets fall back to the phone variant.
func SelectByDevice[T comparable](dt DeviceType, phone, tablet, foldable T) T {
	var zero T
	switch ParseDeviceType(string(dt)) {
	case DeviceFoldable:
		if foldable != zero {
			return foldable
		}
		if tablet != zero {
			return tablet
		}
		return phone
	case DeviceTablet:
		if tablet != zero {
			return tablet
		}
		return phone
	default:
		return phone
	}
}

// Variant names which device content variant a layout resolved to.
type Variant string

const (
	VariantPhone    Variant = "phone"
	VariantTablet   Variant = "tablet"
	VariantFoldable Variant = "foldable"
)

// SplitRatio holds the two-pane width proportions as fractions of the total.
type SplitRatio struct {
	Left  float64
	Right float64
}

// DefaultSplitRatio is 40% / 60%.
func DefaultSplitRatio() SplitRatio {
	return SplitRatio{Left: 0.4, Right: 0.6}
}

// Fold is the resolved foldable layout.
type Fold struct {
	// Split is true when both panes are shown side by side.
	Split bool
	Ratio SplitRatio
}

// FoldLayout shows the folded single-pane variant unless the device is an
// unfolded foldable.
func FoldLayout(d DeviceContext, ratio SplitRatio) Fold {
	if d.Resolved() != DeviceFoldable || d.Folded {
		return Fold{}
	}
	return Fold{Split: true, Ratio: ratio}
}

// Widths divides total cells between the panes, reserving divider cells
// for the fold line. Proportions summing past 1 are normalized.
func (f Fold) Widths(total, divider int) (left, right int) {
	avail := total - divider
	if avail < 0 {
		avail = 0
	}
	if !f.Split {
		return avail, 0
	}
	sum := max(f.Ratio.Left+f.Ratio.Right, 1)
	left = int(float64(avail) * f.Ratio.Left / sum)
	right = int(float64(avail) * f.Ratio.Right / sum)
	return left, right
}
