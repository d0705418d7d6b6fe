package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestScaleDoublesAtTwiceReferenceWidth(t *testing.T) {
	v := Viewport{Width: 750, Height: 812, FontScale: 1}
	require.Equal(t, 200.0, Scale(v, 100, FormFactorPhone))
}

func TestScaleUsesFormFactorReference(t *testing.T) {
	v := Viewport{Width: 834, Height: 1194}
	require.InDelta(t, 100.0, Scale(v, 100, FormFactorTablet), 1e-9)
	require.InDelta(t, 100.0, VerticalScale(v, 100, FormFactorTablet), 1e-9)
	require.InDelta(t, 834.0/884*100, Scale(v, 100, FormFactorFoldable), 1e-9)
}

func TestUnknownFormFactorUsesPhone(t *testing.T) {
	v := Viewport{Width: 750, Height: 1624}
	require.Equal(t, BaseDimensions(FormFactorPhone), BaseDimensions("watch"))
	require.Equal(t, 200.0, Scale(v, 100, "watch"))
	require.Equal(t, 200.0, VerticalScale(v, 100, "watch"))
	require.Equal(t, FormFactorPhone, ParseFormFactor("watch"))
	require.Equal(t, FormFactorTablet, ParseFormFactor(" Tablet "))
}

func TestModerateScaleBlends(t *testing.T) {
	v := Viewport{Width: 750}
	require.Equal(t, 150.0, ModerateScale(v, 100, DefaultModerateFactor, FormFactorPhone))
}

func TestModerateScaleFullFactorIsExactlyScale(t *testing.T) {
	v := Viewport{Width: 1, Height: 1}
	require.Equal(t, Scale(v, 1, FormFactorPhone), ModerateScale(v, 1, 1, FormFactorPhone))
	require.Equal(t, 1.0, ModerateScale(v, 1, 0, FormFactorPhone))
}

func TestModerateScaleEndpoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := Viewport{
			Width:  rapid.Float64Range(1, 4000).Draw(t, "width"),
			Height: rapid.Float64Range(1, 4000).Draw(t, "height"),
		}
		size := rapid.Float64Range(0, 500).Draw(t, "size")
		ff := rapid.SampledFrom([]FormFactor{FormFactorPhone, FormFactorTablet, FormFactorFoldable}).Draw(t, "ff")

		if got := ModerateScale(v, size, 0, ff); got != size {
			t.Fatalf("factor 0: got %v want %v", got, size)
		}
		want := Scale(v, size, ff)
		if got := ModerateScale(v, size, 1, ff); got != want {
			t.Fatalf("factor 1: got %v want %v", got, want)
		}
	})
}

func TestFontScale(t *testing.T) {
	require.Equal(t, 21.0, FontScale(Viewport{FontScale: 1.5}, 14))
	require.Equal(t, 14.0, FontScale(Viewport{}, 14))
}

func TestScalerMatchesFunctions(t *testing.T) {
	v := Viewport{Width: 1000, Height: 1000, FontScale: 2}
	s := NewScaler(v, FormFactorTablet)
	require.Equal(t, Scale(v, 10, FormFactorTablet), s.Scale(10))
	require.Equal(t, VerticalScale(v, 10, FormFactorTablet), s.Vertical(10))
	require.Equal(t, ModerateScale(v, 10, 0.5, FormFactorTablet), s.Moderate(10))
	require.Equal(t, 20.0, s.Font(10))
}

func TestCells(t *testing.T) {
	require.Equal(t, 2, Cells(1.6, 0))
	require.Equal(t, 1, Cells(1.4, 0))
	require.Equal(t, 1, Cells(0.2, 1))
}
