package layout

// Options are the static knobs of a layout pass.
type Options struct {
	FormFactor         FormFactor
	Breakpoints        BreakpointTable
	MinChildWidth      float64
	Spacing            float64
	AdaptiveBreakpoint float64
	ModerateFactor     float64
	Split              SplitRatio
}

// DefaultOptions mirrors the stock responsive grid and adaptive layout settings.
func DefaultOptions() Options {
	return Options{
		FormFactor:         FormFactorPhone,
		Breakpoints:        DefaultBreakpointTable(),
		MinChildWidth:      150,
		Spacing:            10,
		AdaptiveBreakpoint: DefaultAdaptiveBreakpoint,
		ModerateFactor:     DefaultModerateFactor,
		Split:              DefaultSplitRatio(),
	}
}

// Decision is everything the renderer needs to know about one layout pass.
type Decision struct {
	Breakpoint  Breakpoint
	Grid        Grid
	Direction   Direction
	Variant     Variant
	Fold        Fold
	Orientation Orientation
	Scheme      ColorScheme
	Scaler      Scaler
}

// Decide resolves snap against opts.
func Decide(snap Snapshot, opts Options) Decision {
	v := snap.Viewport
	bp := opts.Breakpoints.Classify(v.Width)
	scaler := NewScaler(v, opts.FormFactor)
	scaler.Factor = opts.ModerateFactor

	scheme := snap.Scheme
	if scheme == "" {
		scheme = SchemeDark
	}

	return Decision{
		Breakpoint:  bp,
		Grid:        NewGrid(bp, v.Width, opts.MinChildWidth, opts.Spacing),
		Direction:   AdaptiveDirection(v.Width, opts.AdaptiveBreakpoint),
		Variant:     SelectByDevice(snap.Device.Type, VariantPhone, VariantTablet, VariantFoldable),
		Fold:        FoldLayout(snap.Device, opts.Split),
		Orientation: OrientationOf(v),
		Scheme:      scheme,
		Scaler:      scaler,
	}
}
