package session

type Pane int

const (
	PanePlaceholder Pane = iota
	PaneSpinner
	PaneImage
)

// Layout is what a renderer should show for a state.
type Layout struct {
	ShowUpload       bool
	ShowComparison   bool
	Pane             Pane
	ErrorBanner      string
	ControlsDisabled bool
	CanDownload      bool
}

func (s State) Layout() Layout {
	l := Layout{
		ShowUpload:       !s.HasOriginal(),
		ShowComparison:   s.HasOriginal(),
		ErrorBanner:      s.errMessage,
		ControlsDisabled: s.phase == Transforming,
		CanDownload:      s.HasTransformed(),
	}
	switch {
	case s.phase == Transforming:
		l.Pane = PaneSpinner
	case s.HasTransformed():
		l.Pane = PaneImage
	default:
		l.Pane = PanePlaceholder
	}
	return l
}
