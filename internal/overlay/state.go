package overlay

// State is the shape mode the notch is in.
type State int

const (
	Collapsed State = iota
	Hovered
	Expanded
	Animating               // The rect is moving outside a banner
	ShowingTransientContent // Banner visible
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Hovered:
		return "hovered"
	case Expanded:
		return "expanded"
	case Animating:
		return "animating"
	case ShowingTransientContent:
		return "transient"
	default:
		return "unknown"
	}
}

// Side selects a content slot.
type Side int

const (
	Left Side = iota
	Right
)

// String returns the string representation of the side.
func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Content is what the expanded notch is currently showing.
type Content int

const (
	ContentNone Content = iota
	ContentFolders
	ContentQuickActions
)

// String returns the string representation of the content.
func (c Content) String() string {
	switch c {
	case ContentFolders:
		return "folders"
	case ContentQuickActions:
		return "quick-actions"
	default:
		return "none"
	}
}

// motion names the plan the animation engine is running on our behalf.
type motion int

const (
	motionNone motion = iota
	motionHover
	motionExpand
	motionCollapse
	motionBannerIn
	motionBannerOut
)
