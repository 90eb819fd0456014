package component

// Intent carries the player's already edge-detected input for the current
// tick. MoveX/MoveZ are a normalized-ish direction on the floor plane; the
// swipe booleans are true only on the tick the button went down.
type Intent struct {
	MoveX      float64
	MoveZ      float64
	SwipeLeft  bool
	SwipeRight bool
}

var IntentComponent = NewComponent[Intent]()
