package component

// Knockable marks a prop that can be sent flying by a swipe. Knocked flips
// once, on the first hit that lands; later hits still shove the prop but the
// flag (and the event keyed on it) never fires again.
type Knockable struct {
	Knocked bool
}

var KnockableComponent = NewComponent[Knockable]()

// Scratchable accumulates scratch progress from 0 to 100.
type Scratchable struct {
	Progress  float64
	Increment float64
	Complete  bool
}

var ScratchableComponent = NewComponent[Scratchable]()
