package component

// Gaze is an independent head orientation, relative to the body's facing.
// It is driven by the gaze tracker every tick regardless of behavior state.
type Gaze struct {
	Yaw   float64
	Pitch float64
}

var GazeComponent = NewComponent[Gaze]()
