package component

// PlayerState is per-tick derived state about the player cat.
type PlayerState struct {
	Grounded bool
}

var PlayerStateComponent = NewComponent[PlayerState]()
