package component

// PlayerTag marks the player cat.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// VacuumTag marks an autonomous vacuum agent.
type VacuumTag struct{}

var VacuumTagComponent = NewComponent[VacuumTag]()
