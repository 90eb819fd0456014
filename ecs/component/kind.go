package component

// Kind tags what a simulated entity is. Swipe hit detection only considers
// interactable kinds; everything else is scenery as far as the paws care.
type Kind int

const (
	KindOther Kind = iota
	KindPlayer
	KindStaticGeometry
	KindKnockable
	KindScratchable
	KindPokeTarget
)

func (k Kind) Interactable() bool {
	switch k {
	case KindKnockable, KindScratchable, KindPokeTarget:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindStaticGeometry:
		return "static"
	case KindKnockable:
		return "knockable"
	case KindScratchable:
		return "scratchable"
	case KindPokeTarget:
		return "poke_target"
	default:
		return "other"
	}
}

// Info is attached to every entity in the scene.
type Info struct {
	Kind Kind
	Name string
}

var InfoComponent = NewComponent[Info]()
