package motion

// ContactState is the vertical support state of the actor.
type ContactState uint8

const (
	Airborne ContactState = iota
	Grounded
)

func (s ContactState) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "airborne"
}

// ContactEvent is a probe result or action that changes contact state.
type ContactEvent uint8

const (
	EventJumped ContactEvent = iota + 1
	EventLanded
	EventHitRoof
	EventLeftLedge
	EventWallTouched
	EventWallReleased
)

func (e ContactEvent) String() string {
	switch e {
	case EventJumped:
		return "jumped"
	case EventLanded:
		return "landed"
	case EventHitRoof:
		return "hit_roof"
	case EventLeftLedge:
		return "left_ledge"
	case EventWallTouched:
		return "wall_touched"
	case EventWallReleased:
		return "wall_released"
	default:
		return "unknown"
	}
}

// Contact is the discrete collision state. Wall contact is orthogonal to
// the vertical state and combines with either.
//
// RoofArmed gates the ceiling probe: landing arms it and a ceiling hit
// disarms it until the next landing.
type Contact struct {
	State        ContactState
	TouchingWall bool
	RoofArmed    bool
}

// Grounded reports whether the actor stands on ground.
func (c Contact) Grounded() bool {
	return c.State == Grounded
}

type contactTransition func(Contact) Contact

var contactTransitions = map[ContactEvent]contactTransition{
	EventJumped: func(c Contact) Contact {
		c.State = Airborne
		return c
	},
	EventLanded: func(c Contact) Contact {
		c.State = Grounded
		c.RoofArmed = true
		return c
	},
	EventHitRoof: func(c Contact) Contact {
		c.RoofArmed = false
		return c
	},
	EventLeftLedge: func(c Contact) Contact {
		c.State = Airborne
		return c
	},
	EventWallTouched: func(c Contact) Contact {
		c.TouchingWall = true
		return c
	},
	EventWallReleased: func(c Contact) Contact {
		c.TouchingWall = false
		return c
	},
}

// Apply returns the contact state after ev. Unknown events leave it as is.
func (c Contact) Apply(ev ContactEvent) Contact {
	next, ok := contactTransitions[ev]
	if !ok {
		return c
	}
	return next(c)
}
