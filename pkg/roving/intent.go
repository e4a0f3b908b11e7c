package roving

// Direction selects the neighbour searched by FindAdjacentEnabled.
type Direction int

const (
	Forward Direction = iota + 1
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

func (d Direction) step() int {
	if d == Backward {
		return -1
	}
	return 1
}

// Intent is an abstract navigation request produced by a key mapping.
type Intent int

const (
	IntentNone Intent = iota
	IntentForward
	IntentBackward
	IntentFirst
	IntentLast
)

func (i Intent) String() string {
	switch i {
	case IntentForward:
		return "forward"
	case IntentBackward:
		return "backward"
	case IntentFirst:
		return "first"
	case IntentLast:
		return "last"
	default:
		return "none"
	}
}
