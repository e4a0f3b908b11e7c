package roving

// TransitionKind names the operation that produced a Transition.
type TransitionKind string

const (
	KindRegister   TransitionKind = "register"
	KindUnregister TransitionKind = "unregister"
	KindDisable    TransitionKind = "disable"
	KindEnable     TransitionKind = "enable"
	KindActivate   TransitionKind = "activate"
	KindSelect     TransitionKind = "select"
	KindBlur       TransitionKind = "blur"
	KindClose      TransitionKind = "close"
)

// Transition records one mutation of a group and its outcome.
type Transition struct {
	GroupID     string
	Group       string
	Kind        TransitionKind
	Member      MemberID
	PrevTabStop MemberID
	TabStop     MemberID
	PrevActive  MemberID
	Active      MemberID
}

// TabStopMoved reports whether the transition elected a different tab stop.
func (t Transition) TabStopMoved() bool {
	return t.PrevTabStop != t.TabStop
}

// ActiveChanged reports whether the active member changed.
func (t Transition) ActiveChanged() bool {
	return t.PrevActive != t.Active
}

// Observer receives every transition after member hooks have run.
type Observer interface {
	ObserveTransition(Transition)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Transition)

// ObserveTransition calls f(t).
func (f ObserverFunc) ObserveTransition(t Transition) {
	f(t)
}
