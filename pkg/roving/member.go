package roving

import (
	"context"

	apperrors "github.com/odvcencio/roving/pkg/errors"
)

// Member is the per-element controller. It registers with its group on
// creation, keeps the group informed of its disabled flag, translates
// navigation, pointer and blur events into group operations, and exposes the
// tab index and active flag its element renders with.
type Member struct {
	group            *Group
	id               MemberID
	handle           Focuser
	disabled         bool
	mounted          bool
	pointerActivates bool
	placement        []RegisterOption
	onChange         func(State)
}

// MemberOption configures a Member at mount time.
type MemberOption func(*Member)

// WithID mounts the member under a caller-chosen ID instead of a fresh one.
// Mounting twice with the same ID updates the existing registration.
func WithID(id MemberID) MemberOption {
	return func(m *Member) {
		if id != "" {
			m.id = id
		}
	}
}

// Placed positions the member within the group, e.g. Placed(Before(x)) for
// an element that appears between existing siblings.
func Placed(opts ...RegisterOption) MemberOption {
	return func(m *Member) { m.placement = append(m.placement, opts...) }
}

// PointerActivates makes a click mark the member active as well as the tab
// stop. By default a click only moves the tab stop.
func PointerActivates(enabled bool) MemberOption {
	return func(m *Member) { m.pointerActivates = enabled }
}

// OnChange installs a hook run whenever the member's State changes.
func OnChange(fn func(State)) MemberOption {
	return func(m *Member) { m.onChange = fn }
}

// Mount registers a member with the group carried by ctx.
func Mount(ctx context.Context, handle Focuser, disabled bool, opts ...MemberOption) (*Member, error) {
	g, ok := GroupFromContext(ctx)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeNoProvider, "no roving group in context").
			WithRemediation("derive the member's context from Provider.Context")
	}
	return NewMember(g, handle, disabled, opts...), nil
}

// NewMember registers a member with g directly.
func NewMember(g *Group, handle Focuser, disabled bool, opts ...MemberOption) *Member {
	m := &Member{
		group:    g,
		id:       NewMemberID(),
		handle:   handle,
		disabled: disabled,
	}
	for _, opt := range opts {
		opt(m)
	}
	g.Register(m.id, handle, disabled, m.placement...)
	g.Watch(m.id, m.changed)
	m.mounted = g.Contains(m.id)
	return m
}

// ID returns the member's identity.
func (m *Member) ID() MemberID { return m.id }

// Group returns the group the member was mounted into.
func (m *Member) Group() *Group { return m.group }

// Mounted reports whether the member is still registered.
func (m *Member) Mounted() bool { return m.mounted && m.group.Contains(m.id) }

// Disabled returns the last disabled flag pushed by the owner.
func (m *Member) Disabled() bool { return m.disabled }

// State returns the member's current render state.
func (m *Member) State() State { return m.group.State(m.id) }

// TabIndex returns 0 when the member is the tab stop and -1 otherwise.
func (m *Member) TabIndex() int { return m.State().TabIndex }

// IsActive reports whether keyboard navigation last landed on the member.
func (m *Member) IsActive() bool { return m.State().Active }

// SetPointerActivates changes the click policy set by PointerActivates.
func (m *Member) SetPointerActivates(enabled bool) { m.pointerActivates = enabled }

// OnChange replaces the state change hook.
func (m *Member) OnChange(fn func(State)) { m.onChange = fn }

func (m *Member) changed(s State) {
	if m.onChange != nil {
		m.onChange(s)
	}
}

// SetDisabled pushes the owner's disabled flag. Call it on every render;
// unchanged values are ignored by the group.
func (m *Member) SetDisabled(disabled bool) {
	m.disabled = disabled
	if !m.mounted {
		return
	}
	m.group.UpdateDisabled(m.id, disabled)
}

// Unmount unregisters the member. It is safe to call more than once.
func (m *Member) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.group.Unregister(m.id)
}

// HandleIntent applies a navigation intent. It returns false for
// IntentNone so callers keep their default handling of unrelated keys;
// recognised intents are consumed even when there is nowhere to go.
func (m *Member) HandleIntent(intent Intent) bool {
	if intent == IntentNone || !m.Mounted() {
		return false
	}

	var target MemberID
	switch intent {
	case IntentForward:
		target, _ = m.group.FindAdjacentEnabled(m.id, Forward)
	case IntentBackward:
		target, _ = m.group.FindAdjacentEnabled(m.id, Backward)
	case IntentFirst:
		target = m.group.FirstEnabled()
	case IntentLast:
		target = m.group.LastEnabled()
	default:
		return false
	}

	m.group.metrics.recordNavigation(m.group.name, intent, target != "")
	if target == "" {
		return true
	}
	m.group.SetActive(target)
	if h := m.group.Handle(target); h != nil {
		h.Focus()
	}
	return true
}

// HandleClick applies pointer activation of the member.
func (m *Member) HandleClick() {
	if !m.Mounted() {
		return
	}
	if m.pointerActivates {
		m.group.SetActive(m.id)
		return
	}
	m.group.Select(m.id)
}

// HandleMouseDown is a no-op: pressing a pointer button neither activates
// nor selects. Selection happens on the completed click.
func (m *Member) HandleMouseDown() {}

// HandleBlur clears the member's active status when it loses focus. The
// tab stop stays where it is so Tab returns to this member.
func (m *Member) HandleBlur() {
	if !m.Mounted() {
		return
	}
	m.group.Blur(m.id)
}
