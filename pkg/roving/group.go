package roving

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/roving/pkg/logging"
)

// MemberID identifies a member for its whole lifetime, independent of its
// position in the group.
type MemberID string

// NewMemberID returns a fresh, lexically time-ordered member ID.
func NewMemberID() MemberID {
	return MemberID(ulid.Make().String())
}

// Focuser is the host element a member controls. Focus is called
// synchronously when keyboard navigation lands on the member.
type Focuser interface {
	Focus()
}

// FocusFunc adapts a function to the Focuser interface.
type FocusFunc func()

// Focus calls f if it is non-nil.
func (f FocusFunc) Focus() {
	if f != nil {
		f()
	}
}

// Tab indexes reported by State.
const (
	TabStopIndex = 0
	SkippedIndex = -1
)

// State is what a member needs to render itself.
type State struct {
	TabIndex int
	Active   bool
}

// IsTabStop reports whether the member is reachable by Tab.
func (s State) IsTabStop() bool {
	return s.TabIndex == TabStopIndex
}

var detached = State{TabIndex: SkippedIndex}

type record struct {
	id       MemberID
	handle   Focuser
	disabled bool
	onChange func(State)
	state    State
}

// Group is the shared registry of one roving-tabindex group. The zero value
// is not usable; construct with NewGroup or NewProvider.
type Group struct {
	id        string
	name      string
	members   []*record
	tabStop   MemberID
	active    MemberID
	closed    bool
	logger    *logging.Logger
	metrics   *Metrics
	observers []Observer

	publishing bool
	pending    []pendingCommit
}

// Option configures a Group.
type Option func(*Group)

// WithLogger sends debug events for registrations and elections to l.
func WithLogger(l *logging.Logger) Option {
	return func(g *Group) { g.logger = l }
}

// WithMetrics records group activity in m.
func WithMetrics(m *Metrics) Option {
	return func(g *Group) { g.metrics = m }
}

// WithObserver adds an observer notified after every mutation.
func WithObserver(o Observer) Option {
	return func(g *Group) {
		if o != nil {
			g.observers = append(g.observers, o)
		}
	}
}

// NewGroup creates an empty group.
func NewGroup(name string, opts ...Option) *Group {
	g := &Group{
		id:   uuid.NewString(),
		name: name,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the group's unique identifier.
func (g *Group) ID() string { return g.id }

// Name returns the name the group was created with.
func (g *Group) Name() string { return g.name }

// Len returns the number of registered members.
func (g *Group) Len() int { return len(g.members) }

// Closed reports whether Close has been called.
func (g *Group) Closed() bool { return g.closed }

// Members returns member IDs in navigation order.
func (g *Group) Members() []MemberID {
	ids := make([]MemberID, len(g.members))
	for i, rec := range g.members {
		ids[i] = rec.id
	}
	return ids
}

// TabStop returns the current tab stop, or "" when no member is enabled.
func (g *Group) TabStop() MemberID { return g.tabStop }

// Active returns the active member, or "" when none is active.
func (g *Group) Active() MemberID { return g.active }

// Contains reports whether id is registered.
func (g *Group) Contains(id MemberID) bool { return g.indexOf(id) >= 0 }

// Disabled reports the disabled flag of id. Unknown members report false.
func (g *Group) Disabled(id MemberID) bool {
	if rec := g.lookup(id); rec != nil {
		return rec.disabled
	}
	return false
}

// Handle returns the host element registered for id.
func (g *Group) Handle(id MemberID) Focuser {
	if rec := g.lookup(id); rec != nil {
		return rec.handle
	}
	return nil
}

// State returns the render state of id. Unknown members are never the tab
// stop and never active.
func (g *Group) State(id MemberID) State {
	if g.indexOf(id) < 0 {
		return detached
	}
	return g.stateOf(id)
}

func (g *Group) stateOf(id MemberID) State {
	s := State{TabIndex: SkippedIndex}
	if id == g.tabStop {
		s.TabIndex = TabStopIndex
	}
	s.Active = id == g.active
	return s
}

// Watch installs the change hook for id, replacing any previous one. The
// hook runs synchronously whenever the member's State changes.
func (g *Group) Watch(id MemberID, fn func(State)) {
	if rec := g.lookup(id); rec != nil {
		rec.onChange = fn
	}
}

// placement selects where Register inserts a new member.
type placement struct {
	before MemberID
	after  MemberID
	index  int
	hasIdx bool
}

// RegisterOption positions a newly registered member.
type RegisterOption func(*placement)

// Before inserts the member immediately before sibling. Unknown siblings
// fall back to appending.
func Before(sibling MemberID) RegisterOption {
	return func(p *placement) { p.before = sibling }
}

// After inserts the member immediately after sibling. Unknown siblings fall
// back to appending.
func After(sibling MemberID) RegisterOption {
	return func(p *placement) { p.after = sibling }
}

// At inserts the member at index, clamped to the current bounds.
func At(index int) RegisterOption {
	return func(p *placement) {
		p.index = index
		p.hasIdx = true
	}
}

func (p placement) resolve(g *Group) int {
	n := len(g.members)
	switch {
	case p.before != "":
		if i := g.indexOf(p.before); i >= 0 {
			return i
		}
	case p.after != "":
		if i := g.indexOf(p.after); i >= 0 {
			return i + 1
		}
	case p.hasIdx:
		return max(0, min(p.index, n))
	}
	return n
}

// Register adds a member. Registering an ID that is already present updates
// its handle and disabled flag in place and keeps its position. A newly
// registered enabled member becomes the tab stop only if the group has none.
func (g *Group) Register(id MemberID, handle Focuser, disabled bool, opts ...RegisterOption) {
	if g.closed || id == "" {
		return
	}
	if rec := g.lookup(id); rec != nil {
		rec.handle = handle
		g.UpdateDisabled(id, disabled)
		return
	}

	var p placement
	for _, opt := range opts {
		opt(&p)
	}
	at := p.resolve(g)

	prevTab, prevActive := g.tabStop, g.active
	rec := &record{id: id, handle: handle, disabled: disabled, state: detached}
	g.members = append(g.members, nil)
	copy(g.members[at+1:], g.members[at:])
	g.members[at] = rec

	if g.tabStop == "" && !disabled {
		g.tabStop = id
	}
	g.metrics.setMembers(g.name, len(g.members))
	g.commit(KindRegister, id, prevTab, prevActive)
}

// Unregister removes a member. When it held the tab stop, the first enabled
// member at or after its former position is elected, wrapping to the start
// of the group; with no enabled members left there is no tab stop.
func (g *Group) Unregister(id MemberID) {
	if g.closed {
		return
	}
	i := g.indexOf(id)
	if i < 0 {
		return
	}

	prevTab, prevActive := g.tabStop, g.active
	g.members = append(g.members[:i], g.members[i+1:]...)
	if g.active == id {
		g.active = ""
	}
	if g.tabStop == id {
		g.tabStop = g.enabledFrom(i)
	}
	g.metrics.setMembers(g.name, len(g.members))
	g.commit(KindUnregister, id, prevTab, prevActive)
}

// UpdateDisabled changes a member's disabled flag. A member that becomes
// disabled loses active status, and if it was the tab stop the next enabled
// member (wrapping) takes over. If the group had no tab stop, the first
// enabled member is elected.
func (g *Group) UpdateDisabled(id MemberID, disabled bool) {
	if g.closed {
		return
	}
	i := g.indexOf(id)
	if i < 0 {
		return
	}
	rec := g.members[i]
	if rec.disabled == disabled {
		return
	}

	prevTab, prevActive := g.tabStop, g.active
	rec.disabled = disabled

	kind := KindEnable
	if disabled {
		kind = KindDisable
		if g.active == id {
			g.active = ""
		}
		if g.tabStop == id {
			g.tabStop = g.enabledFrom(i + 1)
		}
	}
	if g.tabStop == "" {
		g.tabStop = g.enabledFrom(0)
	}
	g.commit(kind, id, prevTab, prevActive)
}

// SetActive makes id both the active member and the tab stop, and returns
// the resulting tab stop. Unknown or disabled members are ignored.
func (g *Group) SetActive(id MemberID) MemberID {
	return g.elect(KindActivate, id, true)
}

// Select makes id the tab stop without marking it active. It backs pointer
// selection: the anchor for the next keyboard navigation moves, but the
// keyboard highlight is cleared.
func (g *Group) Select(id MemberID) MemberID {
	return g.elect(KindSelect, id, false)
}

func (g *Group) elect(kind TransitionKind, id MemberID, activate bool) MemberID {
	if g.closed {
		return g.tabStop
	}
	rec := g.lookup(id)
	if rec == nil || rec.disabled {
		return g.tabStop
	}

	prevTab, prevActive := g.tabStop, g.active
	g.tabStop = id
	if activate {
		g.active = id
	} else {
		g.active = ""
	}
	g.commit(kind, id, prevTab, prevActive)
	return g.tabStop
}

// Blur clears active status from id. The tab stop is unaffected.
func (g *Group) Blur(id MemberID) {
	if g.closed || id == "" || g.active != id {
		return
	}
	prevTab, prevActive := g.tabStop, g.active
	g.active = ""
	g.commit(KindBlur, id, prevTab, prevActive)
}

// FindAdjacentEnabled returns the nearest enabled member after (Forward) or
// before (Backward) id, wrapping around the ends. It reports false when no
// other enabled member exists or id is unknown.
func (g *Group) FindAdjacentEnabled(id MemberID, dir Direction) (MemberID, bool) {
	i := g.indexOf(id)
	if i < 0 {
		return "", false
	}
	n := len(g.members)
	step := dir.step()
	for k := 1; k < n; k++ {
		j := ((i+step*k)%n + n) % n
		if !g.members[j].disabled {
			return g.members[j].id, true
		}
	}
	return "", false
}

// FirstEnabled returns the first enabled member in order, or "".
func (g *Group) FirstEnabled() MemberID {
	return g.enabledFrom(0)
}

// LastEnabled returns the last enabled member in order, or "".
func (g *Group) LastEnabled() MemberID {
	for i := len(g.members) - 1; i >= 0; i-- {
		if !g.members[i].disabled {
			return g.members[i].id
		}
	}
	return ""
}

// Close tears the group down. Members are dropped without notification and
// every later operation is a no-op.
func (g *Group) Close() {
	if g.closed {
		return
	}
	prevTab, prevActive := g.tabStop, g.active
	g.closed = true
	g.members = nil
	g.tabStop = ""
	g.active = ""
	g.metrics.setMembers(g.name, 0)
	g.commit(KindClose, "", prevTab, prevActive)
}

// enabledFrom scans circularly starting at index start and returns the
// first enabled member.
func (g *Group) enabledFrom(start int) MemberID {
	n := len(g.members)
	for k := 0; k < n; k++ {
		rec := g.members[(start+k)%n]
		if !rec.disabled {
			return rec.id
		}
	}
	return ""
}

func (g *Group) indexOf(id MemberID) int {
	if id == "" {
		return -1
	}
	for i, rec := range g.members {
		if rec.id == id {
			return i
		}
	}
	return -1
}

func (g *Group) lookup(id MemberID) *record {
	if i := g.indexOf(id); i >= 0 {
		return g.members[i]
	}
	return nil
}

// pendingCommit is a mutation waiting to be published.
type pendingCommit struct {
	t       Transition
	members int
}

// commit publishes the outcome of a mutation: member hooks first, in
// navigation order, then metrics, the log and observers. A hook may mutate
// the group; that mutation is applied at once but published after the
// current one finishes, so publication follows mutation order.
func (g *Group) commit(kind TransitionKind, id MemberID, prevTab, prevActive MemberID) {
	g.pending = append(g.pending, pendingCommit{
		t: Transition{
			GroupID:     g.id,
			Group:       g.name,
			Kind:        kind,
			Member:      id,
			PrevTabStop: prevTab,
			TabStop:     g.tabStop,
			PrevActive:  prevActive,
			Active:      g.active,
		},
		members: len(g.members),
	})
	if g.publishing {
		return
	}
	g.publishing = true
	defer func() {
		g.publishing = false
		g.pending = nil
	}()
	for len(g.pending) > 0 {
		p := g.pending[0]
		g.pending = g.pending[1:]
		g.publish(p)
	}
}

func (g *Group) publish(p pendingCommit) {
	type change struct {
		fn    func(State)
		state State
	}
	var changed []change
	for _, rec := range g.members {
		next := g.stateOf(rec.id)
		if next != rec.state {
			rec.state = next
			changed = append(changed, change{rec.onChange, next})
		}
	}
	for _, c := range changed {
		if c.fn != nil {
			c.fn(c.state)
		}
	}

	t := p.t
	if t.TabStopMoved() {
		g.metrics.recordElection(g.name, t.Kind)
	}
	if g.logger.Enabled(logging.LevelDebug) {
		_ = g.logger.Log(logging.Event{
			Level:     logging.LevelDebug,
			Category:  logging.CategoryFocus,
			EventType: string(t.Kind),
			GroupID:   g.id,
			MemberID:  string(t.Member),
			Details: map[string]any{
				"group":    g.name,
				"tab_stop": string(t.TabStop),
				"active":   string(t.Active),
				"members":  p.members,
			},
		})
	}
	for _, o := range g.observers {
		o.ObserveTransition(t)
	}
}
