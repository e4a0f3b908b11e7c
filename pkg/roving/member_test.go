package roving

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/odvcencio/roving/pkg/errors"
)

// testButton stands in for a focusable host element.
type testButton struct {
	label   string
	focused int
	member  *Member
	renders []State
}

func (b *testButton) Focus() { b.focused++ }

// testToolbar mirrors a three-button toolbar: the second button sits inside
// an extra container, which must not affect ordering.
type testToolbar struct {
	provider *Provider
	buttons  []*testButton
}

func newTestToolbar(t *testing.T, flags []bool, opts ...MemberOption) *testToolbar {
	t.Helper()
	tb := &testToolbar{provider: NewProvider("toolbar")}
	ctx := tb.provider.Context(context.Background())
	for i, label := range []string{"Button One", "Button Two", "Button Three"} {
		b := &testButton{label: label}
		mopts := append([]MemberOption{OnChange(func(s State) { b.renders = append(b.renders, s) })}, opts...)
		m, err := Mount(ctx, b, flags[i], mopts...)
		require.NoError(t, err)
		b.member = m
		tb.buttons = append(tb.buttons, b)
	}
	return tb
}

func (tb *testToolbar) rerender(flags []bool) {
	for i, b := range tb.buttons {
		b.member.SetDisabled(flags[i])
	}
}

func (tb *testToolbar) keyDown(i int, intent Intent) bool {
	return tb.buttons[i].member.HandleIntent(intent)
}

func (tb *testToolbar) expect(t *testing.T, tabIndexes []int, active []bool) {
	t.Helper()
	for i, b := range tb.buttons {
		assert.Equal(t, tabIndexes[i], b.member.TabIndex(), "%s tabIndex", b.label)
		if active != nil {
			assert.Equal(t, active[i], b.member.IsActive(), "%s active", b.label)
		}
	}
}

func TestMember_InitialStateNoneDisabled(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})
	tb.expect(t, []int{0, -1, -1}, []bool{false, false, false})
}

func TestMember_InitialStateFirstDisabled(t *testing.T) {
	tb := newTestToolbar(t, []bool{true, false, false})
	tb.expect(t, []int{-1, 0, -1}, []bool{false, false, false})
}

func TestMember_BecomingDisabledMovesTabStop(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})
	tb.rerender([]bool{true, false, false})
	tb.expect(t, []int{-1, 0, -1}, []bool{false, false, false})
}

func TestMember_ForwardNavigationWraps(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})

	assert.True(t, tb.keyDown(0, IntentForward))
	tb.expect(t, []int{-1, 0, -1}, []bool{false, true, false})

	tb.keyDown(1, IntentForward)
	tb.expect(t, []int{-1, -1, 0}, []bool{false, false, true})

	tb.keyDown(2, IntentForward)
	tb.expect(t, []int{0, -1, -1}, []bool{true, false, false})
}

func TestMember_BackwardNavigationWraps(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})

	tb.keyDown(0, IntentBackward)
	tb.expect(t, []int{-1, -1, 0}, []bool{false, false, true})

	tb.keyDown(2, IntentBackward)
	tb.expect(t, []int{-1, 0, -1}, []bool{false, true, false})

	tb.keyDown(1, IntentBackward)
	tb.expect(t, []int{0, -1, -1}, []bool{true, false, false})
}

func TestMember_NavigationSkipsDisabled(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, true, false})

	tb.keyDown(0, IntentForward)
	tb.expect(t, []int{-1, -1, 0}, []bool{false, false, true})

	tb.keyDown(2, IntentForward)
	tb.expect(t, []int{0, -1, -1}, []bool{true, false, false})
}

func TestMember_NavigationTransfersFocus(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})

	tb.keyDown(0, IntentForward)
	assert.Equal(t, 1, tb.buttons[1].focused)
	assert.Equal(t, 0, tb.buttons[0].focused)

	tb.keyDown(1, IntentBackward)
	assert.Equal(t, 1, tb.buttons[0].focused)
}

func TestMember_NavigationWithNowhereToGo(t *testing.T) {
	tb := newTestToolbar(t, []bool{true, false, true})
	tb.keyDown(1, IntentForward)
	tb.buttons[1].member.group.SetActive(tb.buttons[1].member.ID())

	assert.True(t, tb.keyDown(1, IntentForward), "navigation keys are consumed even when nothing moves")
	tb.expect(t, []int{-1, 0, -1}, []bool{false, true, false})
	assert.Equal(t, 0, tb.buttons[1].focused)
}

func TestMember_UnrecognisedKeysAreNotHandled(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})

	assert.False(t, tb.keyDown(0, IntentNone))
	tb.expect(t, []int{0, -1, -1}, []bool{false, false, false})
}

func TestMember_KeyboardAndMouseInput(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})

	tb.buttons[0].member.HandleMouseDown()
	tb.expect(t, []int{0, -1, -1}, []bool{false, false, false})

	tb.keyDown(0, IntentForward)
	tb.expect(t, []int{-1, 0, -1}, []bool{false, true, false})

	tb.buttons[0].member.HandleClick()
	tb.expect(t, []int{0, -1, -1}, []bool{false, false, false})
}

func TestMember_ClickThenNavigateFromClickedMember(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})

	tb.buttons[2].member.HandleClick()
	tb.expect(t, []int{-1, -1, 0}, []bool{false, false, false})

	tb.keyDown(2, IntentForward)
	tb.expect(t, []int{0, -1, -1}, []bool{true, false, false})
}

func TestMember_ClickOnDisabledIsIgnored(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, true, false})

	tb.buttons[1].member.HandleClick()
	tb.expect(t, []int{0, -1, -1}, []bool{false, false, false})
}

func TestMember_PointerActivatesOption(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false}, PointerActivates(true))

	tb.buttons[1].member.HandleClick()
	tb.expect(t, []int{-1, 0, -1}, []bool{false, true, false})
}

func TestMember_BlurClearsActiveKeepsTabStop(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})
	tb.keyDown(0, IntentForward)

	tb.buttons[1].member.HandleBlur()
	tb.expect(t, []int{-1, 0, -1}, []bool{false, false, false})
}

func TestMember_DisablingActiveMember(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})
	tb.keyDown(0, IntentForward)

	tb.rerender([]bool{false, true, false})
	tb.expect(t, []int{-1, -1, 0}, []bool{false, false, false})
}

func TestMember_HomeAndEnd(t *testing.T) {
	tb := newTestToolbar(t, []bool{true, false, false})

	tb.keyDown(1, IntentLast)
	tb.expect(t, []int{-1, -1, 0}, []bool{false, false, true})

	tb.keyDown(2, IntentFirst)
	tb.expect(t, []int{-1, 0, -1}, []bool{false, true, false})
}

func TestMember_UnmountElectsReplacement(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})

	tb.buttons[0].member.Unmount()
	tb.buttons[0].member.Unmount()

	assert.False(t, tb.buttons[0].member.Mounted())
	assert.Equal(t, -1, tb.buttons[0].member.TabIndex())
	assert.Equal(t, 0, tb.buttons[1].member.TabIndex())
	assert.False(t, tb.buttons[0].member.HandleIntent(IntentForward))
	assert.Equal(t, 2, tb.provider.Group().Len())
}

func TestMember_RendersOnChange(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})
	tb.keyDown(0, IntentForward)

	require.NotEmpty(t, tb.buttons[1].renders)
	assert.Equal(t, State{TabIndex: 0, Active: true}, tb.buttons[1].renders[len(tb.buttons[1].renders)-1])
	assert.Equal(t, State{TabIndex: -1}, tb.buttons[0].renders[len(tb.buttons[0].renders)-1])
	assert.Empty(t, tb.buttons[2].renders)
}

func TestMember_PlacedBetweenSiblings(t *testing.T) {
	tb := newTestToolbar(t, []bool{false, false, false})
	ctx := tb.provider.Context(context.Background())

	hidden := &testButton{label: "Hidden"}
	m, err := Mount(ctx, hidden, false, Placed(After(tb.buttons[0].member.ID())))
	require.NoError(t, err)

	tb.keyDown(0, IntentForward)
	assert.True(t, m.IsActive())
	assert.Equal(t, 1, hidden.focused)
}

func TestMember_WithIDRemountUpdates(t *testing.T) {
	p := NewProvider("toolbar")
	ctx := p.Context(context.Background())

	first, err := Mount(ctx, nil, false, WithID("save"))
	require.NoError(t, err)
	second, err := Mount(ctx, nil, true, WithID("save"))
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, 1, p.Group().Len())
	assert.True(t, p.Group().Disabled("save"))
}

func TestMount_WithoutProvider(t *testing.T) {
	_, err := Mount(context.Background(), nil, false)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNoProvider))
}

func TestMount_AfterProviderClosed(t *testing.T) {
	p := NewProvider("toolbar")
	ctx := p.Context(context.Background())
	m, err := Mount(ctx, nil, false)
	require.NoError(t, err)

	p.Close()

	assert.False(t, m.Mounted())
	m.HandleClick()
	m.SetDisabled(true)
	assert.Equal(t, -1, m.TabIndex())

	_, err = Mount(ctx, nil, false)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNoProvider))
}

func TestFocusFunc(t *testing.T) {
	calls := 0
	FocusFunc(func() { calls++ }).Focus()
	FocusFunc(nil).Focus()
	assert.Equal(t, 1, calls)
}
