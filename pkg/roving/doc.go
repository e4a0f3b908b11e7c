// Package roving implements roving-tabindex focus coordination for groups of
// sibling widgets such as toolbars and menus.
//
// A Group is an ordered registry of members. Exactly one enabled member is
// the tab stop: the member a Tab focus cycle lands on when it enters the
// group. Arrow-style navigation moves the tab stop among enabled siblings,
// wrapping at both ends, and marks the target active. Disabling, removing or
// clicking members re-elects the tab stop deterministically.
//
// Members find their group through a context.Context populated by a
// Provider, so widgets deep in a tree do not need the group threaded through
// constructors:
//
//	p := roving.NewProvider("formatting")
//	ctx := p.Context(context.Background())
//	bold, _ := roving.Mount(ctx, roving.FocusFunc(boldButton.Focus), false)
//	bold.HandleIntent(roving.IntentForward)
//
// Groups are not safe for concurrent use. Drive them from the UI event loop.
package roving
