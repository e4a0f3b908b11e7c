package roving

import "context"

type groupKey struct{}

// WithGroup returns a copy of ctx carrying g for Mount to find.
func WithGroup(ctx context.Context, g *Group) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, groupKey{}, g)
}

// GroupFromContext returns the group stored by WithGroup. Closed groups are
// reported as absent.
func GroupFromContext(ctx context.Context) (*Group, bool) {
	if ctx == nil {
		return nil, false
	}
	g, ok := ctx.Value(groupKey{}).(*Group)
	if !ok || g == nil || g.closed {
		return nil, false
	}
	return g, true
}

// Provider owns one Group for the lifetime of a coordination context, such
// as a toolbar widget.
type Provider struct {
	group *Group
}

// NewProvider creates a provider with a fresh group.
func NewProvider(name string, opts ...Option) *Provider {
	return &Provider{group: NewGroup(name, opts...)}
}

// Group returns the provider's group.
func (p *Provider) Group() *Group {
	return p.group
}

// Context returns a child of parent through which descendants can Mount.
func (p *Provider) Context(parent context.Context) context.Context {
	return WithGroup(parent, p.group)
}

// Close destroys the group. Members mounted from it become inert.
func (p *Provider) Close() {
	p.group.Close()
}
