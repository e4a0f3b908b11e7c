package roving

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupFromContext(t *testing.T) {
	_, ok := GroupFromContext(context.Background())
	assert.False(t, ok)

	//nolint:staticcheck // SA1012
	_, ok = GroupFromContext(nil)
	assert.False(t, ok)

	g := NewGroup("menu")
	got, ok := GroupFromContext(WithGroup(context.Background(), g))
	require.True(t, ok)
	assert.Same(t, g, got)

	g.Close()
	_, ok = GroupFromContext(WithGroup(context.Background(), g))
	assert.False(t, ok)
}

func TestProvider_NearestGroupWins(t *testing.T) {
	outer := NewProvider("outer")
	inner := NewProvider("inner")

	ctx := inner.Context(outer.Context(context.Background()))
	m, err := Mount(ctx, nil, false)
	require.NoError(t, err)

	assert.Same(t, inner.Group(), m.Group())
	assert.Equal(t, 0, outer.Group().Len())
	assert.Equal(t, 1, inner.Group().Len())
}

func TestProvider_IndependentGroups(t *testing.T) {
	left := NewProvider("left")
	right := NewProvider("right")

	l, err := Mount(left.Context(context.Background()), nil, false)
	require.NoError(t, err)
	r, err := Mount(right.Context(context.Background()), nil, false)
	require.NoError(t, err)

	assert.Equal(t, 0, l.TabIndex())
	assert.Equal(t, 0, r.TabIndex())
	assert.NotEqual(t, left.Group().ID(), right.Group().ID())

	l.Unmount()
	assert.Equal(t, 0, r.TabIndex())
}

func TestProvider_CloseIsIdempotent(t *testing.T) {
	p := NewProvider("toolbar")
	p.Close()
	p.Close()
	assert.True(t, p.Group().Closed())
}
