package lastwins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcquire_NewerRequestCancelsOlder(t *testing.T) {
	g := New()

	first, releaseFirst := g.Acquire(context.Background(), "session-1")
	second, releaseSecond := g.Acquire(context.Background(), "session-1")

	assert.Error(t, first.Err())
	assert.True(t, Superseded(first))
	assert.NoError(t, second.Err())
	assert.False(t, Superseded(second))

	// Завершение вытесненного вычисления не должно снять регистрацию нового
	releaseFirst()
	assert.Equal(t, 1, g.Len())

	releaseSecond()
	assert.Equal(t, 0, g.Len())
	assert.False(t, Superseded(second))
}

func TestAcquire_DifferentKeysIndependent(t *testing.T) {
	g := New()

	a, releaseA := g.Acquire(context.Background(), "a")
	b, releaseB := g.Acquire(context.Background(), "b")
	defer releaseA()
	defer releaseB()

	assert.NoError(t, a.Err())
	assert.NoError(t, b.Err())
	assert.Equal(t, 2, g.Len())
}

func TestAcquire_EmptyKeyNeverSuperseded(t *testing.T) {
	g := New()

	a, releaseA := g.Acquire(context.Background(), "")
	b, releaseB := g.Acquire(context.Background(), "")
	defer releaseA()
	defer releaseB()

	assert.NoError(t, a.Err())
	assert.NoError(t, b.Err())
	assert.Equal(t, 0, g.Len())
}

func TestSuperseded_ParentCancellationIsNotSuperseded(t *testing.T) {
	g := New()
	parent, cancel := context.WithCancel(context.Background())

	ctx, release := g.Acquire(parent, "k")
	defer release()
	cancel()

	assert.Error(t, ctx.Err())
	assert.False(t, Superseded(ctx))
}
