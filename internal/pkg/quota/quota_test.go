package quota

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateAdmitsUpToLimit(t *testing.T) {
	g := NewGate(3)

	for i := 0; i < 3; i++ {
		require.True(t, g.TryConsume(), "attempt %d should be admitted", i+1)
	}

	assert.False(t, g.TryConsume())
	assert.Equal(t, 3, g.Count())
}

func TestGateRejectionLeavesCountUnchanged(t *testing.T) {
	g := NewGate(1)

	require.True(t, g.TryConsume())

	for i := 0; i < 5; i++ {
		assert.False(t, g.TryConsume())
	}
	assert.Equal(t, 1, g.Count())
	assert.Equal(t, 0, g.Remaining())
}

func TestGateZeroLimitIsClosed(t *testing.T) {
	g := NewGate(0)

	assert.False(t, g.TryConsume())
	assert.Equal(t, 0, g.Count())
}

func TestGateConcurrentConsume(t *testing.T) {
	const limit = 50
	g := NewGate(limit)

	var wg sync.WaitGroup
	admitted := make(chan struct{}, limit*4)

	for i := 0; i < limit*4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryConsume() {
				admitted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	assert.Len(t, admitted, limit)
	assert.Equal(t, limit, g.Count())
}

func TestGateRemaining(t *testing.T) {
	g := NewGate(5)
	require.True(t, g.TryConsume())
	require.True(t, g.TryConsume())

	assert.Equal(t, 3, g.Remaining())
	assert.Equal(t, 5, g.Limit())
}
