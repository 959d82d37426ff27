package cooking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepper_ClampsAtBothEnds(t *testing.T) {
	s := NewStepper([]string{"one", "two", "three"})

	assert.Equal(t, 0, s.Previous(), "previous at step 0 is a no-op")
	assert.True(t, s.IsFirst())

	s.Next()
	s.Next()
	assert.True(t, s.IsLast())
	assert.Equal(t, 2, s.Next(), "next at the last step is a no-op")
	assert.Equal(t, "three", s.Step())
	assert.Equal(t, "3 / 3", s.Position())
}

func TestStepper_ReachesLastAfterNMinusOneNexts(t *testing.T) {
	for n := 1; n <= 8; n++ {
		steps := make([]string, n)
		s := NewStepper(steps)
		for i := 0; i < n-1; i++ {
			assert.False(t, s.IsLast())
			s.Next()
		}
		assert.True(t, s.IsLast(), "n=%d", n)
		assert.Equal(t, n-1, s.Current())
	}
}

func TestStepper_NoSteps(t *testing.T) {
	s := NewStepper(nil)

	assert.Equal(t, 0, s.Next())
	assert.Equal(t, 0, s.Previous())
	assert.Equal(t, "", s.Step())
	assert.Equal(t, "0 / 0", s.Position())
	assert.True(t, s.IsFirst())
	assert.True(t, s.IsLast())
}

type countingLease struct {
	mu       sync.Mutex
	released int
}

func (c *countingLease) Release() {
	c.mu.Lock()
	c.released++
	c.mu.Unlock()
}

func TestGuard_ReleasesOnce(t *testing.T) {
	lease := &countingLease{}
	g := NewGuard(lease)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, lease.released)
	assert.True(t, g.Released())
}

func TestGuard_NilLeaseIsNoop(t *testing.T) {
	g := NewGuard(nil)
	assert.NotPanics(t, g.Release)
	assert.True(t, g.Released())
}
