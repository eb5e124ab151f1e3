package graph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	c := NewCell("a")

	value, version := c.Snapshot()
	assert.Equal(t, "a", value)
	assert.Equal(t, uint64(0), version)

	c.Store("b")
	assert.Equal(t, "b", c.Load())
	assert.Equal(t, uint64(0), c.Version(), "Store must not bump")

	assert.Equal(t, uint64(1), c.Bump())
	assert.Equal(t, uint64(2), c.Bump())

	changed := c.Mutate(func(v *string) bool {
		*v += "!"
		return true
	})
	assert.True(t, changed)
	assert.Equal(t, "b!", c.Load())
}

func TestCell_ConcurrentMutate(t *testing.T) {
	c := NewCell(0)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Mutate(func(v *int) bool {
				*v++
				return true
			})
			c.Bump()
			_, _ = c.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Load())
	assert.Equal(t, uint64(50), c.Version())
}
