package graph

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addInto(ref int, mut *int) bool {
	*mut += ref
	return true
}

func copyInto(ref int, mut *int) bool {
	if *mut == ref {
		return false
	}
	*mut = ref
	return true
}

func TestNewNode(t *testing.T) {
	n := NewNode(10, WithName("ten"))

	assert.Equal(t, 10, n.Get())
	assert.Equal(t, uint64(0), n.Version())
	assert.Equal(t, "ten", n.Name())
	assert.Empty(t, n.Notifications())
	assert.Empty(t, n.Observations())
	assert.Equal(t, "ten@v0(10)", n.String())
}

func TestNewNode_DefaultName(t *testing.T) {
	n := NewNode("x")
	assert.Equal(t, n.ID().String()[:8], n.Name())
}

func TestSetAndNotify_Propagates(t *testing.T) {
	a := NewNode(5)
	b := NewNode(10)
	require.NoError(t, a.TryMarkForNotification(b, addInto, PolicyAll))

	a.SetAndNotify(11)

	assert.Equal(t, 11, a.Get())
	assert.Equal(t, 21, b.Get())
	assert.Equal(t, uint64(1), a.Version())
	assert.Equal(t, uint64(1), b.Version())
}

func TestUpdate(t *testing.T) {
	a := NewNode(5)
	b := NewNode(10)
	var fired int
	require.NoError(t, a.TryMarkForNotification(b, func(ref int, mut *int) bool {
		fired++
		return addInto(ref, mut)
	}, PolicyAll))

	Update(a, 5)
	assert.Equal(t, uint64(0), a.Version(), "equal value must not broadcast")
	assert.Equal(t, 0, fired)
	assert.Equal(t, 10, b.Get())

	Update(a, 11)
	assert.Equal(t, uint64(1), a.Version())
	assert.Equal(t, 1, fired)
	assert.Equal(t, 21, b.Get())
}

func TestUpdateFunc_NonComparable(t *testing.T) {
	a := NewNode([]string{"x"})
	sameLen := func(current, next []string) bool { return len(current) == len(next) }

	a.UpdateFunc([]string{"y"}, sameLen)
	assert.Equal(t, uint64(0), a.Version())
	assert.Equal(t, []string{"x"}, a.Get())

	a.UpdateFunc([]string{"y", "z"}, sameLen)
	assert.Equal(t, uint64(1), a.Version())
	assert.Equal(t, []string{"y", "z"}, a.Get())
}

func TestSet_DoesNotPropagate(t *testing.T) {
	a := NewNode(1)
	b := NewNode(0)
	require.NoError(t, a.TryMarkForNotification(b, copyInto, PolicyAll))

	a.Set(2)
	a.Set(3)
	assert.Equal(t, 3, a.Get())
	assert.Equal(t, uint64(0), a.Version())
	assert.Equal(t, 0, b.Get())

	a.NotifyToNeighbors()
	assert.Equal(t, uint64(1), a.Version())
	assert.Equal(t, 3, b.Get())
}

func TestClone_SharesState(t *testing.T) {
	a := NewNode(1)
	b := NewNode(0)
	c := a.Clone()

	assert.True(t, a.Is(c))
	assert.False(t, a.Is(b))
	assert.False(t, a.Is(nil))

	require.NoError(t, c.TryMarkForNotification(b, copyInto, PolicyAll))
	assert.True(t, a.HasNotification(b))

	c.SetAndNotify(7)
	assert.Equal(t, 7, a.Get())
	assert.Equal(t, uint64(1), a.Version())
	assert.Equal(t, 7, b.Get())
}

func TestEqual_IsPayloadEquality(t *testing.T) {
	b := NewNode(10)
	c := NewNode(10)

	assert.True(t, Equal(b, c))
	assert.False(t, b.Is(c))

	c.Set(11)
	assert.False(t, Equal(b, c))
}

func TestTryMarkForNotification_Duplicate(t *testing.T) {
	a := NewNode(1, WithName("a"))
	b := NewNode(2, WithName("b"))

	require.NoError(t, a.TryMarkForNotification(b, addInto, PolicyAll))

	err := a.TryMarkForNotification(b, copyInto, PolicyLessUpdated)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.Contains(t, err.Error(), "a -> b")

	err = a.Clone().TryMarkForNotification(b.Clone(), copyInto, PolicyAll)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	edges := a.Notifications()
	require.Len(t, edges, 1)
	assert.Equal(t, PolicyAll, edges[0].Policy, "existing edge must be left untouched")
}

func TestTryMarkForNotification_EqualPayloadsAreDistinctTargets(t *testing.T) {
	a := NewNode(1)
	b := NewNode(10)
	c := NewNode(10)

	require.NoError(t, a.TryMarkForNotification(b, addInto, PolicyAll))
	require.NoError(t, a.TryMarkForNotification(c, addInto, PolicyAll))
	assert.Len(t, a.Notifications(), 2)

	require.NoError(t, a.TryMarkOffNotification(c))
	assert.True(t, a.HasNotification(b))
	assert.False(t, a.HasNotification(c))
}

func TestTryMarkOffNotification(t *testing.T) {
	a := NewNode(1)
	b := NewNode(2)

	err := a.TryMarkOffNotification(b)
	assert.ErrorIs(t, err, ErrDoesNotExist)

	require.NoError(t, a.TryMarkForNotification(b, addInto, PolicyAll))
	require.NoError(t, a.TryMarkOffNotification(b))
	assert.Empty(t, a.Notifications())

	a.SetAndNotify(5)
	assert.Equal(t, 2, b.Get(), "removed edge must not fire")

	require.NoError(t, a.TryMarkForNotification(b, addInto, PolicyAll))
	a.SetAndNotify(6)
	assert.Equal(t, 8, b.Get())
}

func TestTransitivePropagation(t *testing.T) {
	a := NewNode(0)
	b := NewNode(0)
	c := NewNode(0)
	var cFired int

	require.NoError(t, a.TryMarkForNotification(b, copyInto, PolicyAll))
	require.NoError(t, b.TryMarkForNotification(c, func(ref int, mut *int) bool {
		cFired++
		return copyInto(ref, mut)
	}, PolicyAll))

	a.SetAndNotify(3)

	assert.Equal(t, 1, cFired)
	assert.Equal(t, 3, c.Get())
	assert.Equal(t, uint64(1), c.Version())
}

func TestTransformWithoutChange_StopsPropagation(t *testing.T) {
	a := NewNode(0)
	b := NewNode(0)
	c := NewNode(0)

	require.NoError(t, a.TryMarkForNotification(b, func(int, *int) bool { return false }, PolicyAll))
	require.NoError(t, b.TryMarkForNotification(c, copyInto, PolicyAll))

	a.SetAndNotify(3)
	assert.Equal(t, uint64(0), b.Version())
	assert.Equal(t, 0, c.Get())
}

func TestPropagation_DepthFirstInsertionOrder(t *testing.T) {
	a := NewNode(0, WithName("a"))
	b := NewNode(0, WithName("b"))
	c := NewNode(0, WithName("c"))
	d := NewNode(0, WithName("d"))

	var order []string
	record := func(name string) Transform[int] {
		return func(ref int, mut *int) bool {
			order = append(order, name)
			*mut = ref
			return true
		}
	}

	require.NoError(t, a.TryMarkForNotification(b, record("b"), PolicyAll))
	require.NoError(t, a.TryMarkForNotification(c, record("c"), PolicyAll))
	require.NoError(t, b.TryMarkForNotification(d, record("d"), PolicyAll))

	a.SetAndNotify(1)
	assert.Equal(t, []string{"b", "d", "c"}, order)
}

func TestNotifyToNeighborsWithPolicy_OverridesOnce(t *testing.T) {
	a := NewNode(1)
	b := NewNode(0)
	require.NoError(t, a.TryMarkForNotification(b, copyInto, PolicyMoreUpdated))

	a.NotifyToNeighbors()
	assert.Equal(t, 0, b.Get(), "b is behind a, so more_updated must not fire")

	a.NotifyToNeighborsWithPolicy(PolicyAll)
	assert.Equal(t, 1, b.Get())

	a.SetAndNotify(5)
	assert.Equal(t, 1, b.Get(), "override must not persist")
}

func TestPolicyLessUpdated_FeedsLaggingConsumers(t *testing.T) {
	a := NewNode(0)
	b := NewNode(0)
	require.NoError(t, a.TryMarkForNotification(b, copyInto, PolicyLessUpdated))

	a.SetAndNotify(1)
	assert.Equal(t, 1, b.Get())
	assert.Equal(t, uint64(1), b.Version())

	b.NotifyToNeighbors()
	b.NotifyToNeighbors()
	assert.Equal(t, uint64(3), b.Version())

	a.SetAndNotify(2)
	assert.Equal(t, uint64(2), a.Version())
	assert.Equal(t, 1, b.Get(), "b is ahead of a and must be skipped")
}

func TestSelfNotification_DoesNotDeadlock(t *testing.T) {
	a := NewNode(1)
	require.NoError(t, a.TryMarkForNotification(a, func(ref int, mut *int) bool {
		*mut = ref + 1
		return false
	}, PolicyAll))

	a.SetAndNotify(1)
	assert.Equal(t, 2, a.Get())
	assert.Equal(t, uint64(1), a.Version())
}

func TestConcurrentNotify(t *testing.T) {
	a := NewNode(0)
	b := NewNode(0)
	require.NoError(t, a.TryMarkForNotification(b, func(_ int, mut *int) bool {
		*mut++
		return false
	}, PolicyAll))

	const workers, rounds = 8, 100
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func(h *Node[int]) {
			defer wg.Done()
			for range rounds {
				h.NotifyToNeighbors()
				_ = h.Get()
			}
		}(a.Clone())
	}
	wg.Wait()

	assert.Equal(t, uint64(workers*rounds), a.Version())
	assert.Equal(t, workers*rounds, b.Get())
}

func TestConcurrentMark_ExactlyOneWins(t *testing.T) {
	a := NewNode(0)
	b := NewNode(0)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func(h *Node[int]) {
			defer wg.Done()
			if h.TryMarkForNotification(b, addInto, PolicyAll) == nil {
				wins.Add(1)
			}
		}(a.Clone())
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Len(t, a.Notifications(), 1)
}

func TestNotifications_Info(t *testing.T) {
	a := NewNode(0, WithName("a"))
	b := NewNode(0, WithName("b"))
	require.NoError(t, a.TryMarkForNotification(b, addInto, PolicyEquallyUpdated))

	edges := a.Notifications()
	require.Len(t, edges, 1)
	assert.Equal(t, EdgeInfo{
		Kind:     EdgeNotification,
		From:     a.ID(),
		To:       b.ID(),
		FromName: "a",
		ToName:   "b",
		Policy:   PolicyEquallyUpdated,
	}, edges[0])
}
