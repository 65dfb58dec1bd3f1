package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceWrapsAround(t *testing.T) {
	next, err := Advance(State{CurrentIndex: 2, ItemCount: 3})
	require.NoError(t, err)
	assert.Equal(t, State{CurrentIndex: 0, ItemCount: 3}, next)
}

func TestAdvanceClosesCycle(t *testing.T) {
	for n := 1; n <= 12; n++ {
		s, err := NewState(n)
		require.NoError(t, err)

		for i := 0; i < n; i++ {
			s, err = Advance(s)
			require.NoError(t, err)
			assert.True(t, s.Valid())
		}
		assert.Equal(t, 0, s.CurrentIndex, "item count %d", n)
		assert.Equal(t, n, s.ItemCount)
	}
}

func TestAdvanceEmptyFailsFast(t *testing.T) {
	_, err := Advance(State{})
	assert.ErrorIs(t, err, ErrEmptyCarousel)

	_, err = NewState(0)
	assert.ErrorIs(t, err, ErrEmptyCarousel)
}

func TestSetIndex(t *testing.T) {
	s := State{CurrentIndex: 1, ItemCount: 4}

	for target := 0; target < 4; target++ {
		got, err := SetIndex(s, target)
		require.NoError(t, err)
		assert.Equal(t, State{CurrentIndex: target, ItemCount: 4}, got)
	}

	for _, target := range []int{-10, -1, 4, 5, 100} {
		got, err := SetIndex(s, target)
		assert.ErrorIs(t, err, ErrOutOfRange, "target %d", target)
		assert.Equal(t, s, got)
	}
}
