package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastedLessThan(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0)

	t.Run("shorter than period forgets at end", func(t *testing.T) {
		t.Parallel()

		p := LastedLessThan(50 * time.Millisecond)
		end := start.Add(40 * time.Millisecond)

		forgetAt, ok := p.ForgetAt(start, end)
		require.True(t, ok)
		assert.Equal(t, end, forgetAt)
	})

	t.Run("at least as long as period never forgets", func(t *testing.T) {
		t.Parallel()

		p := LastedLessThan(50 * time.Millisecond)
		end := start.Add(60 * time.Millisecond)

		_, ok := p.ForgetAt(start, end)
		assert.False(t, ok)
	})
}

func TestRectLinear(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0)
	end := start.Add(30 * time.Millisecond)

	p := RectLinear(10*time.Millisecond, 2)
	forgetAt, ok := p.ForgetAt(start, end)
	require.True(t, ok)

	// 30 + 10 + 2*30 = 100ms from start.
	assert.Equal(t, start.Add(100*time.Millisecond), forgetAt)
}

func TestSetForgetAt(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0)
	end := start.Add(30 * time.Millisecond)

	t.Run("empty set never forgets", func(t *testing.T) {
		t.Parallel()

		var s Set
		_, ok := s.ForgetAt(start, end)
		assert.False(t, ok)
	})

	t.Run("minimum of finite rules wins", func(t *testing.T) {
		t.Parallel()

		s := Set{
			LastedLessThan(10 * time.Millisecond), // never fires, interval is 30ms
			RectLinear(10*time.Millisecond, 2),     // fires at +100ms
			LastedLessThan(50 * time.Millisecond),  // fires at end (interval shorter than 50ms)
		}

		forgetAt, ok := s.ForgetAt(start, end)
		require.True(t, ok)
		assert.Equal(t, end, forgetAt, "earliest finite forget time wins")
	})

	t.Run("no finite rule means retained forever", func(t *testing.T) {
		t.Parallel()

		s := Set{LastedLessThan(10 * time.Millisecond)}
		_, ok := s.ForgetAt(start, end)
		assert.False(t, ok)
	})
}
