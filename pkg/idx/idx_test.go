package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Uniqueness(t *testing.T) {
	const count = 1000
	seen := make(map[ID]bool, count)

	for range count {
		id := New()
		require.False(t, id.IsZero())
		require.NotContains(t, seen, id, "duplicate id generated")
		seen[id] = true
	}
}

func TestNew_MonotonicWithinSameMillisecond(t *testing.T) {
	at := time.Now().UTC()

	prev := NewAt(at)
	for range 100 {
		next := NewAt(at)
		require.Less(t, prev.String(), next.String(),
			"ids minted at the same instant should still sort in creation order")
		prev = next
	}
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := Parse("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Parse("not-a-ulid")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		id := New()
		parsed, err := Parse("  " + id.String() + "  ")
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})
}

func TestMustParse_Panics(t *testing.T) {
	require.Panics(t, func() {
		MustParse("definitely-not-valid")
	})
}

func TestTime(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)

	// ULID time resolution is milliseconds.
	require.WithinDuration(t, at, id.Time(), time.Millisecond)
	require.True(t, Zero.Time().IsZero())
}
