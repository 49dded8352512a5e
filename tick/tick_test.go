package tick

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounter_TickGet(t *testing.T) {
	var c Counter
	require.Equal(t, uint64(0), c.Get())
	require.Equal(t, uint64(1), c.Tick())
	require.Equal(t, uint64(2), c.Tick())
	require.Equal(t, uint64(2), c.Get())
}

func TestCounter_Wrap(t *testing.T) {
	var c Counter
	c.v.Store(math.MaxUint64)
	got := c.Tick()
	require.True(t, JustWrapped(got))
	require.Equal(t, uint64(0), got)
	require.False(t, JustWrapped(c.Tick()))
}
