package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriority_Valid(t *testing.T) {
	assert.True(t, Critical.Valid())
	assert.True(t, Normal.Valid())
	assert.True(t, Low.Valid())
	assert.True(t, Idle.Valid())
	assert.False(t, Priority(-1).Valid())
	assert.False(t, Priority(NumPriorities).Valid())
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "Critical", Critical.String())
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "Invalid", Priority(99).String())
}

func TestPriority_OrderingIsNumeric(t *testing.T) {
	assert.Less(t, int(Critical), int(Normal))
	assert.Less(t, int(Normal), int(Low))
	assert.Less(t, int(Low), int(Idle))
}
