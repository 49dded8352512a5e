package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	cases := map[State]string{
		Embryo:    "Embryo",
		Ready:     "Ready",
		Running:   "Running",
		Blocked:   "Blocked",
		Suspended: "Suspended",
		State(99): "Invalid",
	}
	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
}

func TestDelayKind_String(t *testing.T) {
	cases := map[DelayKind]string{
		Invalid:       "Invalid",
		Sleep:         "Sleep",
		Timeout:       "Timeout",
		Overflowed:    "Overflowed",
		DelayKind(99): "Unknown",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
