package operator

import (
	"testing"

	"go.viam.com/test"
)

func TestModeString(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{Idle, "idle"},
		{Search, "search"},
		{FastRun, "fast_run"},
		{ReturnSetup, "return_setup"},
		{Select, "select"},
		{Mode(99), "invalid"},
	}
	for _, c := range cases {
		test.That(t, c.mode.String(), test.ShouldEqual, c.want)
	}
}
