package media

import (
	"context"
	"errors"
	"testing"

	"mediabridge/internal/logging"
)

type keyPress struct {
	name string
	args []string
}

func newRecordedKeyController(t *testing.T, err error) (*KeyController, *[]keyPress) {
	t.Helper()
	presses := &[]keyPress{}
	c := NewKeyController(logging.NewNop(), "xdotool")
	c.runner = func(_ context.Context, name string, args ...string) error {
		*presses = append(*presses, keyPress{name: name, args: args})
		return err
	}
	return c, presses
}

func TestKeyControllerPressesExpectedKeys(t *testing.T) {
	c, presses := newRecordedKeyController(t, nil)
	ctx := context.Background()

	steps := []struct {
		run func(context.Context) error
		key string
	}{
		{c.Play, "XF86AudioPlay"},
		{c.Pause, "XF86AudioPlay"},
		{c.Stop, "XF86AudioStop"},
		{c.Next, "XF86AudioNext"},
		{c.Previous, "XF86AudioPrev"},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			t.Fatalf("press %s: %v", step.key, err)
		}
	}

	if len(*presses) != len(steps) {
		t.Fatalf("recorded %d presses, want %d", len(*presses), len(steps))
	}
	for i, step := range steps {
		press := (*presses)[i]
		if press.name != "xdotool" {
			t.Errorf("press %d used %q, want xdotool", i, press.name)
		}
		if len(press.args) != 2 || press.args[0] != "key" || press.args[1] != step.key {
			t.Errorf("press %d args = %v, want [key %s]", i, press.args, step.key)
		}
	}
}

func TestKeyControllerReportsRunnerFailure(t *testing.T) {
	c, _ := newRecordedKeyController(t, errors.New("no display"))
	if err := c.Play(context.Background()); err == nil {
		t.Fatal("expected error from failing key tool")
	}
}

func TestKeyControllerStateIsDefault(t *testing.T) {
	c, _ := newRecordedKeyController(t, nil)
	state, err := c.State(context.Background())
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if !state.IsZero() {
		t.Fatalf("state = %+v, want default", state)
	}
}
