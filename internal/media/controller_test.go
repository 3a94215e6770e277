package media

import (
	"context"
	"testing"
)

type fakeController struct {
	name    string
	calls   []string
	state   PlaybackState
	callErr error
}

func (f *fakeController) record(call string) error {
	f.calls = append(f.calls, call)
	return f.callErr
}

func (f *fakeController) Name() string                     { return f.name }
func (f *fakeController) Play(context.Context) error       { return f.record("play") }
func (f *fakeController) Pause(context.Context) error      { return f.record("pause") }
func (f *fakeController) Stop(context.Context) error       { return f.record("stop") }
func (f *fakeController) Next(context.Context) error       { return f.record("next") }
func (f *fakeController) Previous(context.Context) error   { return f.record("previous") }
func (f *fakeController) Close() error                     { return nil }
func (f *fakeController) State(context.Context) (PlaybackState, error) {
	return f.state, nil
}

func TestParseAction(t *testing.T) {
	cases := []struct {
		input string
		want  Action
		ok    bool
	}{
		{"play", ActionPlay, true},
		{"  Pause ", ActionPause, true},
		{"NEXT", ActionNext, true},
		{"previous", ActionPrevious, true},
		{"rewind", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseAction(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseAction(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestApplyDispatchesEachAction(t *testing.T) {
	fake := &fakeController{name: "fake"}
	ctx := context.Background()
	for _, action := range Actions() {
		if err := Apply(ctx, fake, action); err != nil {
			t.Fatalf("Apply(%s): %v", action, err)
		}
	}
	want := []string{"play", "pause", "stop", "next", "previous"}
	if len(fake.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", fake.calls, want)
	}
	for i, call := range want {
		if fake.calls[i] != call {
			t.Errorf("call %d = %s, want %s", i, fake.calls[i], call)
		}
	}
}

func TestApplyRejectsUnknownAction(t *testing.T) {
	if err := Apply(context.Background(), &fakeController{}, Action("rewind")); err == nil {
		t.Fatal("expected error for unknown action")
	}
	if err := Apply(context.Background(), nil, ActionPlay); err == nil {
		t.Fatal("expected error for nil controller")
	}
}

func TestTrackLabel(t *testing.T) {
	cases := []struct {
		state PlaybackState
		want  string
	}{
		{PlaybackState{Title: "Hurt", Artist: "Johnny Cash"}, "Hurt - Johnny Cash"},
		{PlaybackState{Title: "Hurt"}, "Hurt"},
		{PlaybackState{Artist: "Johnny Cash"}, "Johnny Cash"},
		{PlaybackState{}, ""},
	}
	for _, tc := range cases {
		if got := tc.state.TrackLabel(); got != tc.want {
			t.Errorf("TrackLabel() = %q, want %q", got, tc.want)
		}
	}
}

func TestDefaultStateIsZero(t *testing.T) {
	if !DefaultState().IsZero() {
		t.Error("DefaultState should be zero")
	}
	state := DefaultState()
	state.Title = "Hurt"
	if state.IsZero() {
		t.Error("state with a title should not be zero")
	}
}
