package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExecSurfacePermissionFollowsLookPath(t *testing.T) {
	found := ExecSurface{GOOS: "linux", LookPath: func(string) (string, error) { return "/usr/bin/notify-send", nil }}
	if !found.PermissionGranted() {
		t.Fatal("expected permission when notify-send is present")
	}
	missing := ExecSurface{GOOS: "linux", LookPath: func(string) (string, error) { return "", errors.New("not found") }}
	if missing.PermissionGranted() {
		t.Fatal("expected no permission when binary is missing")
	}
	windows := ExecSurface{GOOS: "windows", LookPath: func(string) (string, error) { return "x", nil }}
	if windows.PermissionGranted() {
		t.Fatal("unsupported platform must not grant permission")
	}
}

func TestExecSurfaceShowArgs(t *testing.T) {
	var gotName string
	var gotArgs []string
	s := ExecSurface{GOOS: "darwin", Run: func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}}
	if err := s.Show(`Say "hi"`, "Body"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if gotName != "osascript" || len(gotArgs) != 2 || !strings.Contains(gotArgs[1], `Say \"hi\"`) {
		t.Fatalf("unexpected command: %s %v", gotName, gotArgs)
	}
}

func TestExecSurfaceShowWrapsFailure(t *testing.T) {
	s := ExecSurface{GOOS: "linux", Run: func(string, ...string) error { return errors.New("exit 1") }}
	if err := s.Show("t", "b"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNoopSurface(t *testing.T) {
	var s Surface = NoopSurface{}
	if s.PermissionGranted() || !errors.Is(s.Show("a", "b"), ErrUnavailable) {
		t.Fatal("noop surface must deny")
	}
}

func TestBellSink(t *testing.T) {
	var buf bytes.Buffer
	sound := true
	b := NewBellSink(&buf, func() bool { return sound })

	b.Emit(CueNavigation)
	b.Emit(CueSessionComplete)
	sound = false
	b.Emit(CueActivityAdvance)

	if buf.String() != "\a" {
		t.Fatalf("expected one bell, got %q", buf.String())
	}
}

type countSink struct{ n int }

func (c *countSink) Emit(Cue) { c.n++ }

func TestMultiFansOut(t *testing.T) {
	a, b := &countSink{}, &countSink{}
	Multi{a, nil, b}.Emit(CueToggle)
	if a.n != 1 || b.n != 1 {
		t.Fatalf("expected both sinks hit, got %d %d", a.n, b.n)
	}
}
