package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/stride/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/week 4", TypeWeek},
		{"next", TypeNext},
		{"prev", TypePrev},
		{"remind 7:05", TypeRemind},
		{"notify on", TypeNotify},
		{"set contrast on", TypeSet},
		{"theme dark", TypeTheme},
		{"exercise martial arts", TypeExercise},
		{"show progress", TypeShow},
		{"reset progress", TypeReset},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseNormalizesArguments(t *testing.T) {
	cmd, _ := Parse("remind 7:05")
	if cmd.Remind.Time != "07:05" {
		t.Fatalf("expected padded time, got %q", cmd.Remind.Time)
	}
	cmd, _ = Parse("set Motion OFF")
	if cmd.Toggle.Name != ToggleReduceMotion || cmd.Toggle.On {
		t.Fatalf("unexpected toggle: %+v", cmd.Toggle)
	}
	cmd, _ = Parse("exercise martial arts")
	if cmd.Exercise.Type != model.ExerciseMartialArts {
		t.Fatalf("unexpected exercise: %q", cmd.Exercise.Type)
	}
	cmd, _ = Parse("notify off")
	if cmd.Toggle.Name != ToggleNotifications || cmd.Toggle.On {
		t.Fatalf("unexpected notify toggle: %+v", cmd.Toggle)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"week 13", "week 0", "week four", "remind 25:00", "remind 7:5", "remind +9:05", "notify maybe",
		"set volume on", "theme neon", "exercise yoga", "show inbox", "reset everything",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("%q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/unknown do x"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/week 6")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Week: func(a WeekArgs) (Result, error) {
			called = true
			if a.Number != 6 {
				t.Fatalf("unexpected week: %d", a.Number)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteNotifyUsesToggleHandler(t *testing.T) {
	cmd, _ := Parse("notify on")
	var got ToggleArgs
	_, err := Execute(cmd, Handlers{Toggle: func(a ToggleArgs) (Result, error) {
		got = a
		return Result{}, nil
	}})
	if err != nil || got.Name != ToggleNotifications || !got.On {
		t.Fatalf("unexpected dispatch: %+v err=%v", got, err)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show today")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
