package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var ErrUnavailable = errors.New("notify: desktop notifications unavailable")

// Surface shows a desktop notification.
type Surface interface {
	PermissionGranted() bool
	Show(title, body string) error
}

type NoopSurface struct{}

func (NoopSurface) PermissionGranted() bool { return false }

func (NoopSurface) Show(string, string) error { return ErrUnavailable }

// ExecSurface shells out to notify-send on linux and osascript on darwin.
// Permission means the binary is on PATH.
type ExecSurface struct {
	GOOS     string
	LookPath func(string) (string, error)
	Run      func(name string, args ...string) error
}

func NewExecSurface() ExecSurface {
	return ExecSurface{
		GOOS:     runtime.GOOS,
		LookPath: exec.LookPath,
		Run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (s ExecSurface) binary() string {
	switch s.GOOS {
	case "linux", "freebsd", "openbsd":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

func (s ExecSurface) PermissionGranted() bool {
	bin := s.binary()
	if bin == "" || s.LookPath == nil {
		return false
	}
	_, err := s.LookPath(bin)
	return err == nil
}

func (s ExecSurface) Show(title, body string) error {
	bin := s.binary()
	if bin == "" || s.Run == nil {
		return fmt.Errorf("%w on %s", ErrUnavailable, s.GOOS)
	}
	var err error
	if bin == "osascript" {
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		err = s.Run(bin, "-e", script)
	} else {
		err = s.Run(bin, "--app-name=stride", title, body)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, bin, err)
	}
	return nil
}

func escapeAppleScript(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}
