//go:build windows

package lnk

import (
	"os"
	"path/filepath"
	"testing"
)

func sameFile(t *testing.T, got, want string) bool {
	t.Helper()

	a, err := os.Stat(got)
	if err != nil {
		return false
	}
	b, err := os.Stat(want)
	if err != nil {
		t.Fatal(err)
	}
	return os.SameFile(a, b)
}

func TestShellWriter_Write(t *testing.T) {
	root := t.TempDir()
	exe := filepath.Join(root, "steam.exe")
	icon := filepath.Join(root, "abc.ico")
	for _, f := range []string{exe, icon} {
		if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	spec := Spec{
		Path:         filepath.Join(t.TempDir(), "game.lnk"),
		Target:       exe,
		Arguments:    "-applaunch 440",
		IconLocation: icon,
		WorkingDir:   root,
	}

	if err := (ShellWriter{}).Write(spec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := ReadFile(spec.Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !sameFile(t, got.Target, exe) {
		t.Errorf("Target = %q, want %q", got.Target, exe)
	}
	if got.Arguments != spec.Arguments {
		t.Errorf("Arguments = %q, want %q", got.Arguments, spec.Arguments)
	}
	if !sameFile(t, got.IconLocation, icon) {
		t.Errorf("IconLocation = %q, want %q", got.IconLocation, icon)
	}
	if !sameFile(t, got.WorkingDir, root) {
		t.Errorf("WorkingDir = %q, want %q", got.WorkingDir, root)
	}

	// A second write replaces the shortcut
	spec.Arguments = "-applaunch 570"
	if err := (ShellWriter{}).Write(spec); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	if got, err := ReadFile(spec.Path); err != nil || got.Arguments != "-applaunch 570" {
		t.Errorf("after overwrite ReadFile() = %+v, %v", got, err)
	}
}

func TestShellWriter_WriteUnwritablePath(t *testing.T) {
	root := t.TempDir()
	exe := filepath.Join(root, "steam.exe")
	if err := os.WriteFile(exe, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(root, "missing", "dir", "game.lnk")
	err := (ShellWriter{}).Write(Spec{Path: path, Target: exe, Arguments: "-applaunch 440"})
	if err == nil {
		t.Fatal("Write() into a missing directory should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no shortcut should be left behind")
	}
}

func TestShellWriter_Validate(t *testing.T) {
	if err := (ShellWriter{}).Write(Spec{Target: "x"}); err != ErrNoPath {
		t.Errorf("Write() error = %v, want ErrNoPath", err)
	}
}

func TestNewWriter_Windows(t *testing.T) {
	if _, ok := NewWriter().(ShellWriter); !ok {
		t.Errorf("NewWriter() = %T, want ShellWriter", NewWriter())
	}
}
