package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/lobinuxsoft/steamlnk/internal/convert"
	"github.com/lobinuxsoft/steamlnk/pkg/lnk"
	"github.com/lobinuxsoft/steamlnk/pkg/version"
)

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_ExitCodes(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.url")
	empty := filepath.Join(t.TempDir(), "empty.url")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"no arguments", nil, 1, convert.MsgUsage},
		{"two arguments", []string{"a.url", "b.url"}, 1, convert.MsgUsage},
		{"missing file", []string{missing}, 1, "File not found: " + missing},
		{"nothing to parse", []string{empty}, 0, convert.MsgParseFailed},
		{"version", []string{"--version"}, 0, "steamlnk " + version.Full()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := execute(tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("stdout = %q, want to contain %q", out, tt.wantOut)
			}
		})
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, errOut := execute("--no-such-flag", "game.url")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if errOut == "" {
		t.Error("flag error should be reported on stderr")
	}
}

func TestRun_DryRunVerbose(t *testing.T) {
	root := t.TempDir()
	games := filepath.Join(root, "steam", "games")
	if err := os.MkdirAll(games, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "steam.exe"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	icon := filepath.Join(games, "abc.ico")

	urlFile := filepath.Join(t.TempDir(), "game.url")
	content := "URL=steam://rungameid/440\nIconFile=" + icon + "\n"
	if err := os.WriteFile(urlFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := execute("--dry-run", "--verbose", urlFile)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out, "-applaunch 440") {
		t.Errorf("stdout = %q, want YAML spec", out)
	}
	if !strings.Contains(errOut, "parsed url file") {
		t.Errorf("stderr = %q, want debug log", errOut)
	}
	if _, err := os.Stat(lnk.PathFor(urlFile)); !os.IsNotExist(err) {
		t.Error("dry run should not create a shortcut")
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.lnk")
	spec := lnk.Spec{
		Path:         path,
		Target:       `C:\Steam\steam.exe`,
		Arguments:    "-applaunch 440",
		IconLocation: `C:\Steam\steam\games\abc.ico`,
		WorkingDir:   `C:\Steam`,
	}
	if err := (lnk.FileWriter{}).Write(spec); err != nil {
		t.Fatal(err)
	}

	code, out, _ := execute("inspect", path)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	for _, want := range []string{"-applaunch 440", `C:\Steam\steam.exe`, "working_dir:"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout = %q, want to contain %q", out, want)
		}
	}
}

func TestInspect_Missing(t *testing.T) {
	code, _, errOut := execute("inspect", filepath.Join(t.TempDir(), "none.lnk"))
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if errOut == "" {
		t.Error("error should be reported on stderr")
	}
}

func TestRun_ExplorerLaunchAllowed(t *testing.T) {
	cobra.MousetrapHelpText = "This is a command line tool."
	t.Cleanup(func() { cobra.MousetrapHelpText = "" })

	execute("--version")
	if cobra.MousetrapHelpText != "" {
		t.Errorf("MousetrapHelpText = %q, want empty so Explorer launches run the conversion", cobra.MousetrapHelpText)
	}
}

func TestRun_FileNamedLikeSubcommand(t *testing.T) {
	for _, name := range []string{"help", "inspect"} {
		t.Run(name, func(t *testing.T) {
			chdir(t, t.TempDir())
			if err := os.WriteFile(name, []byte("[InternetShortcut]\n"), 0644); err != nil {
				t.Fatal(err)
			}

			code, out, _ := execute(name)
			if code != 0 {
				t.Errorf("exit code = %d, want 0", code)
			}
			if !strings.Contains(out, convert.MsgParseFailed) {
				t.Errorf("stdout = %q, want the file to be converted", out)
			}
		})
	}
}

func TestRun_HelpWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	code, out, _ := execute("help")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("stdout = %q, want cobra help", out)
	}
}

// chdir changes the working directory to dir and restores it when the test
// ends, like testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
