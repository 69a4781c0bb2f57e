// Package convert turns a Steam internet shortcut into a native Windows
// shortcut that launches the game through steam.exe.
package convert

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lobinuxsoft/steamlnk/pkg/lnk"
	"github.com/lobinuxsoft/steamlnk/pkg/steam"
)

// Messages printed for each result of a run.
const (
	MsgUsage       = "Please provide a Steam URL shortcut file as an argument."
	MsgNotFound    = "File not found: %s"
	MsgReadError   = "Error reading URL file: %v"
	MsgParseFailed = "Failed to extract game ID or icon path."
	MsgNoSteam     = "Could not determine Steam executable path."
	MsgWriteError  = "Error creating shortcut: %v"
	MsgCreated     = "Shortcut created successfully: %s"
)

// Outcome identifies the stage at which a run stopped.
type Outcome int

const (
	OK Outcome = iota
	UsageError
	NotFound
	ParseFailed
	InferFailed
	WriteFailed
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case UsageError:
		return "usage error"
	case NotFound:
		return "not found"
	case ParseFailed:
		return "parse failed"
	case InferFailed:
		return "steam not found"
	case WriteFailed:
		return "write failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ExitCode returns the process exit status for o. Only argument and input
// file problems are reported through the exit status; later failures are
// printed and exit 0.
func (o Outcome) ExitCode() int {
	switch o {
	case UsageError, NotFound:
		return 1
	default:
		return 0
	}
}

// Converter runs one conversion. Writer creates the shortcut, Out receives
// the user-facing messages and Log the diagnostics.
type Converter struct {
	Writer lnk.Writer
	Out    io.Writer
	Log    *zap.Logger

	// DryRun prints the shortcut that would be written instead of writing it.
	DryRun bool
}

// New returns a Converter using the platform shortcut writer.
func New(out io.Writer, log *zap.Logger) *Converter {
	return &Converter{
		Writer: lnk.NewWriter(),
		Out:    out,
		Log:    log,
	}
}

// Run converts the single .url file named in args. Every failure is final
// for the run; nothing is retried.
func (c *Converter) Run(args []string) Outcome {
	if len(args) != 1 {
		c.println(MsgUsage)
		return UsageError
	}

	urlPath := args[0]
	if _, err := os.Stat(urlPath); err != nil {
		c.printf(MsgNotFound, urlPath)
		return NotFound
	}

	spec, outcome := c.plan(urlPath)
	if outcome != OK {
		return outcome
	}

	if c.DryRun {
		enc := yaml.NewEncoder(c.Out)
		defer enc.Close()
		if err := enc.Encode(spec); err != nil {
			c.printf(MsgWriteError, err)
			return WriteFailed
		}
		return OK
	}

	c.log().Debug("writing shortcut",
		zap.String("path", spec.Path),
		zap.String("target", spec.Target),
		zap.String("arguments", spec.Arguments))

	if err := c.Writer.Write(spec); err != nil {
		c.printf(MsgWriteError, err)
		return WriteFailed
	}

	c.printf(MsgCreated, spec.Path)
	return OK
}

// plan reads the .url file and derives the shortcut to create.
func (c *Converter) plan(urlPath string) (lnk.Spec, Outcome) {
	src, err := steam.ReadURLFile(urlPath)
	if err != nil {
		c.printf(MsgReadError, err)
	}
	if !src.Complete() {
		c.log().Debug("incomplete url file", zap.String("file", urlPath), zap.Error(src.Validate()))
		c.println(MsgParseFailed)
		return lnk.Spec{}, ParseFailed
	}
	c.log().Debug("parsed url file",
		zap.String("game_id", src.GameID),
		zap.String("icon", src.IconPath))

	exe := steam.InferExecutable(src.IconPath)
	if exe == "" || !exists(exe) {
		c.log().Debug("steam executable not found", zap.String("candidate", exe))
		if dir, err := steam.DetectInstallDir(); err == nil {
			c.log().Debug("steam is installed elsewhere on this machine", zap.String("dir", dir))
		}
		c.println(MsgNoSteam)
		return lnk.Spec{}, InferFailed
	}

	return lnk.Spec{
		Path:         lnk.PathFor(urlPath),
		Target:       exe,
		Arguments:    steam.LaunchArguments(src.GameID),
		IconLocation: src.IconPath,
		WorkingDir:   steam.WorkingDir(exe),
	}, OK
}

func (c *Converter) log() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

func (c *Converter) println(msg string) {
	fmt.Fprintln(c.Out, msg)
}

func (c *Converter) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
