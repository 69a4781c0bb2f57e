// Package lnk writes and reads Windows shell link (.lnk) files.
package lnk

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Common errors for shell link operations.
var (
	ErrInvalidHeader = errors.New("not a shell link file")
	ErrTruncated     = errors.New("shell link data truncated")
	ErrStringTooLong = errors.New("string exceeds shell link limit")
	ErrNoPath        = errors.New("shortcut path is empty")
	ErrNoTarget      = errors.New("shortcut target is empty")
)

// Spec describes a shortcut to be written.
type Spec struct {
	Path         string `yaml:"path"`
	Target       string `yaml:"target"`
	Arguments    string `yaml:"arguments,omitempty"`
	IconLocation string `yaml:"icon_location,omitempty"`
	WorkingDir   string `yaml:"working_dir,omitempty"`
}

// Validate checks the fields every writer needs.
func (s Spec) Validate() error {
	if s.Path == "" {
		return ErrNoPath
	}
	if s.Target == "" {
		return ErrNoTarget
	}
	return nil
}

// Writer creates a shortcut file from a Spec, replacing any file already at
// Spec.Path.
type Writer interface {
	Write(spec Spec) error
}

// PathFor returns the shortcut path that sits next to src and shares its
// base name: games/Portal.url -> games/Portal.lnk.
func PathFor(src string) string {
	dir := filepath.Dir(src)
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		// dotfile such as ".url"
		name = base
	}
	return filepath.Join(dir, name+".lnk")
}

// FileWriter encodes the shell link format itself and writes the result in
// one call, so an encoding failure leaves no file behind.
type FileWriter struct{}

// Write implements Writer.
func (FileWriter) Write(spec Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	data, err := Marshal(spec)
	if err != nil {
		return err
	}

	return os.WriteFile(spec.Path, data, 0644)
}

// ReadFile decodes the shortcut at path. The returned Spec has Path set to
// path.
func ReadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, err
	}

	spec, err := Decode(data)
	if err != nil {
		return Spec{}, err
	}
	spec.Path = path
	return spec, nil
}
