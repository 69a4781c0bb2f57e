//go:build windows

package lnk

// NewWriter returns the shortcut writer for this platform, which goes
// through the shell's own IShellLink implementation.
func NewWriter() Writer {
	return ShellWriter{}
}
