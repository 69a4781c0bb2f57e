//go:build !windows

package lnk

// NewWriter returns the shortcut writer for this platform. Without the
// Windows shell the link is encoded directly.
func NewWriter() Writer {
	return FileWriter{}
}
