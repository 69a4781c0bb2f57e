// Package steam locates the pieces of a local Steam installation that a
// desktop shortcut needs.
package steam

import (
	"errors"
	"path/filepath"
	"strings"
)

// ExecutableName is the file name of the Steam client on Windows.
const ExecutableName = "steam.exe"

// iconDepth is how many directories an icon sits below the Steam root
// (<root>\steam\games\<hash>.ico).
const iconDepth = 3

// Common errors for Steam operations.
var (
	ErrSteamNotFound = errors.New("steam installation not found")
	ErrNoGameID      = errors.New("no steam://rungameid URL found")
	ErrNoIconFile    = errors.New("no IconFile entry found")
)

// InferExecutable guesses the Steam executable from the icon path of a Steam
// internet shortcut. It climbs three directories from the icon and appends
// steam.exe. The result is not checked for existence. An empty icon path
// yields an empty result.
func InferExecutable(iconPath string) string {
	if iconPath == "" {
		return ""
	}

	if isWindowsPath(iconPath) {
		root := iconPath
		for i := 0; i < iconDepth; i++ {
			root = windowsDir(root)
		}
		return windowsJoin(root, ExecutableName)
	}

	root := iconPath
	for i := 0; i < iconDepth; i++ {
		root = filepath.Dir(root)
	}
	return filepath.Join(root, ExecutableName)
}

// WorkingDir returns the directory containing exe, using the same path rules
// as InferExecutable.
func WorkingDir(exe string) string {
	if isWindowsPath(exe) {
		return windowsDir(exe)
	}
	return filepath.Dir(exe)
}

// isWindowsPath reports whether p is written in Windows form. Steam writes
// IconFile entries with drive letters or UNC prefixes, which must be split
// the same way regardless of the host running the conversion. A backslash
// alone is an ordinary file name character on POSIX hosts.
func isWindowsPath(p string) bool {
	if filepath.Separator == '\\' {
		return true
	}
	return volumeLen(p) > 0 || strings.HasPrefix(p, `\\`)
}

func volumeLen(p string) int {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return 2
	}
	return 0
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWindowsSep(c byte) bool {
	return c == '\\' || c == '/'
}

// windowsDir mirrors filepath.Dir on Windows: everything up to the last
// separator, trailing separators removed, the root kept intact.
func windowsDir(p string) string {
	vol := p[:volumeLen(p)]
	rest := p[len(vol):]

	i := len(rest) - 1
	for i >= 0 && !isWindowsSep(rest[i]) {
		i--
	}
	dir := rest[:i+1]

	j := len(dir)
	for j > 1 && isWindowsSep(dir[j-1]) {
		j--
	}
	dir = dir[:j]

	if dir == "" {
		if vol != "" {
			return vol + "."
		}
		return "."
	}
	return vol + dir
}

func windowsJoin(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	if isWindowsSep(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + `\` + name
}

// DetectInstallDir returns the Steam install directory registered on this
// machine, or ErrSteamNotFound.
func DetectInstallDir() (string, error) {
	return getBaseDir()
}
