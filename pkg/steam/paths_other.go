//go:build !windows

package steam

import (
	"os"
	"path/filepath"
)

// getBaseDir returns the Steam base directory on Linux/Unix systems. Proton
// prefixes keep the Windows client under these roots too.
func getBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	candidates := []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		// Flatpak
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam"),
	}
	for _, dir := range candidates {
		if _, err := os.Stat(dir); err == nil {
			return dir, nil
		}
	}

	return "", ErrSteamNotFound
}
