//go:build windows

package steam

import (
	"golang.org/x/sys/windows/registry"
)

// getBaseDir returns the Steam install directory recorded in the registry.
func getBaseDir() (string, error) {
	// Per-user key written by the client itself
	if key, err := registry.OpenKey(registry.CURRENT_USER, `Software\Valve\Steam`, registry.QUERY_VALUE); err == nil {
		steamPath, _, err := key.GetStringValue("SteamPath")
		key.Close()
		if err == nil && steamPath != "" {
			return steamPath, nil
		}
	}

	// Installer keys, 64-bit view first
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Wow6432Node\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		key, err = registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`, registry.QUERY_VALUE)
		if err != nil {
			return "", ErrSteamNotFound
		}
	}
	defer key.Close()

	steamPath, _, err := key.GetStringValue("InstallPath")
	if err != nil || steamPath == "" {
		return "", ErrSteamNotFound
	}

	return steamPath, nil
}
