package steam

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// A lone \r ends a line too, as in old Mac-style files.
var (
	gameIDPattern   = regexp.MustCompile(`steam://rungameid/(\d+)`)
	iconFilePattern = regexp.MustCompile(`IconFile=([^\r\n]+)`)
)

// URLFile holds the fields of a Steam internet shortcut that matter for
// building a native shortcut. Empty fields were not found in the file.
type URLFile struct {
	GameID   string
	IconPath string
}

// Complete reports whether both the game ID and the icon path were found.
func (u URLFile) Complete() bool {
	return u.GameID != "" && u.IconPath != ""
}

// Validate returns the reasons the record is incomplete, or nil.
func (u URLFile) Validate() error {
	var errs []error
	if u.GameID == "" {
		errs = append(errs, ErrNoGameID)
	}
	if u.IconPath == "" {
		errs = append(errs, ErrNoIconFile)
	}
	return errors.Join(errs...)
}

// ReadURLFile reads a .url file from disk and extracts its Steam fields.
func ReadURLFile(path string) (URLFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return URLFile{}, fmt.Errorf("failed to read url file: %w", err)
	}

	return ParseURLFile(string(data)), nil
}

// ParseURLFile extracts the first rungameid and the first IconFile value
// from the text of a .url file. Any digit string is accepted as a game ID.
func ParseURLFile(content string) URLFile {
	var u URLFile

	if m := gameIDPattern.FindStringSubmatch(content); m != nil {
		u.GameID = m[1]
	}
	if m := iconFilePattern.FindStringSubmatch(content); m != nil {
		u.IconPath = strings.TrimSpace(m[1])
	}

	return u
}

// LaunchArguments returns the steam.exe arguments that start the game.
func LaunchArguments(gameID string) string {
	return "-applaunch " + gameID
}
