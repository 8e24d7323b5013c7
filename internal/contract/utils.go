package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Fitness label constants.
const (
	EliteValue  = "Elite"  // Elite fit
	StrongValue = "Strong" // Strong fit
	FairValue   = "Fair"   // Fair fit
	WeakValue   = "Weak"   // Weak fit
)

// Color variables for console output.
var (
	EliteColor  = color.New(color.FgGreen, color.Bold)
	StrongColor = color.New(color.FgCyan, color.Bold)
	FairColor   = color.New(color.FgYellow)
	WeakColor   = color.New(color.FgRed)
)

// GetPlainLabel returns a plain text label for a fitness score in [0,1].
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 0.8:
		return EliteValue
	case score >= 0.6:
		return StrongValue
	case score >= 0.4:
		return FairValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case EliteValue:
		return EliteColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default:
		return WeakColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means standard output.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the solution cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lineup_cache.db"
	}
	return filepath.Join(homeDir, ".lineup_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lineup_history.db"
	}
	return filepath.Join(homeDir, ".lineup_history.db")
}

// TruncateName shortens a name to maxWidth runes with a trailing ellipsis.
// Requires maxWidth > 3 so there is room for the "..." suffix and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
