// Package winpath adapts destination names and paths to Windows limits.
//
// Functions at package level follow the running platform. Platform values
// make the Windows rules testable anywhere.
package winpath

import (
	"path/filepath"
	"runtime"
	"strings"
)

const longPathPrefix = `\\?\`

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Platform selects which naming rules apply.
type Platform struct {
	Windows bool
}

// Current is the platform sfo is running on.
var Current = Platform{Windows: runtime.GOOS == "windows"}

// IsReservedName reports whether name is a device name on Windows. Only the
// part before the first dot counts, so "con.txt" is reserved and "content"
// is not.
func (p Platform) IsReservedName(name string) bool {
	if !p.Windows {
		return false
	}
	stem, _, _ := strings.Cut(name, ".")
	return reservedNames[strings.ToUpper(stem)]
}

// SanitizeFilename replaces characters Windows rejects (and control
// characters) with '_' on every platform. On Windows a reserved device
// name also gets '_' appended to its first segment: "con.txt" becomes
// "con_.txt".
func (p Platform) SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 32 || strings.ContainsRune(`<>:"/\|?*`, r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	sanitized := b.String()

	if p.IsReservedName(sanitized) {
		stem, rest, found := strings.Cut(sanitized, ".")
		if found {
			return stem + "_." + rest
		}
		return stem + "_"
	}
	return sanitized
}

// LongPath returns path in the \\?\ form that lifts the MAX_PATH limit.
// Paths are returned unchanged off Windows, and UNC paths are left alone.
func (p Platform) LongPath(path string) string {
	if !p.Windows {
		return path
	}

	path = strings.ReplaceAll(path, "/", `\`)
	if strings.HasPrefix(path, `\\`) {
		return path
	}
	if !hasDriveLetter(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = strings.ReplaceAll(abs, "/", `\`)
		}
	}
	return longPathPrefix + path
}

func hasDriveLetter(path string) bool {
	if len(path) < 3 || path[1] != ':' || path[2] != '\\' {
		return false
	}
	c := path[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// IsReservedName reports whether name is reserved on the current platform.
func IsReservedName(name string) bool { return Current.IsReservedName(name) }

// SanitizeFilename sanitizes name for the current platform.
func SanitizeFilename(name string) string { return Current.SanitizeFilename(name) }

// LongPath converts path for the current platform.
func LongPath(path string) string { return Current.LongPath(path) }
