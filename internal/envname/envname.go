// Package envname validates environment variable names and classifies
// PATH-like variables.
//
// A valid name matches the POSIX identifier grammar: an ASCII letter or
// underscore followed by letters, digits, or underscores. Every command that
// names a variable validates it here before touching any store.
package envname

import (
	"errors"
	"fmt"
)

// ErrInvalidName indicates a string that does not satisfy the identifier
// grammar. Returned errors wrap this sentinel.
var ErrInvalidName = errors.New("invalid variable name")

// Validate checks raw against the identifier grammar and returns it unchanged
// on success.
func Validate(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '_' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return "", fmt.Errorf("%w: %q starts with a digit", ErrInvalidName, raw)
			}
		default:
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidName, raw, string(c))
		}
	}
	return raw, nil
}

// IsPathLike reports whether name holds an ordered, colon-delimited list of
// filesystem locations. A name qualifies when it is "PATH", ends in "PATH"
// (MANPATH, GOPATH, LD_LIBRARY_PATH, ...), or appears in extra, which carries
// additional names from the user's settings file.
func IsPathLike(name string, extra []string) bool {
	if name == "PATH" || hasPathSuffix(name) {
		return true
	}
	for _, e := range extra {
		if name == e {
			return true
		}
	}
	return false
}

func hasPathSuffix(name string) bool {
	const suffix = "PATH"
	return len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix
}
