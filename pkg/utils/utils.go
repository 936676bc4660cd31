package utils

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// SanitizePath returns a cleaned, slash separated path relative to a project
// root. The root is "".
func SanitizePath(p string) string {
	// We need to use an absolute path for the path to be cleaned correctly.
	p = strings.TrimPrefix(p, "/")
	p = "/" + p

	// We're using path instead of filepath here because this is not OS dependent
	// looking at you Windows
	p = path.Clean(p)
	return p[1:]
}

// ValidateProjectID returns an error if the given project id is invalid.
func ValidateProjectID(id string) error {
	if id == "" {
		return fmt.Errorf("project id cannot be empty")
	}

	for _, r := range id {
		if r == '/' || unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("project id cannot contain slashes or spaces")
		}
	}

	return nil
}
