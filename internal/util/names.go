package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Names may not collide with selector syntax: no leading digit (index),
// '@' (group), '#' (color or comment) or '*' (all), and no separators.
var reservedName = regexp.MustCompile(`^[0-9@#*]|[\s(),="\\]|\.\.`)

// Group names follow '@' unquoted, so they are limited to what an @name
// token can hold.
var groupName = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_.\-]*$`)

// NormalizeName returns the canonical form of a cell or group name.
//   - Trims surrounding whitespace
//   - Composes unicode (NFC), so "é" typed either way is the same name
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ValidateName checks that a normalized cell name can be written back as a
// selector, quoted when it is not a bare word. Returns a descriptive error if
// not.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if reservedName.MatchString(name) {
		return fmt.Errorf("name %q clashes with selector syntax", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateGroupName checks that a normalized group name can be written back
// as an @name selector.
func ValidateGroupName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if !groupName.MatchString(name) {
		return fmt.Errorf("group name %q may only hold letters, digits, '_', '.' and '-'", name)
	}
	return nil
}
