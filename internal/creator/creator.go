package creator

import (
	"fmt"
	"os"
)

// NameSource supplies a configured user name; *git.Client satisfies it.
type NameSource interface {
	GetUserName() string
}

// GetCreator returns the name stamped into new palettes using fallback chain:
// 1. $SWATCH_USER environment variable
// 2. git config user.name (graceful - empty if git unavailable)
// 3. $USER environment variable
// 4. Explicit helpful error
func GetCreator(names NameSource) (string, error) {
	if user := os.Getenv("SWATCH_USER"); user != "" {
		return user, nil
	}

	if names != nil {
		if name := names.GetUserName(); name != "" {
			return name, nil
		}
	}

	if user := os.Getenv("USER"); user != "" {
		return user, nil
	}

	return "", fmt.Errorf("cannot determine creator: set $SWATCH_USER, configure 'git config user.name', or set $USER")
}
