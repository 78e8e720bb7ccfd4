// Package pyversion validates user-supplied Python version strings before
// they are handed to the environment tool.
package pyversion

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// minimum is the oldest interpreter the generated pyproject supports.
var minimum = semver.MustParse("3.8.0")

// Validate checks that v is a parseable Python version at or above the
// supported floor. Partial versions like "3" or "3.11" are accepted; semver
// coerces the missing parts to zero.
func Validate(v string) error {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid Python version %q: %w", v, err)
	}
	if ver.LessThan(minimum) {
		return fmt.Errorf("Python %s is not supported: generated projects require >= %s", v, minimum.Original())
	}
	return nil
}
