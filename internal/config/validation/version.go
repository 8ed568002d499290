package validation

import (
	"fmt"

	"github.com/atlanticdynamic/mcpgen/internal/config"
	"github.com/hashicorp/go-version"
)

// SupportedVersions is the range of config versions this generator reads.
const SupportedVersions = ">= 1.0, < 2.0"

var supportedVersions = func() version.Constraints {
	c, err := version.NewConstraint(SupportedVersions)
	if err != nil {
		panic(err)
	}
	return c
}()

// CheckVersion reports whether v names a supported config version.
func CheckVersion(v string) error {
	parsed, err := version.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w %q", ErrInvalidVersion, v)
	}
	if !supportedVersions.Check(parsed) {
		return fmt.Errorf("%w %s (supported: %s)", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

func (c *checker) checkVersion(path config.Path, raw any) {
	v, ok := config.ScalarString(raw)
	if !ok {
		c.add(path, ErrNotScalar)
		return
	}
	if err := CheckVersion(v); err != nil {
		c.add(path, err)
	}
}
