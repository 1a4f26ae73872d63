// Package version reads the four-component product version from version.txt.
//
// The file is a list of KEY=value lines with '#' comments, which is a subset
// of TOML:
//
//	MAJOR=2
//	MINOR=30
//	BUILD_OSS=5544
//	REVISION=102
package version

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arc-language/arm64xfwd/pkg/core"
)

// Version is a Windows style major.minor.build.revision version
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// Placeholders substituted by Format
const (
	Major    = "@MAJOR@"
	Minor    = "@MINOR@"
	Build    = "@BUILD@"
	Revision = "@REVISION@"
)

// Load reads and parses a version file
func Load(path string) (*Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.Errorf("load version", core.ErrConfiguration, "reading %s: %v", path, err)
	}
	v, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Parse decodes version file contents. BUILD falls back to BUILD_OSS.
// Keys other than the four components are ignored.
func Parse(data string) (*Version, error) {
	var fields map[string]any
	if _, err := toml.Decode(data, &fields); err != nil {
		return nil, core.Errorf("parse version", core.ErrConfiguration, "%v", err)
	}

	get := func(keys ...string) (int, error) {
		for _, key := range keys {
			raw, ok := fields[key]
			if !ok {
				continue
			}
			switch n := raw.(type) {
			case int64:
				if n < 0 {
					return 0, core.Errorf("parse version", core.ErrConfiguration, "%s must not be negative", key)
				}
				return int(n), nil
			case string:
				i, err := strconv.Atoi(strings.TrimSpace(n))
				if err != nil || i < 0 {
					return 0, core.Errorf("parse version", core.ErrConfiguration, "%s is not a number: %q", key, n)
				}
				return i, nil
			default:
				return 0, core.Errorf("parse version", core.ErrConfiguration, "%s has unexpected type %T", key, raw)
			}
		}
		return 0, core.Errorf("parse version", core.ErrConfiguration, "%s is missing", keys[0])
	}

	var v Version
	var err error
	if v.Major, err = get("MAJOR"); err != nil {
		return nil, err
	}
	if v.Minor, err = get("MINOR"); err != nil {
		return nil, err
	}
	if v.Build, err = get("BUILD", "BUILD_OSS"); err != nil {
		return nil, err
	}
	if v.Revision, err = get("REVISION"); err != nil {
		return nil, err
	}
	return &v, nil
}

// Format replaces the @MAJOR@, @MINOR@, @BUILD@ and @REVISION@ placeholders
func (v *Version) Format(template string) string {
	return strings.NewReplacer(
		Major, strconv.Itoa(v.Major),
		Minor, strconv.Itoa(v.Minor),
		Build, strconv.Itoa(v.Build),
		Revision, strconv.Itoa(v.Revision),
	).Replace(template)
}

func (v *Version) String() string {
	return v.Format(Major + "." + Minor + "." + Build + "." + Revision)
}
