// SPDX-License-Identifier: MIT

package expression

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/gemcat/gemerr"
)

// Policy selects how AND/OR nodes combine their children.
type Policy string

const (
	// Means combines AND by geometric mean and OR by arithmetic mean.
	Means Policy = "means"

	// Average combines both AND and OR by arithmetic mean.
	Average Policy = "average"
)

// ErrUnknownPolicy is returned for an integration policy name that is not recognised.
var ErrUnknownPolicy = gemerr.New(gemerr.ErrConfiguration, "expression: unknown integration policy")

// Policies lists the accepted policy names.
func Policies() []Policy { return []Policy{Means, Average} }

// ParsePolicy maps a case-insensitive name onto a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(name))); p {
	case Means, Average:
		return p, nil
	default:
		return "", fmt.Errorf("ParsePolicy(%q): %w", name, ErrUnknownPolicy)
	}
}
