// Package etag encodes film versions as entity tags: a double-quoted
// non-negative integer such as `"3"`. Clients echo the tag back on update
// and the catalog uses it for the optimistic concurrency check.
package etag

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/kinothek/kinothek/pkg/errors"
)

// tokenPattern accepts the canonical form only, so every accepted token
// survives a Parse/Format round trip. Leading zeros and signs are rejected.
var tokenPattern = regexp.MustCompile(`^"(0|[1-9][0-9]*)"$`)

// Parse extracts the numeric version from a quoted entity tag. It fails
// with an invalid version error when the token is empty, unquoted,
// negative, or not numeric.
func Parse(raw string) (int, error) {
	match := tokenPattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, errors.InvalidVersion(fmt.Sprintf("malformed version token %q", raw))
	}

	version, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, errors.Wrap(errors.ErrorTypeInvalidVersion, fmt.Sprintf("version token %q out of range", raw), err)
	}

	return version, nil
}

// Format wraps a version in double quotes for transport as an entity tag.
func Format(version int) string {
	return `"` + strconv.Itoa(version) + `"`
}
