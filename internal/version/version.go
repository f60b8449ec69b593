// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components of the gateway.
//
// The fixture version is folded into every shared-storage key. When the fixture
// catalog changes (new accounts, different opening balances), bumping Fixtures
// makes the gateway read and seed a fresh key space instead of reusing balances
// that were written against the previous catalog.
package version

import (
	"fmt"
	"strings"
)

// ComponentVersions holds the version strings for different logical parts of the application.
// Manually increment a version number here before you deploy a change to that component.
var ComponentVersions = struct {
	// Tools should be updated whenever a tool's arguments, payload fields or
	// error messages change.
	Tools string

	// Fixtures should be updated whenever default.yaml (or the deployed
	// FIXTURES_FILE) changes.
	Fixtures string

	// Classifier should be updated whenever keyword sets or rule order change.
	Classifier string
}{
	Tools:      "v1.0",
	Fixtures:   "v1.0",
	Classifier: "v1.0",
}

// Summary renders all component versions in a compact form, e.g. "tv1.0_fv1.0_cv1.0".
func Summary() string {
	return fmt.Sprintf("t%s_f%s_c%s",
		ComponentVersions.Tools,
		ComponentVersions.Fixtures,
		ComponentVersions.Classifier,
	)
}

// GenerateVersionedKey builds a storage key scoped to the current fixture version.
//
// Example output: "ledger:fv1.0:account:123456"
func GenerateVersionedKey(prefix string, parts ...string) string {
	segments := make([]string, 0, len(parts)+2)
	segments = append(segments, strings.TrimSuffix(prefix, ":"), "f"+ComponentVersions.Fixtures)
	segments = append(segments, parts...)
	return strings.Join(segments, ":")
}
