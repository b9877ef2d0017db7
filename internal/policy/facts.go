// Package policy implements the access-control rules that govern which
// catalog records a user may see or mutate. The declarative per-user access
// rules live on the user; the per-username overrides (grade limits, the
// restricted-area allowlist, the administrator denylist) are injected as
// Facts so policy changes do not require a rebuild.
package policy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Facts holds the per-username override tables. All username and area
// matching is case-insensitive; values are folded when the Evaluator is
// constructed, so Facts can be loaded verbatim from YAML.
type Facts struct {
	// AdminDenylist names accounts that must never be treated as full
	// administrators, regardless of role or flag. These accounts hold
	// elevated flags for convenience features but stay area-restricted
	// like ordinary evaluators.
	AdminDenylist []string `yaml:"admin_denylist"`

	// RestrictedArea is the learning area gated by an allowlist on top of
	// the declarative rules. Empty disables the gate.
	RestrictedArea string `yaml:"restricted_area"`

	// RestrictedAreaAllowlist names the accounts permitted to touch the
	// restricted area at all.
	RestrictedAreaAllowlist []string `yaml:"restricted_area_allowlist"`

	// GradeLimits forces a narrower grade set than the user's declared
	// rules. The override always wins over the rule's own grade set.
	GradeLimits map[string][]int `yaml:"grade_limits"`
}

// LoadFacts reads Facts from a YAML file. A missing path returns empty
// Facts (no overrides) rather than an error, so a deployment without a
// policy file degrades to the declarative rules alone.
func LoadFacts(path string) (Facts, error) {
	if path == "" {
		return Facts{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Facts{}, nil
		}
		return Facts{}, fmt.Errorf("policy: read %s: %w", path, err)
	}

	var f Facts
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Facts{}, fmt.Errorf("policy: parse %s: %w", path, err)
	}

	return f, nil
}

// fold lower-cases and trims a username or area for matching.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func foldSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if f := fold(n); f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}
