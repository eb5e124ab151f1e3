package graph

import (
	"fmt"
	"strings"
)

// NotificationPolicy decides, per send, whether a notification edge fires.
// It compares the version of the edge's reference node with the version of
// its mutable node. The names read from the mutable node's point of view:
// PolicyLessUpdated fires when the mutable node is behind the reference.
type NotificationPolicy int

const (
	// PolicyAll always fires.
	PolicyAll NotificationPolicy = iota
	// PolicyLessUpdated fires when mutable < reference.
	PolicyLessUpdated
	// PolicyMoreUpdated fires when mutable > reference.
	PolicyMoreUpdated
	// PolicyEquallyUpdated fires when mutable == reference.
	PolicyEquallyUpdated
	// PolicyDifferentlyUpdated fires when mutable != reference.
	PolicyDifferentlyUpdated
	// PolicyEquallyOrLessUpdated fires when mutable <= reference.
	PolicyEquallyOrLessUpdated
	// PolicyEquallyOrMoreUpdated fires when mutable >= reference.
	PolicyEquallyOrMoreUpdated
)

var policyNames = [...]string{
	PolicyAll:                  "all",
	PolicyLessUpdated:          "less_updated",
	PolicyMoreUpdated:          "more_updated",
	PolicyEquallyUpdated:       "equally_updated",
	PolicyDifferentlyUpdated:   "differently_updated",
	PolicyEquallyOrLessUpdated: "equally_or_less_updated",
	PolicyEquallyOrMoreUpdated: "equally_or_more_updated",
}

// ShouldNotify reports whether an edge whose reference is at version
// reference and whose mutable node is at version mutable should fire.
func (p NotificationPolicy) ShouldNotify(reference, mutable uint64) bool {
	switch p {
	case PolicyAll:
		return true
	case PolicyLessUpdated:
		return mutable < reference
	case PolicyMoreUpdated:
		return mutable > reference
	case PolicyEquallyUpdated:
		return mutable == reference
	case PolicyDifferentlyUpdated:
		return mutable != reference
	case PolicyEquallyOrLessUpdated:
		return mutable <= reference
	case PolicyEquallyOrMoreUpdated:
		return mutable >= reference
	default:
		return false
	}
}

func (p NotificationPolicy) String() string {
	if p >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy resolves a policy from its String form. Matching ignores case
// and accepts '-' in place of '_'.
func ParsePolicy(name string) (NotificationPolicy, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for p, n := range policyNames {
		if n == key {
			return NotificationPolicy(p), nil
		}
	}
	return PolicyAll, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
