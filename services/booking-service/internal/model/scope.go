package model

import (
	"fmt"
	"sort"
)

// ScopePolicy decides which holds and appointments compete for the same time.
type ScopePolicy string

const (
	// ScopeServiceWide: a hold without a resource is exclusive across the whole
	// service, so it conflicts with every hold of that service and vice versa.
	ScopeServiceWide ScopePolicy = "service_wide"
	// ScopeResourceOnly: holds without a resource only compete with each other.
	ScopeResourceOnly ScopePolicy = "resource_only"
)

func ParseScopePolicy(s string) (ScopePolicy, error) {
	switch ScopePolicy(s) {
	case "", ScopeServiceWide:
		return ScopeServiceWide, nil
	case ScopeResourceOnly:
		return ScopeResourceOnly, nil
	default:
		return "", fmt.Errorf("unknown scope policy %q", s)
	}
}

type Scope struct {
	ServiceID  string
	ResourceID string
}

func (s Scope) Unassigned() bool { return s.ResourceID == "" }

// Covers reports whether an entry booked under (serviceID, resourceID)
// competes with s. The relation is symmetric.
func (s Scope) Covers(serviceID, resourceID string, policy ScopePolicy) bool {
	if s.ResourceID != "" && s.ResourceID == resourceID {
		return true
	}
	if s.ServiceID != serviceID {
		return false
	}
	if policy == ScopeResourceOnly {
		return s.ResourceID == "" && resourceID == ""
	}
	return s.ResourceID == "" || resourceID == ""
}

// LockKeys returns the sorted lock names that writers in scope s must hold.
// Two scopes that can conflict always share at least one key.
func (s Scope) LockKeys(policy ScopePolicy) []string {
	var keys []string
	switch {
	case policy == ScopeResourceOnly && s.ResourceID == "":
		keys = []string{"svc:" + s.ServiceID + ":unassigned"}
	case policy == ScopeResourceOnly:
		keys = []string{"res:" + s.ResourceID}
	case s.ResourceID == "":
		keys = []string{"svc:" + s.ServiceID}
	default:
		keys = []string{"res:" + s.ResourceID, "svc:" + s.ServiceID}
	}
	sort.Strings(keys)
	return keys
}
