package access

import (
	"sort"
	"strings"

	"docstore/internal/models"
)

// DefaultSiteID is the tenant used when no explicit siteId applies.
const DefaultSiteID = "default"

const (
	// AdminGroup grants READ_WRITE on every site.
	AdminGroup = "Admins"

	readSuffix = "_read"
)

// Resolver maps the caller's group memberships plus an optional requested
// siteId onto the effective tenant partition.
type Resolver struct {
	samlPrefix string
}

// NewResolver builds a Resolver. samlPrefix is stripped from incoming
// group names before comparison (SAML-federated groups arrive as
// e.g. "docstore_default"); pass "" to disable stripping.
func NewResolver(samlPrefix string) *Resolver {
	return &Resolver{samlPrefix: samlPrefix}
}

// Resolve returns the effective siteId for a request.
//
// An explicit requested siteId always wins. Otherwise, a caller who
// belongs to exactly one non-default group is implicitly scoped to that
// group's site. A caller in two or more non-default groups must name a
// siteId explicitly; that case fails with a field-level validation error.
func (r *Resolver) Resolve(requestedSiteID string, groups []string) (string, error) {
	if requestedSiteID != "" {
		return requestedSiteID, nil
	}

	sites := r.SiteIDs(groups)

	nonDefault := make([]string, 0, len(sites))
	for _, s := range sites {
		if s != DefaultSiteID {
			nonDefault = append(nonDefault, s)
		}
	}

	switch {
	case len(nonDefault) == 0:
		return DefaultSiteID, nil
	case len(nonDefault) == 1:
		return nonDefault[0], nil
	default:
		return "", models.ValidationErrors{
			{Key: "siteId", Error: "parameter required - multiple siteIds found"},
		}
	}
}

// SiteIDs returns the sorted, de-duplicated set of siteIds the caller's
// groups refer to. The Admins group names no site and is excluded.
func (r *Resolver) SiteIDs(groups []string) []string {
	seen := make(map[string]struct{})

	for _, g := range groups {
		g = r.normalize(g)
		if g == "" || g == AdminGroup {
			continue
		}
		seen[strings.TrimSuffix(g, readSuffix)] = struct{}{}
	}

	sites := make([]string, 0, len(seen))
	for s := range seen {
		sites = append(sites, s)
	}
	sort.Strings(sites)

	return sites
}

// normalize strips the SAML tenant prefix from a group name.
func (r *Resolver) normalize(group string) string {
	group = strings.TrimSpace(group)
	if r.samlPrefix != "" && strings.HasPrefix(group, r.samlPrefix) {
		stripped := strings.TrimPrefix(group, r.samlPrefix)
		if stripped != "" {
			return stripped
		}
	}
	return group
}

// ParseGroups splits a space-delimited claim value, tolerating the
// bracketed form some identity providers emit ("[groupA groupB]").
func ParseGroups(claim string) []string {
	claim = strings.TrimPrefix(claim, "[")
	claim = strings.TrimSuffix(claim, "]")

	fields := strings.Fields(claim)
	groups := make([]string, 0, len(fields))
	groups = append(groups, fields...)

	return groups
}
