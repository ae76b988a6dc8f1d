package access

import (
	"fmt"
	"log/slog"
	"strings"

	"docstore/internal/models"
)

// Permission is the access level a caller holds on a site.
type Permission int

const (
	PermissionDeny Permission = iota
	PermissionReadOnly
	PermissionReadWrite
)

func (p Permission) String() string {
	switch p {
	case PermissionReadOnly:
		return "READ_ONLY"
	case PermissionReadWrite:
		return "READ_WRITE"
	default:
		return "DENY"
	}
}

const pkg = "access/"

// Authorizer decides whether a caller may read or write a site. A
// deployment-wide readonly flag, when set, rejects every write before
// any per-site evaluation.
type Authorizer struct {
	log      *slog.Logger
	resolver *Resolver
	readonly bool
}

func NewAuthorizer(log *slog.Logger, resolver *Resolver, readonly bool) *Authorizer {
	return &Authorizer{
		log:      log,
		resolver: resolver,
		readonly: readonly,
	}
}

// Resolver exposes the underlying site resolver.
func (a *Authorizer) Resolver() *Resolver {
	return a.resolver
}

// Permission computes the caller's access level on siteID from group
// membership: "<site>" grants READ_WRITE, "<site>_read" grants
// READ_ONLY, Admins grants READ_WRITE everywhere.
func (a *Authorizer) Permission(siteID string, groups []string) Permission {
	perm := PermissionDeny

	for _, g := range groups {
		switch a.resolver.normalize(g) {
		case AdminGroup, siteID:
			return PermissionReadWrite
		case siteID + readSuffix:
			perm = PermissionReadOnly
		}
	}

	return perm
}

// AuthorizeRead resolves the effective siteId and requires at least
// read access on it.
func (a *Authorizer) AuthorizeRead(requestedSiteID string, caller *models.Caller) (string, error) {
	return a.authorize(requestedSiteID, caller, PermissionReadOnly)
}

// AuthorizeWrite resolves the effective siteId and requires write
// access on it. The deployment readonly flag short-circuits first.
func (a *Authorizer) AuthorizeWrite(requestedSiteID string, caller *models.Caller) (string, error) {
	if a.readonly {
		a.log.Warn("write rejected, deployment is readonly",
			slog.String("op", pkg+"AuthorizeWrite"),
			slog.String("username", caller.Username))
		return "", models.ErrAccessDenied
	}
	return a.authorize(requestedSiteID, caller, PermissionReadWrite)
}

// AuthorizeAdmin requires membership of the Admins group; used by the
// /configs and API-key endpoints regardless of siteId.
func (a *Authorizer) AuthorizeAdmin(caller *models.Caller) error {
	for _, g := range caller.Groups {
		if a.resolver.normalize(g) == AdminGroup {
			return nil
		}
	}

	a.log.Warn("admin-only endpoint rejected",
		slog.String("op", pkg+"AuthorizeAdmin"),
		slog.String("username", caller.Username))

	return models.ErrUnauthorized
}

func (a *Authorizer) authorize(requestedSiteID string, caller *models.Caller, required Permission) (string, error) {
	op := pkg + "authorize"

	siteID, err := a.resolver.Resolve(requestedSiteID, caller.Groups)
	if err != nil {
		return "", err
	}

	perm := a.Permission(siteID, caller.Groups)

	if perm == PermissionDeny {
		a.log.Warn("access denied",
			slog.String("op", op),
			slog.String("site_id", siteID),
			slog.String("username", caller.Username))
		return "", models.ErrAccessDenied
	}

	if required == PermissionReadWrite && perm == PermissionReadOnly {
		a.log.Warn("write denied for readonly caller",
			slog.String("op", op),
			slog.String("site_id", siteID),
			slog.String("username", caller.Username))
		return "", &models.ForbiddenError{
			Message: fmt.Sprintf("fkq access denied (groups: %s)", strings.Join(caller.Groups, ",")),
		}
	}

	return siteID, nil
}

// Sites lists every site the caller can at least read, with the held
// permission level; backs GET /sites.
func (a *Authorizer) Sites(caller *models.Caller) []models.Site {
	siteIDs := a.resolver.SiteIDs(caller.Groups)

	if len(siteIDs) == 0 {
		siteIDs = []string{DefaultSiteID}
	}

	sites := make([]models.Site, 0, len(siteIDs))
	for _, id := range siteIDs {
		perm := a.Permission(id, caller.Groups)
		if perm == PermissionDeny {
			continue
		}
		sites = append(sites, models.Site{SiteID: id, Permission: perm.String()})
	}

	return sites
}
