package sites

import (
	"docstore/internal/models"
)

const pkg = "sitesHandler/"

type SiteLister interface {
	Sites(caller *models.Caller) []models.Site
}

type SiteResolver interface {
	Resolve(requestedSiteID string, groups []string) (string, error)
	SiteIDs(groups []string) []string
}
