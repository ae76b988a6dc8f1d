package models

import "time"

// SiteConfig holds the per-tenant limits and settings managed through
// the Admins-only /configs endpoints. Zero limits mean unlimited.
type SiteConfig struct {
	SiteID                string `json:"siteId"`
	MaxContentLengthBytes int64  `json:"maxContentLengthBytes,string"`
	MaxDocuments          int64  `json:"maxDocuments,string"`
	MaxWebhooks           int64  `json:"maxWebhooks,string"`
	NotificationEmail     string `json:"notificationEmail,omitempty"`
}

type APIKey struct {
	ID           string    `json:"-"`
	SiteID       string    `json:"siteId"`
	Name         string    `json:"name"`
	Masked       string    `json:"apiKey"`
	UserID       string    `json:"userId"`
	InsertedDate time.Time `json:"insertedDate"`
}

// Site pairs a tenant id with the permission the caller holds on it,
// as returned by GET /sites.
type Site struct {
	SiteID     string `json:"siteId"`
	Permission string `json:"permission"`
}
