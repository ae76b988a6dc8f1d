package models

import "time"

// WebhookEnabled is the tri-state enablement flag. "true" allows public
// unauthenticated delivery, "private" restricts delivery to authenticated
// callers, "false" rejects delivery entirely.
type WebhookEnabled string

const (
	WebhookEnabledPublic   WebhookEnabled = "true"
	WebhookEnabledDisabled WebhookEnabled = "false"
	WebhookEnabledPrivate  WebhookEnabled = "private"
)

func (w WebhookEnabled) IsValid() bool {
	switch w {
	case WebhookEnabledPublic, WebhookEnabledDisabled, WebhookEnabledPrivate:
		return true
	}
	return false
}

type Webhook struct {
	ID           string         `json:"webhookId"`
	SiteID       string         `json:"siteId"`
	Name         string         `json:"name"`
	UserID       string         `json:"userId"`
	Enabled      WebhookEnabled `json:"enabled"`
	TimeToLive   string         `json:"ttl,omitempty"`
	InsertedDate time.Time      `json:"insertedDate"`
}

// URL returns the delivery path for the webhook given its enablement.
func (w Webhook) URL() string {
	if w.Enabled == WebhookEnabledPrivate {
		return "/private/webhooks/" + w.ID
	}
	return "/public/webhooks/" + w.ID
}
