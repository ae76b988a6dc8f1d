package entities

import "time"

type Webhook struct {
	ID           string    `db:"id"`
	SiteID       string    `db:"site_id"`
	Name         string    `db:"name"`
	UserID       string    `db:"user_id"`
	Enabled      string    `db:"enabled"`
	TimeToLive   string    `db:"ttl"`
	InsertedDate time.Time `db:"inserted_date"`
}

type Preset struct {
	ID           string    `db:"id"`
	SiteID       string    `db:"site_id"`
	Name         string    `db:"name"`
	Type         string    `db:"preset_type"`
	UserID       string    `db:"user_id"`
	InsertedDate time.Time `db:"inserted_date"`
}

type PresetTag struct {
	PresetID     string    `db:"preset_id"`
	Key          string    `db:"tag_key"`
	InsertedDate time.Time `db:"inserted_date"`
	Seq          int64     `db:"seq"`
}

type SiteConfig struct {
	SiteID                string `db:"site_id"`
	MaxContentLengthBytes int64  `db:"max_content_length_bytes"`
	MaxDocuments          int64  `db:"max_documents"`
	MaxWebhooks           int64  `db:"max_webhooks"`
	NotificationEmail     string `db:"notification_email"`
}

type APIKey struct {
	ID           string    `db:"id"`
	SiteID       string    `db:"site_id"`
	Name         string    `db:"name"`
	KeyHash      []byte    `db:"key_hash"`
	Masked       string    `db:"masked"`
	UserID       string    `db:"user_id"`
	InsertedDate time.Time `db:"inserted_date"`
}

type FolderIndexRecord struct {
	SiteID       string    `db:"site_id"`
	Path         string    `db:"path"`
	Parent       string    `db:"parent"`
	DocumentID   string    `db:"document_id"`
	IsFolder     bool      `db:"is_folder"`
	InsertedDate time.Time `db:"inserted_date"`
}
