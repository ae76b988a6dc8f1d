package entities

import (
	"time"

	"github.com/lib/pq"
)

type Document struct {
	ID            string    `db:"id"`
	SiteID        string    `db:"site_id"`
	Path          string    `db:"path"`
	DeepLinkPath  string    `db:"deep_link_path"`
	ContentType   string    `db:"content_type"`
	ContentLength int64     `db:"content_length"`
	UserID        string    `db:"user_id"`
	InsertedDate  time.Time `db:"inserted_date"`
}

type Tag struct {
	DocumentID   string         `db:"document_id"`
	SiteID       string         `db:"site_id"`
	Key          string         `db:"tag_key"`
	Values       pq.StringArray `db:"tag_values"`
	UserID       string         `db:"user_id"`
	InsertedDate time.Time      `db:"inserted_date"`
	Seq          int64          `db:"seq"`
}

type Action struct {
	ID           int64     `db:"id"`
	DocumentID   string    `db:"document_id"`
	SiteID       string    `db:"site_id"`
	Type         string    `db:"action_type"`
	Status       string    `db:"status"`
	Parameters   []byte    `db:"parameters"`
	Message      string    `db:"message"`
	UserID       string    `db:"user_id"`
	InsertedDate time.Time `db:"inserted_date"`
}
