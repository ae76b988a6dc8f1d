package models

import "time"

type Document struct {
	ID            string    `json:"documentId"`
	SiteID        string    `json:"siteId"`
	Path          string    `json:"path"`
	DeepLinkPath  string    `json:"deepLinkPath,omitempty"`
	ContentType   string    `json:"contentType"`
	ContentLength int64     `json:"contentLength"`
	UserID        string    `json:"userId"`
	InsertedDate  time.Time `json:"insertedDate"`
}

type Tag struct {
	DocumentID   string    `json:"documentId"`
	Key          string    `json:"key"`
	Value        string    `json:"value,omitempty"`
	Values       []string  `json:"values,omitempty"`
	UserID       string    `json:"userId"`
	InsertedDate time.Time `json:"insertedDate"`
}

// Matches reports whether a tag equals the given value, treating a
// multi-valued tag as a set membership check.
func (t Tag) Matches(value string) bool {
	if len(t.Values) > 0 {
		for _, v := range t.Values {
			if v == value {
				return true
			}
		}
		return false
	}
	return t.Value == value
}
