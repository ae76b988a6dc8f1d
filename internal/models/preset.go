package models

import "time"

type Preset struct {
	ID           string    `json:"id"`
	SiteID       string    `json:"siteId"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	UserID       string    `json:"userId,omitempty"`
	InsertedDate time.Time `json:"insertedDate"`
}

// PresetTag entries keep insertion order; a delete followed by a
// re-insert moves the key to the end of the list.
type PresetTag struct {
	PresetID     string    `json:"-"`
	Key          string    `json:"key"`
	InsertedDate time.Time `json:"insertedDate"`
}
