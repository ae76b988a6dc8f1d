package models

import "time"

// IndexType distinguishes the folder index from the tag index; the
// DELETE /indices/{type}/{key} endpoint accepts only these values.
type IndexType string

const (
	IndexTypeFolder IndexType = "folder"
	IndexTypeTags   IndexType = "tags"
)

func (t IndexType) IsValid() bool {
	return t == IndexTypeFolder || t == IndexTypeTags
}

// FolderIndexRecord is one node of the per-site folder hierarchy.
type FolderIndexRecord struct {
	SiteID       string    `json:"-"`
	Path         string    `json:"path"`
	Parent       string    `json:"-"`
	DocumentID   string    `json:"documentId,omitempty"`
	IsFolder     bool      `json:"folder"`
	InsertedDate time.Time `json:"insertedDate"`
}
