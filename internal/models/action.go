package models

import "time"

type ActionType string

const (
	ActionTypeOCR              ActionType = "OCR"
	ActionTypeFulltext         ActionType = "FULLTEXT"
	ActionTypeWebhook          ActionType = "WEBHOOK"
	ActionTypeDocumentTagging  ActionType = "DOCUMENTTAGGING"
	ActionTypeAntivirus        ActionType = "ANTIVIRUS"
	ActionTypeNotification     ActionType = "NOTIFICATION"
	ActionTypeQueue            ActionType = "QUEUE"
	ActionTypeIndexDocument    ActionType = "DOCUMENTINDEX"
	ActionTypeEventBridge      ActionType = "EVENTBRIDGE"
	ActionTypePublishDocuments ActionType = "PUBLISH"
)

// ActionTypes returns every known action type.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionTypeOCR, ActionTypeFulltext, ActionTypeWebhook,
		ActionTypeDocumentTagging, ActionTypeAntivirus, ActionTypeNotification,
		ActionTypeQueue, ActionTypeIndexDocument, ActionTypeEventBridge,
		ActionTypePublishDocuments,
	}
}

// IsValid reports whether t is one of the known action types.
func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeOCR, ActionTypeFulltext, ActionTypeWebhook,
		ActionTypeDocumentTagging, ActionTypeAntivirus, ActionTypeNotification,
		ActionTypeQueue, ActionTypeIndexDocument, ActionTypeEventBridge,
		ActionTypePublishDocuments:
		return true
	}
	return false
}

type ActionStatus string

const (
	ActionStatusPending  ActionStatus = "PENDING"
	ActionStatusRunning  ActionStatus = "RUNNING"
	ActionStatusComplete ActionStatus = "COMPLETE"
	ActionStatusFailed   ActionStatus = "FAILED"
)

// Action is a unit of asynchronous document processing. Created PENDING
// by the API; only the worker transitions it afterwards.
type Action struct {
	ID           int64             `json:"-"`
	DocumentID   string            `json:"documentId"`
	SiteID       string            `json:"-"`
	Type         ActionType        `json:"type"`
	Status       ActionStatus      `json:"status"`
	Parameters   map[string]string `json:"parameters,omitempty"`
	Message      string            `json:"message,omitempty"`
	UserID       string            `json:"userId"`
	InsertedDate time.Time         `json:"insertedDate"`
}
