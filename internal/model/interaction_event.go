package model

import (
	"time"
)

// InteractionEvent is one raw dashboard/client interaction, written by the
// logging endpoint and consumed by the analytics aggregator. The client IP
// is stored hashed only.
// swagger:model InteractionEvent
type InteractionEvent struct {
	BaseModel
	StudentID        uint      `gorm:"index;type:bigint unsigned;not null" json:"studentId"`
	SessionID        string    `gorm:"size:64;index" json:"sessionId"`
	EventType        string    `gorm:"size:50;not null" json:"eventType"` // e.g. lesson_view, activity_attempt
	TopicID          string    `gorm:"size:100;index" json:"topicId"`
	ResourceType     string    `gorm:"size:50" json:"resourceType"` // activity, assessment, lesson, path
	ResourceID       uint      `gorm:"type:bigint unsigned" json:"resourceId"`
	TimeSpentSeconds int       `gorm:"default:0" json:"timeSpentSeconds"`
	Succeeded        *bool     `json:"succeeded,omitempty"` // set for attempt-type events only
	IPHash           string    `gorm:"size:64" json:"-"`
	UserAgent        string    `gorm:"size:255" json:"-"`
	OccurredAt       time.Time `gorm:"index;not null" json:"occurredAt"`
}

func (InteractionEvent) TableName() string {
	return "interaction_events"
}
