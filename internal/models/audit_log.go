package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID   string `gorm:"type:uuid;index" json:"salon_id"`
	ActorID   string `gorm:"size:64" json:"actor_id,omitempty"`
	ActorKind string `gorm:"size:20" json:"actor_kind,omitempty"`
	Action    string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID string `gorm:"size:64" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
