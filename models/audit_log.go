package models

import "time"

type AuditLog struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ActorID   uint   `gorm:"index;not null" json:"actor_id"`
	ActorName string `gorm:"size:120"       json:"actor_name"`

	Action   string `gorm:"size:40;not null"  json:"action"` // CREATE, UPDATE, DELETE, POST
	Entity   string `gorm:"size:60;index;not null" json:"entity"`
	EntityID uint   `gorm:"index"             json:"entity_id"`

	// Detail is a JSON snapshot of the entity-level facts at action time.
	Detail string `gorm:"type:text" json:"detail"`

	RequestID string `gorm:"size:64;index" json:"request_id"`
	IP        string `gorm:"size:60"       json:"ip"`
	UserAgent string `gorm:"size:255"      json:"user_agent"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
