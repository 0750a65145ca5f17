package entities

import "time"

type AuditAction string

const (
	AuditActionBookCreate   AuditAction = "book_create"
	AuditActionBookUpdate   AuditAction = "book_update"
	AuditActionBookPatch    AuditAction = "book_patch"
	AuditActionBookDelete   AuditAction = "book_delete"
	AuditActionUserRegister AuditAction = "user_register"
	AuditActionUserLogin    AuditAction = "user_login"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records a single mutation or authentication attempt.
// Never carries credentials.
type AuditEvent struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id"`
	UserID     string      `gorm:"index;size:36" json:"user_id,omitempty"`
	Action     AuditAction `gorm:"index;size:50" json:"action"`
	EntityType string      `gorm:"size:50" json:"entity_type,omitempty"` // "book", "user"
	EntityID   string      `gorm:"size:36" json:"entity_id,omitempty"`
	Status     AuditStatus `gorm:"size:20" json:"status"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
