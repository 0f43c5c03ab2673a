package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions recorded for catalog changes
const (
	AuditActionEventCreate = "event_create"
	AuditActionEventUpdate = "event_update"
	AuditActionEventDelete = "event_delete"
)

// AdminAuditLog represents audit trail for admin actions
type AdminAuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AdminEmail string         `gorm:"type:varchar(255);index" json:"admin_email"`
	Action     string         `gorm:"type:varchar(100);not null;index" json:"action"` // e.g., "event_delete"
	Resource   string         `gorm:"type:varchar(100)" json:"resource"`              // e.g., "events"
	ResourceID uint           `json:"resource_id"`
	Payload    datatypes.JSON `json:"payload,omitempty"`
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent  string         `gorm:"type:text" json:"user_agent"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AdminAuditLog
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
