package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sahilchouksey/event-registration-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEntry describes one admin action on the catalog
type AuditEntry struct {
	AdminEmail string
	Action     string
	Resource   string
	ResourceID uint
	Payload    interface{}
	IPAddress  string
	UserAgent  string
}

// AuditService records and lists admin audit logs
type AuditService struct {
	db    *gorm.DB
	clock Clock
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB, clock Clock) *AuditService {
	return &AuditService{db: db, clock: clock}
}

// Record stores an audit entry. A nil payload is stored as NULL.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) error {
	var payload datatypes.JSON
	if entry.Payload != nil {
		raw, err := json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode audit payload: %w", err)
		}
		payload = datatypes.JSON(raw)
	}

	auditLog := model.AdminAuditLog{
		AdminEmail: entry.AdminEmail,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Payload:    payload,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		CreatedAt:  s.clock.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&auditLog).Error; err != nil {
		return fmt.Errorf("failed to record audit log: %w", err)
	}
	return nil
}

// List returns one page of audit logs, newest first, plus the total count.
// An empty action lists every action.
func (s *AuditService) List(ctx context.Context, action string, page, limit int) ([]model.AdminAuditLog, int64, error) {
	byAction := func(db *gorm.DB) *gorm.DB {
		if action != "" {
			return db.Where("action = ?", action)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.AdminAuditLog{}).Scopes(byAction).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	logs := []model.AdminAuditLog{}
	offset := (page - 1) * limit
	err := s.db.WithContext(ctx).
		Scopes(byAction).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}
	return logs, total, nil
}
