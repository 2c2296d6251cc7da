package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EntityQualityEntry = "quality_entry"
	EntityEmployee     = "employee"
	EntityProduct      = "product"
)

type LogOptions struct {
	UserID      string
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type ListFilter struct {
	EntityType string
	EntityID   string
	UserID     string
	Limit      int
}

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB, log *logger.Logger) *Service {
	return &Service{db: db, log: log.With("service", "AuditService")}
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

func (s *Service) Write(ctx context.Context, opts LogOptions) error {
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return apperr.Storage("Audit log could not be saved", err)
	}
	return nil
}

// Record writes a log and only reports failures to the application log;
// the audited operation has already succeeded.
func (s *Service) Record(ctx context.Context, opts LogOptions) {
	if s == nil {
		return
	}
	if err := s.Write(ctx, opts); err != nil {
		s.log.Error("audit log write failed", "entity_type", opts.EntityType, "entity_id", opts.EntityID, "error", err)
	}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, apperr.Storage("Audit logs could not be listed", err)
	}
	return logs, nil
}

// Undo reverts the change recorded by log id and writes an undo log.
func (s *Service) Undo(ctx context.Context, id uint, actorID, actorName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.AuditLog
		if err := tx.First(&entry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Audit log not found")
			}
			return apperr.Storage("Audit log could not be loaded", err)
		}
		if entry.IsUndone {
			return apperr.Validation("This change has already been undone")
		}

		var err error
		switch entry.Action {
		case models.AuditActionCreate:
			err = removeEntity(tx, entry.EntityType, entry.EntityID)
		case models.AuditActionUpdate:
			if err = checkEntryNotDeleted(tx, entry.EntityType, entry.EntityID); err == nil {
				err = restoreEntity(tx, entry.EntityType, entry.BeforeData)
			}
		case models.AuditActionDelete:
			// Undoing the delete itself is the only way out of the deleted state.
			err = restoreEntity(tx, entry.EntityType, entry.BeforeData)
		default:
			return apperr.Validation("This action cannot be undone")
		}
		if err != nil {
			return err
		}

		now := time.Now()
		entry.IsUndone = true
		entry.UndoneBy = &actorID
		entry.UndoneAt = &now
		if err := tx.Save(&entry).Error; err != nil {
			return apperr.Storage("Audit log could not be updated", err)
		}

		undo := models.AuditLog{
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  entry.EntityType,
			EntityID:    entry.EntityID,
			Action:      models.AuditActionUndo,
			Description: fmt.Sprintf("Undone: %s", entry.Description),
			BeforeData:  entry.AfterData,
			AfterData:   entry.BeforeData,
			Undone:      true,
		}
		if err := tx.Create(&undo).Error; err != nil {
			return apperr.Storage("Undo log could not be saved", err)
		}

		s.log.Info("audit change undone", "audit_id", id, "entity_type", entry.EntityType, "entity_id", entry.EntityID, "by", actorID)
		return nil
	})
}

// removeEntity reverts a create. Quality entries are only ever soft deleted.
func removeEntity(tx *gorm.DB, entityType, entityID string) error {
	var res *gorm.DB
	switch entityType {
	case EntityQualityEntry:
		res = tx.Model(&models.QualityEntry{}).Where("id = ?", entityID).Update("status", models.EntryDeleted)
	case EntityEmployee:
		res = tx.Delete(&models.Employee{}, "employee_id = ?", entityID)
	case EntityProduct:
		res = tx.Delete(&models.Product{}, "id = ?", entityID)
	default:
		return apperr.Validation("Unknown entity type: " + entityType)
	}
	if res.Error != nil {
		return apperr.Storage("Entity could not be removed", res.Error)
	}
	return nil
}

// checkEntryNotDeleted rejects replaying an older snapshot over a quality
// entry that has since been deleted.
func checkEntryNotDeleted(tx *gorm.DB, entityType, entityID string) error {
	if entityType != EntityQualityEntry {
		return nil
	}
	var current models.QualityEntry
	err := tx.Select("status").First(&current, "id = ?", entityID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return apperr.Storage("Quality entry could not be loaded", err)
	case current.Status == models.EntryDeleted:
		return apperr.Validation("Quality entry was deleted; undo the delete first")
	}
	return nil
}

// restoreEntity writes a snapshot back, recreating the row if it is gone.
func restoreEntity(tx *gorm.DB, entityType string, data datatypes.JSON) error {
	var target any
	switch entityType {
	case EntityQualityEntry:
		target = &models.QualityEntry{}
	case EntityEmployee:
		target = &models.Employee{}
	case EntityProduct:
		target = &models.Product{}
	default:
		return apperr.Validation("Unknown entity type: " + entityType)
	}
	if len(data) == 0 || string(data) == "null" {
		return apperr.Validation("No snapshot to restore")
	}
	if err := json.Unmarshal(data, target); err != nil {
		return apperr.New(apperr.KindInternal, "Snapshot could not be decoded", err)
	}
	if err := tx.Save(target).Error; err != nil {
		return apperr.Storage("Entity could not be restored", err)
	}
	return nil
}
