package audit

import (
	"context"
	"testing"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/database/dbtest"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	db := dbtest.New(t)
	return NewService(db, logger.Nop()), db
}

func lastLog(t *testing.T, svc *Service) models.AuditLog {
	t.Helper()
	logs, err := svc.List(context.Background(), ListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	return logs[0]
}

func TestUndoCreateRemovesEmployee(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	emp := models.Employee{EmployeeID: "E1", Name: "Anu", Status: models.EmployeeActive}
	require.NoError(t, db.Create(&emp).Error)
	require.NoError(t, svc.Write(ctx, LogOptions{
		UserID: "admin", EntityType: EntityEmployee, EntityID: "E1",
		Action: models.AuditActionCreate, Description: "Employee created", After: emp,
	}))

	log := lastLog(t, svc)
	require.NoError(t, svc.Undo(ctx, log.ID, "admin", "Admin"))

	var n int64
	require.NoError(t, db.Model(&models.Employee{}).Where("employee_id = ?", "E1").Count(&n).Error)
	require.Zero(t, n)

	err := svc.Undo(ctx, log.ID, "admin", "Admin")
	require.True(t, apperr.Is(err, apperr.KindValidation))

	undo := lastLog(t, svc)
	require.Equal(t, models.AuditActionUndo, undo.Action)
	require.True(t, undo.Undone)
}

func TestUndoUpdateRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	before := models.Employee{EmployeeID: "E1", Name: "Anu", Status: models.EmployeeActive}
	require.NoError(t, db.Create(&before).Error)
	after := before
	after.Name = "Anu R"
	require.NoError(t, db.Save(&after).Error)

	require.NoError(t, svc.Write(ctx, LogOptions{
		UserID: "admin", EntityType: EntityEmployee, EntityID: "E1",
		Action: models.AuditActionUpdate, Before: before, After: after,
	}))
	require.NoError(t, svc.Undo(ctx, lastLog(t, svc).ID, "admin", "Admin"))

	var got models.Employee
	require.NoError(t, db.First(&got, "employee_id = ?", "E1").Error)
	require.Equal(t, "Anu", got.Name)
}

func TestUndoEntryCreateSoftDeletes(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	entry := models.QualityEntry{EmployeeID: "E1", ProductID: "P1", SupervisorID: "S1", Date: time.Now().UTC()}
	entry.SetValues(models.QualityValues{"Quality 1": 3})
	require.NoError(t, db.Create(&entry).Error)

	require.NoError(t, svc.Write(ctx, LogOptions{
		UserID: "S1", EntityType: EntityQualityEntry, EntityID: entry.ID,
		Action: models.AuditActionCreate, After: entry,
	}))
	require.NoError(t, svc.Undo(ctx, lastLog(t, svc).ID, "admin", "Admin"))

	var got models.QualityEntry
	require.NoError(t, db.First(&got, "id = ?", entry.ID).Error)
	require.Equal(t, models.EntryDeleted, got.Status)
}

func TestUndoDeleteRestoresEntry(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	entry := models.QualityEntry{EmployeeID: "E1", ProductID: "P1", SupervisorID: "S1", Date: time.Now().UTC()}
	entry.SetValues(models.QualityValues{"Quality 1": 3, "Quality 2": 4})
	require.NoError(t, db.Create(&entry).Error)
	before := entry
	require.NoError(t, db.Model(&entry).Update("status", models.EntryDeleted).Error)

	require.NoError(t, svc.Write(ctx, LogOptions{
		UserID: "S1", EntityType: EntityQualityEntry, EntityID: entry.ID,
		Action: models.AuditActionDelete, Before: before,
	}))
	require.NoError(t, svc.Undo(ctx, lastLog(t, svc).ID, "admin", "Admin"))

	var got models.QualityEntry
	require.NoError(t, db.First(&got, "id = ?", entry.ID).Error)
	require.Equal(t, models.EntryActive, got.Status)
	require.Equal(t, 7.0, got.Subtotal)
}

func TestUndoMissingLog(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Undo(context.Background(), 999, "admin", "Admin")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUndoUpdateRefusedOnDeletedEntry(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)

	entry := models.QualityEntry{EmployeeID: "E1", ProductID: "P1", SupervisorID: "S1", Date: time.Now().UTC()}
	entry.SetValues(models.QualityValues{"Quality 1": 3})
	require.NoError(t, db.Create(&entry).Error)
	before := entry
	require.NoError(t, svc.Write(ctx, LogOptions{
		UserID: "S1", EntityType: EntityQualityEntry, EntityID: entry.ID,
		Action: models.AuditActionUpdate, Before: before, After: entry,
	}))
	updateLog := lastLog(t, svc)

	require.NoError(t, db.Model(&entry).Update("status", models.EntryDeleted).Error)

	err := svc.Undo(ctx, updateLog.ID, "admin", "Admin")
	require.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	var got models.QualityEntry
	require.NoError(t, db.First(&got, "id = ?", entry.ID).Error)
	require.Equal(t, models.EntryDeleted, got.Status)

	logs, err := svc.List(ctx, ListFilter{EntityID: entry.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.False(t, logs[0].IsUndone)
}
