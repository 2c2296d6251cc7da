package repository

import (
	"context"
	"testing"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/database/dbtest"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"
	"textile-backend/internal/quality"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func day(s string) time.Time {
	t, err := time.Parse(quality.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestUserRepo_PartitionedByRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(dbtest.New(t), logger.Nop())

	require.NoError(t, repo.Create(ctx, &models.User{UserID: "admin", Name: "Admin", PasswordHash: "x", Role: models.RoleAdmin}))
	require.NoError(t, repo.Create(ctx, &models.User{UserID: "sup1", Name: "Ravi", PasswordHash: "x", Role: models.RoleSupervisor}))

	err := repo.Create(ctx, &models.User{UserID: "admin", Name: "Clash", PasswordHash: "x", Role: models.RoleSupervisor})
	require.True(t, apperr.Is(err, apperr.KindDuplicate))

	u, err := repo.FindByUserID(ctx, "sup1")
	require.NoError(t, err)
	require.Equal(t, models.RoleSupervisor, u.Role)
	require.Equal(t, "Ravi", u.Name)

	_, err = repo.Get(ctx, models.RoleAdmin, "sup1")
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	n, err := repo.Count(ctx, models.RoleSupervisor)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	u.Name = "Ravi K"
	require.NoError(t, repo.Update(ctx, u))
	u, err = repo.Get(ctx, models.RoleSupervisor, "sup1")
	require.NoError(t, err)
	require.Equal(t, "Ravi K", u.Name)

	require.NoError(t, repo.Delete(ctx, models.RoleSupervisor, "sup1"))
	require.True(t, apperr.Is(repo.Delete(ctx, models.RoleSupervisor, "sup1"), apperr.KindNotFound))
}

func TestEmployeeRepo_DuplicateAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepo(dbtest.New(t), logger.Nop())
	sup := "sup1"

	require.NoError(t, repo.Create(ctx, &models.Employee{EmployeeID: "E1", Name: "Anu", SupervisorID: &sup}))
	require.NoError(t, repo.Create(ctx, &models.Employee{EmployeeID: "E2", Name: "Bala", Status: models.EmployeeInactive}))

	err := repo.Create(ctx, &models.Employee{EmployeeID: "E1", Name: "Again"})
	require.True(t, apperr.Is(err, apperr.KindDuplicate))

	got, err := repo.List(ctx, EmployeeFilter{SupervisorID: sup})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, models.EmployeeActive, got[0].Status)

	active, err := repo.Count(ctx, EmployeeFilter{Status: models.EmployeeActive})
	require.NoError(t, err)
	require.Equal(t, int64(1), active)

	_, err = repo.Get(ctx, "missing")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestProductRepo_ActiveOnlyAndUniqueName(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo(dbtest.New(t), logger.Nop())

	cotton := &models.Product{Name: "Cotton Saree", Qualities: 2, QualityNames: datatypes.NewJSONSlice([]string{"A", "B"}), Active: true}
	silk := &models.Product{Name: "Silk Saree", Qualities: 1, QualityNames: datatypes.NewJSONSlice([]string{"A"}), Active: false}
	require.NoError(t, repo.Create(ctx, cotton))
	require.NoError(t, repo.Create(ctx, silk))
	require.NotEmpty(t, cotton.ID)

	err := repo.Create(ctx, &models.Product{Name: "Cotton Saree", Qualities: 1, QualityNames: datatypes.NewJSONSlice([]string{"A"})})
	require.True(t, apperr.Is(err, apperr.KindDuplicate))

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, []string{"A", "B"}, []string(active[0].QualityNames))

	all, err := repo.Count(ctx, false)
	require.NoError(t, err)
	require.Equal(t, int64(2), all)
}

func TestQualityEntryRepo_FindPushesCriteriaDown(t *testing.T) {
	ctx := context.Background()
	repo := NewQualityEntryRepo(dbtest.New(t), logger.Nop())

	mk := func(emp, prod, sup, date string, status models.EntryStatus) *models.QualityEntry {
		e := &models.QualityEntry{EmployeeID: emp, ProductID: prod, SupervisorID: sup, Date: day(date), Status: status}
		e.SetValues(models.QualityValues{"Quality 1": 10})
		require.NoError(t, repo.Create(ctx, e))
		return e
	}
	mk("E1", "P1", "S1", "2024-03-01", models.EntryActive)
	mk("E1", "P2", "S1", "2024-03-05", models.EntryInactive)
	mk("E2", "P1", "S2", "2024-03-10", models.EntryActive)
	gone := mk("E2", "P1", "S2", "2024-03-10", models.EntryDeleted)

	all, err := repo.Find(ctx, quality.Criteria{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.True(t, all[0].Date.Equal(day("2024-03-10")))

	from, to := day("2024-03-01"), day("2024-03-05")
	ranged, err := repo.Find(ctx, quality.Criteria{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 2)

	n, err := repo.Count(ctx, quality.Criteria{SupervisorID: "S2"})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := repo.Get(ctx, gone.ID)
	require.NoError(t, err)
	require.Equal(t, models.EntryDeleted, got.Status)
	require.Equal(t, 10.0, got.Values()["Quality 1"])
}

func TestQualityEntryRepo_ReceiptUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewQualityEntryRepo(dbtest.New(t), logger.Nop())
	receipt := "R-100"

	first := &models.QualityEntry{EmployeeID: "E1", ProductID: "P1", SupervisorID: "S1", Date: day("2024-01-01"), ReceiptNo: &receipt}
	first.SetValues(nil)
	require.NoError(t, repo.Create(ctx, first))

	exists, err := repo.ReceiptExists(ctx, receipt, "")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ReceiptExists(ctx, receipt, first.ID)
	require.NoError(t, err)
	require.False(t, exists)

	second := &models.QualityEntry{EmployeeID: "E1", ProductID: "P1", SupervisorID: "S1", Date: day("2024-01-02"), ReceiptNo: &receipt}
	second.SetValues(nil)
	require.True(t, apperr.Is(repo.Create(ctx, second), apperr.KindDuplicate))
}

func TestCompanyRepo_DefaultsThenSaves(t *testing.T) {
	ctx := context.Background()
	repo := NewCompanyRepo(dbtest.New(t), logger.Nop())

	info, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, models.DefaultCompanyInfo().Name, info.Name)

	info.Phone = "+91-44-00000000"
	require.NoError(t, repo.Save(ctx, info))

	info, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "+91-44-00000000", info.Phone)
}

func TestContactRepo_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepo(dbtest.New(t), logger.Nop())

	c := &models.ContactSubmission{Name: "Priya", Email: "priya@example.com", Message: "Bulk order"}
	require.NoError(t, repo.Create(ctx, c))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, c.ID))
	require.True(t, apperr.Is(repo.Delete(ctx, c.ID), apperr.KindNotFound))
}
