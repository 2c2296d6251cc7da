package quality

import (
	"context"
	"fmt"
	"strings"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/logger"
	"textile-backend/internal/models"
)

// EntryStore persists quality entries. Find and Count never return
// entries in the deleted state.
type EntryStore interface {
	Create(ctx context.Context, e *models.QualityEntry) error
	Get(ctx context.Context, id string) (*models.QualityEntry, error)
	Save(ctx context.Context, e *models.QualityEntry) error
	Find(ctx context.Context, c Criteria) ([]models.QualityEntry, error)
	Count(ctx context.Context, c Criteria) (int64, error)
	ReceiptExists(ctx context.Context, receiptNo, exceptID string) (bool, error)
}

type EmployeeFinder interface {
	Get(ctx context.Context, employeeID string) (*models.Employee, error)
}

type ProductFinder interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

type RecordInput struct {
	EmployeeID     string
	ProductID      string
	Date           time.Time
	Qualities      map[string]any
	SupervisorID   string
	SupervisorName string
	ReceiptNo      string
	Notes          string
}

// UpdateInput holds optional changes; nil fields are left as they are.
type UpdateInput struct {
	EmployeeID *string
	ProductID  *string
	Date       *time.Time
	Qualities  map[string]any
	ReceiptNo  *string
	Notes      *string
	Status     *models.EntryStatus
}

type Service struct {
	entries   EntryStore
	employees EmployeeFinder
	products  ProductFinder
	log       *logger.Logger
}

func NewService(entries EntryStore, employees EmployeeFinder, products ProductFinder, log *logger.Logger) *Service {
	return &Service{
		entries:   entries,
		employees: employees,
		products:  products,
		log:       log.With("service", "QualityEntryService"),
	}
}

// Record validates references and values, computes the subtotal and
// persists a new active entry.
func (s *Service) Record(ctx context.Context, in RecordInput) (*models.QualityEntry, error) {
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.ProductID = strings.TrimSpace(in.ProductID)
	switch {
	case in.EmployeeID == "":
		return nil, apperr.Validation("employeeId is required")
	case in.ProductID == "":
		return nil, apperr.Validation("productId is required")
	case in.Date.IsZero():
		return nil, apperr.Validation("date is required")
	case in.SupervisorID == "":
		return nil, apperr.Unauthorized("Supervisor identity missing")
	}

	employee, err := s.activeEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	product, err := s.product(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	values, err := ParseValues(in.Qualities, product)
	if err != nil {
		return nil, err
	}

	entry := &models.QualityEntry{
		EmployeeID:     employee.EmployeeID,
		EmployeeName:   employee.Name,
		ProductID:      product.ID,
		ProductName:    product.Name,
		Date:           StartOfDay(in.Date.UTC()),
		SupervisorID:   in.SupervisorID,
		SupervisorName: in.SupervisorName,
		Notes:          strings.TrimSpace(in.Notes),
		Status:         models.EntryActive,
	}
	entry.SetValues(values)

	if receipt := strings.TrimSpace(in.ReceiptNo); receipt != "" {
		if err := s.checkReceipt(ctx, receipt, ""); err != nil {
			return nil, err
		}
		entry.ReceiptNo = &receipt
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.log.Debug("quality entry recorded", "id", entry.ID, "employee_id", entry.EmployeeID, "subtotal", entry.Subtotal)
	return entry, nil
}

// Get loads a visible entry. A non-empty supervisorID restricts the lookup
// to entries that supervisor recorded.
func (s *Service) Get(ctx context.Context, id, supervisorID string) (*models.QualityEntry, error) {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Status == models.EntryDeleted {
		return nil, apperr.NotFound("Quality entry not found")
	}
	if supervisorID != "" && entry.SupervisorID != supervisorID {
		return nil, apperr.NotFound("Quality entry not found")
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, c Criteria) ([]models.QualityEntry, error) {
	return s.entries.Find(ctx, c)
}

func (s *Service) Count(ctx context.Context, c Criteria) (int64, error) {
	return s.entries.Count(ctx, c)
}

// Update applies in to the entry and recomputes the subtotal.
func (s *Service) Update(ctx context.Context, id, supervisorID string, in UpdateInput) (*models.QualityEntry, error) {
	entry, err := s.Get(ctx, id, supervisorID)
	if err != nil {
		return nil, err
	}

	if in.EmployeeID != nil && *in.EmployeeID != entry.EmployeeID {
		employee, err := s.activeEmployee(ctx, strings.TrimSpace(*in.EmployeeID))
		if err != nil {
			return nil, err
		}
		entry.EmployeeID = employee.EmployeeID
		entry.EmployeeName = employee.Name
	}

	productChanged := in.ProductID != nil && *in.ProductID != entry.ProductID
	if productChanged || in.Qualities != nil {
		productID := entry.ProductID
		if productChanged {
			productID = strings.TrimSpace(*in.ProductID)
		}
		product, err := s.product(ctx, productID)
		if err != nil {
			return nil, err
		}

		raw := in.Qualities
		if raw == nil {
			raw = make(map[string]any, len(entry.Values()))
			for k, v := range entry.Values() {
				raw[k] = v
			}
		}
		values, err := ParseValues(raw, product)
		if err != nil {
			return nil, err
		}
		entry.ProductID = product.ID
		entry.ProductName = product.Name
		entry.SetValues(values)
	}

	if in.Date != nil {
		entry.Date = StartOfDay(in.Date.UTC())
	}
	if in.Notes != nil {
		entry.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.ReceiptNo != nil {
		receipt := strings.TrimSpace(*in.ReceiptNo)
		if receipt == "" {
			entry.ReceiptNo = nil
		} else {
			if err := s.checkReceipt(ctx, receipt, entry.ID); err != nil {
				return nil, err
			}
			entry.ReceiptNo = &receipt
		}
	}
	if in.Status != nil {
		if err := Transition(entry.Status, *in.Status); err != nil {
			return nil, err
		}
		entry.Status = *in.Status
	}

	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SetStatus moves an entry along its lifecycle.
func (s *Service) SetStatus(ctx context.Context, id, supervisorID string, status models.EntryStatus) (*models.QualityEntry, error) {
	entry, err := s.Get(ctx, id, supervisorID)
	if err != nil {
		return nil, err
	}
	if err := Transition(entry.Status, status); err != nil {
		return nil, err
	}
	if entry.Status == status {
		return entry, nil
	}
	entry.Status = status
	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete is the soft transition to the deleted state.
func (s *Service) Delete(ctx context.Context, id, supervisorID string) (*models.QualityEntry, error) {
	return s.SetStatus(ctx, id, supervisorID, models.EntryDeleted)
}

// Transition validates a lifecycle change. Staying in the same state is allowed.
func Transition(from, to models.EntryStatus) error {
	if !to.Valid() {
		return apperr.Validation(fmt.Sprintf("Invalid status %q", to))
	}
	if from == to {
		return nil
	}
	switch {
	case from == models.EntryActive && (to == models.EntryInactive || to == models.EntryDeleted):
		return nil
	case from == models.EntryInactive && to == models.EntryDeleted:
		return nil
	}
	return apperr.Validation(fmt.Sprintf("Cannot change status from %s to %s", from, to))
}

func (s *Service) activeEmployee(ctx context.Context, id string) (*models.Employee, error) {
	employee, err := s.employees.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee.Status == models.EmployeeInactive {
		return nil, apperr.NotFound("Employee not found")
	}
	return employee, nil
}

func (s *Service) product(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *Service) checkReceipt(ctx context.Context, receipt, exceptID string) error {
	exists, err := s.entries.ReceiptExists(ctx, receipt, exceptID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Duplicate("Receipt number already exists")
	}
	return nil
}
