package collections

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"
	"ptp_tracker/internal/service/spreadsheet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNameRequired  = fmt.Errorf("%w: name is required", domain.ErrValidation)
	ErrInvalidStatus = fmt.Errorf("%w: unknown status", domain.ErrValidation)
	ErrUnknownFormat = fmt.Errorf("%w: unknown export format", domain.ErrValidation)
)

// Порядок колонок выгрузки
var exportHeader = []string{
	"Name", "Account", "Mobile", "Balance", "CD", "Address", "Pincode", "Cycle Date",
	"Status", "Review", "Due Amount", "Ex Day Amount", "Notes",
}

// CustomerPatch изменяемые поля, nil - поле не меняется
type CustomerPatch struct {
	Name        *string
	AccountNo   *string
	Mobile      *string
	Balance     *decimal.Decimal
	CD          *string
	Review      *string
	Address     *string
	Pincode     *string
	CycleDate   *time.Time
	Status      *string
	DueAmount   *decimal.Decimal
	ExDayAmount *decimal.Decimal
	Notes       *string
	TodaysVisit *bool
}

type CustomerService struct {
	Customers domain.CustomerRepo
	logger    *zap.Logger
}

func NewCustomerService(customers domain.CustomerRepo, logger *zap.Logger) *CustomerService {
	return &CustomerService{Customers: customers, logger: logger}
}

func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID, f domain.CustomerFilter, sort domain.CustomerSort) ([]model.Customer, error) {
	return s.Customers.FindMany(ctx, ownerID, f, sort)
}

// Create добавляет одного клиента с теми же правилами, что и импорт
func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, c *model.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.Status == "" {
		c.Status = model.CustomerActive
	} else {
		st, ok := model.ParseCustomerStatus(string(c.Status))
		if !ok {
			return ErrInvalidStatus
		}
		c.Status = st
	}
	c.ID = uuid.New()
	c.UserID = ownerID
	c.IsArchived = false
	c.FillPincode()
	return s.Customers.Create(ctx, c)
}

func (s *CustomerService) Update(ctx context.Context, id, ownerID uuid.UUID, p CustomerPatch) (*model.Customer, error) {
	current, err := s.Customers.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	patch := make(map[string]any)
	setString := func(column string, v *string, dst *string) {
		if v == nil {
			return
		}
		*dst = strings.TrimSpace(*v)
		patch[column] = *dst
	}
	setDecimal := func(column string, v *decimal.Decimal, dst *decimal.NullDecimal) {
		if v == nil {
			return
		}
		*dst = decimal.NewNullDecimal(*v)
		patch[column] = *dst
	}

	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, ErrNameRequired
	}
	setString("name", p.Name, &current.Name)
	setString("account_no", p.AccountNo, &current.AccountNo)
	setString("mobile", p.Mobile, &current.Mobile)
	setString("cd", p.CD, &current.CD)
	setString("review", p.Review, &current.Review)
	setString("address", p.Address, &current.Address)
	setString("pincode", p.Pincode, &current.Pincode)
	setString("notes", p.Notes, &current.Notes)
	setDecimal("balance", p.Balance, &current.Balance)
	setDecimal("due_amount", p.DueAmount, &current.DueAmount)
	setDecimal("ex_day_amount", p.ExDayAmount, &current.ExDayAmount)
	if p.CycleDate != nil {
		patch["cycle_date"] = *p.CycleDate
	}
	if p.Status != nil {
		st, ok := model.ParseCustomerStatus(*p.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		patch["status"] = st
	}
	if p.TodaysVisit != nil {
		patch["todays_visit"] = *p.TodaysVisit
	}

	// пинкод выводится из адреса, только если он пуст после изменений
	if (p.Address != nil || p.Pincode != nil) && current.Pincode == "" {
		if code := model.PincodeFromAddress(current.Address); code != "" {
			patch["pincode"] = code
		}
	}

	return s.Customers.Update(ctx, id, ownerID, patch)
}

// ToggleVisit переключает отметку о визите сегодня
func (s *CustomerService) ToggleVisit(ctx context.Context, id, ownerID uuid.UUID) (*model.Customer, error) {
	current, err := s.Customers.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.Customers.Update(ctx, id, ownerID, map[string]any{"todays_visit": !current.TodaysVisit})
}

func (s *CustomerService) Archive(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.Customers.Archive(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info("customer archived", zap.String("id", id.String()), zap.String("owner", ownerID.String()))
	return nil
}

func (s *CustomerService) Stats(ctx context.Context, ownerID uuid.UUID) (model.CustomerStats, error) {
	return s.Customers.Stats(ctx, ownerID)
}

func (s *CustomerService) Pincodes(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	return s.Customers.Pincodes(ctx, ownerID)
}

// Export пишет неархивных клиентов владельца в csv или xlsx
func (s *CustomerService) Export(ctx context.Context, ownerID uuid.UUID, format string, w io.Writer) error {
	write := spreadsheet.WriteCSV
	switch format {
	case "csv":
	case "xlsx":
		write = spreadsheet.WriteWorkbook
	default:
		return ErrUnknownFormat
	}

	customers, err := s.Customers.FindMany(ctx, ownerID, domain.CustomerFilter{}, domain.SortNewest)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, exportRow(c))
	}
	return write(w, exportHeader, rows)
}

func exportRow(c model.Customer) []string {
	cycle := ""
	if c.CycleDate != nil {
		cycle = c.CycleDate.Format("2006-01-02")
	}
	return []string{
		c.Name, c.AccountNo, c.Mobile, nullDecimal(c.Balance), c.CD, c.Address, c.Pincode, cycle,
		string(c.Status), c.Review, nullDecimal(c.DueAmount), nullDecimal(c.ExDayAmount), c.Notes,
	}
}

func nullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
