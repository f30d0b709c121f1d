package collections

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPTPDateRequired  = fmt.Errorf("%w: promise date is required", domain.ErrValidation)
	ErrPTPSubject       = fmt.Errorf("%w: either a customer or a manual name is required", domain.ErrValidation)
	ErrPTPAmbiguous     = fmt.Errorf("%w: a linked customer and manual fields are mutually exclusive", domain.ErrValidation)
	ErrInvalidPTPStatus = fmt.Errorf("%w: status must be Pending, Paid or Broken", domain.ErrValidation)
)

// NewPTP либо CustomerID, либо ручные поля
type NewPTP struct {
	CustomerID *uuid.UUID
	Name       string
	AccountNo  string
	Phone      string
	PTPDate    time.Time
	Status     model.PTPStatus
}

type PTPService struct {
	PTPs      domain.PTPRepo
	Customers domain.CustomerRepo
	logger    *zap.Logger
}

func NewPTPService(ptps domain.PTPRepo, customers domain.CustomerRepo, logger *zap.Logger) *PTPService {
	return &PTPService{PTPs: ptps, Customers: customers, logger: logger}
}

func (s *PTPService) List(ctx context.Context, ownerID uuid.UUID) ([]model.PTP, error) {
	return s.PTPs.FindAllByOwner(ctx, ownerID)
}

func (s *PTPService) Create(ctx context.Context, ownerID uuid.UUID, in NewPTP) (*model.PTP, error) {
	if in.PTPDate.IsZero() {
		return nil, ErrPTPDateRequired
	}
	status := in.Status
	if status == "" {
		status = model.PTPPending
	}
	if !status.Valid() {
		return nil, ErrInvalidPTPStatus
	}

	p := &model.PTP{
		ID:      uuid.New(),
		UserID:  ownerID,
		PTPDate: in.PTPDate,
		Status:  status,
	}

	manual := strings.TrimSpace(in.Name) != "" || strings.TrimSpace(in.AccountNo) != "" || strings.TrimSpace(in.Phone) != ""
	switch {
	case in.CustomerID != nil && manual:
		return nil, ErrPTPAmbiguous
	case in.CustomerID != nil:
		c, err := s.Customers.Get(ctx, *in.CustomerID, ownerID)
		if err != nil {
			return nil, err
		}
		p.CustomerID = &c.ID
		p.Name = c.Name
		p.AccountNo = c.AccountNo
		p.Phone = c.Mobile
	case strings.TrimSpace(in.Name) == "":
		return nil, ErrPTPSubject
	default:
		p.Name = strings.TrimSpace(in.Name)
		p.AccountNo = strings.TrimSpace(in.AccountNo)
		p.Phone = strings.TrimSpace(in.Phone)
	}

	if err := s.PTPs.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PTPService) UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status model.PTPStatus) (*model.PTP, error) {
	if !status.Valid() {
		return nil, ErrInvalidPTPStatus
	}
	return s.PTPs.UpdateStatus(ctx, id, ownerID, status)
}

// Delete удаляет обещание физически, в отличие от архивации клиентов
func (s *PTPService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.PTPs.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info("ptp deleted", zap.String("id", id.String()), zap.String("owner", ownerID.String()))
	return nil
}
