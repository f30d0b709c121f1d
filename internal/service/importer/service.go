package importer

import (
	"context"
	"errors"
	"fmt"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSheetNotConfigured = errors.New("google sheet import is not configured")

// Service нормализует загрузку и передает ее целиком в CreateMany
type Service struct {
	Customers  domain.CustomerRepo
	Sheet      domain.SheetService
	normalizer *Normalizer
	logger     *zap.Logger
}

func NewService(customers domain.CustomerRepo, sheet domain.SheetService, normalizer *Normalizer, logger *zap.Logger) *Service {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}
	return &Service{
		Customers:  customers,
		Sheet:      sheet,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Import создает клиентов владельца из сетки ячеек. Частичного импорта не бывает.
func (s *Service) Import(ctx context.Context, ownerID uuid.UUID, grid [][]any) ([]model.Customer, error) {
	customers, err := s.normalizer.Normalize(grid)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		customers[i].ID = uuid.New()
		customers[i].UserID = ownerID
	}
	if err := s.Customers.CreateMany(ctx, customers); err != nil {
		return nil, fmt.Errorf("bulk create customers: %w", err)
	}
	s.logger.Info("customers imported",
		zap.String("owner", ownerID.String()),
		zap.Int("rows", len(grid)-1),
		zap.Int("imported", len(customers)),
	)
	return customers, nil
}

// ImportSheet импортирует настроенный лист Google Sheets
func (s *Service) ImportSheet(ctx context.Context, ownerID uuid.UUID) ([]model.Customer, error) {
	if s.Sheet == nil {
		return nil, ErrSheetNotConfigured
	}
	rows, err := s.Sheet.ReadGrid(ctx)
	if err != nil {
		return nil, fmt.Errorf("read google sheet: %w", err)
	}
	return s.Import(ctx, ownerID, rows)
}
