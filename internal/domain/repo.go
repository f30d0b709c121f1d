package domain

import (
	"context"
	"encoding/json"
	"time"

	"ptp_tracker/internal/model"

	"github.com/google/uuid"
)

type CustomerSort string

const (
	SortNewest  CustomerSort = "newest"
	SortAlpha   CustomerSort = "alpha"
	SortBalance CustomerSort = "balance"
)

type CustomerFilter struct {
	Search      string
	TodaysVisit bool
	Pincode     string
}

type CustomerRepo interface {
	// Неархивные клиенты владельца
	FindMany(ctx context.Context, ownerID uuid.UUID, f CustomerFilter, sort CustomerSort) ([]model.Customer, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
	// Все или ничего
	CreateMany(ctx context.Context, cs []model.Customer) error
	Update(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*model.Customer, error)
	// Мягкое удаление: is_archived = true
	Archive(ctx context.Context, id, ownerID uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID) (model.CustomerStats, error)
	Pincodes(ctx context.Context, ownerID uuid.UUID) ([]string, error)
}

type PTPRepo interface {
	// Отсортированы по дате обещания
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.PTP, error)
	// [start, end) по всем владельцам
	FindDueBetween(ctx context.Context, start, end time.Time) ([]model.PTP, error)
	Create(ctx context.Context, p *model.PTP) error
	UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status model.PTPStatus) (*model.PTP, error)
	// Физическое удаление
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type UserRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// Email или телефон
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	// nil снимает подписку
	UpdatePushSubscription(ctx context.Context, id uuid.UUID, sub json.RawMessage) error
}
