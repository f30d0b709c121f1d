// Package mocks testify-заглушки интерфейсов domain для тестов сервисов и API.
package mocks

import (
	"context"
	"encoding/json"
	"time"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"
	"ptp_tracker/internal/service/push"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var (
	_ domain.CustomerRepo = (*CustomerRepo)(nil)
	_ domain.PTPRepo      = (*PTPRepo)(nil)
	_ domain.UserRepo     = (*UserRepo)(nil)
	_ domain.SheetService = (*SheetService)(nil)
	_ push.Transport      = (*Transport)(nil)
)

type CustomerRepo struct{ mock.Mock }

func (m *CustomerRepo) FindMany(ctx context.Context, ownerID uuid.UUID, f domain.CustomerFilter, sort domain.CustomerSort) ([]model.Customer, error) {
	args := m.Called(ctx, ownerID, f, sort)
	cs, _ := args.Get(0).([]model.Customer)
	return cs, args.Error(1)
}

func (m *CustomerRepo) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, id, ownerID)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepo) CreateMany(ctx context.Context, cs []model.Customer) error {
	return m.Called(ctx, cs).Error(0)
}

func (m *CustomerRepo) Update(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*model.Customer, error) {
	args := m.Called(ctx, id, ownerID, patch)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepo) Archive(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *CustomerRepo) Stats(ctx context.Context, ownerID uuid.UUID) (model.CustomerStats, error) {
	args := m.Called(ctx, ownerID)
	st, _ := args.Get(0).(model.CustomerStats)
	return st, args.Error(1)
}

func (m *CustomerRepo) Pincodes(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, ownerID)
	codes, _ := args.Get(0).([]string)
	return codes, args.Error(1)
}

type PTPRepo struct{ mock.Mock }

func (m *PTPRepo) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.PTP, error) {
	args := m.Called(ctx, ownerID)
	ps, _ := args.Get(0).([]model.PTP)
	return ps, args.Error(1)
}

func (m *PTPRepo) FindDueBetween(ctx context.Context, start, end time.Time) ([]model.PTP, error) {
	args := m.Called(ctx, start, end)
	ps, _ := args.Get(0).([]model.PTP)
	return ps, args.Error(1)
}

func (m *PTPRepo) Create(ctx context.Context, p *model.PTP) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PTPRepo) UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status model.PTPStatus) (*model.PTP, error) {
	args := m.Called(ctx, id, ownerID, status)
	p, _ := args.Get(0).(*model.PTP)
	return p, args.Error(1)
}

func (m *PTPRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type UserRepo struct{ mock.Mock }

func (m *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepo) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	args := m.Called(ctx, identifier)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepo) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepo) UpdatePushSubscription(ctx context.Context, id uuid.UUID, sub json.RawMessage) error {
	return m.Called(ctx, id, sub).Error(0)
}

type SheetService struct{ mock.Mock }

func (m *SheetService) ReadGrid(ctx context.Context) ([][]interface{}, error) {
	args := m.Called(ctx)
	grid, _ := args.Get(0).([][]interface{})
	return grid, args.Error(1)
}

type Transport struct{ mock.Mock }

func (m *Transport) Send(ctx context.Context, subscription json.RawMessage, msg push.Message) error {
	return m.Called(ctx, subscription, msg).Error(0)
}
