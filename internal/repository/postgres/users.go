package postgres

import (
	"context"
	"encoding/json"
	"strings"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByIdentifier ищет пользователя по email (без учета регистра) или телефону
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	var u model.User
	err := r.DB.WithContext(ctx).
		Where("email = ? OR phone = ?", strings.ToLower(id), id).
		First(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	if u.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*u.Email))
		u.Email = &e
	}
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) UpdatePushSubscription(ctx context.Context, id uuid.UUID, sub json.RawMessage) error {
	var value any = gorm.Expr("NULL")
	if len(sub) > 0 {
		value = datatypes.JSON(sub)
	}
	res := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("push_subscription", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
