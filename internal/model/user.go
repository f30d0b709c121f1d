package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Email        *string   `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	Phone        *string   `json:"phone,omitempty" gorm:"type:varchar(32);uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	// Непрозрачный дескриптор доставки, null если нет подписки
	PushSubscription datatypes.JSON `json:"pushSubscription,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func (u *User) Subscribed() bool {
	return len(u.PushSubscription) > 0 && string(u.PushSubscription) != "null"
}
