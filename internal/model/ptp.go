package model

import (
	"time"

	"github.com/google/uuid"
)

type PTPStatus string

const (
	PTPPending PTPStatus = "Pending"
	PTPPaid    PTPStatus = "Paid"
	PTPBroken  PTPStatus = "Broken"
)

func (s PTPStatus) Valid() bool {
	switch s {
	case PTPPending, PTPPaid, PTPBroken:
		return true
	}
	return false
}

// PTP обещание оплаты. CustomerID равен nil для ручных записей
type PTP struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `json:"user" gorm:"type:uuid;index;not null"`
	CustomerID *uuid.UUID `json:"customer" gorm:"type:uuid;index"`
	Name       string     `json:"name" gorm:"type:varchar(255);not null"`
	AccountNo  string     `json:"accountNo" gorm:"type:varchar(64)"`
	Phone      string     `json:"phone" gorm:"type:varchar(32)"`
	PTPDate    time.Time  `json:"ptpDate" gorm:"not null;index"`
	Status     PTPStatus  `json:"status" gorm:"type:varchar(16);default:Pending;index"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (PTP) TableName() string { return "ptps" }
