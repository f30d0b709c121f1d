package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
	CustomerPending  CustomerStatus = "Pending"
	CustomerClosed   CustomerStatus = "Closed"
)

// ParseCustomerStatus сопоставляет строку со статусами без учета регистра
func ParseCustomerStatus(s string) (CustomerStatus, bool) {
	for _, st := range []CustomerStatus{CustomerActive, CustomerInactive, CustomerPending, CustomerClosed} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

type Customer struct {
	ID          uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID           `json:"user" gorm:"type:uuid;index;not null"`
	Name        string              `json:"name" gorm:"type:varchar(255);not null"`
	AccountNo   string              `json:"accountNo" gorm:"type:varchar(64)"`
	Mobile      string              `json:"mobile" gorm:"type:varchar(32)"`
	Balance     decimal.NullDecimal `json:"balance" gorm:"type:decimal(14,2)"`
	CD          string              `json:"cd" gorm:"type:varchar(64)"`
	Review      string              `json:"review" gorm:"type:text"`
	Address     string              `json:"address" gorm:"type:text"`
	Pincode     string              `json:"pincode" gorm:"type:varchar(16);index"`
	CycleDate   *time.Time          `json:"cycleDate"`
	Status      CustomerStatus      `json:"status" gorm:"type:varchar(16);default:Active"`
	DueAmount   decimal.NullDecimal `json:"dueAmount" gorm:"type:decimal(14,2)"`
	ExDayAmount decimal.NullDecimal `json:"exDayAmount" gorm:"type:decimal(14,2)"`
	Notes       string              `json:"notes" gorm:"type:text"`
	IsArchived  bool                `json:"isArchived" gorm:"default:false;index"`
	TodaysVisit bool                `json:"todaysVisit" gorm:"default:false"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// CustomerStats сводка по неархивным клиентам пользователя
type CustomerStats struct {
	TotalCustomers int64           `json:"totalCustomers"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
}

var pincodeRe = regexp.MustCompile(`\b\d{6}\b`)

// PincodeFromAddress возвращает первый 6-значный токен адреса или ""
func PincodeFromAddress(address string) string {
	return pincodeRe.FindString(address)
}

// FillPincode выводит пинкод из адреса, если он не задан явно.
// Явно заданный пинкод никогда не перезаписывается.
func (c *Customer) FillPincode() {
	if strings.TrimSpace(c.Pincode) != "" || strings.TrimSpace(c.Address) == "" {
		return
	}
	c.Pincode = PincodeFromAddress(c.Address)
}
