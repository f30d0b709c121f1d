package request

import (
	"github.com/shopspring/decimal"
)

type CreateCustomer struct {
	Name        string           `json:"name" validate:"required,max=255"`
	AccountNo   string           `json:"accountNo" validate:"max=64"`
	Mobile      string           `json:"mobile" validate:"max=32"`
	Balance     *decimal.Decimal `json:"balance"`
	CD          string           `json:"cd" validate:"max=64"`
	Review      string           `json:"review"`
	Address     string           `json:"address"`
	Pincode     string           `json:"pincode" validate:"omitempty,max=16"`
	CycleDate   *Date            `json:"cycleDate"`
	Status      string           `json:"status"`
	DueAmount   *decimal.Decimal `json:"dueAmount"`
	ExDayAmount *decimal.Decimal `json:"exDayAmount"`
	Notes       string           `json:"notes"`
}

type UpdateCustomer struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	AccountNo   *string          `json:"accountNo" validate:"omitempty,max=64"`
	Mobile      *string          `json:"mobile" validate:"omitempty,max=32"`
	Balance     *decimal.Decimal `json:"balance"`
	CD          *string          `json:"cd" validate:"omitempty,max=64"`
	Review      *string          `json:"review"`
	Address     *string          `json:"address"`
	Pincode     *string          `json:"pincode" validate:"omitempty,max=16"`
	CycleDate   *Date            `json:"cycleDate"`
	Status      *string          `json:"status"`
	DueAmount   *decimal.Decimal `json:"dueAmount"`
	ExDayAmount *decimal.Decimal `json:"exDayAmount"`
	Notes       *string          `json:"notes"`
	TodaysVisit *bool            `json:"todaysVisit"`
}

// BulkImport сетка ячеек, первая строка - заголовки
type BulkImport struct {
	Rows [][]any `json:"rows" validate:"required,min=1"`
}
