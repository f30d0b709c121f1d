package request

type CreatePTP struct {
	Type       string `json:"type" validate:"omitempty,oneof=existing manual"`
	CustomerID string `json:"customerId" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"max=255"`
	AccountNo  string `json:"accountNo" validate:"max=64"`
	Phone      string `json:"phone" validate:"max=32"`
	PTPDate    Date   `json:"ptpDate"`
	Status     string `json:"status" validate:"omitempty,oneof=Pending Paid Broken"`
}

type UpdatePTP struct {
	Status string `json:"status" validate:"required,oneof=Pending Paid Broken"`
}
