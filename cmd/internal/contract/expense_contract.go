package contract

import "github.com/shopspring/decimal"

type ExpenseResponse struct {
	ID          int64           `json:"id,string"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=500"`
	Category    string          `json:"category" validate:"omitempty,oneof=FOOD TRANSPORTATION ENTERTAINMENT SHOPPING BILLS HEALTHCARE EDUCATION OTHER"`
	Date        *string         `json:"date" validate:"omitempty,timestamp"`
}

type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" validate:"omitnil,max=500"`
	Category    *string          `json:"category" validate:"omitnil,oneof=FOOD TRANSPORTATION ENTERTAINMENT SHOPPING BILLS HEALTHCARE EDUCATION OTHER"`
	Date        *string          `json:"date" validate:"omitnil,timestamp"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

type ExpenseSummaryResponse struct {
	Month      string           `json:"month"`
	Total      decimal.Decimal  `json:"total"`
	Budget     decimal.Decimal  `json:"budget"`
	Remaining  decimal.Decimal  `json:"remaining"`
	Currency   string           `json:"currency"`
	Categories []*CategoryTotal `json:"categories"`
}
