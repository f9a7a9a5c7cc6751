package entity

import "github.com/shopspring/decimal"

type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "FOOD"
	CategoryTransport     ExpenseCategory = "TRANSPORTATION"
	CategoryEntertainment ExpenseCategory = "ENTERTAINMENT"
	CategoryShopping      ExpenseCategory = "SHOPPING"
	CategoryBills         ExpenseCategory = "BILLS"
	CategoryHealthcare    ExpenseCategory = "HEALTHCARE"
	CategoryEducation     ExpenseCategory = "EDUCATION"
	CategoryOther         ExpenseCategory = "OTHER"
)

type Expense struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false"`
	UserID      int64           `gorm:"not null;index:idx_expense_user_date"` // References: users(id)
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"not null;default:''"`
	Category    ExpenseCategory `gorm:"not null;default:OTHER"`
	Date        int64           `gorm:"not null;index:idx_expense_user_date"`
	CreatedAt   int64           `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   int64           `gorm:"not null;autoUpdateTime:false"`
}
