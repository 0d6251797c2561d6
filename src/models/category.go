package models

import "time"

// Category classifies expense, income and investment transactions. Transfers
// and refund parents carry no category; refund children always use an
// expense category.
type Category struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ValidCategoryType reports whether t is a type a category may carry.
func ValidCategoryType(t TransactionType) bool {
	return t == TypeExpense || t == TypeIncome || t == TypeInvestment
}
