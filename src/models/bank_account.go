package models

import "time"

type BankAccount struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	BankName      string    `json:"bank_name"`
	AccountNumber *string   `json:"account_number,omitempty"`
	AccountType   string    `json:"account_type"`
	Balance       int64     `json:"balance"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
