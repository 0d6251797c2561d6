package models

import "time"

type TransactionType string

const (
	TypeExpense    TransactionType = "expense"
	TypeIncome     TransactionType = "income"
	TypeInvestment TransactionType = "investment"
	TypeTransfer   TransactionType = "transfer"
	TypeRefund     TransactionType = "refund"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeInvestment, TypeTransfer, TypeRefund:
		return true
	}
	return false
}

// Transaction amounts are stored in minor currency units (cents). The sign is
// implied by Type; Amount is never negative.
type Transaction struct {
	ID                       int64           `json:"id"`
	TransactionID            *string         `json:"transaction_id,omitempty"`
	UserID                   int64           `json:"user_id"`
	Amount                   int64           `json:"amount"`
	Type                     TransactionType `json:"type"`
	CategoryID               *int64          `json:"category_id"`
	BankAccountID            int64           `json:"bank_account_id"`
	DestinationBankAccountID *int64          `json:"destination_bank_account_id,omitempty"`
	ParentTransactionID      *int64          `json:"parent_transaction_id,omitempty"`
	Date                     time.Time       `json:"date"`
	Description              string          `json:"description"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// IsRefundParent reports whether the transaction heads a refund group.
func (t *Transaction) IsRefundParent() bool {
	return t.Type == TypeRefund && t.ParentTransactionID == nil
}

// IsRefundChild reports whether the transaction is a breakdown line of a
// refund group.
func (t *Transaction) IsRefundChild() bool {
	return t.Type == TypeRefund && t.ParentTransactionID != nil
}
