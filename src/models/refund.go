package models

// RefundChildInput is one breakdown line of a refund group as submitted by
// the client. Child amounts must sum exactly to the parent amount.
type RefundChildInput struct {
	Amount      int64  `json:"amount"`
	CategoryID  int64  `json:"category_id"`
	Description string `json:"description"`
}

type CreateRefundRequest struct {
	TransactionID *string            `json:"transaction_id,omitempty"`
	Amount        int64              `json:"amount"`
	BankAccountID int64              `json:"bank_account_id"`
	Date          string             `json:"date"`
	Description   string             `json:"description"`
	Children      []RefundChildInput `json:"children"`
}

// UpdateRefundRequest replaces the parent fields and the entire children set
// of an existing refund group.
type UpdateRefundRequest struct {
	Amount        int64              `json:"amount"`
	BankAccountID int64              `json:"bank_account_id"`
	Date          string             `json:"date"`
	Description   string             `json:"description"`
	Children      []RefundChildInput `json:"children"`
}

// RefundGroup is a parent refund transaction together with its children.
type RefundGroup struct {
	Parent   Transaction   `json:"parent"`
	Children []Transaction `json:"children"`
}
