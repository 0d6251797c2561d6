package engine

import (
	"errors"
	"fmt"

	"fintrack-server/src/models"
)

// DefaultRefundItemDescription labels the seeded child when the source
// transaction being converted has no description of its own.
const DefaultRefundItemDescription = "Refund item"

// CategoryPatch is the update produced by a category change.
type CategoryPatch struct {
	CategoryID int64 `json:"category_id"`
}

// TypePatch is the update produced by a direct type change. The destination
// account is always cleared so a stale transfer destination is never
// retained across the change.
type TypePatch struct {
	Type       models.TransactionType `json:"type"`
	CategoryID int64                  `json:"category_id"`
}

// RefundSeed describes the refund group a standalone transaction converts
// into: the row itself becomes the parent and a single child covering the
// full amount is created, so the group balances by construction.
type RefundSeed struct {
	Child models.RefundChildInput `json:"child"`
}

// ConversionPlan is the update produced by converting a refund parent back
// into an ordinary transaction. Applying it destroys the group's children.
type ConversionPlan struct {
	Type                     models.TransactionType `json:"type"`
	CategoryID               *int64                 `json:"category_id"`
	DestinationBankAccountID *int64                 `json:"destination_bank_account_id"`
}

// ChangeCategory validates a category reassignment against the transaction's
// type. Refund children classify against expense categories; refund parents
// never carry a category at all.
func ChangeCategory(tx *models.Transaction, newCategoryID int64, categories []models.Category) (CategoryPatch, error) {
	if tx.IsRefundParent() {
		return CategoryPatch{}, fmt.Errorf("refund parent %d carries no category: %w", tx.ID, ErrCategoryTypeMismatch)
	}
	cat, ok := CategoryByID(categories, newCategoryID)
	if !ok {
		return CategoryPatch{}, fmt.Errorf("category %d not found: %w", newCategoryID, ErrCategoryTypeMismatch)
	}
	if required := RequiredCategoryType(tx.Type); cat.Type != required {
		return CategoryPatch{}, fmt.Errorf("category %d is %s, need %s: %w", cat.ID, cat.Type, required, ErrCategoryTypeMismatch)
	}
	return CategoryPatch{CategoryID: cat.ID}, nil
}

// ChangeType computes the patch for a direct type change between expense,
// income and investment. Transfer and refund are only reachable through the
// dedicated conversions, and the current category selection is replaced by
// the first category compatible with the new type.
func ChangeType(tx *models.Transaction, newType models.TransactionType, categories []models.Category) (TypePatch, error) {
	if newType == models.TypeTransfer || newType == models.TypeRefund {
		return TypePatch{}, fmt.Errorf("cannot change type to %s: %w", newType, ErrUnsupportedDirectTransition)
	}
	if !newType.Valid() {
		return TypePatch{}, fmt.Errorf("unknown transaction type %q", newType)
	}
	first, err := FirstByType(categories, newType)
	if err != nil {
		return TypePatch{}, err
	}
	return TypePatch{Type: newType, CategoryID: first.ID}, nil
}

// ChangeBankAccounts plans a source or destination reassignment. See
// PlanAccountChange for the pair and promotion rules.
func ChangeBankAccounts(tx *models.Transaction, field AccountField, newAccountID *int64) (AccountPlan, error) {
	return PlanAccountChange(tx, field, newAccountID)
}

// ConvertToRefund turns a standalone non-refund transaction into a refund
// group seeded with one child covering the whole amount.
func ConvertToRefund(tx *models.Transaction, categories []models.Category) (RefundSeed, error) {
	if tx.Type == models.TypeRefund || tx.ParentTransactionID != nil {
		return RefundSeed{}, fmt.Errorf("transaction %d: %w", tx.ID, ErrNotConvertible)
	}
	first, err := FirstByType(categories, models.TypeRefund)
	if err != nil {
		return RefundSeed{}, err
	}
	desc := tx.Description
	if desc == "" {
		desc = DefaultRefundItemDescription
	}
	return RefundSeed{Child: models.RefundChildInput{
		Amount:      tx.Amount,
		CategoryID:  first.ID,
		Description: desc,
	}}, nil
}

// ConvertFromRefund turns a refund parent back into an ordinary transaction.
// A transfer target needs a second distinct bank account; any other target
// needs a compatible category. The group's children do not survive the
// conversion — callers must warn the user before invoking it.
func ConvertFromRefund(tx *models.Transaction, targetType models.TransactionType, accounts []models.BankAccount, categories []models.Category) (ConversionPlan, error) {
	if !tx.IsRefundParent() {
		return ConversionPlan{}, fmt.Errorf("transaction %d is not a refund parent: %w", tx.ID, ErrNotConvertible)
	}
	if targetType == models.TypeRefund || !targetType.Valid() {
		return ConversionPlan{}, fmt.Errorf("target type %q: %w", targetType, ErrNotConvertible)
	}
	if targetType == models.TypeTransfer {
		for _, acc := range accounts {
			if acc.ID != tx.BankAccountID {
				destID := acc.ID
				return ConversionPlan{Type: models.TypeTransfer, DestinationBankAccountID: &destID}, nil
			}
		}
		return ConversionPlan{}, fmt.Errorf("transaction %d: %w", tx.ID, ErrInsufficientAccounts)
	}
	first, err := FirstByType(categories, targetType)
	if err != nil {
		return ConversionPlan{}, err
	}
	catID := first.ID
	return ConversionPlan{Type: targetType, CategoryID: &catID}, nil
}

// CheckDeletable guards direct deletion. A refund child lives and dies with
// its parent group and is never deletable on its own; a refund parent with
// children takes the whole group with it, which needs the explicit cascade
// flag.
func CheckDeletable(tx *models.Transaction, childCount int, cascade bool) error {
	if tx.IsRefundChild() {
		return fmt.Errorf("refund child %d is bound to its parent group: %w", tx.ID, ErrUnsupportedDirectTransition)
	}
	if tx.IsRefundParent() && childCount > 0 && !cascade {
		return fmt.Errorf("refund parent %d has %d children: %w", tx.ID, childCount, ErrCascadeRequired)
	}
	return nil
}

// ResolveType is the single authority for the destination-driven type
// promotion: a set destination makes the row a transfer, and a transfer
// without a destination is undecided until the caller picks a type.
func ResolveType(declared models.TransactionType, destinationSet bool) (models.TransactionType, error) {
	if destinationSet {
		return models.TypeTransfer, nil
	}
	if declared == models.TypeTransfer {
		return "", fmt.Errorf("transfer without destination: %w", ErrTypeSelectionRequired)
	}
	return declared, nil
}

// ValidateTransaction is the full-update authority: every cross-field
// invariant a transaction row must satisfy before it is written. cat is the
// resolved category for CategoryID, nil when none is set.
func ValidateTransaction(tx *models.Transaction, cat *models.Category) error {
	if tx.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if !tx.Type.Valid() {
		return fmt.Errorf("unknown transaction type %q", tx.Type)
	}
	if tx.BankAccountID == 0 {
		return errors.New("bank account is required")
	}
	if tx.DestinationBankAccountID != nil && *tx.DestinationBankAccountID == tx.BankAccountID {
		return fmt.Errorf("account %d: %w", tx.BankAccountID, ErrInvalidPair)
	}
	if tx.Type == models.TypeTransfer && tx.DestinationBankAccountID == nil {
		return fmt.Errorf("transfer without destination: %w", ErrTypeSelectionRequired)
	}
	if tx.DestinationBankAccountID != nil && tx.Type != models.TypeTransfer {
		return fmt.Errorf("destination account set on %s row; a destination implies a transfer", tx.Type)
	}

	switch {
	case tx.Type == models.TypeTransfer, tx.IsRefundParent():
		// Uncategorized rows.
		if tx.CategoryID != nil {
			return fmt.Errorf("%s rows carry no category: %w", tx.Type, ErrCategoryTypeMismatch)
		}
	default:
		if tx.CategoryID == nil || cat == nil {
			return fmt.Errorf("category is required for %s: %w", tx.Type, ErrCategoryTypeMismatch)
		}
		required := RequiredCategoryType(tx.Type)
		if tx.IsRefundChild() {
			required = models.TypeExpense
		}
		if cat.Type != required {
			return fmt.Errorf("category %d is %s, need %s: %w", cat.ID, cat.Type, required, ErrCategoryTypeMismatch)
		}
	}
	return nil
}
