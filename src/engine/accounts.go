package engine

import (
	"errors"
	"fmt"

	"fintrack-server/src/models"
)

type AccountField string

const (
	FieldSource      AccountField = "source"
	FieldDestination AccountField = "destination"
)

// AccountPlan is the outcome of a bank-account reassignment. Attaching a
// destination to a non-transfer promotes it to a transfer; clearing a
// transfer's destination leaves the type undecided and the caller must supply
// a follow-up type.
type AccountPlan struct {
	SourceID              int64
	DestinationID         *int64
	ResultingType         models.TransactionType
	RequiresTypeSelection bool
}

// PlanAccountChange computes the account pair and resulting type for a
// source or destination reassignment. It performs no writes.
func PlanAccountChange(tx *models.Transaction, field AccountField, newAccountID *int64) (AccountPlan, error) {
	sourceID := tx.BankAccountID
	destID := tx.DestinationBankAccountID

	switch field {
	case FieldSource:
		if newAccountID == nil {
			return AccountPlan{}, errors.New("source bank account is required")
		}
		sourceID = *newAccountID
	case FieldDestination:
		destID = newAccountID
	default:
		return AccountPlan{}, fmt.Errorf("unknown account field %q", field)
	}

	if destID != nil && *destID == sourceID {
		return AccountPlan{}, fmt.Errorf("account %d: %w", sourceID, ErrInvalidPair)
	}

	plan := AccountPlan{SourceID: sourceID, DestinationID: destID, ResultingType: tx.Type}
	if destID != nil && tx.Type != models.TypeTransfer {
		plan.ResultingType = models.TypeTransfer
	}
	if destID == nil && tx.Type == models.TypeTransfer {
		// Which concrete type the row reverts to is a product decision the
		// caller has to make explicitly.
		plan.ResultingType = ""
		plan.RequiresTypeSelection = true
	}
	return plan, nil
}
