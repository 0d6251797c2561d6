package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestPlanAccountChange_DestinationPromotesToTransfer(t *testing.T) {
	tx := &models.Transaction{ID: 10, Type: models.TypeExpense, BankAccountID: 1}

	plan, err := PlanAccountChange(tx, FieldDestination, int64Ptr(2))
	require.NoError(t, err)
	assert.Equal(t, int64(1), plan.SourceID)
	require.NotNil(t, plan.DestinationID)
	assert.Equal(t, int64(2), *plan.DestinationID)
	assert.Equal(t, models.TypeTransfer, plan.ResultingType)
	assert.False(t, plan.RequiresTypeSelection)
}

func TestPlanAccountChange_SameAccountRejected(t *testing.T) {
	tx := &models.Transaction{ID: 10, Type: models.TypeExpense, BankAccountID: 1}

	// Destination equal to the current source always fails, regardless of
	// other state.
	_, err := PlanAccountChange(tx, FieldDestination, int64Ptr(1))
	assert.True(t, errors.Is(err, ErrInvalidPair))

	// Moving the source onto the current destination fails the same way.
	transfer := &models.Transaction{ID: 11, Type: models.TypeTransfer, BankAccountID: 1, DestinationBankAccountID: int64Ptr(3)}
	_, err = PlanAccountChange(transfer, FieldSource, int64Ptr(3))
	assert.True(t, errors.Is(err, ErrInvalidPair))
}

func TestPlanAccountChange_SourceRequired(t *testing.T) {
	tx := &models.Transaction{ID: 10, Type: models.TypeExpense, BankAccountID: 1}

	_, err := PlanAccountChange(tx, FieldSource, nil)
	assert.Error(t, err)
}

func TestPlanAccountChange_SourceChangeKeepsType(t *testing.T) {
	tx := &models.Transaction{ID: 10, Type: models.TypeIncome, BankAccountID: 1}

	plan, err := PlanAccountChange(tx, FieldSource, int64Ptr(4))
	require.NoError(t, err)
	assert.Equal(t, int64(4), plan.SourceID)
	assert.Nil(t, plan.DestinationID)
	assert.Equal(t, models.TypeIncome, plan.ResultingType)
}

func TestPlanAccountChange_ClearingDestinationNeedsFollowUp(t *testing.T) {
	tx := &models.Transaction{ID: 10, Type: models.TypeTransfer, BankAccountID: 1, DestinationBankAccountID: int64Ptr(2)}

	plan, err := PlanAccountChange(tx, FieldDestination, nil)
	require.NoError(t, err)
	assert.Nil(t, plan.DestinationID)
	assert.True(t, plan.RequiresTypeSelection)
	assert.Empty(t, plan.ResultingType)
}

func TestPlanAccountChange_ClearingDestinationOnNonTransfer(t *testing.T) {
	tx := &models.Transaction{ID: 10, Type: models.TypeExpense, BankAccountID: 1, DestinationBankAccountID: int64Ptr(2)}

	plan, err := PlanAccountChange(tx, FieldDestination, nil)
	require.NoError(t, err)
	assert.Nil(t, plan.DestinationID)
	assert.False(t, plan.RequiresTypeSelection)
	assert.Equal(t, models.TypeExpense, plan.ResultingType)
}

func TestPlanAccountChange_UnknownField(t *testing.T) {
	tx := &models.Transaction{ID: 10, Type: models.TypeExpense, BankAccountID: 1}

	_, err := PlanAccountChange(tx, AccountField("owner"), int64Ptr(2))
	assert.Error(t, err)
}
